package logx

import (
	"context"

	"go.uber.org/zap"
)

// Logger 是全仓库共用的最小日志接口：四个级别加 ctx 透传。
// WithContext 负责把 trace/span 等链路字段带进后续输出。
type Logger interface {
	Info(msg string, fields ...zap.Field)
	Error(msg string, fields ...zap.Field)
	Debug(msg string, fields ...zap.Field)
	Warn(msg string, fields ...zap.Field)
	WithContext(ctx context.Context) Logger
}
