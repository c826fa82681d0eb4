package tracex

import (
	"context"
	"crypto/rand"
	"encoding/hex"
)

type traceIDKey struct{}
type spanIDKey struct{}

func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, traceIDKey{}, traceID)
}

func TraceIDFrom(ctx context.Context) (string, bool) {
	return fromCtx(ctx, traceIDKey{})
}

func WithSpanID(ctx context.Context, spanID string) context.Context {
	return context.WithValue(ctx, spanIDKey{}, spanID)
}

func SpanIDFrom(ctx context.Context) (string, bool) {
	return fromCtx(ctx, spanIDKey{})
}

func fromCtx(ctx context.Context, key any) (string, bool) {
	s, ok := ctx.Value(key).(string)
	return s, ok && s != ""
}

// NewTraceID 生成 16 字节随机 trace_id，hex 编码。随机源不可用时返回空串，
// 调用方据此跳过注入。
func NewTraceID() string {
	var b [16]byte
	if _, err := rand.Read(b[:]); err != nil {
		return ""
	}
	return hex.EncodeToString(b[:])
}
