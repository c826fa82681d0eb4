package sim

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// runEvery 以固定间隔驱动 cycle，直到 ctx 取消。
// cycle 同步执行，单个循环的两轮永不重叠；间隔本身就是失败重试机制。
func runEvery(ctx context.Context, name string, interval time.Duration, log Logger, cycle func(ctx context.Context)) {
	log.Info("后台循环启动", zap.String("loop", name), zap.Duration("interval", interval))
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			log.Info("后台循环退出", zap.String("loop", name))
			return
		case <-ticker.C:
			cycle(ctx)
		}
	}
}

// safeGo 在 wg 计数下启动一个带 panic 兜底的工作协程。
// 单个实体结算 panic 只记录日志，不影响兄弟协程和整个循环。
func safeGo(wg *sync.WaitGroup, log Logger, entityID string, fn func()) {
	wg.Add(1)
	go func() {
		defer wg.Done()
		defer func() {
			if r := recover(); r != nil {
				log.Error("后台任务 panic 已兜底",
					zap.String("entity_id", entityID), zap.Any("panic", r))
			}
		}()
		fn()
	}()
}
