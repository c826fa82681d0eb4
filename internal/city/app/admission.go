package app

import (
	"context"
	"time"

	catalog "StrategyGame/internal/catalog/domain"
	world "StrategyGame/internal/world/domain"
)

// scalePrice 返回 price 的 amount 倍（新 map，不改入参）。
func scalePrice(price map[catalog.ResourceID]int, amount int) map[catalog.ResourceID]int {
	out := make(map[catalog.ResourceID]int, len(price))
	for id, v := range price {
		out[id] = v * amount
	}
	return out
}

// durationSeconds 把秒数换算为 Duration，负数按零处理，保证 ReadyAt >= StartedAt。
func durationSeconds(seconds float64) time.Duration {
	if seconds <= 0 {
		return 0
	}
	return time.Duration(seconds * float64(time.Second))
}

// loadSettings 读取城市所在世界的调速参数（按值返回，调用方本次操作内使用）。
func loadSettings(ctx context.Context, worlds WorldSource, id world.WorldID) (world.WorldSettings, error) {
	w, err := worlds.WorldByID(ctx, id)
	if err != nil {
		return world.WorldSettings{}, ErrUnavailable.WithCause(err).WithData("world_id", string(id))
	}
	settings := w.Settings
	settings.Normalize()
	return settings, nil
}
