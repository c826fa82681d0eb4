package app

import (
	"context"
	"time"

	"StrategyGame/internal/battle/domain"
	cityapp "StrategyGame/internal/city/app"
)

// ForceRepo 是进攻部队的存储端口。
// Claim 必须原子地“取出并删除”一条部队记录：同一支部队只会被一个扫表协程结算一次。
type ForceRepo interface {
	DueForceIDs(ctx context.Context, now time.Time) ([]domain.ForceID, error)
	Claim(ctx context.Context, id domain.ForceID) (*domain.AttackForce, error)
	Insert(ctx context.Context, f *domain.AttackForce) error
}

type Clock = cityapp.Clock

type Logger = cityapp.Logger
