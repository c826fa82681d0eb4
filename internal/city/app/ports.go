package app

import (
	"context"
	"time"

	catalog "StrategyGame/internal/catalog/domain"
	"StrategyGame/internal/city/domain"
	world "StrategyGame/internal/world/domain"
	"StrategyGame/modules/kit/logx"
)

// CityRepo 是城市文档的存储端口。
// TryAcquireLock / ReleaseLock 必须由实现方保证原子性（单文档条件更新）。
type CityRepo interface {
	GetCity(ctx context.Context, id domain.CityID) (*domain.City, error)
	SaveContents(ctx context.Context, id domain.CityID, contents domain.CityContents) error
	InsertCity(ctx context.Context, c *domain.City) error

	// TryAcquireLock 尝试抢占城市租约锁：
	// 仅当锁字段为空，或 LockExpiration 早于 now（租约过期）时成功。
	TryAcquireLock(ctx context.Context, id domain.CityID, token string, now, expiresAt time.Time) (bool, error)
	// ReleaseLock 释放租约锁：只有持有相同 token 才会清除，过期后被他人抢占则不影响新持有者。
	ReleaseLock(ctx context.Context, id domain.CityID, token string) error
}

// Catalog 是兵种/建筑/研究目录的只读端口。
type Catalog interface {
	UnitByID(ctx context.Context, id catalog.UnitID) (*catalog.MilitaryUnit, error)
	BuildingByID(ctx context.Context, id catalog.BuildingID) (*catalog.Building, error)
	ResearchByID(ctx context.Context, id catalog.ResearchID) (*catalog.Research, error)
	// ResourceBuildings 返回所有产出资源的建筑目录项。
	ResourceBuildings(ctx context.Context) ([]catalog.Building, error)
}

// WorldSource 提供世界调速参数；每次操作都重新读取，不做进程级缓存。
type WorldSource interface {
	WorldByID(ctx context.Context, id world.WorldID) (*world.World, error)
}

// Clock 注入当前时间，方便测试钉死时钟。
type Clock func() time.Time

type Logger = logx.Logger
