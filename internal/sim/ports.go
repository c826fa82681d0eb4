package sim

import (
	"context"
	"time"

	battledomain "StrategyGame/internal/battle/domain"
	cityapp "StrategyGame/internal/city/app"
	citydomain "StrategyGame/internal/city/domain"
	world "StrategyGame/internal/world/domain"
)

// WorldSource 枚举所有世界；每轮 tick 重新读取，调速参数按值下发。
type WorldSource interface {
	ListWorlds(ctx context.Context) ([]world.World, error)
}

// CityLister 按世界/扇区枚举城市，给三个后台循环扇出用。
type CityLister interface {
	ListCitiesByWorld(ctx context.Context, id world.WorldID) ([]citydomain.City, error)
	DistinctSectors(ctx context.Context) ([]world.SectorID, error)
	// ListCityIDsBySector 返回扇区内至多 limit 个城市 id（单轮扫表的批量上限）。
	ListCityIDsBySector(ctx context.Context, id world.SectorID, limit int) ([]citydomain.CityID, error)
}

// DueForces 枚举已到达、待结算的部队。
type DueForces interface {
	DueForceIDs(ctx context.Context, now time.Time) ([]battledomain.ForceID, error)
}

type Clock = cityapp.Clock

type Logger = cityapp.Logger
