package sim

import (
	"context"
	"sync"
	"time"

	catalog "StrategyGame/internal/catalog/domain"
	cityapp "StrategyGame/internal/city/app"
	world "StrategyGame/internal/world/domain"

	"go.uber.org/zap"
)

// ProductionLoop 是资源产出循环：每轮扫所有世界，按世界、再按城市扇出，
// 每座城市独立计算产量并走账本入账（入账在城市锁内，和玩家操作互斥）。
type ProductionLoop struct {
	worlds   WorldSource
	cities   CityLister
	catalog  cityapp.Catalog
	ledger   *cityapp.ResourceLedger
	interval time.Duration
	clock    Clock
	log      Logger

	// lastTick 记录每个世界上次产出时间，实现各世界自己的 TickRateMillis。
	// 只被循环协程单线程读写。
	lastTick map[world.WorldID]time.Time
}

func NewProductionLoop(worlds WorldSource, cities CityLister, cat cityapp.Catalog, ledger *cityapp.ResourceLedger, interval time.Duration, clock Clock, log Logger) *ProductionLoop {
	return &ProductionLoop{
		worlds:   worlds,
		cities:   cities,
		catalog:  cat,
		ledger:   ledger,
		interval: interval,
		clock:    clock,
		log:      log,
		lastTick: make(map[world.WorldID]time.Time),
	}
}

// Run 阻塞运行，ctx 取消后在当轮收尾处返回。
func (l *ProductionLoop) Run(ctx context.Context) {
	runEvery(ctx, "production", l.interval, l.log, l.cycle)
}

func (l *ProductionLoop) cycle(ctx context.Context) {
	worlds, err := l.worlds.ListWorlds(ctx)
	if err != nil {
		l.log.WithContext(ctx).Error("世界列表读取失败，本轮产出跳过", zap.Error(err))
		return
	}
	resourceBuildings, err := l.catalog.ResourceBuildings(ctx)
	if err != nil {
		l.log.WithContext(ctx).Error("资源建筑目录读取失败，本轮产出跳过", zap.Error(err))
		return
	}

	now := l.clock()
	var wg sync.WaitGroup
	for _, w := range worlds {
		if ctx.Err() != nil {
			break
		}
		if !l.tickDue(w, now) {
			continue
		}
		l.lastTick[w.ID] = now
		w := w
		safeGo(&wg, l.log, string(w.ID), func() {
			l.produceWorld(ctx, w, resourceBuildings)
		})
	}
	wg.Wait()
}

// tickDue 按世界自己的 TickRateMillis 判断本轮是否轮到它产出。
func (l *ProductionLoop) tickDue(w world.World, now time.Time) bool {
	if w.Settings.TickRateMillis <= 0 {
		return true
	}
	last, ok := l.lastTick[w.ID]
	if !ok {
		return true
	}
	return now.Sub(last) >= time.Duration(w.Settings.TickRateMillis)*time.Millisecond
}

func (l *ProductionLoop) produceWorld(ctx context.Context, w world.World, resourceBuildings []catalog.Building) {
	settings := w.Settings
	settings.Normalize()

	cities, err := l.cities.ListCitiesByWorld(ctx, w.ID)
	if err != nil {
		l.log.WithContext(ctx).Error("世界城市列表读取失败",
			zap.String("world_id", string(w.ID)), zap.Error(err))
		return
	}

	var wg sync.WaitGroup
	for _, c := range cities {
		if ctx.Err() != nil {
			break
		}
		c := c
		safeGo(&wg, l.log, string(c.ID), func() {
			amounts := CalculateCityProduction(resourceBuildings, c.Contents, settings)
			if len(amounts) == 0 {
				return
			}
			if err := l.ledger.CreditWithLock(ctx, c.ID, amounts); err != nil {
				// 锁竞争或存储抖动都留给下一轮 tick 补产。
				l.log.WithContext(ctx).Warn("资源入账失败，留待下一轮",
					zap.String("city_id", string(c.ID)), zap.Error(err))
			}
		})
	}
	wg.Wait()
}
