package sim

import (
	"context"
	"errors"
	"sync"
	"time"

	cityapp "StrategyGame/internal/city/app"
	world "StrategyGame/internal/world/domain"

	"go.uber.org/zap"
)

// QueueSweeper 是队列扫表循环：每轮按扇区扇出，扇区内按批量上限逐城结算。
// 锁竞争的城市本轮跳过，下一轮扫表自然重试。
type QueueSweeper struct {
	cities    CityLister
	processor *cityapp.QueueProcessor
	interval  time.Duration
	batchSize int
	log       Logger
}

func NewQueueSweeper(cities CityLister, processor *cityapp.QueueProcessor, interval time.Duration, batchSize int, log Logger) *QueueSweeper {
	if batchSize <= 0 {
		batchSize = 100
	}
	return &QueueSweeper{
		cities:    cities,
		processor: processor,
		interval:  interval,
		batchSize: batchSize,
		log:       log,
	}
}

// Run 阻塞运行，ctx 取消后在当轮收尾处返回。
func (s *QueueSweeper) Run(ctx context.Context) {
	runEvery(ctx, "queue_sweep", s.interval, s.log, s.cycle)
}

func (s *QueueSweeper) cycle(ctx context.Context) {
	started := time.Now()
	sectors, err := s.cities.DistinctSectors(ctx)
	if err != nil {
		s.log.WithContext(ctx).Error("扇区列表读取失败，本轮扫表跳过", zap.Error(err))
		return
	}

	var wg sync.WaitGroup
	for _, sector := range sectors {
		if ctx.Err() != nil {
			break
		}
		sector := sector
		safeGo(&wg, s.log, string(sector), func() {
			s.sweepSector(ctx, sector)
		})
	}
	wg.Wait()

	if elapsed := time.Since(started); elapsed > s.interval {
		s.log.WithContext(ctx).Warn("扫表耗时超过间隔",
			zap.Duration("elapsed", elapsed), zap.Int("sectors", len(sectors)))
	}
}

func (s *QueueSweeper) sweepSector(ctx context.Context, sector world.SectorID) {
	ids, err := s.cities.ListCityIDsBySector(ctx, sector, s.batchSize)
	if err != nil {
		s.log.WithContext(ctx).Error("扇区城市列表读取失败",
			zap.String("sector_id", string(sector)), zap.Error(err))
		return
	}
	for _, id := range ids {
		if ctx.Err() != nil {
			return
		}
		if _, err := s.processor.ProcessCity(ctx, id); err != nil {
			if errors.Is(err, cityapp.ErrLockTimeout) {
				s.log.WithContext(ctx).Debug("城市锁竞争，本轮跳过",
					zap.String("city_id", string(id)))
				continue
			}
			s.log.WithContext(ctx).Warn("城市队列结算失败",
				zap.String("city_id", string(id)), zap.Error(err))
		}
	}
}
