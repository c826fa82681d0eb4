package app

import (
	"context"
	"errors"
	"time"

	catalog "StrategyGame/internal/catalog/domain"
	"StrategyGame/internal/city/domain"

	"go.uber.org/zap"
)

// QueueApplier 结算单个城市的到期队列条目，只改内存中的 c.Contents，不落盘。
// 作废规则：数量为 0 的训练条目、目录里已查不到的条目，直接移除并告警（不退款，入队价已无从考证）。
// 目录存储暂时不可用的条目保留原样，等下一轮扫表重试。
type QueueApplier struct {
	catalog Catalog
	log     Logger
}

func NewQueueApplier(cat Catalog, log Logger) *QueueApplier {
	return &QueueApplier{catalog: cat, log: log}
}

// Apply 结算 c 中所有到期条目，返回是否有任何修改（调用方据此决定要不要落盘）。
func (a *QueueApplier) Apply(ctx context.Context, c *domain.City, now time.Time) bool {
	changed := a.applyTraining(ctx, c, now)
	changed = a.applyConstruction(ctx, c, now) || changed
	changed = a.applyResearch(ctx, c, now) || changed
	return changed
}

func (a *QueueApplier) applyTraining(ctx context.Context, c *domain.City, now time.Time) bool {
	changed := false
	for _, e := range snapshot(c.Contents.TrainingQueue) {
		if ctx.Err() != nil {
			break
		}
		if e.Quantity <= 0 {
			a.void(ctx, c, e, "训练数量为零")
			changed = true
			continue
		}
		if !e.Ready(now) {
			continue
		}
		unit, err := a.catalog.UnitByID(ctx, catalog.UnitID(e.TargetID))
		if err != nil {
			if errors.Is(err, catalog.ErrUnitNotFound) {
				a.void(ctx, c, e, "兵种目录缺失")
				changed = true
				continue
			}
			a.log.WithContext(ctx).Error("兵种目录读取失败，条目延后重试",
				zap.String("city_id", string(c.ID)), zap.String("entry_id", e.EntryID), zap.Error(err))
			continue
		}
		c.Contents.Armies = domain.MergeStack(c.Contents.Armies, unit.ID, e.Quantity)
		c.Contents.TrainingQueue, _, _ = domain.RemoveEntry(c.Contents.TrainingQueue, e.EntryID)
		changed = true
		a.log.WithContext(ctx).Info("训练完成",
			zap.String("city_id", string(c.ID)), zap.String("unit_id", string(unit.ID)), zap.Int("count", e.Quantity))
	}
	return changed
}

func (a *QueueApplier) applyConstruction(ctx context.Context, c *domain.City, now time.Time) bool {
	changed := false
	for _, e := range snapshot(c.Contents.ConstructionQueue) {
		if ctx.Err() != nil {
			break
		}
		if !e.Ready(now) {
			continue
		}
		building, err := a.catalog.BuildingByID(ctx, catalog.BuildingID(e.TargetID))
		if err != nil {
			if errors.Is(err, catalog.ErrBuildingNotFound) {
				a.void(ctx, c, e, "建筑目录缺失")
				changed = true
				continue
			}
			a.log.WithContext(ctx).Error("建筑目录读取失败，条目延后重试",
				zap.String("city_id", string(c.ID)), zap.String("entry_id", e.EntryID), zap.Error(err))
			continue
		}
		c.Contents.Buildings[building.ID]++
		c.Contents.ConstructionQueue, _, _ = domain.RemoveEntry(c.Contents.ConstructionQueue, e.EntryID)
		changed = true
		a.log.WithContext(ctx).Info("建造完成",
			zap.String("city_id", string(c.ID)), zap.String("building_id", string(building.ID)),
			zap.Int("level", c.Contents.Buildings[building.ID]))
	}
	return changed
}

func (a *QueueApplier) applyResearch(ctx context.Context, c *domain.City, now time.Time) bool {
	changed := false
	for _, e := range snapshot(c.Contents.ResearchQueue) {
		if ctx.Err() != nil {
			break
		}
		if !e.Ready(now) {
			continue
		}
		research, err := a.catalog.ResearchByID(ctx, catalog.ResearchID(e.TargetID))
		if err != nil {
			if errors.Is(err, catalog.ErrResearchNotFound) {
				a.void(ctx, c, e, "研究目录缺失")
				changed = true
				continue
			}
			a.log.WithContext(ctx).Error("研究目录读取失败，条目延后重试",
				zap.String("city_id", string(c.ID)), zap.String("entry_id", e.EntryID), zap.Error(err))
			continue
		}
		c.Contents.Researches[research.ID]++
		c.Contents.ResearchQueue, _, _ = domain.RemoveEntry(c.Contents.ResearchQueue, e.EntryID)
		changed = true
		a.log.WithContext(ctx).Info("研究完成",
			zap.String("city_id", string(c.ID)), zap.String("research_id", string(research.ID)))
	}
	return changed
}

// void 作废一条无法结算的条目。
func (a *QueueApplier) void(ctx context.Context, c *domain.City, e domain.QueueEntry, reason string) {
	switch e.Kind {
	case domain.QueueTraining:
		c.Contents.TrainingQueue, _, _ = domain.RemoveEntry(c.Contents.TrainingQueue, e.EntryID)
	case domain.QueueConstruction:
		c.Contents.ConstructionQueue, _, _ = domain.RemoveEntry(c.Contents.ConstructionQueue, e.EntryID)
	case domain.QueueResearch:
		c.Contents.ResearchQueue, _, _ = domain.RemoveEntry(c.Contents.ResearchQueue, e.EntryID)
	}
	a.log.WithContext(ctx).Warn("队列条目作废",
		zap.String("city_id", string(c.ID)), zap.String("entry_id", e.EntryID),
		zap.String("kind", e.Kind.String()), zap.String("target_id", e.TargetID),
		zap.String("reason", reason))
}

func snapshot(queue []domain.QueueEntry) []domain.QueueEntry {
	return append([]domain.QueueEntry(nil), queue...)
}
