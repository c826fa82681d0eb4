package app

import (
	"context"
	"errors"

	catalog "StrategyGame/internal/catalog/domain"
	"StrategyGame/internal/city/domain"
	"StrategyGame/modules/kit/errx"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TrainingService 处理训练下单与取消。
// 下单是一次锁内事务：校验余额、扣款、入队、落盘；任何一步失败都不产生部分效果。
type TrainingService struct {
	repo       CityRepo
	catalog    Catalog
	worlds     WorldSource
	locker     *CityLocker
	clock      Clock
	newEntryID TokenGen
	log        Logger
}

func NewTrainingService(repo CityRepo, cat Catalog, worlds WorldSource, locker *CityLocker, clock Clock, log Logger) *TrainingService {
	return &TrainingService{
		repo:       repo,
		catalog:    cat,
		worlds:     worlds,
		locker:     locker,
		clock:      clock,
		newEntryID: uuid.NewString,
		log:        log,
	}
}

// StartTraining 下单训练 amount 个 unitID。
// 总价 = 单价 × 数量；耗时 = 单位基础耗时 × 世界训练速度。
func (s *TrainingService) StartTraining(ctx context.Context, cityID domain.CityID, unitID catalog.UnitID, amount int) (*domain.QueueEntry, error) {
	if amount <= 0 {
		return nil, errx.ErrReqParamERR.WithData("amount", amount)
	}
	unit, err := s.catalog.UnitByID(ctx, unitID)
	if err != nil {
		if errors.Is(err, catalog.ErrUnitNotFound) {
			return nil, ErrCatalogNotFound.WithData("unit_id", string(unitID))
		}
		return nil, ErrUnavailable.WithCause(err)
	}
	totalPrice := scalePrice(unit.Price, amount)

	var entry domain.QueueEntry
	err = s.locker.WithCityLock(ctx, cityID, func(ctx context.Context) error {
		c, err := s.repo.GetCity(ctx, cityID)
		if err != nil {
			return wrapCityLoadErr(err, cityID)
		}
		if vr := Validate(c, totalPrice); !vr.HasEnough {
			return ErrInsufficientResources.WithData("missing", vr.Missing)
		}
		settings, err := loadSettings(ctx, s.worlds, c.WorldID)
		if err != nil {
			return err
		}
		now := s.clock()
		seconds := float64(unit.TrainingTime) * settings.UnitTrainingSpeed
		entry = domain.QueueEntry{
			EntryID:   s.newEntryID(),
			Kind:      domain.QueueTraining,
			TargetID:  string(unitID),
			StartedAt: now,
			ReadyAt:   now.Add(durationSeconds(seconds)),
			Quantity:  amount,
			Cost:      totalPrice,
		}
		c.Contents.DebitResources(totalPrice)
		c.Contents.TrainingQueue = append(c.Contents.TrainingQueue, entry)
		if err := s.repo.SaveContents(ctx, cityID, c.Contents); err != nil {
			return ErrUnavailable.WithCause(err).WithData("city_id", string(cityID))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.WithContext(ctx).Info("训练入队",
		zap.String("city_id", string(cityID)), zap.String("unit_id", string(unitID)),
		zap.Int("amount", amount), zap.Time("ready_at", entry.ReadyAt))
	return &entry, nil
}

// CancelTraining 取消排队中的训练条目，按入队时记录的 Cost 全额退款。
func (s *TrainingService) CancelTraining(ctx context.Context, cityID domain.CityID, entryID string) error {
	err := s.locker.WithCityLock(ctx, cityID, func(ctx context.Context) error {
		c, err := s.repo.GetCity(ctx, cityID)
		if err != nil {
			return wrapCityLoadErr(err, cityID)
		}
		queue, entry, ok := domain.RemoveEntry(c.Contents.TrainingQueue, entryID)
		if !ok {
			return ErrQueueEntryNotFound.WithData("entry_id", entryID)
		}
		c.Contents.TrainingQueue = queue
		c.Contents.CreditResources(entry.Cost)
		if err := s.repo.SaveContents(ctx, cityID, c.Contents); err != nil {
			return ErrUnavailable.WithCause(err).WithData("city_id", string(cityID))
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.log.WithContext(ctx).Info("训练取消并退款",
		zap.String("city_id", string(cityID)), zap.String("entry_id", entryID))
	return nil
}
