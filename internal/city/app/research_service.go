package app

import (
	"context"
	"errors"

	catalog "StrategyGame/internal/catalog/domain"
	"StrategyGame/internal/city/domain"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ResearchService 处理研究下单与取消，结构与训练/建造一致。
// 研究价格不随等级放大，耗时按已完成等级线性放大。
type ResearchService struct {
	repo       CityRepo
	catalog    Catalog
	worlds     WorldSource
	locker     *CityLocker
	clock      Clock
	newEntryID TokenGen
	log        Logger
}

func NewResearchService(repo CityRepo, cat Catalog, worlds WorldSource, locker *CityLocker, clock Clock, log Logger) *ResearchService {
	return &ResearchService{
		repo:       repo,
		catalog:    cat,
		worlds:     worlds,
		locker:     locker,
		clock:      clock,
		newEntryID: uuid.NewString,
		log:        log,
	}
}

func (s *ResearchService) StartResearch(ctx context.Context, cityID domain.CityID, researchID catalog.ResearchID) (*domain.QueueEntry, error) {
	research, err := s.catalog.ResearchByID(ctx, researchID)
	if err != nil {
		if errors.Is(err, catalog.ErrResearchNotFound) {
			return nil, ErrCatalogNotFound.WithData("research_id", string(researchID))
		}
		return nil, ErrUnavailable.WithCause(err)
	}

	var entry domain.QueueEntry
	err = s.locker.WithCityLock(ctx, cityID, func(ctx context.Context) error {
		c, err := s.repo.GetCity(ctx, cityID)
		if err != nil {
			return wrapCityLoadErr(err, cityID)
		}
		if vr := Validate(c, research.Price); !vr.HasEnough {
			return ErrInsufficientResources.WithData("missing", vr.Missing)
		}
		settings, err := loadSettings(ctx, s.worlds, c.WorldID)
		if err != nil {
			return err
		}
		now := s.clock()
		level := c.Contents.ResearchLevel(researchID)
		seconds := research.BaseResearchTime * float64(level+1) * settings.ResearchSpeed
		entry = domain.QueueEntry{
			EntryID:   s.newEntryID(),
			Kind:      domain.QueueResearch,
			TargetID:  string(researchID),
			StartedAt: now,
			ReadyAt:   now.Add(durationSeconds(seconds)),
			Quantity:  1,
			Cost:      scalePrice(research.Price, 1), // 拷贝一份，条目不共享目录里的 map
		}
		c.Contents.DebitResources(research.Price)
		c.Contents.ResearchQueue = append(c.Contents.ResearchQueue, entry)
		if err := s.repo.SaveContents(ctx, cityID, c.Contents); err != nil {
			return ErrUnavailable.WithCause(err).WithData("city_id", string(cityID))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.WithContext(ctx).Info("研究入队",
		zap.String("city_id", string(cityID)), zap.String("research_id", string(researchID)),
		zap.Time("ready_at", entry.ReadyAt))
	return &entry, nil
}

func (s *ResearchService) CancelResearch(ctx context.Context, cityID domain.CityID, entryID string) error {
	err := s.locker.WithCityLock(ctx, cityID, func(ctx context.Context) error {
		c, err := s.repo.GetCity(ctx, cityID)
		if err != nil {
			return wrapCityLoadErr(err, cityID)
		}
		queue, entry, ok := domain.RemoveEntry(c.Contents.ResearchQueue, entryID)
		if !ok {
			return ErrQueueEntryNotFound.WithData("entry_id", entryID)
		}
		c.Contents.ResearchQueue = queue
		c.Contents.CreditResources(entry.Cost)
		if err := s.repo.SaveContents(ctx, cityID, c.Contents); err != nil {
			return ErrUnavailable.WithCause(err).WithData("city_id", string(cityID))
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.log.WithContext(ctx).Info("研究取消并退款",
		zap.String("city_id", string(cityID)), zap.String("entry_id", entryID))
	return nil
}
