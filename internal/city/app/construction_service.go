package app

import (
	"context"
	"errors"

	catalog "StrategyGame/internal/catalog/domain"
	"StrategyGame/internal/city/domain"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ConstructionService 处理建造下单、取消与拆除。
// 造价和耗时都按城市当前等级放大，入队价记录在条目里用于取消退款。
type ConstructionService struct {
	repo       CityRepo
	catalog    Catalog
	worlds     WorldSource
	locker     *CityLocker
	clock      Clock
	newEntryID TokenGen
	log        Logger
}

func NewConstructionService(repo CityRepo, cat Catalog, worlds WorldSource, locker *CityLocker, clock Clock, log Logger) *ConstructionService {
	return &ConstructionService{
		repo:       repo,
		catalog:    cat,
		worlds:     worlds,
		locker:     locker,
		clock:      clock,
		newEntryID: uuid.NewString,
		log:        log,
	}
}

// StartConstruction 下单把 buildingID 从当前等级升一级（0 级表示新建）。
func (s *ConstructionService) StartConstruction(ctx context.Context, cityID domain.CityID, buildingID catalog.BuildingID) (*domain.QueueEntry, error) {
	building, err := s.catalog.BuildingByID(ctx, buildingID)
	if err != nil {
		if errors.Is(err, catalog.ErrBuildingNotFound) {
			return nil, ErrCatalogNotFound.WithData("building_id", string(buildingID))
		}
		return nil, ErrUnavailable.WithCause(err)
	}

	var entry domain.QueueEntry
	err = s.locker.WithCityLock(ctx, cityID, func(ctx context.Context) error {
		c, err := s.repo.GetCity(ctx, cityID)
		if err != nil {
			return wrapCityLoadErr(err, cityID)
		}
		level := c.Contents.BuildingLevel(buildingID)
		price := building.Blueprint.PriceAtLevel(level)
		if vr := Validate(c, price); !vr.HasEnough {
			return ErrInsufficientResources.WithData("missing", vr.Missing)
		}
		settings, err := loadSettings(ctx, s.worlds, c.WorldID)
		if err != nil {
			return err
		}
		now := s.clock()
		mul := building.Blueprint.TimeMultiplierPerLevel
		if mul <= 0 {
			mul = 1
		}
		seconds := building.Blueprint.BaseConstructionTime * float64(level+1) * mul * settings.ConstructionSpeed
		entry = domain.QueueEntry{
			EntryID:   s.newEntryID(),
			Kind:      domain.QueueConstruction,
			TargetID:  string(buildingID),
			StartedAt: now,
			ReadyAt:   now.Add(durationSeconds(seconds)),
			Quantity:  1,
			Cost:      price,
		}
		c.Contents.DebitResources(price)
		c.Contents.ConstructionQueue = append(c.Contents.ConstructionQueue, entry)
		if err := s.repo.SaveContents(ctx, cityID, c.Contents); err != nil {
			return ErrUnavailable.WithCause(err).WithData("city_id", string(cityID))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.WithContext(ctx).Info("建造入队",
		zap.String("city_id", string(cityID)), zap.String("building_id", string(buildingID)),
		zap.Time("ready_at", entry.ReadyAt))
	return &entry, nil
}

// CancelConstruction 取消排队中的建造条目并按入队价退款。
func (s *ConstructionService) CancelConstruction(ctx context.Context, cityID domain.CityID, entryID string) error {
	err := s.locker.WithCityLock(ctx, cityID, func(ctx context.Context) error {
		c, err := s.repo.GetCity(ctx, cityID)
		if err != nil {
			return wrapCityLoadErr(err, cityID)
		}
		queue, entry, ok := domain.RemoveEntry(c.Contents.ConstructionQueue, entryID)
		if !ok {
			return ErrQueueEntryNotFound.WithData("entry_id", entryID)
		}
		c.Contents.ConstructionQueue = queue
		c.Contents.CreditResources(entry.Cost)
		if err := s.repo.SaveContents(ctx, cityID, c.Contents); err != nil {
			return ErrUnavailable.WithCause(err).WithData("city_id", string(cityID))
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.log.WithContext(ctx).Info("建造取消并退款",
		zap.String("city_id", string(cityID)), zap.String("entry_id", entryID))
	return nil
}

// DestroyBuilding 直接移除已建成的建筑，不退任何资源。
func (s *ConstructionService) DestroyBuilding(ctx context.Context, cityID domain.CityID, buildingID catalog.BuildingID) error {
	return s.locker.WithCityLock(ctx, cityID, func(ctx context.Context) error {
		c, err := s.repo.GetCity(ctx, cityID)
		if err != nil {
			return wrapCityLoadErr(err, cityID)
		}
		if _, ok := c.Contents.Buildings[buildingID]; !ok {
			return ErrBuildingNotPresent.WithData("building_id", string(buildingID))
		}
		delete(c.Contents.Buildings, buildingID)
		if err := s.repo.SaveContents(ctx, cityID, c.Contents); err != nil {
			return ErrUnavailable.WithCause(err).WithData("city_id", string(cityID))
		}
		return nil
	})
}
