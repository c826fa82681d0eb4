package app

import (
	"context"
	"strconv"

	catalog "StrategyGame/internal/catalog/domain"
	"StrategyGame/internal/city/domain"
	world "StrategyGame/internal/world/domain"
	"StrategyGame/internal/shared/utils"
	"StrategyGame/modules/kit/errx"

	"go.uber.org/zap"
)

// FoundSettlementReq 是建立定居点的入参。PlayerID 为空表示生成无主定居点。
type FoundSettlementReq struct {
	PlayerID  string
	Name      string
	WorldID   world.WorldID
	SectorID  world.SectorID
	X         int
	Y         int
	FactionID catalog.FactionID
}

// NextID 生成新城市 id，默认雪花 id，测试可替换。
type NextID func() (int64, error)

// CityService 处理定居点的创建和查询。
type CityService struct {
	repo   CityRepo
	worlds WorldSource
	clock  Clock
	nextID NextID
	log    Logger
}

func NewCityService(repo CityRepo, worlds WorldSource, clock Clock, log Logger) *CityService {
	return &CityService{
		repo:   repo,
		worlds: worlds,
		clock:  clock,
		nextID: utils.NextSnowflakeID,
		log:    log,
	}
}

// FoundSettlement 在指定世界的指定扇区落一座新城。
// 新城带空的军队/队列和零库存，初始资源由之后的资源 tick 逐步产出。
func (s *CityService) FoundSettlement(ctx context.Context, req FoundSettlementReq) (*domain.City, error) {
	if req.Name == "" {
		return nil, errx.ErrReqParamERR.WithData("field", "name")
	}
	if _, err := s.worlds.WorldByID(ctx, req.WorldID); err != nil {
		return nil, ErrUnavailable.WithCause(err).WithData("world_id", string(req.WorldID))
	}
	id, err := s.nextID()
	if err != nil {
		return nil, ErrInternalServer.WithCause(err)
	}
	c := &domain.City{
		ID:        domain.CityID(strconv.FormatInt(id, 10)),
		PlayerID:  req.PlayerID,
		Name:      req.Name,
		WorldID:   req.WorldID,
		SectorID:  req.SectorID,
		X:         req.X,
		Y:         req.Y,
		FactionID: req.FactionID,
		Contents:  domain.NewCityContents(),
	}
	if err := s.repo.InsertCity(ctx, c); err != nil {
		return nil, ErrUnavailable.WithCause(err).WithData("city_id", string(c.ID))
	}
	s.log.WithContext(ctx).Info("定居点已建立",
		zap.String("city_id", string(c.ID)), zap.String("player_id", req.PlayerID),
		zap.String("world_id", string(req.WorldID)), zap.String("sector_id", string(req.SectorID)))
	return c, nil
}

// GetCity 读取单个城市（只读，不走锁）。
func (s *CityService) GetCity(ctx context.Context, id domain.CityID) (*domain.City, error) {
	c, err := s.repo.GetCity(ctx, id)
	if err != nil {
		return nil, wrapCityLoadErr(err, id)
	}
	return c, nil
}
