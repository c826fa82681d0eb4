package app

import (
	"context"
	"errors"

	"StrategyGame/internal/battle/domain"
	catalog "StrategyGame/internal/catalog/domain"
	cityapp "StrategyGame/internal/city/app"
	citydomain "StrategyGame/internal/city/domain"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BattleService 负责进攻部队的出发与到达结算。
// 结算在防守方城市的租约锁内进行：战斗读到的守军一定是当前落盘状态，
// 写回幸存者期间也不会被资源 tick 或玩家操作交叉修改。
type BattleService struct {
	forces  ForceRepo
	cities  cityapp.CityRepo
	catalog cityapp.Catalog
	locker  *cityapp.CityLocker
	clock   Clock
	newID   func() string
	log     Logger
}

func NewBattleService(forces ForceRepo, cities cityapp.CityRepo, cat cityapp.Catalog, locker *cityapp.CityLocker, clock Clock, log Logger) *BattleService {
	return &BattleService{
		forces:  forces,
		cities:  cities,
		catalog: cat,
		locker:  locker,
		clock:   clock,
		newID:   uuid.NewString,
		log:     log,
	}
}

// LaunchAttack 从 origin 派出 units 进攻 dest。
// 出发在 origin 的锁内扣减驻军；行军耗时按双方城市的棋盘距离和最慢兵种速度折算。
func (s *BattleService) LaunchAttack(ctx context.Context, origin, dest citydomain.CityID, units []citydomain.CityArmy) (*domain.AttackForce, error) {
	if len(units) == 0 {
		return nil, cityapp.ErrInsufficientResources.WithData("reason", "出征部队为空")
	}
	destCity, err := s.cities.GetCity(ctx, dest)
	if err != nil {
		return nil, wrapCityErr(err, dest)
	}

	var force *domain.AttackForce
	err = s.locker.WithCityLock(ctx, origin, func(ctx context.Context) error {
		c, err := s.cities.GetCity(ctx, origin)
		if err != nil {
			return wrapCityErr(err, origin)
		}
		slowest := 0
		for _, stack := range units {
			unit, err := s.catalog.UnitByID(ctx, stack.UnitID)
			if err != nil {
				if errors.Is(err, catalog.ErrUnitNotFound) {
					return cityapp.ErrCatalogNotFound.WithData("unit_id", string(stack.UnitID))
				}
				return cityapp.ErrUnavailable.WithCause(err)
			}
			if slowest == 0 || unit.MovementSpeed < slowest {
				slowest = unit.MovementSpeed
			}
			remaining, ok := citydomain.RemoveUnits(c.Contents.Armies, stack.UnitID, stack.Count)
			if !ok {
				return cityapp.ErrInsufficientResources.
					WithData("unit_id", string(stack.UnitID)).WithData("requested", stack.Count)
			}
			c.Contents.Armies = remaining
		}
		now := s.clock()
		force = &domain.AttackForce{
			ID:                domain.ForceID(s.newID()),
			OriginCityID:      origin,
			DestinationCityID: dest,
			Units:             append([]citydomain.CityArmy(nil), units...),
			ArrivesAt:         now.Add(travelTime(c.X, c.Y, destCity.X, destCity.Y, slowest)),
		}
		if err := s.cities.SaveContents(ctx, origin, c.Contents); err != nil {
			return cityapp.ErrUnavailable.WithCause(err).WithData("city_id", string(origin))
		}
		if err := s.forces.Insert(ctx, force); err != nil {
			return cityapp.ErrUnavailable.WithCause(err).WithData("force_id", string(force.ID))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.WithContext(ctx).Info("部队出发",
		zap.String("force_id", string(force.ID)), zap.String("origin", string(origin)),
		zap.String("dest", string(dest)), zap.Time("arrives_at", force.ArrivesAt))
	return force, nil
}

// ResolveArrival 认领并结算一支已到达的部队。
// 部队已被兄弟协程认领时返回 (nil, nil)，调用方静默跳过。
func (s *BattleService) ResolveArrival(ctx context.Context, id domain.ForceID) (*domain.BattleResult, error) {
	force, err := s.forces.Claim(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrForceNotFound) {
			return nil, nil
		}
		return nil, cityapp.ErrUnavailable.WithCause(err).WithData("force_id", string(id))
	}

	var result domain.BattleResult
	err = s.locker.WithCityLock(ctx, force.DestinationCityID, func(ctx context.Context) error {
		c, err := s.cities.GetCity(ctx, force.DestinationCityID)
		if err != nil {
			return wrapCityErr(err, force.DestinationCityID)
		}
		units, err := s.collectUnits(ctx, force.Units, c.Contents.Armies)
		if err != nil {
			return err
		}
		result = domain.Resolve(force.Units, c.Contents.Armies, units, s.clock())
		if result.Winner == domain.WinnerDefender {
			c.Contents.Armies = result.Survivors
		} else {
			// 攻方获胜：守军覆灭，幸存的攻方部队返程（本结算只写守城文档）。
			c.Contents.Armies = nil
		}
		if err := s.cities.SaveContents(ctx, force.DestinationCityID, c.Contents); err != nil {
			return cityapp.ErrUnavailable.WithCause(err).WithData("city_id", string(force.DestinationCityID))
		}
		return nil
	})
	if err != nil {
		s.requeue(ctx, force, err)
		return nil, err
	}
	s.log.WithContext(ctx).Info("战斗结算完成",
		zap.String("force_id", string(force.ID)),
		zap.String("city_id", string(force.DestinationCityID)),
		zap.String("winner", string(result.Winner)), zap.Int("rounds", result.Rounds))
	return &result, nil
}

// requeue 在认领后的结算失败时把部队放回存储，留给下一轮到达扫描重试。
// 目标城市已不存在时不再放回：这类失败不会因重试而恢复。
func (s *BattleService) requeue(ctx context.Context, force *domain.AttackForce, cause error) {
	if errors.Is(cause, cityapp.ErrCityNotFound) {
		s.log.WithContext(ctx).Warn("目标城市不存在，丢弃进攻部队",
			zap.String("force_id", string(force.ID)),
			zap.String("city_id", string(force.DestinationCityID)))
		return
	}
	if err := s.forces.Insert(ctx, force); err != nil {
		s.log.WithContext(ctx).Error("结算失败后部队放回存储失败，进攻就此丢失",
			zap.String("force_id", string(force.ID)), zap.Error(err))
	}
}

// collectUnits 汇总战斗双方涉及的兵种目录项。
func (s *BattleService) collectUnits(ctx context.Context, sides ...[]citydomain.CityArmy) (map[catalog.UnitID]catalog.MilitaryUnit, error) {
	out := make(map[catalog.UnitID]catalog.MilitaryUnit)
	for _, side := range sides {
		for _, stack := range side {
			if _, ok := out[stack.UnitID]; ok {
				continue
			}
			unit, err := s.catalog.UnitByID(ctx, stack.UnitID)
			if err != nil {
				if errors.Is(err, catalog.ErrUnitNotFound) {
					// 目录缺失的兵种由 Resolve 里的过滤丢弃，这里跳过即可。
					continue
				}
				return nil, cityapp.ErrUnavailable.WithCause(err).WithData("unit_id", string(stack.UnitID))
			}
			out[unit.ID] = *unit
		}
	}
	return out, nil
}

func wrapCityErr(err error, id citydomain.CityID) error {
	if errors.Is(err, citydomain.ErrCityNotFound) {
		return cityapp.ErrCityNotFound.WithData("city_id", string(id))
	}
	return cityapp.ErrUnavailable.WithCause(err).WithData("city_id", string(id))
}
