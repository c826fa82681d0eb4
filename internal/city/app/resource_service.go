package app

import (
	"context"
	"errors"

	catalog "StrategyGame/internal/catalog/domain"
	"StrategyGame/internal/city/domain"

	"go.uber.org/zap"
)

// ValidationResult 是余额校验的结果。校验是纯函数，不改城市状态。
type ValidationResult struct {
	HasEnough bool
	// Missing 按资源列出缺口（需要量 - 持有量），只包含不足的资源。
	Missing map[catalog.ResourceID]int
}

// Validate 校验 c 的库存是否覆盖 required。缺失的资源按持有量 0 处理。
func Validate(c *domain.City, required map[catalog.ResourceID]int) ValidationResult {
	res := ValidationResult{HasEnough: true, Missing: make(map[catalog.ResourceID]int)}
	for id, need := range required {
		if need <= 0 {
			continue
		}
		have := c.Contents.ResourceStorage[id]
		if have < need {
			res.HasEnough = false
			res.Missing[id] = need - have
		}
	}
	return res
}

// ResourceLedger 是城市资源账本：所有出入账都在城市租约锁内完成，
// 锁内重读城市文档再校验，保证并发下不会双花。
type ResourceLedger struct {
	repo   CityRepo
	locker *CityLocker
	log    Logger
}

func NewResourceLedger(repo CityRepo, locker *CityLocker, log Logger) *ResourceLedger {
	return &ResourceLedger{repo: repo, locker: locker, log: log}
}

// DebitWithLock 在锁内做“校验-扣减-落盘”。
// 余额不足时不做任何修改，返回携带缺口的 ValidationResult（错误为 nil，由调用方决定语义）。
func (l *ResourceLedger) DebitWithLock(ctx context.Context, cityID domain.CityID, amounts map[catalog.ResourceID]int) (ValidationResult, error) {
	var result ValidationResult
	err := l.locker.WithCityLock(ctx, cityID, func(ctx context.Context) error {
		c, err := l.repo.GetCity(ctx, cityID)
		if err != nil {
			return wrapCityLoadErr(err, cityID)
		}
		result = Validate(c, amounts)
		if !result.HasEnough {
			return nil
		}
		c.Contents.DebitResources(amounts)
		if err := l.repo.SaveContents(ctx, cityID, c.Contents); err != nil {
			return ErrUnavailable.WithCause(err).WithData("city_id", string(cityID))
		}
		return nil
	})
	if err != nil {
		return ValidationResult{}, err
	}
	if result.HasEnough {
		l.log.WithContext(ctx).Debug("资源出账完成", zap.String("city_id", string(cityID)))
	}
	return result, nil
}

// CreditWithLock 在锁内入账。入账不会失败（不存在的资源直接插入）。
func (l *ResourceLedger) CreditWithLock(ctx context.Context, cityID domain.CityID, amounts map[catalog.ResourceID]int) error {
	return l.locker.WithCityLock(ctx, cityID, func(ctx context.Context) error {
		c, err := l.repo.GetCity(ctx, cityID)
		if err != nil {
			return wrapCityLoadErr(err, cityID)
		}
		c.Contents.CreditResources(amounts)
		if err := l.repo.SaveContents(ctx, cityID, c.Contents); err != nil {
			return ErrUnavailable.WithCause(err).WithData("city_id", string(cityID))
		}
		return nil
	})
}

// wrapCityLoadErr 区分“城市不存在”（业务错误）和“存储挂了”（技术错误）。
func wrapCityLoadErr(err error, cityID domain.CityID) error {
	if errors.Is(err, domain.ErrCityNotFound) {
		return ErrCityNotFound.WithData("city_id", string(cityID))
	}
	return ErrUnavailable.WithCause(err).WithData("city_id", string(cityID))
}
