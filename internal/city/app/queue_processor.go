package app

import (
	"context"

	"StrategyGame/internal/city/domain"
)

// QueueProcessor 是队列扫表的单城入口：在城市租约锁内读城、结算到期条目、落盘。
// 和玩家请求共用同一把锁，扫表和下单不会交叉写同一份 Contents。
type QueueProcessor struct {
	repo    CityRepo
	locker  *CityLocker
	applier *QueueApplier
	clock   Clock
	log     Logger
}

func NewQueueProcessor(repo CityRepo, locker *CityLocker, applier *QueueApplier, clock Clock, log Logger) *QueueProcessor {
	return &QueueProcessor{repo: repo, locker: locker, applier: applier, clock: clock, log: log}
}

// ProcessCity 结算 id 的所有到期条目，返回是否有条目被结算。
// 抢不到锁返回 ErrLockTimeout，本轮跳过，下一轮扫表自然重试。
func (p *QueueProcessor) ProcessCity(ctx context.Context, id domain.CityID) (bool, error) {
	processed := false
	err := p.locker.WithCityLock(ctx, id, func(ctx context.Context) error {
		c, err := p.repo.GetCity(ctx, id)
		if err != nil {
			return wrapCityLoadErr(err, id)
		}
		if !p.applier.Apply(ctx, c, p.clock()) {
			return nil
		}
		c.Contents.Armies = domain.CompactArmy(c.Contents.Armies)
		if err := p.repo.SaveContents(ctx, id, c.Contents); err != nil {
			return ErrUnavailable.WithCause(err).WithData("city_id", string(id))
		}
		processed = true
		return nil
	})
	return processed, err
}
