package sim

import (
	"context"
	"sync"
	"time"

	battleapp "StrategyGame/internal/battle/app"

	"go.uber.org/zap"
)

// BattleSweeper 是战斗结算循环：每轮枚举已到达的部队，逐支扇出结算。
// 认领（取出并删除）由存储层原子完成，兄弟协程抢到同一支部队时静默跳过。
type BattleSweeper struct {
	forces   DueForces
	battles  *battleapp.BattleService
	interval time.Duration
	clock    Clock
	log      Logger
}

func NewBattleSweeper(forces DueForces, battles *battleapp.BattleService, interval time.Duration, clock Clock, log Logger) *BattleSweeper {
	return &BattleSweeper{
		forces:   forces,
		battles:  battles,
		interval: interval,
		clock:    clock,
		log:      log,
	}
}

// Run 阻塞运行，ctx 取消后在当轮收尾处返回。
func (s *BattleSweeper) Run(ctx context.Context) {
	runEvery(ctx, "battle_sweep", s.interval, s.log, s.cycle)
}

func (s *BattleSweeper) cycle(ctx context.Context) {
	ids, err := s.forces.DueForceIDs(ctx, s.clock())
	if err != nil {
		s.log.WithContext(ctx).Error("到达部队列表读取失败，本轮结算跳过", zap.Error(err))
		return
	}

	var wg sync.WaitGroup
	for _, id := range ids {
		if ctx.Err() != nil {
			break
		}
		id := id
		safeGo(&wg, s.log, string(id), func() {
			if _, err := s.battles.ResolveArrival(ctx, id); err != nil {
				s.log.WithContext(ctx).Warn("战斗结算失败，留待下一轮",
					zap.String("force_id", string(id)), zap.Error(err))
			}
		})
	}
	wg.Wait()
}
