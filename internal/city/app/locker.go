package app

import (
	"context"
	"errors"
	"time"

	"StrategyGame/internal/city/domain"
	"StrategyGame/modules/kit/errx"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// LockOptions 是城市租约锁的调速参数。
type LockOptions struct {
	Lease       time.Duration // 租约时长，持有者卡死后锁最多失效这么久
	MaxAttempts int
	RetryDelay  time.Duration
}

func (o *LockOptions) normalize() {
	if o.Lease <= 0 {
		o.Lease = 10 * time.Second
	}
	if o.MaxAttempts <= 0 {
		o.MaxAttempts = 5
	}
	if o.RetryDelay <= 0 {
		o.RetryDelay = 100 * time.Millisecond
	}
}

// TokenGen 生成租约 token，注入以便测试钉死。
type TokenGen func() string

// CityLocker 把“抢锁-执行-释放”收敛为一个入口。
// 城市是互斥单元：所有修改城市内容的代码路径（玩家请求和后台扫表）都必须经过这里。
type CityLocker struct {
	repo     CityRepo
	clock    Clock
	opts     LockOptions
	newToken TokenGen
	log      Logger
}

func NewCityLocker(repo CityRepo, clock Clock, opts LockOptions, log Logger) *CityLocker {
	opts.normalize()
	return &CityLocker{
		repo:     repo,
		clock:    clock,
		opts:     opts,
		newToken: uuid.NewString,
		log:      log,
	}
}

// WithCityLock 持有 id 的租约锁执行 fn。
// 抢不到锁时退避重试，重试耗尽返回 ErrLockTimeout；fn 的错误原样向上传。
// 释放只清除本次 token：若租约已过期且被他人抢占，释放不影响新持有者。
func (l *CityLocker) WithCityLock(ctx context.Context, id domain.CityID, fn func(ctx context.Context) error) error {
	token := l.newToken()
	for attempt := 1; attempt <= l.opts.MaxAttempts; attempt++ {
		now := l.clock()
		ok, err := l.repo.TryAcquireLock(ctx, id, token, now, now.Add(l.opts.Lease))
		if err != nil {
			// 城市不存在时重试只会白白耗尽次数，直接以业务错误返回。
			if errors.Is(err, domain.ErrCityNotFound) {
				return ErrCityNotFound.WithData("city_id", string(id))
			}
			return ErrUnavailable.WithCause(err).WithData("city_id", string(id))
		}
		if ok {
			fnErr := fn(ctx)
			if rerr := l.repo.ReleaseLock(ctx, id, token); rerr != nil {
				// 释放失败只记录：租约到期后锁自动失效，不会永久卡死。
				l.log.WithContext(ctx).Warn("城市锁释放失败",
					zap.String("city_id", string(id)), zap.Error(rerr))
			}
			return fnErr
		}
		if attempt == l.opts.MaxAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return errx.ErrTimeout.WithCause(ctx.Err()).WithData("city_id", string(id))
		case <-time.After(l.opts.RetryDelay):
		}
	}
	return ErrLockTimeout.WithData("city_id", string(id))
}
