package memory

import (
	"context"
	"sync"
	"time"

	"StrategyGame/internal/battle/domain"
)

// ForceRepo 是进攻部队存储的内存实现。Claim 在互斥锁内取出并删除，
// 和 mongodb 的 FindOneAndDelete 语义一致。
type ForceRepo struct {
	mu     sync.Mutex
	forces map[domain.ForceID]*domain.AttackForce
}

func NewForceRepo() *ForceRepo {
	return &ForceRepo{forces: make(map[domain.ForceID]*domain.AttackForce)}
}

func (r *ForceRepo) Insert(ctx context.Context, f *domain.AttackForce) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *f
	r.forces[f.ID] = &stored
	return nil
}

func (r *ForceRepo) DueForceIDs(ctx context.Context, now time.Time) ([]domain.ForceID, error) {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []domain.ForceID
	for id, f := range r.forces {
		if f.Arrived(now) {
			out = append(out, id)
		}
	}
	return out, nil
}

func (r *ForceRepo) Claim(ctx context.Context, id domain.ForceID) (*domain.AttackForce, error) {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()

	f, ok := r.forces[id]
	if !ok {
		return nil, domain.ErrForceNotFound
	}
	delete(r.forces, id)
	return f, nil
}
