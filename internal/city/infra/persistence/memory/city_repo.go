package memory

import (
	"context"
	"sync"
	"time"

	"StrategyGame/internal/city/domain"
	world "StrategyGame/internal/world/domain"
)

// CityRepo 是城市存储的内存实现，给测试和本地运行用。
// 锁语义和 mongodb 实现一致：同一把互斥锁下做条件判断加写入，对外表现为原子条件更新。
type CityRepo struct {
	mu     sync.Mutex
	cities map[domain.CityID]*domain.City
}

func NewCityRepo() *CityRepo {
	return &CityRepo{cities: make(map[domain.CityID]*domain.City)}
}

func (r *CityRepo) GetCity(ctx context.Context, id domain.CityID) (*domain.City, error) {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.cities[id]
	if !ok {
		return nil, domain.ErrCityNotFound
	}
	out := *c
	out.Contents = c.Contents.Clone()
	return &out, nil
}

func (r *CityRepo) SaveContents(ctx context.Context, id domain.CityID, contents domain.CityContents) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.cities[id]
	if !ok {
		return domain.ErrCityNotFound
	}
	c.Contents = contents.Clone()
	return nil
}

func (r *CityRepo) InsertCity(ctx context.Context, c *domain.City) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *c
	stored.Contents = c.Contents.Clone()
	r.cities[c.ID] = &stored
	return nil
}

func (r *CityRepo) TryAcquireLock(ctx context.Context, id domain.CityID, token string, now, expiresAt time.Time) (bool, error) {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.cities[id]
	if !ok {
		return false, domain.ErrCityNotFound
	}
	if c.LockToken != "" && !c.LockExpiration.Before(now) {
		return false, nil
	}
	c.LockToken = token
	c.LockExpiration = expiresAt
	return true, nil
}

func (r *CityRepo) ReleaseLock(ctx context.Context, id domain.CityID, token string) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.cities[id]
	if !ok {
		return nil
	}
	if c.LockToken != token {
		return nil
	}
	c.LockToken = ""
	c.LockExpiration = time.Time{}
	return nil
}

func (r *CityRepo) ListCitiesByWorld(ctx context.Context, id world.WorldID) ([]domain.City, error) {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []domain.City
	for _, c := range r.cities {
		if c.WorldID != id {
			continue
		}
		snap := *c
		snap.Contents = c.Contents.Clone()
		out = append(out, snap)
	}
	return out, nil
}

func (r *CityRepo) DistinctSectors(ctx context.Context) ([]world.SectorID, error) {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()

	seen := make(map[world.SectorID]bool)
	var out []world.SectorID
	for _, c := range r.cities {
		if seen[c.SectorID] {
			continue
		}
		seen[c.SectorID] = true
		out = append(out, c.SectorID)
	}
	return out, nil
}

func (r *CityRepo) ListCityIDsBySector(ctx context.Context, id world.SectorID, limit int) ([]domain.CityID, error) {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []domain.CityID
	for _, c := range r.cities {
		if c.SectorID != id {
			continue
		}
		out = append(out, c.ID)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}
