package memory

import (
	"context"
	"errors"

	"StrategyGame/internal/world/domain"
)

var ErrWorldNotFound = errors.New("world not found")

// WorldRepo 是世界存储的内存实现，测试里直接塞世界。
type WorldRepo struct {
	Worlds map[domain.WorldID]domain.World
}

func NewWorldRepo() *WorldRepo {
	return &WorldRepo{Worlds: make(map[domain.WorldID]domain.World)}
}

func (r *WorldRepo) WorldByID(ctx context.Context, id domain.WorldID) (*domain.World, error) {
	_ = ctx
	w, ok := r.Worlds[id]
	if !ok {
		return nil, ErrWorldNotFound
	}
	return &w, nil
}

func (r *WorldRepo) ListWorlds(ctx context.Context) ([]domain.World, error) {
	_ = ctx
	out := make([]domain.World, 0, len(r.Worlds))
	for _, w := range r.Worlds {
		out = append(out, w)
	}
	return out, nil
}
