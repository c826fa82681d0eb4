package memory

import (
	"context"

	"StrategyGame/internal/catalog/domain"
)

// CatalogRepo 是目录的内存实现，测试里直接塞条目。
type CatalogRepo struct {
	Units     map[domain.UnitID]domain.MilitaryUnit
	Buildings map[domain.BuildingID]domain.Building
	Research  map[domain.ResearchID]domain.Research
}

func NewCatalogRepo() *CatalogRepo {
	return &CatalogRepo{
		Units:     make(map[domain.UnitID]domain.MilitaryUnit),
		Buildings: make(map[domain.BuildingID]domain.Building),
		Research:  make(map[domain.ResearchID]domain.Research),
	}
}

func (r *CatalogRepo) UnitByID(ctx context.Context, id domain.UnitID) (*domain.MilitaryUnit, error) {
	_ = ctx
	u, ok := r.Units[id]
	if !ok {
		return nil, domain.ErrUnitNotFound
	}
	return &u, nil
}

func (r *CatalogRepo) BuildingByID(ctx context.Context, id domain.BuildingID) (*domain.Building, error) {
	_ = ctx
	b, ok := r.Buildings[id]
	if !ok {
		return nil, domain.ErrBuildingNotFound
	}
	return &b, nil
}

func (r *CatalogRepo) ResearchByID(ctx context.Context, id domain.ResearchID) (*domain.Research, error) {
	_ = ctx
	res, ok := r.Research[id]
	if !ok {
		return nil, domain.ErrResearchNotFound
	}
	return &res, nil
}

func (r *CatalogRepo) ResourceBuildings(ctx context.Context) ([]domain.Building, error) {
	_ = ctx
	var out []domain.Building
	for _, b := range r.Buildings {
		if b.Type == domain.BuildingTypeResource {
			out = append(out, b)
		}
	}
	return out, nil
}
