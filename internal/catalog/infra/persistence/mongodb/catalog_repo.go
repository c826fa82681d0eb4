package mongodb

import (
	"context"
	"errors"

	"StrategyGame/internal/catalog/domain"
	"StrategyGame/internal/catalog/infra/persistence/model"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

const (
	unitCollectionName     = "military_unit"
	buildingCollectionName = "building"
	researchCollectionName = "research"
	resourceCollectionName = "resource"
)

// CatalogRepo 读取兵种/建筑/研究/资源目录。目录由管理端维护，模拟核心只读。
type CatalogRepo struct {
	units     *mongo.Collection
	buildings *mongo.Collection
	research  *mongo.Collection
	resources *mongo.Collection
}

func NewCatalogRepo(db *mongo.Database) *CatalogRepo {
	if db == nil {
		return &CatalogRepo{}
	}
	return &CatalogRepo{
		units:     db.Collection(unitCollectionName),
		buildings: db.Collection(buildingCollectionName),
		research:  db.Collection(researchCollectionName),
		resources: db.Collection(resourceCollectionName),
	}
}

func (r *CatalogRepo) UnitByID(ctx context.Context, id domain.UnitID) (*domain.MilitaryUnit, error) {
	if r == nil || r.units == nil {
		return nil, errors.New("mongodb unit collection is nil")
	}

	var doc model.UnitDoc
	err := r.units.FindOne(ctx, bson.M{"_id": string(id)}).Decode(&doc)
	if err == nil {
		return model.DocToUnit(doc), nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrUnitNotFound
	}
	return nil, err
}

func (r *CatalogRepo) BuildingByID(ctx context.Context, id domain.BuildingID) (*domain.Building, error) {
	if r == nil || r.buildings == nil {
		return nil, errors.New("mongodb building collection is nil")
	}

	var doc model.BuildingDoc
	err := r.buildings.FindOne(ctx, bson.M{"_id": string(id)}).Decode(&doc)
	if err == nil {
		return model.DocToBuilding(doc), nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrBuildingNotFound
	}
	return nil, err
}

func (r *CatalogRepo) ResearchByID(ctx context.Context, id domain.ResearchID) (*domain.Research, error) {
	if r == nil || r.research == nil {
		return nil, errors.New("mongodb research collection is nil")
	}

	var doc model.ResearchDoc
	err := r.research.FindOne(ctx, bson.M{"_id": string(id)}).Decode(&doc)
	if err == nil {
		return model.DocToResearch(doc), nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrResearchNotFound
	}
	return nil, err
}

// ResourceBuildings 返回所有产出资源的建筑目录项，给资源产出循环用。
func (r *CatalogRepo) ResourceBuildings(ctx context.Context) ([]domain.Building, error) {
	if r == nil || r.buildings == nil {
		return nil, errors.New("mongodb building collection is nil")
	}

	cursor, err := r.buildings.Find(ctx, bson.M{"type": int8(domain.BuildingTypeResource)})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var out []domain.Building
	for cursor.Next(ctx) {
		var doc model.BuildingDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, *model.DocToBuilding(doc))
	}
	return out, cursor.Err()
}
