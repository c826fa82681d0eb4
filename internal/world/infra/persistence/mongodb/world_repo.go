package mongodb

import (
	"context"
	"errors"

	"StrategyGame/internal/world/domain"
	"StrategyGame/internal/world/infra/persistence/model"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const defaultWorldCollectionName = "world"

var ErrWorldNotFound = errors.New("world not found")

type WorldRepo struct {
	coll *mongo.Collection
}

func NewWorldRepo(db *mongo.Database) *WorldRepo {
	if db == nil {
		return &WorldRepo{}
	}
	return &WorldRepo{coll: db.Collection(defaultWorldCollectionName)}
}

func (r *WorldRepo) WorldByID(ctx context.Context, id domain.WorldID) (*domain.World, error) {
	if r == nil || r.coll == nil {
		return nil, errors.New("mongodb world collection is nil")
	}

	var doc model.WorldDoc
	err := r.coll.FindOne(ctx, bson.M{"_id": string(id)}).Decode(&doc)
	if err == nil {
		return model.DocToWorld(doc), nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrWorldNotFound
	}
	return nil, err
}

func (r *WorldRepo) ListWorlds(ctx context.Context) ([]domain.World, error) {
	if r == nil || r.coll == nil {
		return nil, errors.New("mongodb world collection is nil")
	}

	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var out []domain.World
	for cursor.Next(ctx) {
		var doc model.WorldDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, *model.DocToWorld(doc))
	}
	return out, cursor.Err()
}

// SaveWorld 给管理端/本地初始化用，按 _id 覆盖写。
func (r *WorldRepo) SaveWorld(ctx context.Context, w domain.World) error {
	if r == nil || r.coll == nil {
		return errors.New("mongodb world collection is nil")
	}

	doc := model.WorldToDoc(w)
	_, err := r.coll.ReplaceOne(ctx,
		bson.M{"_id": doc.ID},
		doc,
		options.Replace().SetUpsert(true),
	)
	return err
}
