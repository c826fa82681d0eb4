package mongodb

import (
	"context"
	"errors"
	"time"

	"StrategyGame/internal/battle/domain"
	"StrategyGame/internal/battle/infra/persistence/model"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const defaultForceCollectionName = "attack_force"

type ForceRepo struct {
	coll *mongo.Collection
}

func NewForceRepo(db *mongo.Database) *ForceRepo {
	if db == nil {
		return &ForceRepo{}
	}
	return &ForceRepo{coll: db.Collection(defaultForceCollectionName)}
}

func (r *ForceRepo) Insert(ctx context.Context, f *domain.AttackForce) error {
	if r == nil || r.coll == nil {
		return errors.New("mongodb attack force collection is nil")
	}
	_, err := r.coll.InsertOne(ctx, model.ForceToDoc(f))
	return err
}

func (r *ForceRepo) DueForceIDs(ctx context.Context, now time.Time) ([]domain.ForceID, error) {
	if r == nil || r.coll == nil {
		return nil, errors.New("mongodb attack force collection is nil")
	}

	opts := options.Find().SetProjection(bson.M{"_id": 1})
	cursor, err := r.coll.Find(ctx, bson.M{"arrives_at": bson.M{"$lte": now}}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var out []domain.ForceID
	for cursor.Next(ctx) {
		var doc struct {
			ID string `bson:"_id"`
		}
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, domain.ForceID(doc.ID))
	}
	return out, cursor.Err()
}

// Claim 原子地取出并删除一支部队。并发扫表下同一支部队只会被认领一次，
// 落败方拿到 ErrForceNotFound。
func (r *ForceRepo) Claim(ctx context.Context, id domain.ForceID) (*domain.AttackForce, error) {
	if r == nil || r.coll == nil {
		return nil, errors.New("mongodb attack force collection is nil")
	}

	var doc model.AttackForceDoc
	err := r.coll.FindOneAndDelete(ctx, bson.M{"_id": string(id)}).Decode(&doc)
	if err == nil {
		return model.DocToForce(doc), nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrForceNotFound
	}
	return nil, err
}
