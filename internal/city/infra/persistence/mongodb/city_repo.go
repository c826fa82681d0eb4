package mongodb

import (
	"context"
	"errors"
	"time"

	"StrategyGame/internal/city/domain"
	"StrategyGame/internal/city/infra/persistence/model"
	world "StrategyGame/internal/world/domain"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const defaultCityCollectionName = "city"

type CityRepo struct {
	coll *mongo.Collection
}

func NewCityRepo(db *mongo.Database) *CityRepo {
	if db == nil {
		return &CityRepo{}
	}
	return &CityRepo{coll: db.Collection(defaultCityCollectionName)}
}

func (r *CityRepo) GetCity(ctx context.Context, id domain.CityID) (*domain.City, error) {
	if r == nil || r.coll == nil {
		return nil, domain.ErrSystemUnavailable
	}

	var doc model.CityDoc
	err := r.coll.FindOne(ctx, bson.M{"_id": string(id)}).Decode(&doc)
	if err == nil {
		return model.DocToCity(doc), nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrCityNotFound
	}
	return nil, err
}

// SaveContents 只整体替换 contents 子文档，不碰锁字段和基础信息。
func (r *CityRepo) SaveContents(ctx context.Context, id domain.CityID, contents domain.CityContents) error {
	if r == nil || r.coll == nil {
		return domain.ErrSystemUnavailable
	}

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": string(id)},
		bson.M{"$set": bson.M{"contents": model.ContentsToDoc(contents)}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrCityNotFound
	}
	return nil
}

func (r *CityRepo) InsertCity(ctx context.Context, c *domain.City) error {
	if r == nil || r.coll == nil {
		return domain.ErrSystemUnavailable
	}
	_, err := r.coll.InsertOne(ctx, model.CityToDoc(c))
	return err
}

// TryAcquireLock 用单文档条件更新抢占租约锁：
// 锁字段为空或租约已过期（lock_expiration < now）时，原子写入新 token 和到期时间。
// MatchedCount == 0 可能是锁被持有，也可能是城市不存在，需要补查一次区分：
// 前者返回 (false, nil) 交给调用方重试，后者返回 ErrCityNotFound，重试没有意义。
func (r *CityRepo) TryAcquireLock(ctx context.Context, id domain.CityID, token string, now, expiresAt time.Time) (bool, error) {
	if r == nil || r.coll == nil {
		return false, domain.ErrSystemUnavailable
	}

	filter := bson.M{
		"_id": string(id),
		"$or": bson.A{
			bson.M{"lock_token": bson.M{"$exists": false}},
			bson.M{"lock_token": ""},
			bson.M{"lock_expiration": bson.M{"$lt": now}},
		},
	}
	update := bson.M{"$set": bson.M{
		"lock_token":      token,
		"lock_expiration": expiresAt,
	}}
	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, err
	}
	if res.MatchedCount > 0 {
		return true, nil
	}
	opts := options.FindOne().SetProjection(bson.M{"_id": 1})
	err = r.coll.FindOne(ctx, bson.M{"_id": string(id)}, opts).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, domain.ErrCityNotFound
	}
	if err != nil {
		return false, err
	}
	return false, nil
}

// ReleaseLock 只清除本次持有的 token；租约过期后被他人抢占时是空操作。
func (r *CityRepo) ReleaseLock(ctx context.Context, id domain.CityID, token string) error {
	if r == nil || r.coll == nil {
		return domain.ErrSystemUnavailable
	}

	_, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": string(id), "lock_token": token},
		bson.M{"$unset": bson.M{"lock_token": "", "lock_expiration": ""}},
	)
	return err
}

func (r *CityRepo) ListCitiesByWorld(ctx context.Context, id world.WorldID) ([]domain.City, error) {
	if r == nil || r.coll == nil {
		return nil, domain.ErrSystemUnavailable
	}

	cursor, err := r.coll.Find(ctx, bson.M{"world_id": string(id)})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var out []domain.City
	for cursor.Next(ctx) {
		var doc model.CityDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, *model.DocToCity(doc))
	}
	return out, cursor.Err()
}

func (r *CityRepo) DistinctSectors(ctx context.Context) ([]world.SectorID, error) {
	if r == nil || r.coll == nil {
		return nil, domain.ErrSystemUnavailable
	}

	res := r.coll.Distinct(ctx, "sector_id", bson.M{})
	if err := res.Err(); err != nil {
		return nil, err
	}
	var raw []string
	if err := res.Decode(&raw); err != nil {
		return nil, err
	}
	out := make([]world.SectorID, 0, len(raw))
	for _, s := range raw {
		out = append(out, world.SectorID(s))
	}
	return out, nil
}

func (r *CityRepo) ListCityIDsBySector(ctx context.Context, id world.SectorID, limit int) ([]domain.CityID, error) {
	if r == nil || r.coll == nil {
		return nil, domain.ErrSystemUnavailable
	}

	opts := options.Find().SetProjection(bson.M{"_id": 1})
	if limit > 0 {
		opts = opts.SetLimit(int64(limit))
	}
	cursor, err := r.coll.Find(ctx, bson.M{"sector_id": string(id)}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var out []domain.CityID
	for cursor.Next(ctx) {
		var doc struct {
			ID string `bson:"_id"`
		}
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, domain.CityID(doc.ID))
	}
	return out, cursor.Err()
}
