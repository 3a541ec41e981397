package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"go-rentify/internal/model"
)

const tokenCollection = "tokenMetaData"

// MongoTokenRepository stores session token metadata in a MongoDB collection.
// It satisfies the same contract as TokenRepository.
type MongoTokenRepository struct {
	coll    *mongo.Collection
	timeout time.Duration
}

func NewMongoTokenRepository(db *mongo.Database, timeout time.Duration) *MongoTokenRepository {
	return &MongoTokenRepository{coll: db.Collection(tokenCollection), timeout: timeout}
}

// EnsureIndexes creates the lookup indexes on (userId, createdAt) and tokenId.
func (r *MongoTokenRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "tokenId", Value: 1}}},
	})
	if err != nil {
		return storeError("create token indexes", err)
	}
	return nil
}

func (r *MongoTokenRepository) FindLatestByUser(ctx context.Context, userID string) (model.TokenRecord, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	opts := options.FindOne().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})

	var rec model.TokenRecord
	err := r.coll.FindOne(ctx, bson.D{{Key: "userId", Value: userID}}, opts).Decode(&rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.TokenRecord{}, model.ErrTokenNotFound
	}
	if err != nil {
		return model.TokenRecord{}, storeError("find latest token", err)
	}
	return rec, nil
}

func (r *MongoTokenRepository) Insert(ctx context.Context, rec model.TokenRecord) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, rec); err != nil {
		return storeError("insert token", err)
	}
	return nil
}

func (r *MongoTokenRepository) DeleteByUser(ctx context.Context, userID string) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	if _, err := r.coll.DeleteMany(ctx, bson.D{{Key: "userId", Value: userID}}); err != nil {
		return storeError("delete tokens by user", err)
	}
	return nil
}

func (r *MongoTokenRepository) DeleteByTokenID(ctx context.Context, tokenID string) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	if _, err := r.coll.DeleteMany(ctx, bson.D{{Key: "tokenId", Value: tokenID}}); err != nil {
		return storeError("delete tokens by id", err)
	}
	return nil
}

func (r *MongoTokenRepository) PurgeExpired(ctx context.Context) (int64, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	res, err := r.coll.DeleteMany(ctx, bson.D{{Key: "expiresAt", Value: bson.D{{Key: "$lte", Value: time.Now().UTC()}}}})
	if err != nil {
		return 0, storeError("purge expired tokens", err)
	}
	return res.DeletedCount, nil
}
