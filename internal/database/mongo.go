package database

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

// Mongo owns the MongoDB client used when the token store runs on MongoDB.
type Mongo struct {
	Client   *mongo.Client
	Database *mongo.Database
}

func NewMongo(ctx context.Context, uri string, database string) (*Mongo, error) {
	opts := options.Client().
		ApplyURI(uri).
		SetConnectTimeout(10 * time.Second).
		SetServerAPIOptions(options.ServerAPI(options.ServerAPIVersion1))

	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	slog.Info("mongo connected", "database", database)
	return &Mongo{Client: client, Database: client.Database(database)}, nil
}

func (m *Mongo) Close(ctx context.Context) {
	if m.Client == nil {
		return
	}
	if err := m.Client.Disconnect(ctx); err != nil {
		slog.Warn("mongo disconnect failed", "error", err)
	}
}

func (m *Mongo) Health(ctx context.Context) error {
	return m.Client.Ping(ctx, readpref.Primary())
}
