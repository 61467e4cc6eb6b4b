package mongodb

import (
	"context"
	"fmt"

	"github.com/ogurasousui/onboarding-tracker/internal/platform/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// Connect はドキュメントストアへ接続し、疎通確認を行います。
func Connect(ctx context.Context, cfg config.MongoConfig, log *zap.Logger) (*mongo.Client, error) {
	if log == nil {
		log = zap.NewNop()
	}

	opts := options.Client().
		ApplyURI(cfg.URI).
		SetAppName("onboarding-tracker").
		SetConnectTimeout(cfg.Timeout).
		SetServerSelectionTimeout(cfg.Timeout)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("mongodb: connect: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongodb: ping: %w", err)
	}

	log.Info("mongodb client ready",
		zap.String("database", cfg.Database),
		zap.String("collection", cfg.Collection),
	)

	return client, nil
}

// Collection は設定に従ってコレクションを返します。
func Collection(client *mongo.Client, cfg config.MongoConfig) *mongo.Collection {
	return client.Database(cfg.Database).Collection(cfg.Collection)
}
