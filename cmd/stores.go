package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"orderdesk/internal/adapters/out/memory"
	"orderdesk/internal/adapters/out/mongo/orderstore"
	"orderdesk/internal/adapters/out/postgres/orderrepo"
	"orderdesk/internal/core/ports"
	"orderdesk/internal/pkg/clock"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var ErrUnknownStoreDriver = errors.New("unknown store driver")

// openOrderStore connects the store selected by STORE_DRIVER. The returned function
// releases its connections.
func openOrderStore(ctx context.Context, cfg Config, clk clock.Clock, logger *slog.Logger) (ports.OrderStore, func(), error) {
	switch cfg.StoreDriver {
	case StoreDriverMemory:
		return memory.NewOrderStore(memory.WithClock(clk)), func() {}, nil

	case StoreDriverPostgres:
		dsn := cfg.PostgresDSN()
		db, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{})
		if err != nil {
			return nil, nil, fmt.Errorf("connect postgres: %w", err)
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, nil, err
		}
		if err = orderrepo.Migrate(ctx, db); err != nil {
			_ = sqlDB.Close()
			return nil, nil, fmt.Errorf("migrate postgres: %w", err)
		}
		return orderrepo.NewGormOrderStore(db, dsn, logger), func() { _ = sqlDB.Close() }, nil

	case StoreDriverMongo:
		client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
		if err != nil {
			return nil, nil, fmt.Errorf("connect mongo: %w", err)
		}
		closeFn := func() { _ = client.Disconnect(context.Background()) }
		if err = client.Ping(ctx, readpref.Primary()); err != nil {
			closeFn()
			return nil, nil, fmt.Errorf("ping mongo: %w", err)
		}
		store := orderstore.NewMongoOrderStore(client, cfg.MongoDatabase, clk, logger)
		if err = store.EnsureIndexes(ctx); err != nil {
			closeFn()
			return nil, nil, fmt.Errorf("mongo indexes: %w", err)
		}
		return store, closeFn, nil
	}
	return nil, nil, fmt.Errorf("%w %q", ErrUnknownStoreDriver, cfg.StoreDriver)
}
