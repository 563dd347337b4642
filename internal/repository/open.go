package repository

import (
	"context"
	"fmt"

	"github.com/strixcodecipher/relicsneb/internal/config"
	"github.com/strixcodecipher/relicsneb/internal/logger"
	"github.com/strixcodecipher/relicsneb/internal/repository/db"
)

// Open connects the store selected by cfg.Store.Driver.
func Open(ctx context.Context, cfg *config.Config, log *logger.Logger) (*Repository, error) {
	fields := []any{"driver", cfg.Store.Driver, "collection", cfg.Store.Collection}

	var (
		repo *Repository
		err  error
	)
	switch cfg.Store.Driver {
	case config.DriverMongo:
		fields = append(fields, "database", cfg.Mongo.Database)
		repo, err = openMongo(ctx, cfg)
	case config.DriverSQLite:
		fields = append(fields, "path", cfg.SQLite.Path)
		repo, err = openSQLite(cfg)
	case config.DriverDynamoDB:
		fields = append(fields, "table", cfg.Dynamo.Table, "region", cfg.Dynamo.Region)
		repo, err = openDynamo(ctx, cfg)
	case config.DriverMemory:
		repo = NewRepository(NewStatusMemory(), nil)
	default:
		return nil, fmt.Errorf("%w %q", config.ErrUnknownDriver, cfg.Store.Driver)
	}
	if err != nil {
		return nil, err
	}

	if log != nil {
		log.Infow("store_opened", fields...)
	}
	return repo, nil
}

func openMongo(ctx context.Context, cfg *config.Config) (*Repository, error) {
	client, err := db.ConnectMongo(ctx, cfg.Mongo.URL)
	if err != nil {
		return nil, err
	}
	coll := client.Database(cfg.Mongo.Database).Collection(cfg.Store.Collection)

	store := NewStatusMongo(coll)
	if err := store.EnsureIndexes(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return NewRepository(store, client.Disconnect), nil
}

func openSQLite(cfg *config.Config) (*Repository, error) {
	conn, err := db.InitDB(cfg.SQLite.Path)
	if err != nil {
		return nil, err
	}
	return NewRepository(NewStatusSQLite(conn), func(context.Context) error {
		return conn.Close()
	}), nil
}

func openDynamo(ctx context.Context, cfg *config.Config) (*Repository, error) {
	client, err := db.NewDynamoClient(ctx, cfg.Dynamo.Region, cfg.Dynamo.Endpoint)
	if err != nil {
		return nil, err
	}
	// the SDK client holds no connection that needs closing
	return NewRepository(NewStatusDynamo(client, cfg.Dynamo.Table), nil), nil
}
