package config

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownDriver is returned for an unsupported store.driver value.
var ErrUnknownDriver = errors.New("unknown store driver")

// Validate checks configuration correctness without mutating it.
func Validate(cfg *Config) error {
	if cfg.Store.Collection == "" {
		return errors.New("store.collection must not be empty")
	}
	if cfg.Store.Timeout <= 0 {
		return fmt.Errorf("store.timeout must be positive, got %s", cfg.Store.Timeout)
	}

	switch cfg.Store.Driver {
	case DriverMongo:
		if cfg.Mongo.URL == "" {
			return errors.New("mongo.url (MONGO_URL) is required for the mongo driver")
		}
		if cfg.Mongo.Database == "" {
			return errors.New("mongo.database (DB_NAME) is required for the mongo driver")
		}
	case DriverSQLite:
		if cfg.SQLite.Path == "" {
			return errors.New("sqlite.path is required for the sqlite driver")
		}
	case DriverDynamoDB:
		if cfg.Dynamo.Table == "" {
			return errors.New("dynamodb.table (DYNAMODB_TABLE_NAME) is required for the dynamodb driver")
		}
	case DriverMemory:
	default:
		return fmt.Errorf("%w %q", ErrUnknownDriver, cfg.Store.Driver)
	}

	switch cfg.Log.Format {
	case "", "console", "json":
	default:
		return fmt.Errorf("log.format must be console or json, got %q", cfg.Log.Format)
	}

	for _, origin := range cfg.CORS.Origins {
		if origin == "*" {
			continue
		}
		if !strings.HasPrefix(origin, "http://") && !strings.HasPrefix(origin, "https://") {
			return fmt.Errorf("cors origin %q must start with http:// or https://", origin)
		}
	}
	return nil
}
