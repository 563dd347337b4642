package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Store drivers.
const (
	DriverMongo    = "mongo"
	DriverSQLite   = "sqlite"
	DriverDynamoDB = "dynamodb"
	DriverMemory   = "memory"
)

type Config struct {
	Port   string       `mapstructure:"port"`
	Log    LogConfig    `mapstructure:"log"`
	Server ServerConfig `mapstructure:"server"`
	Store  StoreConfig  `mapstructure:"store"`
	Mongo  MongoConfig  `mapstructure:"mongo"`
	SQLite SQLiteConfig `mapstructure:"sqlite"`
	Dynamo DynamoConfig `mapstructure:"dynamodb"`
	CORS   CORSConfig   `mapstructure:"cors"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // console | json
}

type ServerConfig struct {
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout"`
	WriteTimeout      time.Duration `mapstructure:"write_timeout"`
	IdleTimeout       time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout"`
}

type StoreConfig struct {
	Driver     string        `mapstructure:"driver"`
	Collection string        `mapstructure:"collection"`
	Timeout    time.Duration `mapstructure:"timeout"`
}

type MongoConfig struct {
	URL      string `mapstructure:"url"`
	Database string `mapstructure:"database"`
}

type SQLiteConfig struct {
	Path string `mapstructure:"path"`
}

type DynamoConfig struct {
	Table    string `mapstructure:"table"`
	Region   string `mapstructure:"region"`
	Endpoint string `mapstructure:"endpoint"` // local DynamoDB only
}

type CORSConfig struct {
	Origins []string `mapstructure:"origins"`
}

// environment variable overrides, kept compatible with existing deployments
var envBindings = map[string]string{
	"port":            "PORT",
	"log.level":       "LOG_LEVEL",
	"store.driver":    "STORE_DRIVER",
	"mongo.url":       "MONGO_URL",
	"mongo.database":  "DB_NAME",
	"sqlite.path":     "SQLITE_PATH",
	"dynamodb.table":  "DYNAMODB_TABLE_NAME",
	"dynamodb.region": "AWS_REGION",
	"cors.origins":    "CORS_ORIGINS",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8001")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("server.read_header_timeout", 10*time.Second)
	v.SetDefault("server.write_timeout", 10*time.Second)
	v.SetDefault("server.idle_timeout", 60*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("store.driver", DriverMongo)
	v.SetDefault("store.collection", "status_checks")
	v.SetDefault("store.timeout", 5*time.Second)
	v.SetDefault("sqlite.path", "app.db")
	v.SetDefault("cors.origins", "*")
}

// Load reads configs/config.yml (or the directory given) and applies
// environment overrides. A missing config file is not an error.
func Load(dir string) (*Config, error) {
	v := viper.New()
	if dir == "" {
		dir = "configs"
	}
	v.AddConfigPath(dir)
	v.SetConfigName("config")
	setDefaults(v)

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", env, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	// CORS_ORIGINS arrives as a single comma separated string
	cfg.CORS.Origins = SplitOrigins(v.GetStringSlice("cors.origins"))

	return &cfg, nil
}

// SplitOrigins flattens comma separated entries and drops blanks.
func SplitOrigins(raw []string) []string {
	var out []string
	for _, item := range raw {
		for _, o := range strings.Split(item, ",") {
			if o = strings.TrimSpace(o); o != "" {
				out = append(out, o)
			}
		}
	}
	return out
}

// AllowsAllOrigins reports whether the wildcard origin is configured.
func (c CORSConfig) AllowsAllOrigins() bool {
	if len(c.Origins) == 0 {
		return true
	}
	for _, o := range c.Origins {
		if o == "*" {
			return true
		}
	}
	return false
}
