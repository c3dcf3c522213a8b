package app

import (
	"context"
	"fmt"

	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/ankitsrivastava6773-gmb/gmb-lite-system/internal/clients/redis"
	"github.com/ankitsrivastava6773-gmb/gmb-lite-system/internal/data/db"
	"github.com/ankitsrivastava6773-gmb/gmb-lite-system/internal/platform/logger"
	"github.com/ankitsrivastava6773-gmb/gmb-lite-system/internal/platform/openai"
)

type Clients struct {
	OpenAI openai.Client
	// Redis is nil when REDIS_ADDR is unset.
	Redis *goredis.Client
}

func (c Clients) Close() {
	if c.Redis != nil {
		_ = c.Redis.Close()
	}
}

func wireClients(ctx context.Context, log *logger.Logger, cfg Config) (Clients, error) {
	log.Info("Wiring clients...")
	oa, err := openai.NewClient(cfg.OpenAI, log)
	if err != nil {
		return Clients{}, fmt.Errorf("init openai: %w", err)
	}

	var rdb *goredis.Client
	if cfg.Redis.Addr != "" {
		rdb, err = redis.NewClient(ctx, cfg.Redis, log)
		if err != nil {
			return Clients{}, fmt.Errorf("init redis: %w", err)
		}
	} else {
		log.Warn("REDIS_ADDR not set; client profiles are read from the database on every request")
	}
	return Clients{OpenAI: oa, Redis: rdb}, nil
}

// openDatabase connects, migrates and returns a closer for the pool.
func openDatabase(log *logger.Logger, cfg Config) (*gorm.DB, func() error, error) {
	var (
		theDB  *gorm.DB
		closer func() error
	)
	switch cfg.DBDriver {
	case "sqlite":
		sq, err := db.OpenSQLite(cfg.SQLitePath, log)
		if err != nil {
			return nil, nil, err
		}
		theDB = sq
		closer = func() error {
			sqlDB, err := sq.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		}
	case "postgres", "":
		pg, err := db.NewPostgresService(cfg.Postgres, log)
		if err != nil {
			return nil, nil, fmt.Errorf("init postgres: %w", err)
		}
		theDB = pg.DB()
		closer = pg.Close
	default:
		return nil, nil, fmt.Errorf("unknown DB_DRIVER %q", cfg.DBDriver)
	}

	if err := db.Migrate(theDB); err != nil {
		_ = closer()
		return nil, nil, fmt.Errorf("migrate: %w", err)
	}
	return theDB, closer, nil
}
