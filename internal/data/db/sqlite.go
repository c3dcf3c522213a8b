package db

import (
	"fmt"
	"strings"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/ankitsrivastava6773-gmb/gmb-lite-system/internal/platform/logger"
)

// OpenSQLite opens a single-file database for local runs. SQLite allows one
// writer, so the pool is pinned to a single connection.
func OpenSQLite(path string, logg *logger.Logger) (*gorm.DB, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		path = "gmb-lite.db"
	}
	db, err := gorm.Open(sqlite.Open(path+"?_busy_timeout=5000&_foreign_keys=off"), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		Logger:                                   gormLogger.Default.LogMode(gormLogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)
	logg.With("service", "SQLite").Info("opened sqlite database", "path", path)
	return db, nil
}
