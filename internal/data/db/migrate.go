package db

import (
	"fmt"

	"gorm.io/gorm"

	types "github.com/ankitsrivastava6773-gmb/gmb-lite-system/internal/domain"
	"github.com/ankitsrivastava6773-gmb/gmb-lite-system/internal/domain/reviews"
)

func AutoMigrateAll(db *gorm.DB) error {
	if err := db.AutoMigrate(
		// =========================
		// Tenants
		// =========================
		&types.ClientType{},
		&types.Client{},
		&types.QRToken{},
		&types.QRReviewLog{},

		// =========================
		// Review memory
		// =========================
		&types.ReviewMemory{},
	); err != nil {
		return err
	}
	for _, table := range reviews.UsageTables {
		if err := db.Table(table).AutoMigrate(&types.FragmentUsage{}); err != nil {
			return fmt.Errorf("migrate %s: %w", table, err)
		}
	}
	return nil
}

// EnsureUsageIndexes adds the per-scope uniqueness the usage upserts
// conflict on. Index names are per table because SQLite keeps them in one
// namespace.
func EnsureUsageIndexes(db *gorm.DB) error {
	for _, table := range reviews.UsageTables {
		idx := "idx_" + table + "_scope_label"
		if err := db.Exec(fmt.Sprintf(
			`CREATE UNIQUE INDEX IF NOT EXISTS %s ON %s (business_id, industry, label);`,
			idx, table,
		)).Error; err != nil {
			return fmt.Errorf("create %s: %w", idx, err)
		}
		idx = "idx_" + table + "_scope_count"
		if err := db.Exec(fmt.Sprintf(
			`CREATE INDEX IF NOT EXISTS %s ON %s (business_id, industry, usage_count, last_used_at);`,
			idx, table,
		)).Error; err != nil {
			return fmt.Errorf("create %s: %w", idx, err)
		}
	}
	return nil
}

// Migrate runs every schema step in order.
func Migrate(db *gorm.DB) error {
	if err := AutoMigrateAll(db); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	if err := EnsureUsageIndexes(db); err != nil {
		return err
	}
	return nil
}
