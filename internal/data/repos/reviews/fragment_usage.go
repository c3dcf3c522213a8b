package reviews

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/ankitsrivastava6773-gmb/gmb-lite-system/internal/domain"
	domainreviews "github.com/ankitsrivastava6773-gmb/gmb-lite-system/internal/domain/reviews"
	"github.com/ankitsrivastava6773-gmb/gmb-lite-system/internal/platform/logger"
)

// FragmentUsageRepo works on any of the usage tables; every method takes the
// table name explicitly.
type FragmentUsageRepo interface {
	Get(ctx context.Context, tx *gorm.DB, table, businessID, industry, label string) (*types.FragmentUsage, error)
	Increment(ctx context.Context, tx *gorm.DB, table, businessID, industry, label string, at time.Time) error
	LeastUsed(ctx context.Context, tx *gorm.DB, table, businessID, industry string) (*types.FragmentUsage, error)
	ListByScope(ctx context.Context, tx *gorm.DB, table, businessID, industry string) ([]*types.FragmentUsage, error)
}

type fragmentUsageRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewFragmentUsageRepo(db *gorm.DB, baseLog *logger.Logger) FragmentUsageRepo {
	return &fragmentUsageRepo{db: db, log: baseLog.With("repo", "FragmentUsageRepo")}
}

func checkTable(table string) error {
	if !slices.Contains(domainreviews.UsageTables, table) {
		return fmt.Errorf("unknown usage table %q", table)
	}
	return nil
}

func (r *fragmentUsageRepo) Get(ctx context.Context, tx *gorm.DB, table, businessID, industry, label string) (*types.FragmentUsage, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if err := checkTable(table); err != nil {
		return nil, err
	}
	var row types.FragmentUsage
	err := t.WithContext(ctx).
		Table(table).
		Where("business_id = ? AND industry = ? AND label = ?", businessID, industry, label).
		Limit(1).
		Find(&row).Error
	if err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, nil
	}
	return &row, nil
}

// Increment inserts the row at 1 or adds 1 in a single statement.
func (r *fragmentUsageRepo) Increment(ctx context.Context, tx *gorm.DB, table, businessID, industry, label string, at time.Time) error {
	t := tx
	if t == nil {
		t = r.db
	}
	if err := checkTable(table); err != nil {
		return err
	}
	if at.IsZero() {
		at = time.Now()
	}
	row := types.FragmentUsage{
		ID:         uuid.New(),
		BusinessID: businessID,
		Industry:   industry,
		Label:      label,
		UsageCount: 1,
		LastUsedAt: at.UTC(),
	}
	return t.WithContext(ctx).
		Table(table).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "business_id"},
				{Name: "industry"},
				{Name: "label"},
			},
			DoUpdates: clause.Set{
				{Column: clause.Column{Name: "usage_count"}, Value: gorm.Expr(table + ".usage_count + 1")},
				{Column: clause.Column{Name: "last_used_at"}, Value: row.LastUsedAt},
			},
		}).
		Create(&row).Error
}

func (r *fragmentUsageRepo) LeastUsed(ctx context.Context, tx *gorm.DB, table, businessID, industry string) (*types.FragmentUsage, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if err := checkTable(table); err != nil {
		return nil, err
	}
	var row types.FragmentUsage
	err := t.WithContext(ctx).
		Table(table).
		Where("business_id = ? AND industry = ?", businessID, industry).
		Order("usage_count ASC, last_used_at ASC, label ASC").
		Limit(1).
		Find(&row).Error
	if err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, nil
	}
	return &row, nil
}

func (r *fragmentUsageRepo) ListByScope(ctx context.Context, tx *gorm.DB, table, businessID, industry string) ([]*types.FragmentUsage, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if err := checkTable(table); err != nil {
		return nil, err
	}
	var out []*types.FragmentUsage
	if err := t.WithContext(ctx).
		Table(table).
		Where("business_id = ? AND industry = ?", businessID, industry).
		Order("usage_count DESC, label ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
