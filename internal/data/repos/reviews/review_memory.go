package reviews

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/ankitsrivastava6773-gmb/gmb-lite-system/internal/domain"
	"github.com/ankitsrivastava6773-gmb/gmb-lite-system/internal/platform/logger"
)

type ReviewMemoryRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*types.ReviewMemory) ([]*types.ReviewMemory, error)
	// ListRecent returns the newest rows of a scope first.
	ListRecent(ctx context.Context, tx *gorm.DB, businessID, industry string, limit int) ([]*types.ReviewMemory, error)
	CountByScope(ctx context.Context, tx *gorm.DB, businessID, industry string) (int64, error)
}

type reviewMemoryRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewReviewMemoryRepo(db *gorm.DB, baseLog *logger.Logger) ReviewMemoryRepo {
	return &reviewMemoryRepo{db: db, log: baseLog.With("repo", "ReviewMemoryRepo")}
}

func (r *reviewMemoryRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.ReviewMemory) ([]*types.ReviewMemory, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(rows) == 0 {
		return []*types.ReviewMemory{}, nil
	}
	for _, row := range rows {
		if row.ID == uuid.Nil {
			row.ID = uuid.New()
		}
	}
	if err := t.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *reviewMemoryRepo) ListRecent(ctx context.Context, tx *gorm.DB, businessID, industry string, limit int) ([]*types.ReviewMemory, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*types.ReviewMemory
	businessID = strings.TrimSpace(businessID)
	industry = strings.TrimSpace(industry)
	if businessID == "" || industry == "" || limit <= 0 {
		return out, nil
	}
	if err := t.WithContext(ctx).
		Where("business_id = ? AND industry = ?", businessID, industry).
		Order("created_at DESC").
		Limit(limit).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *reviewMemoryRepo) CountByScope(ctx context.Context, tx *gorm.DB, businessID, industry string) (int64, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var n int64
	if err := t.WithContext(ctx).
		Model(&types.ReviewMemory{}).
		Where("business_id = ? AND industry = ?", businessID, industry).
		Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}
