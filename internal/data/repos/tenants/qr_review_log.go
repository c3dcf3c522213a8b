package tenants

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/ankitsrivastava6773-gmb/gmb-lite-system/internal/domain"
	"github.com/ankitsrivastava6773-gmb/gmb-lite-system/internal/platform/logger"
)

// RatingCount is one row of a per-rating breakdown.
type RatingCount struct {
	Rating int
	Count  int64
}

type QRReviewLogRepo interface {
	Create(ctx context.Context, tx *gorm.DB, row *types.QRReviewLog) (*types.QRReviewLog, error)
	CountByRating(ctx context.Context, tx *gorm.DB, clientID uuid.UUID) ([]RatingCount, error)
	// Latest returns the newest log row of a client, or nil.
	Latest(ctx context.Context, tx *gorm.DB, clientID uuid.UUID) (*types.QRReviewLog, error)
}

type qrReviewLogRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewQRReviewLogRepo(db *gorm.DB, baseLog *logger.Logger) QRReviewLogRepo {
	return &qrReviewLogRepo{db: db, log: baseLog.With("repo", "QRReviewLogRepo")}
}

func (r *qrReviewLogRepo) Create(ctx context.Context, tx *gorm.DB, row *types.QRReviewLog) (*types.QRReviewLog, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now().UTC()
	}
	if err := t.WithContext(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func (r *qrReviewLogRepo) CountByRating(ctx context.Context, tx *gorm.DB, clientID uuid.UUID) ([]RatingCount, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []RatingCount
	if err := t.WithContext(ctx).
		Model(&types.QRReviewLog{}).
		Select("rating, COUNT(*) AS count").
		Where("client_id = ?", clientID).
		Group("rating").
		Order("rating ASC").
		Scan(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *qrReviewLogRepo) Latest(ctx context.Context, tx *gorm.DB, clientID uuid.UUID) (*types.QRReviewLog, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var row types.QRReviewLog
	if err := t.WithContext(ctx).
		Where("client_id = ?", clientID).
		Order("created_at DESC").
		Limit(1).
		Find(&row).Error; err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, nil
	}
	return &row, nil
}
