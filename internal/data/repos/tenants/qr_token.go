package tenants

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/ankitsrivastava6773-gmb/gmb-lite-system/internal/domain"
	"github.com/ankitsrivastava6773-gmb/gmb-lite-system/internal/platform/logger"
)

type QRTokenRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*types.QRToken) ([]*types.QRToken, error)
	GetByToken(ctx context.Context, tx *gorm.DB, token string) (*types.QRToken, error)
	// ListFree returns active tokens not bound to a client, oldest first.
	ListFree(ctx context.Context, tx *gorm.DB) ([]*types.QRToken, error)
	ListByClient(ctx context.Context, tx *gorm.DB, clientID uuid.UUID) ([]*types.QRToken, error)
	// Assign binds an unassigned token and reports whether a row changed.
	Assign(ctx context.Context, tx *gorm.DB, token string, clientID uuid.UUID, at time.Time) (bool, error)
	Unassign(ctx context.Context, tx *gorm.DB, token string) (bool, error)
	Disable(ctx context.Context, tx *gorm.DB, token string) (bool, error)
}

type qrTokenRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewQRTokenRepo(db *gorm.DB, baseLog *logger.Logger) QRTokenRepo {
	return &qrTokenRepo{db: db, log: baseLog.With("repo", "QRTokenRepo")}
}

func (r *qrTokenRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.QRToken) ([]*types.QRToken, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(rows) == 0 {
		return []*types.QRToken{}, nil
	}
	now := time.Now().UTC()
	for _, row := range rows {
		if row.ID == uuid.Nil {
			row.ID = uuid.New()
		}
		if row.CreatedAt.IsZero() {
			row.CreatedAt = now
		}
	}
	if err := t.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, mapError(err)
	}
	return rows, nil
}

func (r *qrTokenRepo) GetByToken(ctx context.Context, tx *gorm.DB, token string) (*types.QRToken, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, nil
	}
	var row types.QRToken
	if err := t.WithContext(ctx).Where("token = ?", token).Limit(1).Find(&row).Error; err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, nil
	}
	return &row, nil
}

func (r *qrTokenRepo) ListFree(ctx context.Context, tx *gorm.DB) ([]*types.QRToken, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*types.QRToken
	if err := t.WithContext(ctx).
		Where("client_id IS NULL AND is_active = ?", true).
		Order("created_at ASC, token ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *qrTokenRepo) ListByClient(ctx context.Context, tx *gorm.DB, clientID uuid.UUID) ([]*types.QRToken, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*types.QRToken
	if clientID == uuid.Nil {
		return out, nil
	}
	if err := t.WithContext(ctx).
		Where("client_id = ?", clientID).
		Order("assigned_at DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *qrTokenRepo) Assign(ctx context.Context, tx *gorm.DB, token string, clientID uuid.UUID, at time.Time) (bool, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	res := t.WithContext(ctx).
		Model(&types.QRToken{}).
		Where("token = ? AND client_id IS NULL", token).
		Updates(map[string]any{
			"client_id":   clientID,
			"assigned_at": at.UTC(),
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *qrTokenRepo) Unassign(ctx context.Context, tx *gorm.DB, token string) (bool, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	res := t.WithContext(ctx).
		Model(&types.QRToken{}).
		Where("token = ?", token).
		Updates(map[string]any{
			"client_id":   nil,
			"assigned_at": nil,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *qrTokenRepo) Disable(ctx context.Context, tx *gorm.DB, token string) (bool, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	res := t.WithContext(ctx).
		Model(&types.QRToken{}).
		Where("token = ?", token).
		Update("is_active", false)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
