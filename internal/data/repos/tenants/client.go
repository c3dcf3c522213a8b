package tenants

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/ankitsrivastava6773-gmb/gmb-lite-system/internal/domain"
	"github.com/ankitsrivastava6773-gmb/gmb-lite-system/internal/platform/logger"
)

type ClientRepo interface {
	Create(ctx context.Context, tx *gorm.DB, client *types.Client) (*types.Client, error)
	Update(ctx context.Context, tx *gorm.DB, client *types.Client) error
	// GetByID preloads the client type; a missing client yields (nil, nil).
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Client, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.Client, error)
}

type clientRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewClientRepo(db *gorm.DB, baseLog *logger.Logger) ClientRepo {
	return &clientRepo{db: db, log: baseLog.With("repo", "ClientRepo")}
}

func (r *clientRepo) Create(ctx context.Context, tx *gorm.DB, client *types.Client) (*types.Client, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if client.ID == uuid.Nil {
		client.ID = uuid.New()
	}
	now := time.Now().UTC()
	if client.CreatedAt.IsZero() {
		client.CreatedAt = now
	}
	client.UpdatedAt = now
	if err := t.WithContext(ctx).Omit("ClientType").Create(client).Error; err != nil {
		return nil, mapError(err)
	}
	return client, nil
}

// Update writes every column, zero values included.
func (r *clientRepo) Update(ctx context.Context, tx *gorm.DB, client *types.Client) error {
	t := tx
	if t == nil {
		t = r.db
	}
	client.UpdatedAt = time.Now().UTC()
	res := t.WithContext(ctx).
		Model(&types.Client{}).
		Where("id = ?", client.ID).
		Select("*").
		Omit("id", "created_at", "ClientType").
		Updates(client)
	if res.Error != nil {
		return mapError(res.Error)
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *clientRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Client, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if id == uuid.Nil {
		return nil, nil
	}
	var row types.Client
	err := t.WithContext(ctx).
		Preload("ClientType").
		Where("id = ?", id).
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

func (r *clientRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.Client, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*types.Client
	if err := t.WithContext(ctx).
		Preload("ClientType").
		Order("created_at DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
