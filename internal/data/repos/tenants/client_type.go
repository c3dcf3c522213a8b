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

type ClientTypeRepo interface {
	Create(ctx context.Context, tx *gorm.DB, ct *types.ClientType) (*types.ClientType, error)
	Update(ctx context.Context, tx *gorm.DB, ct *types.ClientType) error
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.ClientType, error)
	GetByName(ctx context.Context, tx *gorm.DB, name string) (*types.ClientType, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.ClientType, error)
}

type clientTypeRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewClientTypeRepo(db *gorm.DB, baseLog *logger.Logger) ClientTypeRepo {
	return &clientTypeRepo{db: db, log: baseLog.With("repo", "ClientTypeRepo")}
}

func (r *clientTypeRepo) Create(ctx context.Context, tx *gorm.DB, ct *types.ClientType) (*types.ClientType, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if ct.ID == uuid.Nil {
		ct.ID = uuid.New()
	}
	ct.TypeName = strings.TrimSpace(ct.TypeName)
	now := time.Now().UTC()
	if ct.CreatedAt.IsZero() {
		ct.CreatedAt = now
	}
	ct.UpdatedAt = now
	if err := t.WithContext(ctx).Create(ct).Error; err != nil {
		return nil, mapError(err)
	}
	return ct, nil
}

func (r *clientTypeRepo) Update(ctx context.Context, tx *gorm.DB, ct *types.ClientType) error {
	t := tx
	if t == nil {
		t = r.db
	}
	ct.TypeName = strings.TrimSpace(ct.TypeName)
	ct.UpdatedAt = time.Now().UTC()
	res := t.WithContext(ctx).
		Model(&types.ClientType{}).
		Where("id = ?", ct.ID).
		Select("*").
		Omit("id", "created_at").
		Updates(ct)
	if res.Error != nil {
		return mapError(res.Error)
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *clientTypeRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.ClientType, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if id == uuid.Nil {
		return nil, nil
	}
	var row types.ClientType
	if err := t.WithContext(ctx).Where("id = ?", id).Limit(1).Find(&row).Error; err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, nil
	}
	return &row, nil
}

func (r *clientTypeRepo) GetByName(ctx context.Context, tx *gorm.DB, name string) (*types.ClientType, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, nil
	}
	var row types.ClientType
	if err := t.WithContext(ctx).Where("type_name = ?", name).Limit(1).Find(&row).Error; err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, nil
	}
	return &row, nil
}

func (r *clientTypeRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.ClientType, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*types.ClientType
	if err := t.WithContext(ctx).Order("type_name ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
