package tenants

import (
	"time"

	"github.com/google/uuid"
)

// ClientType holds per-industry defaults. Its name doubles as the industry
// of every client that uses it.
type ClientType struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	TypeName         string    `gorm:"column:type_name;not null;uniqueIndex:idx_client_type_name" json:"type_name"`
	Context          string    `gorm:"column:context;type:text" json:"context"`
	TrustSignals     string    `gorm:"column:trust_signals;type:text" json:"trust_signals"`
	SEOKeywords      string    `gorm:"column:seo_keywords;type:text" json:"seo_keywords"`
	ProductsServices string    `gorm:"column:products_services;type:text" json:"products_services"`
	Tone             string    `gorm:"column:tone" json:"tone"`
	Verbosity        *int      `gorm:"column:verbosity" json:"verbosity,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (ClientType) TableName() string { return "client_types" }

// Client is a tenant business. List-like fields are comma separated.
type Client struct {
	ID           uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	ShopName     string      `gorm:"column:shop_name;not null" json:"shop_name"`
	ClientTypeID *uuid.UUID  `gorm:"type:uuid;column:client_type_id;index" json:"client_type_id,omitempty"`
	ClientType   *ClientType `gorm:"foreignKey:ClientTypeID" json:"client_type,omitempty"`

	Context          string `gorm:"column:context;type:text" json:"context"`
	TrustSignals     string `gorm:"column:trust_signals;type:text" json:"trust_signals"`
	SEOKeywords      string `gorm:"column:seo_keywords;type:text" json:"seo_keywords"`
	ProductsServices string `gorm:"column:products_services;type:text" json:"products_services"`
	Area             string `gorm:"column:area" json:"area"`
	Tone             string `gorm:"column:tone" json:"tone"`
	Verbosity        *int   `gorm:"column:verbosity" json:"verbosity,omitempty"`

	IsActive  bool       `gorm:"column:is_active;not null" json:"is_active"`
	StartDate *time.Time `gorm:"column:start_date;type:date" json:"start_date,omitempty"`
	EndDate   *time.Time `gorm:"column:end_date;type:date" json:"end_date,omitempty"`

	GMBLink string `gorm:"column:gmb_link" json:"gmb_link"`
	LogoURL string `gorm:"column:logo_url" json:"logo_url"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Client) TableName() string { return "clients" }
