package tenants

import (
	"time"

	"github.com/google/uuid"
)

// QRToken is a printable short token that may be bound to one client.
type QRToken struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Token      string     `gorm:"column:token;not null;uniqueIndex:idx_qr_tokens_token" json:"token"`
	ClientID   *uuid.UUID `gorm:"type:uuid;column:client_id;index" json:"client_id"`
	IsActive   bool       `gorm:"column:is_active;not null" json:"is_active"`
	AssignedAt *time.Time `gorm:"column:assigned_at" json:"assigned_at"`
	CreatedAt  time.Time  `gorm:"not null" json:"created_at"`
}

func (QRToken) TableName() string { return "qr_tokens" }

// QRReviewLog records one review request made through a client's page.
type QRReviewLog struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ClientID  uuid.UUID `gorm:"type:uuid;column:client_id;not null;index:idx_qr_review_logs_client,priority:1" json:"client_id"`
	Rating    int       `gorm:"column:rating;not null" json:"rating"`
	Language  string    `gorm:"column:language" json:"language"`
	Product   string    `gorm:"column:product" json:"product"`
	CreatedAt time.Time `gorm:"column:created_at;not null;index:idx_qr_review_logs_client,priority:2" json:"created_at"`
}

func (QRReviewLog) TableName() string { return "qr_review_logs" }
