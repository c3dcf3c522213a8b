package reviews

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ReviewMemory is one accepted review for a (business, industry) scope.
// Rows are insert-only.
type ReviewMemory struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	BusinessID string    `gorm:"column:business_id;not null;index:idx_review_memory_scope,priority:1" json:"business_id"`
	Industry   string    `gorm:"column:industry;not null;index:idx_review_memory_scope,priority:2" json:"industry"`
	ReviewText string    `gorm:"column:review_text;type:text;not null" json:"review_text"`

	// Fingerprint is the sentence size pattern, e.g. "S-M-L".
	Fingerprint   string         `gorm:"column:fingerprint;not null" json:"fingerprint"`
	OpeningPhrase string         `gorm:"column:opening_phrase" json:"opening_phrase"`
	EndingPhrase  string         `gorm:"column:ending_phrase" json:"ending_phrase"`
	Meaning       datatypes.JSON `gorm:"column:meaning" json:"meaning"`

	CreatedAt time.Time `gorm:"column:created_at;not null;index:idx_review_memory_scope,priority:3" json:"created_at"`
}

func (ReviewMemory) TableName() string { return "review_memory" }
