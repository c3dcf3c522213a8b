package reviews

import (
	"time"

	"github.com/google/uuid"
)

// Usage tables share one row shape.
const (
	OpeningUsageTable   = "opening_usage"
	EndingUsageTable    = "ending_usage"
	NarrativeUsageTable = "narrative_usage"
)

var UsageTables = []string{OpeningUsageTable, EndingUsageTable, NarrativeUsageTable}

// FragmentUsage counts how often a label was used in a scope. It has no
// TableName; callers pick the table with db.Table.
type FragmentUsage struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	BusinessID string    `gorm:"column:business_id;not null" json:"business_id"`
	Industry   string    `gorm:"column:industry;not null" json:"industry"`
	Label      string    `gorm:"column:label;type:text;not null" json:"label"`
	UsageCount int       `gorm:"column:usage_count;not null;default:0" json:"usage_count"`
	LastUsedAt time.Time `gorm:"column:last_used_at;not null" json:"last_used_at"`
}
