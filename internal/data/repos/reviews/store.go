package reviews

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	types "github.com/ankitsrivastava6773-gmb/gmb-lite-system/internal/domain"
	"github.com/ankitsrivastava6773-gmb/gmb-lite-system/internal/platform/logger"
	"github.com/ankitsrivastava6773-gmb/gmb-lite-system/internal/review"
)

// Store backs the review engine with review_memory and the usage tables.
type Store struct {
	memory ReviewMemoryRepo
	usage  FragmentUsageRepo
}

var _ review.Store = (*Store)(nil)

func NewStore(db *gorm.DB, baseLog *logger.Logger) *Store {
	return &Store{
		memory: NewReviewMemoryRepo(db, baseLog),
		usage:  NewFragmentUsageRepo(db, baseLog),
	}
}

func UsageTable(pool review.Pool) (string, error) {
	switch pool {
	case review.PoolOpening:
		return types.OpeningUsageTable, nil
	case review.PoolEnding:
		return types.EndingUsageTable, nil
	case review.PoolNarrative:
		return types.NarrativeUsageTable, nil
	}
	return "", fmt.Errorf("unknown pool %q", pool)
}

func (s *Store) InsertGeneratedText(ctx context.Context, scope review.Scope, text string, fp review.Fingerprint) error {
	meaning, err := json.Marshal(fp.Meaning)
	if err != nil {
		return err
	}
	_, err = s.memory.Create(ctx, nil, []*types.ReviewMemory{{
		BusinessID:    scope.BusinessID,
		Industry:      scope.Industry,
		ReviewText:    text,
		Fingerprint:   fp.Structure,
		OpeningPhrase: fp.Opening,
		EndingPhrase:  fp.Ending,
		Meaning:       datatypes.JSON(meaning),
		CreatedAt:     time.Now().UTC(),
	}})
	return err
}

func (s *Store) RecentGeneratedTexts(ctx context.Context, scope review.Scope, limit int) ([]review.GeneratedText, error) {
	rows, err := s.memory.ListRecent(ctx, nil, scope.BusinessID, scope.Industry, limit)
	if err != nil {
		return nil, err
	}
	out := make([]review.GeneratedText, 0, len(rows))
	for _, row := range rows {
		out = append(out, review.GeneratedText{
			ID:        row.ID.String(),
			Scope:     review.Scope{BusinessID: row.BusinessID, Industry: row.Industry},
			Text:      row.ReviewText,
			Structure: row.Fingerprint,
			CreatedAt: row.CreatedAt,
		})
	}
	return out, nil
}

func (s *Store) GetUsage(ctx context.Context, scope review.Scope, pool review.Pool, label string) (int, bool, error) {
	table, err := UsageTable(pool)
	if err != nil {
		return 0, false, err
	}
	row, err := s.usage.Get(ctx, nil, table, scope.BusinessID, scope.Industry, label)
	if err != nil || row == nil {
		return 0, false, err
	}
	return row.UsageCount, true, nil
}

func (s *Store) IncrementUsage(ctx context.Context, scope review.Scope, pool review.Pool, label string, at time.Time) error {
	table, err := UsageTable(pool)
	if err != nil {
		return err
	}
	return s.usage.Increment(ctx, nil, table, scope.BusinessID, scope.Industry, label, at)
}

func (s *Store) LeastUsed(ctx context.Context, scope review.Scope, pool review.Pool) (string, error) {
	table, err := UsageTable(pool)
	if err != nil {
		return "", err
	}
	row, err := s.usage.LeastUsed(ctx, nil, table, scope.BusinessID, scope.Industry)
	if err != nil || row == nil {
		return "", err
	}
	return row.Label, nil
}

// Usage lists a scope's counters for one pool, busiest first.
func (s *Store) Usage(ctx context.Context, scope review.Scope, pool review.Pool) ([]*types.FragmentUsage, error) {
	table, err := UsageTable(pool)
	if err != nil {
		return nil, err
	}
	return s.usage.ListByScope(ctx, nil, table, scope.BusinessID, scope.Industry)
}
