// Package narrative chooses the structural shape a review should follow.
package narrative

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/ankitsrivastava6773-gmb/gmb-lite-system/internal/review"
)

const DefaultCap = 3

type Selector struct {
	shapes []string
	cap    int
	store  review.UsageStore
	now    func() time.Time
}

// NewSelector keeps shapes in the given order; the first one doubles as the
// fallback once every shape has hit cap.
func NewSelector(shapes []string, capacity int, store review.UsageStore) *Selector {
	if capacity <= 0 {
		capacity = DefaultCap
	}
	return &Selector{shapes: slices.Clone(shapes), cap: capacity, store: store, now: time.Now}
}

func (s *Selector) Shapes() []string { return slices.Clone(s.shapes) }

func (s *Selector) Select(ctx context.Context, scope review.Scope) (string, error) {
	if len(s.shapes) == 0 {
		return "", nil
	}
	for _, shape := range s.shapes {
		n, found, err := s.store.GetUsage(ctx, scope, review.PoolNarrative, shape)
		if err != nil {
			return "", fmt.Errorf("get narrative usage: %w", err)
		}
		if !found || n < s.cap {
			return shape, nil
		}
	}
	return s.shapes[0], nil
}

// Commit records one successful use of shape.
func (s *Selector) Commit(ctx context.Context, scope review.Scope, shape string) error {
	if shape == "" {
		return nil
	}
	if err := s.store.IncrementUsage(ctx, scope, review.PoolNarrative, shape, s.now()); err != nil {
		return fmt.Errorf("commit narrative usage: %w", err)
	}
	return nil
}
