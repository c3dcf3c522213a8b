package narrative

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ankitsrivastava6773-gmb/gmb-lite-system/internal/review"
	"github.com/ankitsrivastava6773-gmb/gmb-lite-system/internal/review/reviewtest"
)

var shapes = []string{"A", "B", "C"}

func TestSelectWalksInOrderUntilCap(t *testing.T) {
	ctx := context.Background()
	store := reviewtest.NewStore()
	scope := review.Scope{BusinessID: "b", Industry: "gym"}
	s := NewSelector(shapes, 2, store)

	want := []string{"A", "A", "B", "B", "C", "C", "A", "A"}
	for i, w := range want {
		got, err := s.Select(ctx, scope)
		if err != nil {
			t.Fatalf("Select #%d: %v", i, err)
		}
		if got != w {
			t.Fatalf("Select #%d=%q, want %q", i, got, w)
		}
		if err := s.Commit(ctx, scope, got); err != nil {
			t.Fatalf("Commit: %v", err)
		}
	}
	if n := store.Usage(scope, review.PoolNarrative, "A"); n != 4 {
		t.Fatalf("fallback shape usage=%d, want 4", n)
	}
}

func TestSelectIsScoped(t *testing.T) {
	ctx := context.Background()
	store := reviewtest.NewStore()
	a := review.Scope{BusinessID: "a", Industry: "gym"}
	b := review.Scope{BusinessID: "a", Industry: "spa"}
	for i := 0; i < DefaultCap; i++ {
		_ = store.IncrementUsage(ctx, a, review.PoolNarrative, "A", time.Now())
	}
	s := NewSelector(shapes, 0, store)
	if got, _ := s.Select(ctx, a); got != "B" {
		t.Fatalf("scope a Select=%q, want B", got)
	}
	if got, _ := s.Select(ctx, b); got != "A" {
		t.Fatalf("scope b Select=%q, want A", got)
	}
}

func TestSelectWithoutCommitDoesNotCount(t *testing.T) {
	store := reviewtest.NewStore()
	scope := review.Scope{BusinessID: "b", Industry: "gym"}
	s := NewSelector(shapes, 1, store)
	for i := 0; i < 3; i++ {
		if got, _ := s.Select(context.Background(), scope); got != "A" {
			t.Fatalf("Select=%q, want A", got)
		}
	}
	if n := store.Usage(scope, review.PoolNarrative, "A"); n != 0 {
		t.Fatalf("usage=%d, want 0", n)
	}
}

func TestSelectorErrors(t *testing.T) {
	store := reviewtest.NewStore()
	store.Err = errors.New("timeout")
	s := NewSelector(shapes, 0, store)
	scope := review.Scope{BusinessID: "b", Industry: "gym"}
	if _, err := s.Select(context.Background(), scope); !errors.Is(err, store.Err) {
		t.Fatalf("Select err=%v", err)
	}
	if err := s.Commit(context.Background(), scope, "A"); !errors.Is(err, store.Err) {
		t.Fatalf("Commit err=%v", err)
	}
	if err := s.Commit(context.Background(), scope, ""); err != nil {
		t.Fatalf("Commit of empty shape should be a no-op, got %v", err)
	}
}
