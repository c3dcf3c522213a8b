package tenants

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/ankitsrivastava6773-gmb/gmb-lite-system/internal/data/repos/testutil"
	types "github.com/ankitsrivastava6773-gmb/gmb-lite-system/internal/domain"
)

func TestQRReviewLogRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	repo := NewQRReviewLogRepo(db, testutil.Logger(t))
	client := testutil.SeedClient(t, ctx, tx, "Corner Cafe", nil)

	base := time.Date(2025, 5, 1, 8, 0, 0, 0, time.UTC)
	for i, rating := range []int{5, 5, 4, 3, 5} {
		if _, err := repo.Create(ctx, tx, &types.QRReviewLog{
			ClientID:  client.ID,
			Rating:    rating,
			Language:  "English",
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		}); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	counts, err := repo.CountByRating(ctx, tx, client.ID)
	if err != nil {
		t.Fatalf("CountByRating: %v", err)
	}
	want := []RatingCount{{3, 1}, {4, 1}, {5, 3}}
	if len(counts) != len(want) {
		t.Fatalf("CountByRating: got %+v", counts)
	}
	for i := range want {
		if counts[i] != want[i] {
			t.Fatalf("CountByRating[%d]: got %+v, want %+v", i, counts[i], want[i])
		}
	}

	latest, err := repo.Latest(ctx, tx, client.ID)
	if err != nil || latest == nil || !latest.CreatedAt.Equal(base.Add(4*time.Hour)) {
		t.Fatalf("Latest: got=%+v err=%v", latest, err)
	}

	if counts, err := repo.CountByRating(ctx, tx, uuid.New()); err != nil || len(counts) != 0 {
		t.Fatalf("CountByRating(unknown): got=%v err=%v", counts, err)
	}
	if latest, err := repo.Latest(ctx, tx, uuid.New()); err != nil || latest != nil {
		t.Fatalf("Latest(unknown): got=%v err=%v", latest, err)
	}
}
