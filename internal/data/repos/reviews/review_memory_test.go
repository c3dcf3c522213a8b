package reviews

import (
	"context"
	"testing"
	"time"

	"github.com/ankitsrivastava6773-gmb/gmb-lite-system/internal/data/repos/testutil"
	types "github.com/ankitsrivastava6773-gmb/gmb-lite-system/internal/domain"
)

func TestReviewMemoryRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	repo := NewReviewMemoryRepo(db, testutil.Logger(t))

	base := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	rows := []*types.ReviewMemory{
		{BusinessID: "b1", Industry: "salon", ReviewText: "first", Fingerprint: "S", CreatedAt: base},
		{BusinessID: "b1", Industry: "salon", ReviewText: "second", Fingerprint: "M", CreatedAt: base.Add(time.Minute)},
		{BusinessID: "b1", Industry: "salon", ReviewText: "third", Fingerprint: "L", CreatedAt: base.Add(2 * time.Minute)},
		{BusinessID: "b1", Industry: "cafe", ReviewText: "other industry", Fingerprint: "S", CreatedAt: base},
		{BusinessID: "b2", Industry: "salon", ReviewText: "other business", Fingerprint: "S", CreatedAt: base},
	}
	created, err := repo.Create(ctx, tx, rows)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	for _, row := range created {
		if row.ID.String() == "00000000-0000-0000-0000-000000000000" {
			t.Fatalf("Create: expected generated id")
		}
	}

	got, err := repo.ListRecent(ctx, tx, "b1", "salon", 2)
	if err != nil {
		t.Fatalf("ListRecent: %v", err)
	}
	if len(got) != 2 || got[0].ReviewText != "third" || got[1].ReviewText != "second" {
		t.Fatalf("ListRecent: unexpected rows: %+v", got)
	}

	if got, err := repo.ListRecent(ctx, tx, "b1", "salon", 0); err != nil || len(got) != 0 {
		t.Fatalf("ListRecent(limit=0): len=%d err=%v", len(got), err)
	}
	if got, err := repo.ListRecent(ctx, tx, "", "salon", 5); err != nil || len(got) != 0 {
		t.Fatalf("ListRecent(no business): len=%d err=%v", len(got), err)
	}

	n, err := repo.CountByScope(ctx, tx, "b1", "salon")
	if err != nil || n != 3 {
		t.Fatalf("CountByScope: n=%d err=%v", n, err)
	}
}
