package tenants

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ankitsrivastava6773-gmb/gmb-lite-system/internal/data/repos/testutil"
	types "github.com/ankitsrivastava6773-gmb/gmb-lite-system/internal/domain"
)

func TestQRTokenRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	repo := NewQRTokenRepo(db, testutil.Logger(t))

	created, err := repo.Create(ctx, tx, []*types.QRToken{
		{Token: "aaaaaaaaaaaa", IsActive: true},
		{Token: "bbbbbbbbbbbb", IsActive: true},
	})
	if err != nil || len(created) != 2 {
		t.Fatalf("Create: len=%d err=%v", len(created), err)
	}
	if _, err := repo.Create(ctx, tx, []*types.QRToken{{Token: "aaaaaaaaaaaa", IsActive: true}}); !errors.Is(err, ErrConflict) {
		t.Fatalf("Create(duplicate): expected ErrConflict, got %v", err)
	}
}

func TestQRTokenRepoLifecycle(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	repo := NewQRTokenRepo(db, testutil.Logger(t))
	client := testutil.SeedClient(t, ctx, tx, "Corner Cafe", nil)
	testutil.SeedQRToken(t, ctx, tx, "free00000001", nil)
	testutil.SeedQRToken(t, ctx, tx, "free00000002", nil)

	free, err := repo.ListFree(ctx, tx)
	if err != nil || len(free) != 2 {
		t.Fatalf("ListFree: len=%d err=%v", len(free), err)
	}

	ok, err := repo.Assign(ctx, tx, "free00000001", client.ID, time.Now())
	if err != nil || !ok {
		t.Fatalf("Assign: ok=%v err=%v", ok, err)
	}
	if ok, err := repo.Assign(ctx, tx, "free00000001", client.ID, time.Now()); err != nil || ok {
		t.Fatalf("Assign(again): expected no change, ok=%v err=%v", ok, err)
	}
	got, err := repo.GetByToken(ctx, tx, "free00000001")
	if err != nil || got == nil || got.ClientID == nil || *got.ClientID != client.ID || got.AssignedAt == nil {
		t.Fatalf("GetByToken: got=%+v err=%v", got, err)
	}
	if rows, err := repo.ListByClient(ctx, tx, client.ID); err != nil || len(rows) != 1 {
		t.Fatalf("ListByClient: len=%d err=%v", len(rows), err)
	}

	if ok, err := repo.Disable(ctx, tx, "free00000002"); err != nil || !ok {
		t.Fatalf("Disable: ok=%v err=%v", ok, err)
	}
	if free, err := repo.ListFree(ctx, tx); err != nil || len(free) != 0 {
		t.Fatalf("ListFree: expected none after assign+disable, len=%d err=%v", len(free), err)
	}

	if ok, err := repo.Unassign(ctx, tx, "free00000001"); err != nil || !ok {
		t.Fatalf("Unassign: ok=%v err=%v", ok, err)
	}
	got, err = repo.GetByToken(ctx, tx, "free00000001")
	if err != nil || got == nil || got.ClientID != nil || got.AssignedAt != nil {
		t.Fatalf("GetByToken after unassign: got=%+v err=%v", got, err)
	}

	if got, err := repo.GetByToken(ctx, tx, "missing"); err != nil || got != nil {
		t.Fatalf("GetByToken(missing): got=%v err=%v", got, err)
	}
	if ok, err := repo.Disable(ctx, tx, "missing"); err != nil || ok {
		t.Fatalf("Disable(missing): ok=%v err=%v", ok, err)
	}
}
