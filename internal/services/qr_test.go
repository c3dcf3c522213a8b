package services

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/ankitsrivastava6773-gmb/gmb-lite-system/internal/data/repos/testutil"
	types "github.com/ankitsrivastava6773-gmb/gmb-lite-system/internal/domain"
	"github.com/ankitsrivastava6773-gmb/gmb-lite-system/internal/platform/apierr"
)

func wantAPIError(t *testing.T, err error, status int, msg string) {
	t.Helper()
	var ae *apierr.Error
	if !errors.As(err, &ae) || ae.Status != status || ae.Error() != msg {
		t.Fatalf("got %v, want %d %q", err, status, msg)
	}
}

func TestNewQRToken(t *testing.T) {
	id := uuid.MustParse("0123abcd-4567-89ef-0123-456789abcdef")
	if got := NewQRToken(id); got != "0123abcd4567" {
		t.Fatalf("NewQRToken=%q", got)
	}
}

func TestQRServiceCreate(t *testing.T) {
	d := newTestDeps(t)
	ctx := context.Background()
	svc := NewQRService(d.log, d.tokens, d.logs, d.clientService(nil, time.Now()))

	batch, err := svc.Create(ctx, 0)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if batch.Created != DefaultQRBatch || len(batch.Tokens) != DefaultQRBatch {
		t.Fatalf("default batch: created=%d tokens=%d", batch.Created, len(batch.Tokens))
	}
	for _, tok := range batch.Tokens {
		if len(tok) != 12 {
			t.Fatalf("token %q should be 12 chars", tok)
		}
	}
	free, err := svc.ListFree(ctx)
	if err != nil || len(free) != DefaultQRBatch {
		t.Fatalf("ListFree: %d %v", len(free), err)
	}

	if _, err := svc.Create(ctx, MaxQRBatch+1); err == nil {
		t.Fatalf("expected error for oversized batch")
	}
}

func TestQRServiceCreateRetriesCollision(t *testing.T) {
	d := newTestDeps(t)
	ctx := context.Background()
	testutil.SeedQRToken(t, ctx, d.tx, "aaaaaaaaaaaa", nil)

	ids := []uuid.UUID{
		uuid.MustParse("aaaaaaaa-aaaa-4aaa-8aaa-aaaaaaaaaaaa"),
		uuid.MustParse("bbbbbbbb-bbbb-4bbb-8bbb-bbbbbbbbbbbb"),
	}
	svc := NewQRService(d.log, d.tokens, d.logs, d.clientService(nil, time.Now())).(*qrService)
	svc.newID = func() uuid.UUID {
		id := ids[0]
		if len(ids) > 1 {
			ids = ids[1:]
		}
		return id
	}

	batch, err := svc.Create(ctx, 1)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if batch.Tokens[0] != "bbbbbbbbbbbb" {
		t.Fatalf("expected regenerated token, got %v", batch.Tokens)
	}
}

func TestQRServiceAssignLifecycle(t *testing.T) {
	d := newTestDeps(t)
	ctx := context.Background()
	svc := NewQRService(d.log, d.tokens, d.logs, d.clientService(nil, time.Now()))

	client := testutil.SeedClient(t, ctx, d.tx, "Corner Cafe", nil)
	testutil.SeedQRToken(t, ctx, d.tx, "tok000000001", nil)

	wantAPIError(t, svc.Assign(ctx, "missing00000", client.ID), http.StatusNotFound, "Invalid QR token")
	wantAPIError(t, svc.Assign(ctx, "tok000000001", uuid.New()), http.StatusNotFound, "Client not found")

	if err := svc.Assign(ctx, "tok000000001", client.ID); err != nil {
		t.Fatalf("Assign: %v", err)
	}
	wantAPIError(t, svc.Assign(ctx, "tok000000001", client.ID), http.StatusBadRequest, "QR already assigned")

	got, err := svc.Lookup(ctx, "tok000000001")
	if err != nil || got != client.ID {
		t.Fatalf("Lookup=%v %v", got, err)
	}
	got, err = svc.Resolve(ctx, "tok000000001")
	if err != nil || got != client.ID {
		t.Fatalf("Resolve=%v %v", got, err)
	}

	if err := svc.Unassign(ctx, "tok000000001"); err != nil {
		t.Fatalf("Unassign: %v", err)
	}
	_, err = svc.Lookup(ctx, "tok000000001")
	wantAPIError(t, err, http.StatusNotFound, "QR not assigned")
	_, err = svc.Resolve(ctx, "tok000000001")
	wantAPIError(t, err, http.StatusForbidden, "QR not assigned")

	if err := svc.Disable(ctx, "tok000000001"); err != nil {
		t.Fatalf("Disable: %v", err)
	}
	_, err = svc.Resolve(ctx, "tok000000001")
	wantAPIError(t, err, http.StatusForbidden, "QR inactive")

	_, err = svc.Resolve(ctx, "nope00000000")
	wantAPIError(t, err, http.StatusNotFound, "Invalid QR")
	wantAPIError(t, svc.Unassign(ctx, "nope00000000"), http.StatusNotFound, "Invalid QR token")
	wantAPIError(t, svc.Disable(ctx, "nope00000000"), http.StatusNotFound, "Invalid QR token")
}

func TestQRServiceResolveChecksClient(t *testing.T) {
	d := newTestDeps(t)
	ctx := context.Background()
	svc := NewQRService(d.log, d.tokens, d.logs, d.clientService(nil, time.Now()))

	orphan := uuid.New()
	testutil.SeedQRToken(t, ctx, d.tx, "orphan000001", &orphan)
	_, err := svc.Resolve(ctx, "orphan000001")
	wantAPIError(t, err, http.StatusNotFound, "Client not found")

	client := testutil.SeedClient(t, ctx, d.tx, "Closed Shop", nil)
	client.IsActive = false
	if err := d.clients.Update(ctx, nil, client); err != nil {
		t.Fatalf("Update: %v", err)
	}
	testutil.SeedQRToken(t, ctx, d.tx, "closed000001", &client.ID)
	_, err = svc.Resolve(ctx, "closed000001")
	wantAPIError(t, err, http.StatusForbidden, MsgServiceInactive)
}

func TestQRServiceStats(t *testing.T) {
	d := newTestDeps(t)
	ctx := context.Background()
	svc := NewQRService(d.log, d.tokens, d.logs, d.clientService(nil, time.Now()))
	client := testutil.SeedClient(t, ctx, d.tx, "Corner Cafe", nil)

	empty, err := svc.Stats(ctx, client.ID)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if empty.TotalScans != 0 || empty.AvgRating != 0 || empty.LastScan != nil || len(empty.RatingBreakdown) != 3 {
		t.Fatalf("empty stats: %+v", empty)
	}

	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	for i, r := range []int{5, 5, 4, 3, 5, 4} {
		if _, err := d.logs.Create(ctx, nil, &types.QRReviewLog{
			ClientID:  client.ID,
			Rating:    r,
			Language:  "English",
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		}); err != nil {
			t.Fatalf("log: %v", err)
		}
	}

	stats, err := svc.Stats(ctx, client.ID)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.TotalScans != 6 {
		t.Fatalf("total=%d", stats.TotalScans)
	}
	if stats.RatingBreakdown[5] != 3 || stats.RatingBreakdown[4] != 2 || stats.RatingBreakdown[3] != 1 {
		t.Fatalf("breakdown=%v", stats.RatingBreakdown)
	}
	if stats.AvgRating != 4.33 {
		t.Fatalf("avg=%v, want 4.33", stats.AvgRating)
	}
	if stats.LastScan == nil || !stats.LastScan.Equal(base.Add(5*time.Hour)) {
		t.Fatalf("last scan=%v", stats.LastScan)
	}
}
