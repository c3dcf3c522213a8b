package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/ankitsrivastava6773-gmb/gmb-lite-system/internal/domain"
)

func SeedClientType(tb testing.TB, ctx context.Context, tx *gorm.DB, name string) *types.ClientType {
	tb.Helper()
	now := time.Now().UTC()
	ct := &types.ClientType{
		ID:               uuid.New(),
		TypeName:         name,
		Context:          "family run,open late,walk-ins welcome",
		TrustSignals:     "10 years in business,certified staff",
		SEOKeywords:      "best " + name,
		ProductsServices: "haircut,shave",
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := tx.WithContext(ctx).Create(ct).Error; err != nil {
		tb.Fatalf("seed client type: %v", err)
	}
	return ct
}

func SeedClient(tb testing.TB, ctx context.Context, tx *gorm.DB, shop string, clientTypeID *uuid.UUID) *types.Client {
	tb.Helper()
	now := time.Now().UTC()
	c := &types.Client{
		ID:           uuid.New(),
		ShopName:     shop,
		ClientTypeID: clientTypeID,
		Area:         "Downtown",
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := tx.WithContext(ctx).Create(c).Error; err != nil {
		tb.Fatalf("seed client: %v", err)
	}
	return c
}

func SeedQRToken(tb testing.TB, ctx context.Context, tx *gorm.DB, token string, clientID *uuid.UUID) *types.QRToken {
	tb.Helper()
	q := &types.QRToken{
		ID:        uuid.New(),
		Token:     token,
		ClientID:  clientID,
		IsActive:  true,
		CreatedAt: time.Now().UTC(),
	}
	if clientID != nil {
		at := q.CreatedAt
		q.AssignedAt = &at
	}
	if err := tx.WithContext(ctx).Create(q).Error; err != nil {
		tb.Fatalf("seed qr token: %v", err)
	}
	return q
}
