package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ankitsrivastava6773-gmb/gmb-lite-system/internal/data/repos"
	types "github.com/ankitsrivastava6773-gmb/gmb-lite-system/internal/domain"
	"github.com/ankitsrivastava6773-gmb/gmb-lite-system/internal/platform/apierr"
	"github.com/ankitsrivastava6773-gmb/gmb-lite-system/internal/platform/logger"
)

const (
	DefaultQRBatch = 50
	MaxQRBatch     = 1000
	qrTokenLen     = 12
	// tokenAttempts bounds regeneration when a batch collides with an
	// existing token.
	tokenAttempts = 3
)

type QRBatch struct {
	Created int      `json:"created"`
	Tokens  []string `json:"tokens"`
}

type QRStats struct {
	ClientID        uuid.UUID     `json:"client_id"`
	TotalScans      int64         `json:"total_scans"`
	AvgRating       float64       `json:"avg_rating"`
	RatingBreakdown map[int]int64 `json:"rating_breakdown"`
	LastScan        *time.Time    `json:"last_scan"`
}

type QRService interface {
	Create(ctx context.Context, count int) (*QRBatch, error)
	ListFree(ctx context.Context) ([]*types.QRToken, error)
	Assign(ctx context.Context, token string, clientID uuid.UUID) error
	Unassign(ctx context.Context, token string) error
	Disable(ctx context.Context, token string) error
	// Lookup returns the client bound to an active token. An unbound token
	// is a 404.
	Lookup(ctx context.Context, token string) (uuid.UUID, error)
	// Resolve backs the scan redirect: an unbound token is a 403, and the
	// client must exist and pass the status guard.
	Resolve(ctx context.Context, token string) (uuid.UUID, error)
	Stats(ctx context.Context, clientID uuid.UUID) (*QRStats, error)
}

type qrService struct {
	log     *logger.Logger
	tokens  repos.QRTokenRepo
	logs    repos.QRReviewLogRepo
	clients ClientService
	newID   func() uuid.UUID
}

func NewQRService(log *logger.Logger, tokens repos.QRTokenRepo, logs repos.QRReviewLogRepo, clients ClientService) QRService {
	return &qrService{
		log:     log.With("service", "QRService"),
		tokens:  tokens,
		logs:    logs,
		clients: clients,
		newID:   uuid.New,
	}
}

// NewQRToken returns the first twelve hex digits of a random UUID.
func NewQRToken(id uuid.UUID) string {
	return strings.ReplaceAll(id.String(), "-", "")[:qrTokenLen]
}

func (s *qrService) Create(ctx context.Context, count int) (*QRBatch, error) {
	if count <= 0 {
		count = DefaultQRBatch
	}
	if count > MaxQRBatch {
		return nil, apierr.BadRequest("invalid_count", fmt.Sprintf("count must be at most %d", MaxQRBatch))
	}
	var lastErr error
	for attempt := 0; attempt < tokenAttempts; attempt++ {
		seen := make(map[string]struct{}, count)
		rows := make([]*types.QRToken, 0, count)
		for len(rows) < count {
			tok := NewQRToken(s.newID())
			if _, dup := seen[tok]; dup {
				continue
			}
			seen[tok] = struct{}{}
			rows = append(rows, &types.QRToken{Token: tok, IsActive: true})
		}
		created, err := s.tokens.Create(ctx, nil, rows)
		if err == nil {
			out := &QRBatch{Created: len(created), Tokens: make([]string, 0, len(created))}
			for _, row := range created {
				out.Tokens = append(out.Tokens, row.Token)
			}
			s.log.Info("qr tokens created", "count", out.Created)
			return out, nil
		}
		if !errors.Is(err, repos.ErrConflict) {
			return nil, fmt.Errorf("create qr tokens: %w", err)
		}
		lastErr = err
		s.log.Warn("qr token collision; regenerating batch", "attempt", attempt+1)
	}
	return nil, fmt.Errorf("create qr tokens: %w", lastErr)
}

func (s *qrService) ListFree(ctx context.Context) ([]*types.QRToken, error) {
	return s.tokens.ListFree(ctx, nil)
}

func (s *qrService) Assign(ctx context.Context, token string, clientID uuid.UUID) error {
	token = strings.TrimSpace(token)
	if token == "" || clientID == uuid.Nil {
		return apierr.BadRequest("invalid_request", "token and client_id required")
	}
	qr, err := s.tokens.GetByToken(ctx, nil, token)
	if err != nil {
		return err
	}
	if qr == nil {
		return apierr.NotFound("qr_not_found", "Invalid QR token")
	}
	if qr.ClientID != nil {
		return apierr.BadRequest("qr_assigned", "QR already assigned")
	}
	if _, err := s.clients.GetClient(ctx, clientID); err != nil {
		return err
	}
	ok, err := s.tokens.Assign(ctx, nil, token, clientID, time.Now())
	if err != nil {
		return fmt.Errorf("assign qr: %w", err)
	}
	if !ok {
		// Lost a race with another assignment.
		return apierr.BadRequest("qr_assigned", "QR already assigned")
	}
	s.log.Info("qr assigned", "token", token, "client_id", clientID)
	return nil
}

func (s *qrService) Unassign(ctx context.Context, token string) error {
	ok, err := s.tokens.Unassign(ctx, nil, strings.TrimSpace(token))
	if err != nil {
		return fmt.Errorf("unassign qr: %w", err)
	}
	if !ok {
		return apierr.NotFound("qr_not_found", "Invalid QR token")
	}
	return nil
}

func (s *qrService) Disable(ctx context.Context, token string) error {
	ok, err := s.tokens.Disable(ctx, nil, strings.TrimSpace(token))
	if err != nil {
		return fmt.Errorf("disable qr: %w", err)
	}
	if !ok {
		return apierr.NotFound("qr_not_found", "Invalid QR token")
	}
	return nil
}

func (s *qrService) Lookup(ctx context.Context, token string) (uuid.UUID, error) {
	return s.lookup(ctx, token, http.StatusNotFound)
}

func (s *qrService) lookup(ctx context.Context, token string, unassignedStatus int) (uuid.UUID, error) {
	qr, err := s.tokens.GetByToken(ctx, nil, strings.TrimSpace(token))
	if err != nil {
		return uuid.Nil, err
	}
	if qr == nil {
		return uuid.Nil, apierr.NotFound("qr_not_found", "Invalid QR")
	}
	if !qr.IsActive {
		return uuid.Nil, apierr.Forbidden("qr_inactive", "QR inactive")
	}
	if qr.ClientID == nil {
		return uuid.Nil, apierr.New(unassignedStatus, "qr_unassigned", errors.New("QR not assigned"))
	}
	return *qr.ClientID, nil
}

func (s *qrService) Resolve(ctx context.Context, token string) (uuid.UUID, error) {
	clientID, err := s.lookup(ctx, token, http.StatusForbidden)
	if err != nil {
		return uuid.Nil, err
	}
	if _, err := s.clients.LoadActive(ctx, clientID, "Client not found"); err != nil {
		return uuid.Nil, err
	}
	return clientID, nil
}

// Stats summarises review requests for a client. The average counts only
// 3 to 5 star ratings in the numerator but every request in the total.
func (s *qrService) Stats(ctx context.Context, clientID uuid.UUID) (*QRStats, error) {
	counts, err := s.logs.CountByRating(ctx, nil, clientID)
	if err != nil {
		return nil, fmt.Errorf("count review logs: %w", err)
	}
	out := &QRStats{
		ClientID:        clientID,
		RatingBreakdown: map[int]int64{3: 0, 4: 0, 5: 0},
	}
	var sum int64
	for _, c := range counts {
		out.TotalScans += c.Count
		if _, ok := out.RatingBreakdown[c.Rating]; ok {
			out.RatingBreakdown[c.Rating] += c.Count
			sum += int64(c.Rating) * c.Count
		}
	}
	if out.TotalScans > 0 {
		out.AvgRating = round2(float64(sum) / float64(out.TotalScans))
		latest, err := s.logs.Latest(ctx, nil, clientID)
		if err != nil {
			return nil, fmt.Errorf("latest review log: %w", err)
		}
		if latest != nil {
			at := latest.CreatedAt
			out.LastScan = &at
		}
	}
	return out, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
