package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ankitsrivastava6773-gmb/gmb-lite-system/internal/clients/redis"
	"github.com/ankitsrivastava6773-gmb/gmb-lite-system/internal/data/repos"
	types "github.com/ankitsrivastava6773-gmb/gmb-lite-system/internal/domain"
	"github.com/ankitsrivastava6773-gmb/gmb-lite-system/internal/platform/apierr"
	"github.com/ankitsrivastava6773-gmb/gmb-lite-system/internal/platform/logger"
)

const (
	DefaultVerbosity = 2
	// listCap bounds SEO keywords and products regardless of verbosity.
	listCap = 3
	// DefaultIndustry scopes clients that have no client type.
	DefaultIndustry = "general"
)

// AdminData is a client's profile merged over its client type defaults.
type AdminData struct {
	ClientID         uuid.UUID `json:"-"`
	Industry         string    `json:"industry"`
	IsActive         bool      `json:"is_active"`
	StartDate        *string   `json:"start_date"`
	EndDate          *string   `json:"end_date"`
	ShopName         string    `json:"shop_name"`
	Contexts         []string  `json:"contexts"`
	TrustSignals     []string  `json:"trust_signals"`
	SEOKeywords      []string  `json:"seo_keywords"`
	ProductsServices []string  `json:"products_services"`
	Area             string    `json:"area"`
	Tone             string    `json:"tone"`
	Verbosity        int       `json:"verbosity"`
}

type PublicClient struct {
	ShopName         string   `json:"shop_name"`
	Area             string   `json:"area"`
	ProductsServices []string `json:"products_services"`
	GMBLink          string   `json:"gmb_link"`
	LogoURL          string   `json:"logo_url"`
}

// ClientInput is the admin payload for creating or replacing a client.
type ClientInput struct {
	ShopName         string     `json:"shop_name"`
	ClientTypeID     *uuid.UUID `json:"client_type_id"`
	Context          string     `json:"context"`
	TrustSignals     string     `json:"trust_signals"`
	SEOKeywords      string     `json:"seo_keywords"`
	ProductsServices string     `json:"products_services"`
	Area             string     `json:"area"`
	Tone             string     `json:"tone"`
	Verbosity        *int       `json:"verbosity"`
	IsActive         *bool      `json:"is_active"`
	StartDate        string     `json:"start_date"`
	EndDate          string     `json:"end_date"`
	GMBLink          string     `json:"gmb_link"`
	LogoURL          string     `json:"logo_url"`
}

type ClientTypeInput struct {
	TypeName         string `json:"type_name"`
	Context          string `json:"context"`
	TrustSignals     string `json:"trust_signals"`
	SEOKeywords      string `json:"seo_keywords"`
	ProductsServices string `json:"products_services"`
	Tone             string `json:"tone"`
	Verbosity        *int   `json:"verbosity"`
}

type ClientService interface {
	CreateClient(ctx context.Context, in ClientInput) (*types.Client, error)
	UpdateClient(ctx context.Context, id uuid.UUID, in ClientInput) (*types.Client, error)
	GetClient(ctx context.Context, id uuid.UUID) (*types.Client, error)
	ListClients(ctx context.Context) ([]*types.Client, error)

	CreateClientType(ctx context.Context, in ClientTypeInput) (*types.ClientType, error)
	UpdateClientType(ctx context.Context, id uuid.UUID, in ClientTypeInput) (*types.ClientType, error)
	GetClientType(ctx context.Context, id uuid.UUID) (*types.ClientType, error)
	ListClientTypes(ctx context.Context) ([]*types.ClientType, error)

	// AdminData loads the merged profile and applies the status guard.
	AdminData(ctx context.Context, id uuid.UUID) (*AdminData, error)
	PublicClient(ctx context.Context, id uuid.UUID) (*PublicClient, error)
	// LoadActive returns the client after the status guard, or notFoundMsg
	// as a 404 when it does not exist.
	LoadActive(ctx context.Context, id uuid.UUID, notFoundMsg string) (*types.Client, error)
}

type clientService struct {
	log         *logger.Logger
	clients     repos.ClientRepo
	clientTypes repos.ClientTypeRepo
	cache       redis.ProfileCache
	guard       StatusGuard
}

// NewClientService wires the client service. cache may be nil.
func NewClientService(
	log *logger.Logger,
	clients repos.ClientRepo,
	clientTypes repos.ClientTypeRepo,
	cache redis.ProfileCache,
	guard StatusGuard,
) ClientService {
	return &clientService{
		log:         log.With("service", "ClientService"),
		clients:     clients,
		clientTypes: clientTypes,
		cache:       cache,
		guard:       guard,
	}
}

func (s *clientService) CreateClient(ctx context.Context, in ClientInput) (*types.Client, error) {
	client := &types.Client{IsActive: true}
	if err := s.apply(ctx, client, in); err != nil {
		return nil, err
	}
	created, err := s.clients.Create(ctx, nil, client)
	if err != nil {
		return nil, fmt.Errorf("create client: %w", err)
	}
	return s.clients.GetByID(ctx, nil, created.ID)
}

func (s *clientService) UpdateClient(ctx context.Context, id uuid.UUID, in ClientInput) (*types.Client, error) {
	existing, err := s.clients.GetByID(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, apierr.NotFound("client_not_found", "Client not found")
	}
	existing.ClientType = nil
	if err := s.apply(ctx, existing, in); err != nil {
		return nil, err
	}
	if err := s.clients.Update(ctx, nil, existing); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.NotFound("client_not_found", "Client not found")
		}
		return nil, fmt.Errorf("update client: %w", err)
	}
	s.invalidate(ctx, id)
	return s.clients.GetByID(ctx, nil, id)
}

// apply copies in onto client after validation. Omitted is_active keeps the
// current value.
func (s *clientService) apply(ctx context.Context, client *types.Client, in ClientInput) error {
	shop := strings.TrimSpace(in.ShopName)
	if shop == "" {
		return apierr.BadRequest("invalid_client", "shop_name required")
	}
	if err := validVerbosity(in.Verbosity); err != nil {
		return err
	}
	start, err := ParseDate(strings.TrimSpace(in.StartDate))
	if err != nil {
		return apierr.BadRequest("invalid_client", "start_date must be YYYY-MM-DD")
	}
	end, err := ParseDate(strings.TrimSpace(in.EndDate))
	if err != nil {
		return apierr.BadRequest("invalid_client", "end_date must be YYYY-MM-DD")
	}
	if start != nil && end != nil && end.Before(*start) {
		return apierr.BadRequest("invalid_client", "end_date before start_date")
	}
	if in.ClientTypeID != nil && *in.ClientTypeID != uuid.Nil {
		ct, err := s.clientTypes.GetByID(ctx, nil, *in.ClientTypeID)
		if err != nil {
			return err
		}
		if ct == nil {
			return apierr.BadRequest("invalid_client", "Unknown client type")
		}
		client.ClientTypeID = in.ClientTypeID
	} else {
		client.ClientTypeID = nil
	}

	client.ShopName = shop
	client.Context = strings.TrimSpace(in.Context)
	client.TrustSignals = strings.TrimSpace(in.TrustSignals)
	client.SEOKeywords = strings.TrimSpace(in.SEOKeywords)
	client.ProductsServices = strings.TrimSpace(in.ProductsServices)
	client.Area = strings.TrimSpace(in.Area)
	client.Tone = strings.TrimSpace(in.Tone)
	client.Verbosity = in.Verbosity
	if in.IsActive != nil {
		client.IsActive = *in.IsActive
	}
	client.StartDate = start
	client.EndDate = end
	client.GMBLink = strings.TrimSpace(in.GMBLink)
	client.LogoURL = strings.TrimSpace(in.LogoURL)
	return nil
}

func validVerbosity(v *int) error {
	if v != nil && (*v < 1 || *v > 5) {
		return apierr.BadRequest("invalid_verbosity", "verbosity must be 1–5")
	}
	return nil
}

func (s *clientService) GetClient(ctx context.Context, id uuid.UUID) (*types.Client, error) {
	client, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, apierr.NotFound("client_not_found", "Client not found")
	}
	return client, nil
}

func (s *clientService) ListClients(ctx context.Context) ([]*types.Client, error) {
	return s.clients.List(ctx, nil)
}

// load reads through the profile cache. Cache failures degrade to the
// database.
func (s *clientService) load(ctx context.Context, id uuid.UUID) (*types.Client, error) {
	if s.cache != nil {
		client, ok, err := s.cache.Get(ctx, id)
		if err != nil {
			s.log.Warn("profile cache read failed", "client_id", id, "error", err)
		} else if ok {
			return client, nil
		}
	}
	client, err := s.clients.GetByID(ctx, nil, id)
	if err != nil {
		return nil, fmt.Errorf("load client: %w", err)
	}
	if client == nil {
		return nil, nil
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, client); err != nil {
			s.log.Warn("profile cache write failed", "client_id", id, "error", err)
		}
	}
	return client, nil
}

func (s *clientService) invalidate(ctx context.Context, id uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, id); err != nil {
		s.log.Warn("profile cache invalidate failed", "client_id", id, "error", err)
	}
}

func (s *clientService) CreateClientType(ctx context.Context, in ClientTypeInput) (*types.ClientType, error) {
	ct := &types.ClientType{}
	if err := applyClientType(ct, in); err != nil {
		return nil, err
	}
	created, err := s.clientTypes.Create(ctx, nil, ct)
	if err != nil {
		if errors.Is(err, repos.ErrConflict) {
			return nil, apierr.Conflict("client_type_exists", "Client type already exists")
		}
		return nil, fmt.Errorf("create client type: %w", err)
	}
	return created, nil
}

func (s *clientService) UpdateClientType(ctx context.Context, id uuid.UUID, in ClientTypeInput) (*types.ClientType, error) {
	ct, err := s.clientTypes.GetByID(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	if ct == nil {
		return nil, apierr.NotFound("client_type_not_found", "Client type not found")
	}
	if err := applyClientType(ct, in); err != nil {
		return nil, err
	}
	if err := s.clientTypes.Update(ctx, nil, ct); err != nil {
		if errors.Is(err, repos.ErrConflict) {
			return nil, apierr.Conflict("client_type_exists", "Client type already exists")
		}
		return nil, fmt.Errorf("update client type: %w", err)
	}
	s.invalidateType(ctx, id)
	return ct, nil
}

// invalidateType drops cached profiles that embed the client type.
func (s *clientService) invalidateType(ctx context.Context, typeID uuid.UUID) {
	if s.cache == nil {
		return
	}
	all, err := s.clients.List(ctx, nil)
	if err != nil {
		s.log.Warn("list clients for cache invalidation failed", "client_type_id", typeID, "error", err)
		return
	}
	for _, c := range all {
		if c.ClientTypeID != nil && *c.ClientTypeID == typeID {
			s.invalidate(ctx, c.ID)
		}
	}
}

func applyClientType(ct *types.ClientType, in ClientTypeInput) error {
	name := strings.TrimSpace(in.TypeName)
	if name == "" {
		return apierr.BadRequest("invalid_client_type", "type_name required")
	}
	if err := validVerbosity(in.Verbosity); err != nil {
		return err
	}
	ct.TypeName = name
	ct.Context = strings.TrimSpace(in.Context)
	ct.TrustSignals = strings.TrimSpace(in.TrustSignals)
	ct.SEOKeywords = strings.TrimSpace(in.SEOKeywords)
	ct.ProductsServices = strings.TrimSpace(in.ProductsServices)
	ct.Tone = strings.TrimSpace(in.Tone)
	ct.Verbosity = in.Verbosity
	return nil
}

func (s *clientService) GetClientType(ctx context.Context, id uuid.UUID) (*types.ClientType, error) {
	ct, err := s.clientTypes.GetByID(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	if ct == nil {
		return nil, apierr.NotFound("client_type_not_found", "Client type not found")
	}
	return ct, nil
}

func (s *clientService) ListClientTypes(ctx context.Context) ([]*types.ClientType, error) {
	return s.clientTypes.List(ctx, nil)
}

func (s *clientService) LoadActive(ctx context.Context, id uuid.UUID, notFoundMsg string) (*types.Client, error) {
	client, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, apierr.NotFound("client_not_found", notFoundMsg)
	}
	if err := s.guard.Check(client); err != nil {
		return nil, err
	}
	return client, nil
}

func (s *clientService) AdminData(ctx context.Context, id uuid.UUID) (*AdminData, error) {
	client, err := s.LoadActive(ctx, id, "Client not found")
	if err != nil {
		return nil, err
	}
	return MergeAdminData(client), nil
}

func (s *clientService) PublicClient(ctx context.Context, id uuid.UUID) (*PublicClient, error) {
	client, err := s.LoadActive(ctx, id, "Invalid QR")
	if err != nil {
		return nil, err
	}
	return &PublicClient{
		ShopName:         client.ShopName,
		Area:             client.Area,
		ProductsServices: SplitLimit(client.ProductsServices, -1),
		GMBLink:          client.GMBLink,
		LogoURL:          client.LogoURL,
	}, nil
}

// MergeAdminData overlays a client on its type: each text field falls back
// to the type's value when blank. Contexts and trust signals are capped at
// the verbosity, SEO keywords and products at three.
func MergeAdminData(client *types.Client) *AdminData {
	ct := client.ClientType
	if ct == nil {
		ct = &types.ClientType{}
	}
	verbosity := DefaultVerbosity
	switch {
	case client.Verbosity != nil && *client.Verbosity > 0:
		verbosity = *client.Verbosity
	case ct.Verbosity != nil && *ct.Verbosity > 0:
		verbosity = *ct.Verbosity
	}
	return &AdminData{
		ClientID:         client.ID,
		Industry:         ct.TypeName,
		IsActive:         client.IsActive,
		StartDate:        FormatDate(client.StartDate),
		EndDate:          FormatDate(client.EndDate),
		ShopName:         client.ShopName,
		Contexts:         SplitLimit(firstNonBlank(client.Context, ct.Context), verbosity),
		TrustSignals:     SplitLimit(firstNonBlank(client.TrustSignals, ct.TrustSignals), verbosity),
		SEOKeywords:      SplitLimit(firstNonBlank(client.SEOKeywords, ct.SEOKeywords), listCap),
		ProductsServices: SplitLimit(firstNonBlank(client.ProductsServices, ct.ProductsServices), listCap),
		Area:             client.Area,
		Tone:             firstNonBlank(client.Tone, ct.Tone),
		Verbosity:        verbosity,
	}
}

// SplitLimit splits a comma separated list, drops blanks and keeps at most
// limit items. A negative limit keeps everything.
func SplitLimit(value string, limit int) []string {
	out := []string{}
	for _, part := range strings.Split(value, ",") {
		if limit >= 0 && len(out) >= limit {
			break
		}
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func firstNonBlank(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
