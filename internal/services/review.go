package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ankitsrivastava6773-gmb/gmb-lite-system/internal/data/repos"
	types "github.com/ankitsrivastava6773-gmb/gmb-lite-system/internal/domain"
	"github.com/ankitsrivastava6773-gmb/gmb-lite-system/internal/observability"
	"github.com/ankitsrivastava6773-gmb/gmb-lite-system/internal/platform/apierr"
	"github.com/ankitsrivastava6773-gmb/gmb-lite-system/internal/platform/logger"
	"github.com/ankitsrivastava6773-gmb/gmb-lite-system/internal/review"
	"github.com/ankitsrivastava6773-gmb/gmb-lite-system/internal/review/engine"
	"github.com/ankitsrivastava6773-gmb/gmb-lite-system/internal/review/signals"
)

// GenerateReviewInput is the public review request. Product falls back to
// ProductsServices.
type GenerateReviewInput struct {
	ClientID         string `json:"client_id"`
	Rating           int    `json:"rating"`
	Language         string `json:"language"`
	Product          string `json:"product"`
	ProductsServices string `json:"products_services"`
	Area             string `json:"area"`
	Experience       string `json:"experience"`
}

// ReviewEngine is the part of the orchestrator the service depends on.
type ReviewEngine interface {
	Generate(ctx context.Context, req engine.Request) (engine.Result, error)
}

type ReviewService interface {
	Generate(ctx context.Context, in GenerateReviewInput) (*engine.Result, error)
}

type reviewService struct {
	log     *logger.Logger
	clients ClientService
	logs    repos.QRReviewLogRepo
	engine  ReviewEngine
}

func NewReviewService(log *logger.Logger, clients ClientService, logs repos.QRReviewLogRepo, eng ReviewEngine) ReviewService {
	return &reviewService{
		log:     log.With("service", "ReviewService"),
		clients: clients,
		logs:    logs,
		engine:  eng,
	}
}

func (s *reviewService) Generate(ctx context.Context, in GenerateReviewInput) (*engine.Result, error) {
	start := time.Now()

	rawID := strings.TrimSpace(in.ClientID)
	if rawID == "" {
		return nil, apierr.BadRequest("invalid_request", "client_id required")
	}
	if in.Rating < 3 || in.Rating > 5 {
		return nil, apierr.BadRequest("invalid_request", "rating must be 3–5")
	}
	clientID, err := uuid.Parse(rawID)
	if err != nil {
		return nil, apierr.NotFound("client_not_found", "Client not found")
	}

	admin, err := s.clients.AdminData(ctx, clientID)
	if err != nil {
		return nil, err
	}

	language := strings.TrimSpace(in.Language)
	if language == "" {
		language = "English"
	}
	product := firstNonBlank(in.Product, in.ProductsServices)

	if _, err := s.logs.Create(ctx, nil, &types.QRReviewLog{
		ClientID: clientID,
		Rating:   in.Rating,
		Language: language,
		Product:  product,
	}); err != nil {
		return nil, fmt.Errorf("log review request: %w", err)
	}

	req := BuildEngineRequest(admin, in.Rating, language, product, in.Area, in.Experience)
	res, err := s.engine.Generate(ctx, req)
	if err != nil {
		observability.Current().ObserveReview("error", res.Debug.Attempts, "", time.Since(start))
		if errors.Is(err, engine.ErrGeneration) {
			s.log.Warn("review generation failed", "client_id", clientID, "error", err)
			return nil, apierr.New(http.StatusBadGateway, "generation_failed", err)
		}
		return nil, err
	}
	observability.Current().ObserveReview("ok", res.Debug.Attempts, res.Debug.DuplicateReason, time.Since(start))
	return &res, nil
}

// BuildEngineRequest scopes the engine to the client (business) and its
// client type (industry). The request area wins over the profile area for
// the prompt hint.
func BuildEngineRequest(admin *AdminData, rating int, language, product, area, experience string) engine.Request {
	industry := admin.Industry
	if strings.TrimSpace(industry) == "" {
		industry = DefaultIndustry
	}
	var areas []string
	if admin.Area != "" {
		areas = []string{admin.Area}
	}
	if strings.TrimSpace(area) == "" {
		area = admin.Area
	}
	return engine.Request{
		Scope:      review.Scope{BusinessID: admin.ClientID.String(), Industry: industry},
		Rating:     rating,
		Language:   language,
		Experience: strings.TrimSpace(experience),
		Product:    product,
		Area:       strings.TrimSpace(area),
		ShopName:   admin.ShopName,
		Tone:       admin.Tone,
		Verbosity:  admin.Verbosity,
		Profile: signals.Profile{
			Contexts:     admin.Contexts,
			TrustSignals: admin.TrustSignals,
			Services:     admin.ProductsServices,
			Areas:        areas,
			SEOKeywords:  admin.SEOKeywords,
		},
	}
}
