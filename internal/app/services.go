package app

import (
	"fmt"

	"github.com/ankitsrivastava6773-gmb/gmb-lite-system/internal/clients/redis"
	"github.com/ankitsrivastava6773-gmb/gmb-lite-system/internal/platform/logger"
	"github.com/ankitsrivastava6773-gmb/gmb-lite-system/internal/platform/openai"
	"github.com/ankitsrivastava6773-gmb/gmb-lite-system/internal/review"
	"github.com/ankitsrivastava6773-gmb/gmb-lite-system/internal/review/engine"
	"github.com/ankitsrivastava6773-gmb/gmb-lite-system/internal/review/rotation"
	"github.com/ankitsrivastava6773-gmb/gmb-lite-system/internal/services"
)

const reviewSystemPrompt = "You write short, natural Google reviews as a real customer would. Return only the review text."

type Services struct {
	Engine    *engine.Orchestrator
	Clients   services.ClientService
	Reviews   services.ReviewService
	QR        services.QRService
	AdminAuth services.AdminAuthService
}

func wireServices(log *logger.Logger, cfg Config, reposet Repos, clientset Clients) (Services, error) {
	log.Info("Wiring services...")

	frags := rotation.DefaultFragments()
	if cfg.FragmentsFile != "" {
		loaded, err := rotation.LoadFragments(cfg.FragmentsFile)
		if err != nil {
			return Services{}, fmt.Errorf("load fragments: %w", err)
		}
		frags = loaded
		log.Info("fragment pools loaded", "path", cfg.FragmentsFile)
	}

	var openings review.Generator
	if cfg.OpeningTemperature >= 0 {
		openings = openai.Generator{Client: openai.WithTemperature(clientset.OpenAI, cfg.OpeningTemperature)}
	}
	eng := engine.New(
		reposet.ReviewStore,
		openai.Generator{Client: clientset.OpenAI, System: reviewSystemPrompt},
		engine.Options{
			Fragments:        frags,
			Policy:           cfg.Dedup,
			OpeningGenerator: openings,
			PrefixChars:      cfg.PrefixChars,
		},
		log,
	)

	var cache redis.ProfileCache
	if clientset.Redis != nil {
		cache = redis.NewProfileCache(clientset.Redis, cfg.ProfileCacheTTL, log)
	}
	guard := services.NewStatusGuard(services.LoadServiceLocation(cfg.ServiceTimezone))

	clientService := services.NewClientService(log, reposet.Client, reposet.ClientType, cache, guard)
	reviewService := services.NewReviewService(log, clientService, reposet.QRReviewLog, eng)
	qrService := services.NewQRService(log, reposet.QRToken, reposet.QRReviewLog, clientService)
	authService := services.NewAdminAuthService(log, cfg.AdminAuth)
	if !authService.Enabled() {
		log.Warn("admin auth disabled; set JWT_SECRET_KEY and ADMIN_PASSWORD_HASH to protect /admin")
	}

	return Services{
		Engine:    eng,
		Clients:   clientService,
		Reviews:   reviewService,
		QR:        qrService,
		AdminAuth: authService,
	}, nil
}
