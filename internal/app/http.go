package app

import (
	"github.com/ankitsrivastava6773-gmb/gmb-lite-system/internal/http"
	httpH "github.com/ankitsrivastava6773-gmb/gmb-lite-system/internal/http/handlers"
	httpMW "github.com/ankitsrivastava6773-gmb/gmb-lite-system/internal/http/middleware"
	"github.com/ankitsrivastava6773-gmb/gmb-lite-system/internal/observability"
	"github.com/ankitsrivastava6773-gmb/gmb-lite-system/internal/platform/logger"
)

func wireRouterConfig(log *logger.Logger, cfg Config, serviceset Services, metrics *observability.Metrics) http.RouterConfig {
	log.Info("Wiring handlers...")
	serviceName := ""
	if cfg.Otel.Enabled {
		serviceName = ServiceName
	}
	return http.RouterConfig{
		Log:         log,
		Metrics:     metrics,
		ServiceName: serviceName,
		CORSOrigins: cfg.CORSOrigins,

		AuthHandler:    httpH.NewAuthHandler(serviceset.AdminAuth),
		AuthMiddleware: httpMW.NewAuthMiddleware(log, serviceset.AdminAuth),

		ReviewHandler: httpH.NewReviewHandler(serviceset.Reviews),
		ClientHandler: httpH.NewClientHandler(serviceset.Clients),
		QRHandler:     httpH.NewQRHandler(serviceset.QR, cfg.ReviewBaseURL),

		HealthHandler: httpH.NewHealthHandler(),
	}
}
