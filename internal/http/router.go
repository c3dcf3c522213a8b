package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/ankitsrivastava6773-gmb/gmb-lite-system/internal/http/handlers"
	httpMW "github.com/ankitsrivastava6773-gmb/gmb-lite-system/internal/http/middleware"
	"github.com/ankitsrivastava6773-gmb/gmb-lite-system/internal/observability"
	"github.com/ankitsrivastava6773-gmb/gmb-lite-system/internal/platform/logger"
)

type RouterConfig struct {
	Log         *logger.Logger
	Metrics     *observability.Metrics
	ServiceName string
	CORSOrigins []string

	AuthHandler    *httpH.AuthHandler
	AuthMiddleware *httpMW.AuthMiddleware

	ReviewHandler *httpH.ReviewHandler
	ClientHandler *httpH.ClientHandler
	QRHandler     *httpH.QRHandler

	HealthHandler *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.ServiceName != "" {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.Metrics(cfg.Metrics))
	r.Use(httpMW.CORS(cfg.CORSOrigins))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/", cfg.HealthHandler.Root)
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}
	if cfg.Metrics != nil {
		r.GET("/metrics", gin.WrapF(cfg.Metrics.WriteHTTP))
	}

	api := r.Group("/api")
	{
		if cfg.ReviewHandler != nil {
			api.POST("/generate-review", cfg.ReviewHandler.GenerateReview)
		}
		if cfg.QRHandler != nil {
			api.GET("/qr/:token", cfg.QRHandler.Lookup)
		}
	}

	// Public pages behind a printed QR code.
	if cfg.QRHandler != nil {
		r.GET("/r/:token", cfg.QRHandler.Redirect)
	}
	if cfg.ClientHandler != nil {
		r.GET("/public-client/:client_id", cfg.ClientHandler.PublicClient)
		r.GET("/admin-data/:client_id", cfg.ClientHandler.AdminData)
	}

	if cfg.AuthHandler != nil {
		r.POST("/admin/login", cfg.AuthHandler.Login)
	}

	admin := r.Group("/admin")
	{
		if cfg.AuthMiddleware != nil {
			admin.Use(cfg.AuthMiddleware.RequireAdmin())
		}

		if cfg.QRHandler != nil {
			admin.POST("/qr/create", cfg.QRHandler.Create)
			admin.GET("/qr/free", cfg.QRHandler.Free)
			admin.POST("/qr/assign", cfg.QRHandler.Assign)
			admin.POST("/qr/unassign", cfg.QRHandler.Unassign)
			admin.POST("/qr/disable", cfg.QRHandler.Disable)
			admin.GET("/qr-stats/:client_id", cfg.QRHandler.Stats)

			// Older admin screens post JSON here.
			admin.POST("/assign-qr", cfg.QRHandler.Assign)
			admin.POST("/unassign-qr", cfg.QRHandler.Unassign)
		}

		if cfg.ClientHandler != nil {
			admin.GET("/clients", cfg.ClientHandler.ListClients)
			admin.POST("/clients", cfg.ClientHandler.CreateClient)
			admin.GET("/clients/:id", cfg.ClientHandler.GetClient)
			admin.PUT("/clients/:id", cfg.ClientHandler.UpdateClient)
			admin.GET("/client-types", cfg.ClientHandler.ListClientTypes)
			admin.POST("/client-types", cfg.ClientHandler.CreateClientType)
			admin.GET("/client-types/:id", cfg.ClientHandler.GetClientType)
			admin.PUT("/client-types/:id", cfg.ClientHandler.UpdateClientType)
		}
	}

	return r
}
