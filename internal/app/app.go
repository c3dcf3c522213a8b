package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/ankitsrivastava6773-gmb/gmb-lite-system/internal/http"
	"github.com/ankitsrivastava6773-gmb/gmb-lite-system/internal/observability"
	"github.com/ankitsrivastava6773-gmb/gmb-lite-system/internal/platform/envutil"
	"github.com/ankitsrivastava6773-gmb/gmb-lite-system/internal/platform/logger"
)

const collectorInterval = 15 * time.Second

type App struct {
	Log      *logger.Logger
	DB       *gorm.DB
	Server   *http.Server
	Cfg      Config
	Repos    Repos
	Clients  Clients
	Services Services
	Metrics  *observability.Metrics

	closeDB      func() error
	otelShutdown func(context.Context) error
	cancel       context.CancelFunc
}

func New(ctx context.Context) (*App, error) {
	log, err := logger.New(envutil.String("LOG_MODE", "development"))
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	log.Info("Loading environment variables...")
	cfg := LoadConfig(log)

	otelShutdown := observability.InitOTel(ctx, log, cfg.Otel)
	metrics := observability.Init(cfg.MetricsEnabled)

	theDB, closeDB, err := openDatabase(log, cfg)
	if err != nil {
		log.Sync()
		return nil, err
	}

	clientset, err := wireClients(ctx, log, cfg)
	if err != nil {
		_ = closeDB()
		log.Sync()
		return nil, err
	}

	reposet := wireRepos(theDB, log)
	serviceset, err := wireServices(log, cfg, reposet, clientset)
	if err != nil {
		clientset.Close()
		_ = closeDB()
		log.Sync()
		return nil, err
	}

	server := http.NewServer(":"+cfg.Port, wireRouterConfig(log, cfg, serviceset, metrics))

	return &App{
		Log:          log,
		DB:           theDB,
		Server:       server,
		Cfg:          cfg,
		Repos:        reposet,
		Clients:      clientset,
		Services:     serviceset,
		Metrics:      metrics,
		closeDB:      closeDB,
		otelShutdown: otelShutdown,
	}, nil
}

// Start launches background collectors. It is safe to call once.
func (a *App) Start() {
	if a == nil || a.cancel != nil {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	a.cancel = cancel

	a.Metrics.StartDBCollector(ctx, a.Log, a.DB, collectorInterval)
	a.Metrics.StartRedisCollector(ctx, a.Log, a.Clients.Redis, collectorInterval)
}

// Run blocks serving HTTP until Shutdown.
func (a *App) Run() error {
	if a == nil || a.Server == nil {
		return fmt.Errorf("app not initialized")
	}
	a.Log.Info("Server listening", "port", a.Cfg.Port)
	return a.Server.Run()
}

func (a *App) Shutdown(ctx context.Context) error {
	if a == nil || a.Server == nil {
		return nil
	}
	return a.Server.Shutdown(ctx)
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}
	var errs []error
	a.Clients.Close()
	if a.closeDB != nil {
		errs = append(errs, a.closeDB())
	}
	if a.otelShutdown != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		errs = append(errs, a.otelShutdown(ctx))
		cancel()
	}
	if err := errors.Join(errs...); err != nil && a.Log != nil {
		a.Log.Warn("shutdown finished with errors", "error", err)
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
