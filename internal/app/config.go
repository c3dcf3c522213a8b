package app

import (
	"time"

	"github.com/ankitsrivastava6773-gmb/gmb-lite-system/internal/clients/redis"
	"github.com/ankitsrivastava6773-gmb/gmb-lite-system/internal/data/db"
	"github.com/ankitsrivastava6773-gmb/gmb-lite-system/internal/http/middleware"
	"github.com/ankitsrivastava6773-gmb/gmb-lite-system/internal/observability"
	"github.com/ankitsrivastava6773-gmb/gmb-lite-system/internal/platform/envutil"
	"github.com/ankitsrivastava6773-gmb/gmb-lite-system/internal/platform/logger"
	"github.com/ankitsrivastava6773-gmb/gmb-lite-system/internal/platform/openai"
	"github.com/ankitsrivastava6773-gmb/gmb-lite-system/internal/review/duplicate"
	"github.com/ankitsrivastava6773-gmb/gmb-lite-system/internal/services"
)

const ServiceName = "gmb-lite-system"

type Config struct {
	Port        string
	Environment string
	Version     string

	// DBDriver is "postgres" or "sqlite".
	DBDriver   string
	Postgres   db.PostgresConfig
	SQLitePath string

	OpenAI openai.Config
	// OpeningTemperature drives model-written openings; negative keeps
	// openings static.
	OpeningTemperature float64

	Redis           redis.Config
	ProfileCacheTTL time.Duration

	AdminAuth services.AdminAuthConfig

	CORSOrigins     []string
	ServiceTimezone string
	ReviewBaseURL   string

	Dedup         duplicate.Policy
	PrefixChars   int
	FragmentsFile string

	MetricsEnabled bool
	Otel           observability.OtelConfig

	ShutdownTimeout time.Duration
}

func LoadConfig(log *logger.Logger) Config {
	environment := envutil.String("APP_ENV", "development")
	version := envutil.String("APP_VERSION", "dev")

	var temperature *float64
	if t := envutil.Float("OPENAI_TEMPERATURE", -1); t >= 0 {
		temperature = &t
	}

	cfg := Config{
		Port:        envutil.String("PORT", "8080"),
		Environment: environment,
		Version:     version,

		DBDriver: envutil.String("DB_DRIVER", "postgres"),
		Postgres: db.PostgresConfig{
			DSN:             envutil.String("POSTGRES_DSN", ""),
			Host:            envutil.String("POSTGRES_HOST", "localhost"),
			Port:            envutil.String("POSTGRES_PORT", "5432"),
			User:            envutil.String("POSTGRES_USER", "postgres"),
			Password:        envutil.String("POSTGRES_PASSWORD", ""),
			Name:            envutil.String("POSTGRES_NAME", "gmb_lite"),
			SSLMode:         envutil.String("POSTGRES_SSLMODE", "disable"),
			MaxOpenConns:    envutil.Int("POSTGRES_MAX_OPEN_CONNS", 20),
			MaxIdleConns:    envutil.Int("POSTGRES_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: envutil.Seconds("POSTGRES_CONN_MAX_LIFETIME", 30*time.Minute),
		},
		SQLitePath: envutil.String("SQLITE_PATH", "gmb-lite.db"),

		OpenAI: openai.Config{
			APIKey:       envutil.String("OPENAI_API_KEY", ""),
			BaseURL:      envutil.String("OPENAI_BASE_URL", ""),
			Model:        envutil.String("OPENAI_MODEL", "gpt-4o-mini"),
			Timeout:      envutil.Seconds("OPENAI_TIMEOUT_SECONDS", 60*time.Second),
			MaxRetries:   envutil.Int("OPENAI_MAX_RETRIES", 2),
			Temperature:  temperature,
			NoTempModels: envutil.List("OPENAI_NO_TEMPERATURE_MODELS", []string{"o1-*", "o3-*", "gpt-5*"}),
		},
		OpeningTemperature: envutil.Float("OPENAI_OPENING_TEMPERATURE", 0.9),

		Redis: redis.Config{
			Addr:     envutil.String("REDIS_ADDR", ""),
			Password: envutil.String("REDIS_PASSWORD", ""),
			DB:       envutil.Int("REDIS_DB", 0),
		},
		ProfileCacheTTL: envutil.Seconds("PROFILE_CACHE_TTL", redis.DefaultProfileTTL),

		AdminAuth: services.AdminAuthConfig{
			Username:     envutil.String("ADMIN_USERNAME", "admin"),
			PasswordHash: envutil.String("ADMIN_PASSWORD_HASH", ""),
			JWTSecret:    envutil.String("JWT_SECRET_KEY", ""),
			AccessTTL:    envutil.Seconds("ACCESS_TOKEN_TTL", 12*time.Hour),
		},

		CORSOrigins:     envutil.List("CORS_ALLOW_ORIGINS", middleware.DefaultAllowOrigins),
		ServiceTimezone: envutil.String("SERVICE_TIMEZONE", "Asia/Kolkata"),
		ReviewBaseURL:   envutil.String("REVIEW_BASE_URL", ""),

		Dedup: duplicate.Policy{
			TextThreshold:    envutil.Float("DEDUP_TEXT_THRESHOLD", duplicate.DefaultTextThreshold),
			MeaningThreshold: envutil.Float("DEDUP_MEANING_THRESHOLD", duplicate.DefaultMeaningThreshold),
			Window:           envutil.Int("DEDUP_WINDOW", duplicate.DefaultWindow),
		},
		PrefixChars:   envutil.Int("DEDUP_PREFIX_CHARS", duplicate.DefaultPrefixChars),
		FragmentsFile: envutil.String("FRAGMENTS_FILE", ""),

		MetricsEnabled: envutil.Bool("METRICS_ENABLED", true),
		Otel:           observability.OtelConfigFromEnv(ServiceName, environment, version),

		ShutdownTimeout: envutil.Seconds("SHUTDOWN_TIMEOUT_SECONDS", 15*time.Second),
	}

	log.Info("config loaded",
		"env", cfg.Environment,
		"db_driver", cfg.DBDriver,
		"openai_model", cfg.OpenAI.Model,
		"redis", cfg.Redis.Addr != "",
		"admin_auth", cfg.AdminAuth.JWTSecret != "" && cfg.AdminAuth.PasswordHash != "",
		"timezone", cfg.ServiceTimezone,
	)
	return cfg
}
