package observability

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/ankitsrivastava6773-gmb/gmb-lite-system/internal/platform/logger"
)

type Metrics struct {
	apiRequests *CounterVec
	apiLatency  *HistogramVec
	apiInflight *Gauge

	llmRequests *CounterVec
	llmLatency  *HistogramVec
	llmTokens   *CounterVec

	reviews        *CounterVec
	reviewLatency  *HistogramVec
	reviewAttempts *HistogramVec
	duplicates     *CounterVec

	dbStats   *GaugeVec
	redisUp   *Gauge
	redisPing *Gauge
}

var (
	initOnce sync.Once
	instance *Metrics
)

// Current returns the process metrics, or nil when metrics are disabled.
// Every method is nil-safe.
func Current() *Metrics {
	return instance
}

func Init(enabled bool) *Metrics {
	if !enabled {
		return nil
	}
	initOnce.Do(func() {
		instance = NewMetrics()
	})
	return instance
}

// NewMetrics builds an unregistered set; tests use it directly.
func NewMetrics() *Metrics {
	latencyBuckets := []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30}
	return &Metrics{
		apiRequests: NewCounterVec("gmb_api_requests_total", "Total API requests by method/route/status.", []string{"method", "route", "status"}),
		apiLatency:  NewHistogramVec("gmb_api_request_duration_seconds", "API request latency in seconds by method/route/status.", []string{"method", "route", "status"}, latencyBuckets),
		apiInflight: NewGauge("gmb_api_inflight_requests", "In-flight API requests."),

		llmRequests: NewCounterVec("gmb_llm_requests_total", "LLM requests by model/endpoint/status.", []string{"model", "endpoint", "status"}),
		llmLatency:  NewHistogramVec("gmb_llm_request_duration_seconds", "LLM request latency in seconds.", []string{"model", "endpoint", "status"}, latencyBuckets),
		llmTokens:   NewCounterVec("gmb_llm_tokens_total", "LLM tokens by model/kind.", []string{"model", "kind"}),

		reviews:        NewCounterVec("gmb_reviews_total", "Review generations by outcome.", []string{"outcome"}),
		reviewLatency:  NewHistogramVec("gmb_review_duration_seconds", "End-to-end review generation latency.", []string{"outcome"}, latencyBuckets),
		reviewAttempts: NewHistogramVec("gmb_review_generator_calls", "Generator calls per accepted review.", nil, []float64{1, 2, 3}),
		duplicates:     NewCounterVec("gmb_review_duplicates_total", "Candidates rejected as duplicates by reason.", []string{"reason"}),

		dbStats:   NewGaugeVec("gmb_db_pool", "database/sql pool statistics.", []string{"stat"}),
		redisUp:   NewGauge("gmb_redis_up", "1 when the last redis ping succeeded."),
		redisPing: NewGauge("gmb_redis_ping_seconds", "Last redis ping latency in seconds."),
	}
}

func (m *Metrics) WriteHTTP(w http.ResponseWriter, r *http.Request) {
	if m == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "text/plain; version=0.0.4")
	_ = m.WritePrometheus(w)
}

func (m *Metrics) WritePrometheus(w io.Writer) error {
	if m == nil {
		return nil
	}
	for _, c := range []interface{ WritePrometheus(io.Writer) error }{
		m.apiRequests, m.apiLatency, m.apiInflight,
		m.llmRequests, m.llmLatency, m.llmTokens,
		m.reviews, m.reviewLatency, m.reviewAttempts, m.duplicates,
		m.dbStats, m.redisUp, m.redisPing,
	} {
		if err := c.WritePrometheus(w); err != nil {
			return err
		}
	}
	return nil
}

func (m *Metrics) ObserveAPI(method, route, status string, dur time.Duration) {
	if m == nil {
		return
	}
	m.apiRequests.Inc(method, route, status)
	m.apiLatency.Observe(dur.Seconds(), method, route, status)
}

func (m *Metrics) APIInflightInc() {
	if m == nil {
		return
	}
	m.apiInflight.Add(1)
}

func (m *Metrics) APIInflightDec() {
	if m == nil {
		return
	}
	m.apiInflight.Add(-1)
}

func (m *Metrics) ObserveLLMRequest(model, endpoint, status string, dur time.Duration, inputTokens, outputTokens int) {
	if m == nil {
		return
	}
	model = strings.TrimSpace(model)
	m.llmRequests.Inc(model, endpoint, status)
	if dur > 0 {
		m.llmLatency.Observe(dur.Seconds(), model, endpoint, status)
	}
	if inputTokens > 0 {
		m.llmTokens.Add(float64(inputTokens), model, "input")
	}
	if outputTokens > 0 {
		m.llmTokens.Add(float64(outputTokens), model, "output")
	}
}

// ObserveReview records one engine run. attempts counts generator calls for
// the body; duplicateReason is empty when the first candidate was accepted.
func (m *Metrics) ObserveReview(outcome string, attempts int, duplicateReason string, dur time.Duration) {
	if m == nil {
		return
	}
	m.reviews.Inc(outcome)
	m.reviewLatency.Observe(dur.Seconds(), outcome)
	if attempts > 0 {
		m.reviewAttempts.Observe(float64(attempts))
	}
	if duplicateReason != "" {
		m.duplicates.Inc(duplicateReason)
	}
}

func (m *Metrics) StartDBCollector(ctx context.Context, log *logger.Logger, db *gorm.DB, interval time.Duration) {
	if m == nil || db == nil {
		return
	}
	go tick(ctx, interval, func() {
		sqlDB, err := db.DB()
		if err != nil {
			log.Warn("metrics: db stats unavailable", "error", err)
			return
		}
		stats := sqlDB.Stats()
		m.dbStats.Set(float64(stats.OpenConnections), "open_connections")
		m.dbStats.Set(float64(stats.InUse), "in_use")
		m.dbStats.Set(float64(stats.Idle), "idle")
		m.dbStats.Set(float64(stats.WaitCount), "wait_count")
		m.dbStats.Set(stats.WaitDuration.Seconds(), "wait_duration_seconds")
		m.dbStats.Set(float64(stats.MaxOpenConnections), "max_open_connections")
	})
}

func (m *Metrics) StartRedisCollector(ctx context.Context, log *logger.Logger, rdb *redis.Client, interval time.Duration) {
	if m == nil || rdb == nil {
		return
	}
	go tick(ctx, interval, func() {
		start := time.Now()
		if err := rdb.Ping(ctx).Err(); err != nil {
			m.redisUp.Set(0)
			log.Warn("metrics: redis ping failed", "error", err)
			return
		}
		m.redisUp.Set(1)
		m.redisPing.Set(time.Since(start).Seconds())
	})
}

func tick(ctx context.Context, interval time.Duration, fn func()) {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			fn()
		}
	}
}

// StatusLabel renders an HTTP status for metric labels.
func StatusLabel(code int) string {
	if code <= 0 {
		return "0"
	}
	return strconv.Itoa(code)
}
