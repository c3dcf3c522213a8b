package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/ankitsrivastava6773-gmb/gmb-lite-system/internal/observability"
	"github.com/ankitsrivastava6773-gmb/gmb-lite-system/internal/platform/httpx"
	"github.com/ankitsrivastava6773-gmb/gmb-lite-system/internal/platform/logger"
)

const responsesPath = "/v1/responses"

type Client interface {
	// GenerateText returns the model's text output. system may be empty.
	GenerateText(ctx context.Context, system string, user string) (string, error)
}

type Config struct {
	APIKey     string
	BaseURL    string
	Model      string
	Timeout    time.Duration
	MaxRetries int
	// Temperature is omitted from requests when nil.
	Temperature *float64
	// NoTempModels lists models that reject temperature. "o1-*" matches a
	// prefix.
	NoTempModels []string
}

type client struct {
	log        *logger.Logger
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
	maxRetries int

	temperature *float64

	noTempModels   map[string]bool
	noTempPrefixes []string

	// Models that rejected temperature at runtime; shared between clones.
	noTempMu   *sync.RWMutex
	noTempSeen map[string]bool
}

func NewClient(cfg Config, log *logger.Logger) (Client, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, fmt.Errorf("missing OPENAI_API_KEY")
	}
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = "https://api.openai.com"
	}
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = "gpt-4o-mini"
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	maxRetries := cfg.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}
	noTempModels, noTempPrefixes := parseNoTempModelRules(cfg.NoTempModels)

	return &client{
		log:            log.With("service", "OpenAIClient"),
		baseURL:        baseURL,
		apiKey:         apiKey,
		model:          model,
		httpClient:     &http.Client{Timeout: timeout},
		maxRetries:     maxRetries,
		temperature:    cfg.Temperature,
		noTempModels:   noTempModels,
		noTempPrefixes: noTempPrefixes,
		noTempMu:       &sync.RWMutex{},
		noTempSeen:     map[string]bool{},
	}, nil
}

// WithTemperature returns a client that sends t instead of the base
// temperature. Other clients are returned unchanged.
func WithTemperature(base Client, t float64) Client {
	c, ok := base.(*client)
	if !ok {
		return base
	}
	clone := *c
	clone.temperature = &t
	return &clone
}

func normalizeModelKey(m string) string {
	return strings.ToLower(strings.TrimSpace(m))
}

func parseNoTempModelRules(rules []string) (map[string]bool, []string) {
	m := map[string]bool{}
	var prefixes []string
	for _, rule := range rules {
		s := normalizeModelKey(rule)
		if s == "" {
			continue
		}
		if p, ok := strings.CutSuffix(s, "*"); ok {
			if p = strings.TrimRight(p, "-_./:"); p != "" {
				prefixes = append(prefixes, p)
			}
			continue
		}
		m[s] = true
	}
	return m, prefixes
}

func (c *client) modelIsNoTemp(model string) bool {
	m := normalizeModelKey(model)
	if c.noTempModels[m] {
		return true
	}
	for _, p := range c.noTempPrefixes {
		if strings.HasPrefix(m, p) {
			return true
		}
	}
	c.noTempMu.RLock()
	defer c.noTempMu.RUnlock()
	return c.noTempSeen[m]
}

func (c *client) noteNoTempModel(model string) {
	c.noTempMu.Lock()
	c.noTempSeen[normalizeModelKey(model)] = true
	c.noTempMu.Unlock()
}

type httpError struct {
	StatusCode int
	Body       string
}

func (e *httpError) Error() string {
	return fmt.Sprintf("openai http %d: %s", e.StatusCode, e.Body)
}

func (e *httpError) HTTPStatusCode() int { return e.StatusCode }

func isUnsupportedTemperatureParam(err error) bool {
	var he *httpError
	if !errors.As(err, &he) || he.StatusCode != http.StatusBadRequest {
		return false
	}
	msg := strings.ToLower(he.Body)
	if !strings.Contains(msg, "temperature") {
		return false
	}
	for _, hint := range []string{"unsupported", "unknown parameter", "unrecognized", "not supported", "does not support", "only the default"} {
		if strings.Contains(msg, hint) {
			return true
		}
	}
	return false
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responsesRequest struct {
	Model       string    `json:"model"`
	Input       []message `json:"input"`
	Temperature *float64  `json:"temperature,omitempty"`
}

type responsesResponse struct {
	Output []struct {
		Type    string `json:"type"`
		Role    string `json:"role,omitempty"`
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text,omitempty"`
		} `json:"content,omitempty"`
	} `json:"output"`
	Refusal string `json:"refusal,omitempty"`
	Usage   struct {
		InputTokens  int `json:"input_tokens"`
		OutputTokens int `json:"output_tokens"`
	} `json:"usage"`
}

func (r responsesResponse) outputText() string {
	var out strings.Builder
	for _, item := range r.Output {
		if item.Type != "message" || item.Role != "assistant" {
			continue
		}
		for _, part := range item.Content {
			if part.Type == "output_text" {
				out.WriteString(part.Text)
			}
		}
	}
	return out.String()
}

func (c *client) GenerateText(ctx context.Context, system string, user string) (string, error) {
	req := responsesRequest{Model: c.model}
	if strings.TrimSpace(system) != "" {
		req.Input = append(req.Input, message{Role: "system", Content: system})
	}
	req.Input = append(req.Input, message{Role: "user", Content: user})
	if c.temperature != nil && !c.modelIsNoTemp(c.model) {
		req.Temperature = c.temperature
	}

	var resp responsesResponse
	err := c.do(ctx, &req, &resp)
	if err != nil && req.Temperature != nil && isUnsupportedTemperatureParam(err) {
		c.log.Warn("model rejected temperature; retrying without it", "model", c.model)
		c.noteNoTempModel(req.Model)
		req.Temperature = nil
		err = c.do(ctx, &req, &resp)
	}
	if err != nil {
		return "", err
	}
	if resp.Refusal != "" {
		return "", fmt.Errorf("model refused: %s", resp.Refusal)
	}
	text := strings.TrimSpace(resp.outputText())
	if text == "" {
		return "", fmt.Errorf("no output_text found in response")
	}
	return text, nil
}

func (c *client) doOnce(ctx context.Context, body *responsesRequest) (*http.Response, []byte, error) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return nil, nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+responsesPath, &buf)
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, err
	}
	raw, readErr := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if readErr != nil {
		return resp, nil, readErr
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return resp, raw, &httpError{StatusCode: resp.StatusCode, Body: string(raw)}
	}
	return resp, raw, nil
}

func (c *client) do(ctx context.Context, body *responsesRequest, out *responsesResponse) error {
	backoff := 500 * time.Millisecond
	start := time.Now()

	for attempt := 0; ; attempt++ {
		resp, raw, err := c.doOnce(ctx, body)
		if err == nil {
			if uErr := json.Unmarshal(raw, out); uErr != nil {
				return fmt.Errorf("openai decode error: %w", uErr)
			}
			observability.Current().ObserveLLMRequest(body.Model, responsesPath, statusLabel(resp, nil), time.Since(start), out.Usage.InputTokens, out.Usage.OutputTokens)
			return nil
		}
		if !httpx.IsRetryableError(err) || attempt >= c.maxRetries || ctx.Err() != nil {
			observability.Current().ObserveLLMRequest(body.Model, responsesPath, statusLabel(resp, err), time.Since(start), 0, 0)
			return err
		}

		sleepFor := httpx.Jitter(httpx.RetryAfter(resp, backoff, 10*time.Second))
		c.log.Warn("OpenAI request retrying",
			"attempt", attempt+1,
			"max_retries", c.maxRetries,
			"sleep", sleepFor.String(),
			"error", err.Error(),
		)
		if err := httpx.Sleep(ctx, sleepFor); err != nil {
			return err
		}
		backoff *= 2
	}
}

func statusLabel(resp *http.Response, err error) string {
	switch {
	case resp != nil:
		return strconv.Itoa(resp.StatusCode)
	case errors.Is(err, context.Canceled):
		return "canceled"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	}
	return "error"
}
