package observability

import (
	"strings"
	"testing"
	"time"
)

func TestMetricsNilSafe(t *testing.T) {
	var m *Metrics
	m.ObserveAPI("GET", "/", "200", time.Millisecond)
	m.ObserveLLMRequest("m", "/v1/responses", "200", time.Second, 1, 2)
	m.ObserveReview("generated", 1, "", time.Second)
	m.APIInflightInc()
	m.APIInflightDec()
	if err := m.WritePrometheus(&strings.Builder{}); err != nil {
		t.Fatalf("WritePrometheus on nil: %v", err)
	}
}

func TestWritePrometheus(t *testing.T) {
	m := NewMetrics()
	m.ObserveAPI("POST", "/api/generate-review", "200", 150*time.Millisecond)
	m.ObserveReview("generated", 2, "structure", 2*time.Second)
	m.ObserveReview("generated", 1, "", time.Second)
	m.ObserveLLMRequest("gpt-4o-mini", "/v1/responses", "200", time.Second, 120, 40)

	var b strings.Builder
	if err := m.WritePrometheus(&b); err != nil {
		t.Fatalf("WritePrometheus: %v", err)
	}
	out := b.String()
	for _, want := range []string{
		`gmb_api_requests_total{method="POST",route="/api/generate-review",status="200"} 1.000000`,
		`gmb_reviews_total{outcome="generated"} 2.000000`,
		`gmb_review_duplicates_total{reason="structure"} 1.000000`,
		`gmb_review_generator_calls_bucket{le="1"} 1`,
		`gmb_review_generator_calls_bucket{le="2"} 2`,
		`gmb_review_generator_calls_count 2`,
		`gmb_llm_tokens_total{model="gpt-4o-mini",kind="input"} 120.000000`,
		"# TYPE gmb_api_request_duration_seconds histogram",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
}

func TestLabelString(t *testing.T) {
	got := labelString([]string{"a", "b"}, []string{`x"y`})
	if got != `{a="x\"y",b="unknown"}` {
		t.Fatalf("labelString=%s", got)
	}
	if withLe("", "1") != `{le="1"}` || withLe(`{a="b"}`, "+Inf") != `{a="b",le="+Inf"}` {
		t.Fatalf("withLe mismatch")
	}
}

func TestParseHeaders(t *testing.T) {
	h := ParseHeaders(" api-key = abc , broken, =x, trace=on ")
	if len(h) != 2 || h["api-key"] != "abc" || h["trace"] != "on" {
		t.Fatalf("ParseHeaders=%v", h)
	}
	if ParseHeaders("") != nil {
		t.Fatalf("expected nil for empty input")
	}
}
