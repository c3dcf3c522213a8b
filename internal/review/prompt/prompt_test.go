package prompt

import (
	"strings"
	"testing"

	"github.com/ankitsrivastava6773-gmb/gmb-lite-system/internal/review/signals"
)

func TestTone(t *testing.T) {
	cases := map[int]string{
		6: "very positive and happy",
		5: "very positive and happy",
		4: "positive but natural",
		3: "neutral and honest",
		2: "calm and factual",
		0: "calm and factual",
	}
	for rating, want := range cases {
		if got := Tone(rating); got != want {
			t.Fatalf("Tone(%d)=%q, want %q", rating, got, want)
		}
	}
}

func TestWordCeiling(t *testing.T) {
	cases := map[int]int{0: 70, 1: 25, 2: 45, 3: 70, 4: 110, 5: 160, 6: 70, -1: 70}
	for v, want := range cases {
		if got := WordCeiling(v); got != want {
			t.Fatalf("WordCeiling(%d)=%d, want %d", v, got, want)
		}
	}
}

func TestBuild(t *testing.T) {
	p := Build(Input{
		Rating:     5,
		Experience: "quick service",
		Verbosity:  2,
		Opening:    "During my recent visit here",
		Narrative:  "Short & casual",
		Signals: signals.Ranked{
			Contexts:     []string{"fast and reliable delivery", "family run", "third"},
			TrustSignals: []string{"10 years in business", "extra"},
		},
	})

	for _, want := range []string{
		"Start the review naturally like this:\n\"During my recent visit here\"",
		"Language: English",
		"Rating: 5 stars",
		"Tone: very positive and happy",
		"Length: short and crisp",
		"Context (use only if natural):\nfast and reliable delivery; family run\n",
		"Trust signal (implicit):\n10 years in business\n",
		"Area hint:\nNone",
		"User experience:\nquick service",
		"\n\nNarrative style:\nShort & casual",
	} {
		if !strings.Contains(p, want) {
			t.Fatalf("prompt missing %q:\n%s", want, p)
		}
	}
	if strings.Contains(p, "third") || strings.Contains(p, "extra") {
		t.Fatalf("caps not applied:\n%s", p)
	}
	if !strings.HasSuffix(p, "Write a short review (35–50 words).") {
		t.Fatalf("prompt should end with length directive:\n%s", p)
	}
}

func TestBuildToneOverrideAndDefaults(t *testing.T) {
	p := Build(Input{Rating: 3, Tone: "warm", Language: "Hindi"})
	if !strings.Contains(p, "Tone: warm") || !strings.Contains(p, "Language: Hindi") {
		t.Fatalf("override ignored:\n%s", p)
	}
	if !strings.Contains(p, "Length: medium length") || !strings.Contains(p, "User experience:\nNot specified") {
		t.Fatalf("defaults missing:\n%s", p)
	}
	if strings.Contains(p, "Narrative style") || strings.Contains(p, "Start the review") {
		t.Fatalf("unexpected optional sections:\n%s", p)
	}
}
