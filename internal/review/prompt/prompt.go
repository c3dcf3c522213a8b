// Package prompt assembles the generation prompt for a single review.
package prompt

import (
	"fmt"
	"strings"

	"github.com/ankitsrivastava6773-gmb/gmb-lite-system/internal/review/signals"
)

const (
	DefaultLanguage = "English"

	RetryStructure = "\nRewrite completely with a different structure and flow."
	RetryWording   = "\nRewrite with different wording and emotion."
)

type Input struct {
	Rating     int
	Language   string
	Experience string
	Tone       string // overrides the rating-derived tone when set
	Verbosity  int    // 1-5; anything else means unset
	Opening    string
	Narrative  string
	Signals    signals.Ranked
}

// Tone maps a star rating to a tone descriptor.
func Tone(rating int) string {
	switch {
	case rating >= 5:
		return "very positive and happy"
	case rating == 4:
		return "positive but natural"
	case rating == 3:
		return "neutral and honest"
	default:
		return "calm and factual"
	}
}

func LengthHint(verbosity int) string {
	switch {
	case verbosity <= 0:
		return "medium length"
	case verbosity <= 2:
		return "short and crisp"
	case verbosity == 3:
		return "balanced length"
	default:
		return "detailed but natural"
	}
}

// LengthDirective is the explicit word range appended for a known verbosity.
func LengthDirective(verbosity int) string {
	switch verbosity {
	case 1:
		return "Write a very short review (20–30 words)."
	case 2:
		return "Write a short review (35–50 words)."
	case 3:
		return "Write a medium-length review (60–80 words)."
	case 4:
		return "Write a detailed review (90–120 words)."
	case 5:
		return "Write a long but natural review (130–160 words)."
	}
	return ""
}

var wordCeilings = map[int]int{1: 25, 2: 45, 3: 70, 4: 110, 5: 160}

const DefaultWordCeiling = 70

// WordCeiling is the hard word limit for a verbosity level.
func WordCeiling(verbosity int) int {
	if n, ok := wordCeilings[verbosity]; ok {
		return n
	}
	return DefaultWordCeiling
}

func Build(in Input) string {
	tone := strings.TrimSpace(in.Tone)
	if tone == "" {
		tone = Tone(in.Rating)
	}
	lang := strings.TrimSpace(in.Language)
	if lang == "" {
		lang = DefaultLanguage
	}
	experience := strings.TrimSpace(in.Experience)
	if experience == "" {
		experience = "Not specified"
	}
	sig := in.Signals.Capped()

	var b strings.Builder
	if in.Opening != "" {
		fmt.Fprintf(&b, "Start the review naturally like this:\n%q\n\nContinue naturally as a real human would.\n\n", in.Opening)
	}
	b.WriteString("Write a REAL human Google review.\n\n")
	fmt.Fprintf(&b, "Language: %s\nRating: %d stars\nTone: %s\nLength: %s\n\n", lang, in.Rating, tone, LengthHint(in.Verbosity))
	b.WriteString("Rules:\n- First person only\n- No marketing language\n- No emojis\n- Natural imperfections allowed\n- Do NOT sound promotional\n\n")
	section(&b, "Context (use only if natural)", sig.Contexts)
	section(&b, "Service / Product", sig.Services)
	section(&b, "Trust signal (implicit)", sig.TrustSignals)
	section(&b, "Area hint", sig.Areas)
	section(&b, "SEO hint (max one, subtle)", sig.SEOKeywords)
	fmt.Fprintf(&b, "User experience:\n%s\n\nWrite like a real customer.", experience)

	if in.Narrative != "" {
		fmt.Fprintf(&b, "\n\nNarrative style:\n%s", in.Narrative)
	}
	if d := LengthDirective(in.Verbosity); d != "" {
		b.WriteString("\n\n" + d)
	}
	return b.String()
}

func section(b *strings.Builder, title string, items []string) {
	val := "None"
	if len(items) > 0 {
		val = strings.Join(items, "; ")
	}
	fmt.Fprintf(b, "%s:\n%s\n\n", title, val)
}
