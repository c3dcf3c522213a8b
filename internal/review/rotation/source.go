package rotation

import (
	"context"
	"fmt"
	"strings"

	"github.com/ankitsrivastava6773-gmb/gmb-lite-system/internal/review"
)

const (
	minDynamicWords = 4
	// maxDynamicWords is only stated in the prompt.
	maxDynamicWords = 15
)

// GeneratorSource asks the text generator for a one-line opening.
type GeneratorSource struct {
	Generator review.Generator
}

func (s GeneratorSource) Fragment(ctx context.Context, industry string, rating int) (string, error) {
	if s.Generator == nil {
		return "", nil
	}
	out, err := s.Generator.Complete(ctx, OpeningPrompt(industry, rating))
	if err != nil {
		return "", err
	}
	return CleanOpening(out), nil
}

func OpeningPrompt(industry string, rating int) string {
	tone := "neutral"
	if rating >= 4 {
		tone = "positive"
	}
	if strings.TrimSpace(industry) == "" {
		industry = "local business"
	}
	return fmt.Sprintf(`Write ONE natural opening line for a customer review.

Industry: %s
Tone: %s

Rules:
- Sound human and casual
- No marketing language
- No emojis
- Maximum %d words
- Do not mention Google or the rating

Return only the sentence.`, industry, tone, maxDynamicWords)
}

// CleanOpening strips wrapping quotes and trailing punctuation and folds
// line breaks into spaces. It returns "" for lines under four words; the
// word limit in the prompt is advice to the model, not a filter.
func CleanOpening(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	s = strings.Trim(s, "\"'“”‘’ ")
	s = strings.TrimRight(s, ".!?,;: ")
	s = strings.Trim(s, "\"'“”‘’ ")
	if len(strings.Fields(s)) < minDynamicWords {
		return ""
	}
	return s
}
