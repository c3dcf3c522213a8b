package openai

import (
	"context"

	"github.com/ankitsrivastava6773-gmb/gmb-lite-system/internal/review"
)

// Generator sends each prompt as a single user message.
type Generator struct {
	Client Client
	System string
}

var _ review.Generator = Generator{}

func (g Generator) Complete(ctx context.Context, prompt string) (string, error) {
	return g.Client.GenerateText(ctx, g.System, prompt)
}
