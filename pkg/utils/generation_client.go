package utils

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"
)

// GenerationClient sends one compiled instruction to a text-completion model
// and returns the raw text it produced. Implementations do not retry.
type GenerationClient interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// DecodingParams are fixed per deployment.
type DecodingParams struct {
	Model       string
	Temperature float32
	MaxTokens   int
	Timeout     time.Duration
}

// classifyGenerationError maps a provider failure onto ErrGenerationTimeout
// or ErrGenerationTransport, keeping the cause in the chain.
func classifyGenerationError(provider string, err error) error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return fmt.Errorf("%s: %w: %w", provider, ErrGenerationTimeout, err)
	}
	return fmt.Errorf("%s: %w: %w", provider, ErrGenerationTransport, err)
}
