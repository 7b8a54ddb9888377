package llm

import (
	"context"
	"errors"
	"fmt"
)

// Client is the generative-text capability boundary. Implementations
// wrap one provider SDK and must classify quota errors (see
// ErrRateLimited) so callers can apply retry policy.
type Client interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// ErrRateLimited marks transient quota / rate-limit failures. Callers
// check it with errors.Is; any other error is non-retryable.
var ErrRateLimited = errors.New("llm: rate limited")

// rateLimited wraps a provider error so errors.Is(err, ErrRateLimited)
// holds while the original error text is preserved.
func rateLimited(err error) error {
	return fmt.Errorf("%w: %v", ErrRateLimited, err)
}
