package llm

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ProviderError carries the HTTP status of a failed provider call when one is known.
type ProviderError struct {
	StatusCode int
	Err        error
}

func (e *ProviderError) Error() string {
	if e.StatusCode == 0 {
		return e.Err.Error()
	}
	return fmt.Sprintf("provider status %d: %v", e.StatusCode, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

var rateLimitPhrases = []string{"Rate limit", "tokens per min"}

// IsRateLimit reports whether err means the provider throttled us.
// Providers do not agree on error codes, so the message text is matched as well as a 429 status.
func IsRateLimit(err error) bool {
	if err == nil {
		return false
	}
	var pe *ProviderError
	if errors.As(err, &pe) && pe.StatusCode == http.StatusTooManyRequests {
		return true
	}
	msg := err.Error()
	for _, p := range rateLimitPhrases {
		if strings.Contains(msg, p) {
			return true
		}
	}
	return false
}
