package llm

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnsupportedProvider = errors.New("unsupported provider")
	ErrMissingCredential   = errors.New("missing API key")
	ErrProviderRequest     = errors.New("provider request failed")
	ErrMalformedResponse   = errors.New("malformed provider response")
)

// ProviderRequestError is returned when a provider answers with an error
// status. Body holds the raw response body or the provider's error message;
// Error collapses its whitespace onto one line.
type ProviderRequestError struct {
	Provider   string
	StatusCode int
	Body       string
}

func (e *ProviderRequestError) Error() string {
	return fmt.Sprintf("%s API request failed with status code %d: %s", e.Provider, e.StatusCode, strings.Join(strings.Fields(e.Body), " "))
}

// Is lets errors.Is(err, ErrProviderRequest) match.
func (e *ProviderRequestError) Is(target error) bool {
	return target == ErrProviderRequest
}
