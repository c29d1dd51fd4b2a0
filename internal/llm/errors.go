package llm

import (
	"errors"
	"fmt"

	"google.golang.org/api/googleapi"
)

// ProviderError indicates a failure reported by the LLM provider: quota,
// malformed request, network failure. It is terminal for the request and is
// never retried.
type ProviderError struct {
	// Code is the provider's HTTP-ish status code, 0 when unknown.
	Code    int
	Message string
}

func (e *ProviderError) Error() string {
	if e.Code > 0 {
		return fmt.Sprintf("provider error %d: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("provider error: %s", e.Message)
}

// asProviderError converts an upstream SDK error into a *ProviderError.
func asProviderError(err error) *ProviderError {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return &ProviderError{Code: apiErr.Code, Message: apiErr.Message}
	}
	return &ProviderError{Message: err.Error()}
}
