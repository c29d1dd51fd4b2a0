package server

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/reece-davies/trampoline-coach-ai/internal/llm"
)

// HTTPStatus returns the appropriate HTTP status code for an error.
func HTTPStatus(err error) int {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		return http.StatusBadRequest
	}

	var providerErr *llm.ProviderError
	if errors.As(err, &providerErr) {
		// Provider failures surface as internal errors regardless of the
		// upstream code; the code is preserved in the message.
		return http.StatusInternalServerError
	}

	return http.StatusInternalServerError
}
