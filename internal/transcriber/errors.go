package transcriber

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/sashabaranov/go-openai"
)

// BackendError is a failure reported by the speech-to-text service, as
// opposed to a session that was cancelled.
type BackendError struct {
	Provider string
	// Status is the HTTP status of the API reply, 0 when none was received.
	Status int
	Err    error
}

func (e *BackendError) Error() string {
	name := e.Provider
	if name == "" {
		name = "speech backend"
	}
	if e.Status != 0 {
		return fmt.Sprintf("%s returned %d: %v", name, e.Status, e.Err)
	}
	return fmt.Sprintf("%s: %v", name, e.Err)
}

func (e *BackendError) Unwrap() error { return e.Err }

// Unauthorized reports a rejected API key.
func (e *BackendError) Unauthorized() bool {
	return e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden
}

// backendError wraps err for provider, picking the status out of go-openai
// API and request errors.
func backendError(provider string, err error) *BackendError {
	be := &BackendError{Provider: provider, Err: err}
	var apiErr *openai.APIError
	var reqErr *openai.RequestError
	switch {
	case errors.As(err, &apiErr):
		be.Status = apiErr.HTTPStatusCode
	case errors.As(err, &reqErr):
		be.Status = reqErr.HTTPStatusCode
	}
	return be
}

// AsBackendError returns the BackendError in err's chain, if any.
func AsBackendError(err error) (*BackendError, bool) {
	var be *BackendError
	if errors.As(err, &be) {
		return be, true
	}
	return nil, false
}
