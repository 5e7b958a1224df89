package providers

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrMissingAPIKey is returned when no OpenAI API key is available.
var ErrMissingAPIKey = errors.New("missing OpenAI API key")

// TransportError reports a failed round trip: either the request never got
// a response, or the endpoint answered with a non-2xx status.
type TransportError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return "transport error: " + e.Err.Error()
	}
	return fmt.Sprintf("transport error: failed to get a valid response (status %d)", e.StatusCode)
}

func (e *TransportError) Unwrap() error { return e.Err }

// SerializationError reports a request body that could not be encoded or a
// response body that could not be decoded.
type SerializationError struct {
	Op  string
	Err error
}

func (e *SerializationError) Error() string {
	return "serialization error: " + e.Op + ": " + e.Err.Error()
}

func (e *SerializationError) Unwrap() error { return e.Err }

// IsTransportError checks if err is or wraps a TransportError.
func IsTransportError(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

// IsSerializationError checks if err is or wraps a SerializationError.
func IsSerializationError(err error) bool {
	var se *SerializationError
	return errors.As(err, &se)
}

// IsAuthError reports whether err is a missing key or an endpoint rejection
// of the credentials (401 or 403).
func IsAuthError(err error) bool {
	if errors.Is(err, ErrMissingAPIKey) {
		return true
	}
	var te *TransportError
	if errors.As(err, &te) {
		return te.StatusCode == http.StatusUnauthorized || te.StatusCode == http.StatusForbidden
	}
	return false
}
