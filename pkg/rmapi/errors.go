package rmapi

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Common static errors that can be wrapped with context.
var (
	ErrNotFound           = errors.New("entity not found")
	ErrMalformedReference = errors.New("malformed reference")
	ErrPageLimitExceeded  = errors.New("page limit exceeded")
	ErrMissingField       = errors.New("missing required field")
	ErrInvalidID          = errors.New("id must be a positive integer")
	ErrConfigRequired     = errors.New("config is required")
	ErrInvalidEndpoint    = errors.New("invalid API endpoint")
	ErrUnexpectedStatus   = errors.New("unexpected status code")
	ErrNoMoreItems        = errors.New("no more items")
)

// FetchReason classifies a FetchError.
type FetchReason string

// Fetch failure reasons.
const (
	ReasonNotFound           FetchReason = "not_found"
	ReasonMalformedReference FetchReason = "malformed_reference"
	ReasonPageLimitExceeded  FetchReason = "page_limit_exceeded"
)

// FetchError is returned when an entity operation cannot complete for a
// reason other than transport or decoding.
type FetchError struct {
	Reason FetchReason
	Kind   Kind
	// ID is set for ReasonNotFound.
	ID int
	// Reference is the offending URL for ReasonMalformedReference.
	Reference string
	// Path and Limit describe the listing for ReasonPageLimitExceeded.
	Path  string
	Limit int
	Err   error
}

// Error implements the error interface.
func (e *FetchError) Error() string {
	switch e.Reason {
	case ReasonNotFound:
		return fmt.Sprintf("%s %d not found", e.Kind, e.ID)
	case ReasonMalformedReference:
		return fmt.Sprintf("malformed reference %q: no positive integer id", e.Reference)
	case ReasonPageLimitExceeded:
		return fmt.Sprintf("pagination of %s exceeded %d pages", e.Path, e.Limit)
	default:
		return fmt.Sprintf("fetch failed: %s", e.Reason)
	}
}

// Unwrap returns the underlying cause, if any.
func (e *FetchError) Unwrap() error {
	return e.Err
}

// Is matches the reason sentinels so callers can use errors.Is.
func (e *FetchError) Is(target error) bool {
	switch target { //nolint:errorlint // sentinel identity comparison
	case ErrNotFound:
		return e.Reason == ReasonNotFound
	case ErrMalformedReference:
		return e.Reason == ReasonMalformedReference
	case ErrPageLimitExceeded:
		return e.Reason == ReasonPageLimitExceeded
	default:
		return false
	}
}

// DecodeError reports JSON that does not match an entity or envelope shape.
type DecodeError struct {
	Kind  Kind
	Field string
	Err   error
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("decoding %s: %v", e.Kind, e.Err)
	}

	return fmt.Sprintf("decoding %s field %q: %v", e.Kind, e.Field, e.Err)
}

// Unwrap returns the underlying cause.
func (e *DecodeError) Unwrap() error {
	return e.Err
}

// TransportErrorKind classifies a TransportError.
type TransportErrorKind string

// Transport failure kinds.
const (
	TransportNotFound    TransportErrorKind = "not_found"
	TransportTimeout     TransportErrorKind = "timeout"
	TransportNetwork     TransportErrorKind = "network"
	TransportServerError TransportErrorKind = "server_error"
	TransportClientError TransportErrorKind = "client_error"
)

// TransportError is an opaque pass-through of a failed HTTP exchange.
type TransportError struct {
	Kind       TransportErrorKind
	Method     string
	Path       string
	StatusCode int
	// Detail is the upstream error message, when the body carried one.
	Detail string
	Err    error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	switch {
	case e.StatusCode != 0 && e.Detail != "":
		return fmt.Sprintf("%s %s: %s (status: %d)", e.Method, e.Path, e.Detail, e.StatusCode)
	case e.StatusCode != 0:
		return fmt.Sprintf("%s %s: %s (status: %d)", e.Method, e.Path, e.Kind, e.StatusCode)
	case e.Err != nil:
		return fmt.Sprintf("%s %s: %s: %v", e.Method, e.Path, e.Kind, e.Err)
	default:
		return fmt.Sprintf("%s %s: %s", e.Method, e.Path, e.Kind)
	}
}

// Unwrap returns the underlying cause.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// APIError represents the error document the API sends with 4xx/5xx responses.
type APIError struct {
	Message string `json:"error" yaml:"error"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return e.Message
}

// ParseAPIError parses an error response body.
func ParseAPIError(data []byte) (*APIError, error) {
	var apiErr APIError

	err := json.Unmarshal(data, &apiErr)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal error response: %w", err)
	}

	return &apiErr, nil
}

// IsNotFound checks if the error is a not found error, either a FetchError
// or the raw transport 404 underneath one.
func IsNotFound(err error) bool {
	if errors.Is(err, ErrNotFound) {
		return true
	}

	transportErr := &TransportError{}
	if errors.As(err, &transportErr) {
		return transportErr.Kind == TransportNotFound
	}

	return false
}

// IsDecodeError checks if the error came from decoding a response.
func IsDecodeError(err error) bool {
	decodeErr := &DecodeError{}

	return errors.As(err, &decodeErr)
}

// IsTransportError checks if the error came from the HTTP layer.
func IsTransportError(err error) bool {
	transportErr := &TransportError{}

	return errors.As(err, &transportErr)
}
