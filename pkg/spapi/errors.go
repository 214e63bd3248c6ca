package spapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// ErrorKind is the closed set of failure categories surfaced by the client.
type ErrorKind string

const (
	// ErrorKindAuth covers 401 and 403 responses.
	ErrorKindAuth ErrorKind = "auth"

	// ErrorKindNotFound covers 404 responses.
	ErrorKindNotFound ErrorKind = "not_found"

	// ErrorKindRateLimited covers 429 responses.
	ErrorKindRateLimited ErrorKind = "rate_limited"

	// ErrorKindValidation covers the remaining 4xx responses, typically 422.
	ErrorKindValidation ErrorKind = "validation"

	// ErrorKindServer covers 5xx responses and transport failures that
	// survived the retry budget.
	ErrorKindServer ErrorKind = "server"

	// ErrorKindGeneric is the catch-all for anything not covered above.
	ErrorKindGeneric ErrorKind = "generic"
)

// ErrorDetail is one raw error object from the server's JSON:API error
// envelope. Fields the server omits stay empty.
type ErrorDetail struct {
	Status string `json:"status,omitempty" yaml:"status,omitempty"`
	Code   string `json:"code,omitempty"   yaml:"code,omitempty"`
	Title  string `json:"title,omitempty"  yaml:"title,omitempty"`
	Detail string `json:"detail,omitempty" yaml:"detail,omitempty"`
}

// String returns the most descriptive field available.
func (d ErrorDetail) String() string {
	switch {
	case d.Detail != "" && d.Title != "":
		return d.Title + ": " + d.Detail
	case d.Detail != "":
		return d.Detail
	case d.Title != "":
		return d.Title
	default:
		return ""
	}
}

// APIError is the typed error surfaced for any non-2xx response or for a
// transport failure once retries are exhausted.
type APIError struct {
	Kind    ErrorKind
	Status  int
	Message string
	// Errors holds the raw error objects from the response body, possibly
	// empty when the body was missing or unparsable.
	Errors []ErrorDetail
	// RetryAfter is only meaningful for ErrorKindRateLimited.
	RetryAfter time.Duration

	cause error
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return e.Message
}

// Unwrap exposes the underlying transport error, if any.
func (e *APIError) Unwrap() error {
	return e.cause
}

// FirstDetail returns the first server error object or nil.
func (e *APIError) FirstDetail() *ErrorDetail {
	if len(e.Errors) > 0 {
		return &e.Errors[0]
	}

	return nil
}

// errorEnvelope is the server's structured error body.
type errorEnvelope struct {
	Errors []ErrorDetail `json:"errors"`
}

// classifyStatus maps an HTTP status to an error kind.
func classifyStatus(status int) ErrorKind {
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return ErrorKindAuth
	case status == http.StatusNotFound:
		return ErrorKindNotFound
	case status == http.StatusTooManyRequests:
		return ErrorKindRateLimited
	case status >= 400 && status < 500:
		return ErrorKindValidation
	case status >= 500:
		return ErrorKindServer
	default:
		return ErrorKindGeneric
	}
}

// ClassifyResponse builds an APIError from a non-2xx response. It never
// fails: a body that is not the structured error envelope degrades to the
// message "HTTP <status>" with an empty detail list, so a parse problem
// cannot mask the original failure. Classifying the same inputs twice yields
// equivalent errors.
func ClassifyResponse(status int, header http.Header, body []byte) *APIError {
	apiErr := &APIError{
		Kind:   classifyStatus(status),
		Status: status,
	}

	var envelope errorEnvelope
	if err := json.Unmarshal(body, &envelope); err == nil && len(envelope.Errors) > 0 {
		apiErr.Errors = envelope.Errors
	}

	apiErr.Message = errorMessage(status, apiErr.Errors)

	if apiErr.Kind == ErrorKindRateLimited && header != nil {
		if wait, ok := ParseRetryAfter(header.Get("Retry-After")); ok {
			apiErr.RetryAfter = wait
		}
	}

	return apiErr
}

// ClassifyTransportFailure wraps a connection-level error that survived the
// retry budget into a server-kind APIError.
func ClassifyTransportFailure(err error) *APIError {
	return &APIError{
		Kind:    ErrorKindServer,
		Message: fmt.Sprintf("request failed: %v", err),
		cause:   err,
	}
}

// errorMessage renders the human-readable message for an APIError.
func errorMessage(status int, details []ErrorDetail) string {
	parts := make([]string, 0, len(details))

	for _, detail := range details {
		if s := detail.String(); s != "" {
			parts = append(parts, s)
		}
	}

	if len(parts) == 0 {
		return "HTTP " + strconv.Itoa(status)
	}

	return strings.Join(parts, "; ")
}

// ParseRetryAfter parses a Retry-After header value in seconds (integer or
// float). An unparsable or negative value is treated as "no hint", as is a
// value too large to represent as a time.Duration.
func ParseRetryAfter(value string) (time.Duration, bool) {
	if value == "" {
		return 0, false
	}

	seconds, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || seconds < 0 {
		return 0, false
	}

	if seconds > float64(math.MaxInt64)/float64(time.Second) {
		return 0, false
	}

	return time.Duration(seconds * float64(time.Second)), true
}

// IsNotFound checks whether the error is a not-found API error.
func IsNotFound(err error) bool {
	return hasKind(err, ErrorKindNotFound)
}

// IsAuth checks whether the error is an authentication or authorization
// failure.
func IsAuth(err error) bool {
	return hasKind(err, ErrorKindAuth)
}

// IsRateLimited checks whether the error is a rate-limit rejection.
func IsRateLimited(err error) bool {
	return hasKind(err, ErrorKindRateLimited)
}

// IsValidation checks whether the error is a validation failure.
func IsValidation(err error) bool {
	return hasKind(err, ErrorKindValidation)
}

// IsServerError checks whether the error is a server-side or transport
// failure.
func IsServerError(err error) bool {
	return hasKind(err, ErrorKindServer)
}

func hasKind(err error, kind ErrorKind) bool {
	apiErr := &APIError{}
	if errors.As(err, &apiErr) {
		return apiErr.Kind == kind
	}

	return false
}

// Common static errors that can be wrapped with context.
var (
	ErrConfigRequired           = errors.New("config is required")
	ErrAddressRequired          = errors.New("address is required")
	ErrOrganizationNameRequired = errors.New("organization name is required")
	ErrWorkspaceIDRequired      = errors.New("workspace ID is required")
	ErrRunIDRequired            = errors.New("run ID is required")
	ErrSkipTLSOnlyInDev         = errors.New("SkipTLSVerify is only allowed in development environments")
	ErrNoMoreItems              = errors.New("no more items")
	ErrCacheDisabled            = errors.New("cache disabled")
	ErrCacheKeyNotFound         = errors.New("key not found")
	ErrCacheEntryExpired        = errors.New("entry expired")
)
