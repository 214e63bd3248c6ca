package constants

import "time"

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0600
)

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout is the default timeout for a single request attempt.
	DefaultHTTPTimeout = 30 * time.Second

	// ShortHTTPTimeout is used for quick operations such as the ping check.
	ShortHTTPTimeout = 10 * time.Second
)

// Retry tuning.
const (
	// DefaultRetryMax is the default maximum number of retries.
	DefaultRetryMax = 3

	// DefaultBackoffBase is the starting backoff between retries.
	DefaultBackoffBase = 1 * time.Second

	// DefaultBackoffCap is the maximum backoff between retries.
	DefaultBackoffCap = 30 * time.Second
)

// Pagination limits. Page size defaults live in pkg/spapi next to the
// pagination engine.
const (
	// StandardPageSize is the page size used by CLI listings.
	StandardPageSize = 50
)

// Cache tuning.
const (
	// DefaultCacheSize is the maximum number of entries in the memory cache.
	DefaultCacheSize = 1000

	// DefaultCacheTTL is how long cached GET responses stay fresh.
	DefaultCacheTTL = 1 * time.Minute
)

// HTTP status codes commonly used.
const (
	HTTPStatusOK                  = 200
	HTTPStatusNoContent           = 204
	HTTPStatusBadRequest          = 400
	HTTPStatusUnauthorized        = 401
	HTTPStatusForbidden           = 403
	HTTPStatusNotFound            = 404
	HTTPStatusUnprocessableEntity = 422
	HTTPStatusTooManyRequests     = 429
	HTTPStatusInternalServerError = 500
)
