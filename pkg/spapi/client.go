package spapi

import (
	"context"
	"time"
)

// OrganizationsClient manages organizations.
type OrganizationsClient interface {
	Create(ctx context.Context, request *OrganizationCreateRequest) (*Organization, error)
	Get(ctx context.Context, name string) (*Organization, error)
	List(ctx context.Context, params *QueryParams) (*ListResponse[Organization], error)
	ListAll(ctx context.Context, params *QueryParams) ([]Organization, error)
	Update(ctx context.Context, name string, request *OrganizationUpdateRequest) (*Organization, error)
	Delete(ctx context.Context, name string) error
}

// ProjectsClient manages projects within an organization.
type ProjectsClient interface {
	Create(ctx context.Context, organization string, request *ProjectCreateRequest) (*Project, error)
	Get(ctx context.Context, projectID string) (*Project, error)
	List(ctx context.Context, organization string, params *QueryParams) (*ListResponse[Project], error)
	ListAll(ctx context.Context, organization string, params *QueryParams) ([]Project, error)
	Update(ctx context.Context, projectID string, request *ProjectUpdateRequest) (*Project, error)
	Delete(ctx context.Context, projectID string) error
}

// WorkspacesClient manages workspaces.
type WorkspacesClient interface {
	Create(ctx context.Context, organization string, request *WorkspaceCreateRequest) (*Workspace, error)
	Get(ctx context.Context, workspaceID string) (*Workspace, error)
	GetByName(ctx context.Context, organization, name string) (*Workspace, error)
	List(ctx context.Context, organization string, params *QueryParams) (*ListResponse[Workspace], error)
	ListAll(ctx context.Context, organization string, params *QueryParams) ([]Workspace, error)
	Update(ctx context.Context, workspaceID string, request *WorkspaceUpdateRequest) (*Workspace, error)
	Delete(ctx context.Context, workspaceID string) error
	Lock(ctx context.Context, workspaceID string, request *WorkspaceLockRequest) (*Workspace, error)
	Unlock(ctx context.Context, workspaceID string) (*Workspace, error)
}

// RunsClient manages runs.
type RunsClient interface {
	Create(ctx context.Context, request *RunCreateRequest) (*Run, error)
	Get(ctx context.Context, runID string) (*Run, error)
	List(ctx context.Context, workspaceID string, params *QueryParams) (*ListResponse[Run], error)
	ListAll(ctx context.Context, workspaceID string, params *QueryParams) ([]Run, error)
	Apply(ctx context.Context, runID string, request *RunActionRequest) error
	Discard(ctx context.Context, runID string, request *RunActionRequest) error
	Cancel(ctx context.Context, runID string, request *RunActionRequest) error
}

// VariablesClient manages workspace variables.
type VariablesClient interface {
	Create(ctx context.Context, workspaceID string, request *VariableCreateRequest) (*Variable, error)
	Get(ctx context.Context, workspaceID, variableID string) (*Variable, error)
	List(ctx context.Context, workspaceID string, params *QueryParams) (*ListResponse[Variable], error)
	Update(ctx context.Context, workspaceID, variableID string, request *VariableUpdateRequest) (*Variable, error)
	Delete(ctx context.Context, workspaceID, variableID string) error
}

// Client is the full Stackplane API surface.
type Client interface {
	Organizations() OrganizationsClient
	Projects() ProjectsClient
	Workspaces() WorkspacesClient
	Runs() RunsClient
	Variables() VariablesClient

	// Ping verifies connectivity and credentials against the API.
	Ping(ctx context.Context) error
}

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Config represents client configuration for building a spapi.Client.
//
// # Retries
//
// Transient failures (connection errors and statuses 429, 502, 503, 504) are
// retried up to RetryMax times with exponential backoff
// min(BackoffCap, BackoffBase*2^attempt), preferring a server-supplied
// Retry-After header. There is no overall deadline across retries: the
// worst-case latency of one call is Timeout*(RetryMax+1) plus the cumulative
// backoff sleeps. Use the context to impose a harder bound.
type Config struct {
	// Address is the base URL of the Stackplane API
	// (e.g., "https://app.stackplane.io"). A missing scheme defaults to
	// https; a trailing slash is trimmed.
	Address string

	// Token is the bearer credential attached to every request. Requests are
	// sent unauthenticated when empty.
	Token string

	// Timeout bounds each individual request attempt. Zero means the
	// default (30s).
	Timeout time.Duration

	// RetryMax is the maximum number of retries for transient failures.
	// Zero means the default (3); negative disables retries.
	RetryMax int
	// BackoffBase is the starting backoff between retries.
	BackoffBase time.Duration
	// BackoffCap is the maximum backoff between retries.
	BackoffCap time.Duration
	// BackoffJitter randomizes each backoff within [delay/2, delay] to avoid
	// synchronized retry storms across many clients.
	BackoffJitter bool

	// SkipTLSVerify disables TLS certificate verification. Development only.
	SkipTLSVerify bool
	// CACertFile points at a PEM bundle to trust instead of the system pool.
	CACertFile string
	// Proxy is an outbound proxy URL; empty uses the environment settings.
	Proxy string
	// DisableHTTP2 forces HTTP/1.1 on the underlying transport.
	DisableHTTP2 bool

	// UserAgent is appended to the default User-Agent header.
	UserAgent string

	// Debug enables verbose HTTP request/response logging when a Logger is
	// provided.
	Debug bool
	// Logger is an optional structured logger used by the HTTP layer.
	Logger Logger

	// Cache configures the GET response cache; nil disables caching.
	Cache *CacheConfig
	// CacheTTL is how long cached responses stay fresh. Zero means the
	// default (1m).
	CacheTTL time.Duration
}
