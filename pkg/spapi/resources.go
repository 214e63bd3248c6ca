package spapi

import "time"

// Resource type names used in JSON:API documents.
const (
	TypeOrganizations = "organizations"
	TypeProjects      = "projects"
	TypeWorkspaces    = "workspaces"
	TypeRuns          = "runs"
	TypeVars          = "vars"
)

// Organization represents a Stackplane organization.
type Organization struct {
	Resource

	Attributes OrganizationAttributes `json:"attributes" yaml:"attributes"`
}

// OrganizationAttributes holds the mutable organization fields.
type OrganizationAttributes struct {
	Name           string    `json:"name"                      yaml:"name"`
	Email          string    `json:"email,omitempty"           yaml:"email,omitempty"`
	CreatedAt      time.Time `json:"created-at"                yaml:"created-at"`
	CostEstimation bool      `json:"cost-estimation-enabled"   yaml:"cost-estimation-enabled"`
	SessionTimeout *int      `json:"session-timeout,omitempty" yaml:"session-timeout,omitempty"`
}

// OrganizationCreateRequest creates an organization.
type OrganizationCreateRequest struct {
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

// OrganizationUpdateRequest updates an organization. Nil fields are left
// unchanged.
type OrganizationUpdateRequest struct {
	Name           *string `json:"name,omitempty"`
	Email          *string `json:"email,omitempty"`
	SessionTimeout *int    `json:"session-timeout,omitempty"`
}

// Project represents a grouping of workspaces within an organization.
type Project struct {
	Resource

	Attributes    ProjectAttributes     `json:"attributes"              yaml:"attributes"`
	Relationships *ProjectRelationships `json:"relationships,omitempty" yaml:"relationships,omitempty"`
}

// ProjectAttributes holds the mutable project fields.
type ProjectAttributes struct {
	Name        string    `json:"name"                  yaml:"name"`
	Description string    `json:"description,omitempty" yaml:"description,omitempty"`
	CreatedAt   time.Time `json:"created-at"            yaml:"created-at"`
}

// ProjectRelationships links a project to its organization.
type ProjectRelationships struct {
	Organization *Relationship `json:"organization,omitempty" yaml:"organization,omitempty"`
}

// ProjectCreateRequest creates a project.
type ProjectCreateRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// ProjectUpdateRequest updates a project.
type ProjectUpdateRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

// Workspace represents a Stackplane workspace.
type Workspace struct {
	Resource

	Attributes    WorkspaceAttributes     `json:"attributes"              yaml:"attributes"`
	Relationships *WorkspaceRelationships `json:"relationships,omitempty" yaml:"relationships,omitempty"`
}

// WorkspaceAttributes holds the mutable workspace fields.
type WorkspaceAttributes struct {
	Name             string    `json:"name"                        yaml:"name"`
	Description      string    `json:"description,omitempty"       yaml:"description,omitempty"`
	AutoApply        bool      `json:"auto-apply"                  yaml:"auto-apply"`
	Locked           bool      `json:"locked"                      yaml:"locked"`
	ExecutionMode    string    `json:"execution-mode,omitempty"    yaml:"execution-mode,omitempty"`
	StackVersion     string    `json:"stack-version,omitempty"     yaml:"stack-version,omitempty"`
	WorkingDirectory string    `json:"working-directory,omitempty" yaml:"working-directory,omitempty"`
	CreatedAt        time.Time `json:"created-at"                  yaml:"created-at"`
	UpdatedAt        time.Time `json:"updated-at"                  yaml:"updated-at"`
}

// WorkspaceRelationships links a workspace to related resources.
type WorkspaceRelationships struct {
	Organization *Relationship `json:"organization,omitempty" yaml:"organization,omitempty"`
	Project      *Relationship `json:"project,omitempty"      yaml:"project,omitempty"`
	CurrentRun   *Relationship `json:"current-run,omitempty"  yaml:"current-run,omitempty"`
}

// WorkspaceCreateRequest creates a workspace.
type WorkspaceCreateRequest struct {
	Name             string  `json:"name"`
	Description      string  `json:"description,omitempty"`
	AutoApply        *bool   `json:"auto-apply,omitempty"`
	ExecutionMode    string  `json:"execution-mode,omitempty"`
	StackVersion     string  `json:"stack-version,omitempty"`
	WorkingDirectory string  `json:"working-directory,omitempty"`
	ProjectID        *string `json:"-"`
}

// WorkspaceUpdateRequest updates a workspace.
type WorkspaceUpdateRequest struct {
	Name             *string `json:"name,omitempty"`
	Description      *string `json:"description,omitempty"`
	AutoApply        *bool   `json:"auto-apply,omitempty"`
	ExecutionMode    *string `json:"execution-mode,omitempty"`
	StackVersion     *string `json:"stack-version,omitempty"`
	WorkingDirectory *string `json:"working-directory,omitempty"`
}

// WorkspaceLockRequest carries the optional lock reason.
type WorkspaceLockRequest struct {
	Reason string `json:"reason,omitempty"`
}

// Run states reported by the control plane.
const (
	RunStatePending   = "pending"
	RunStatePlanning  = "planning"
	RunStatePlanned   = "planned"
	RunStateApplying  = "applying"
	RunStateApplied   = "applied"
	RunStateDiscarded = "discarded"
	RunStateCanceled  = "canceled"
	RunStateErrored   = "errored"
)

// Run represents one plan/apply cycle in a workspace.
type Run struct {
	Resource

	Attributes    RunAttributes     `json:"attributes"              yaml:"attributes"`
	Relationships *RunRelationships `json:"relationships,omitempty" yaml:"relationships,omitempty"`
}

// RunAttributes holds the run fields.
type RunAttributes struct {
	Status     string     `json:"status"               yaml:"status"`
	Message    string     `json:"message,omitempty"    yaml:"message,omitempty"`
	IsDestroy  bool       `json:"is-destroy"           yaml:"is-destroy"`
	AutoApply  bool       `json:"auto-apply"           yaml:"auto-apply"`
	Source     string     `json:"source,omitempty"     yaml:"source,omitempty"`
	CreatedAt  time.Time  `json:"created-at"           yaml:"created-at"`
	AppliedAt  *time.Time `json:"applied-at,omitempty" yaml:"applied-at,omitempty"`
	HasChanges bool       `json:"has-changes"          yaml:"has-changes"`
}

// RunRelationships links a run to its workspace.
type RunRelationships struct {
	Workspace *Relationship `json:"workspace,omitempty" yaml:"workspace,omitempty"`
}

// RunCreateRequest starts a run in a workspace.
type RunCreateRequest struct {
	WorkspaceID string `json:"-"`
	Message     string `json:"message,omitempty"`
	IsDestroy   bool   `json:"is-destroy,omitempty"`
	AutoApply   *bool  `json:"auto-apply,omitempty"`
}

// RunActionRequest carries the optional comment for apply/discard/cancel.
type RunActionRequest struct {
	Comment string `json:"comment,omitempty"`
}

// Variable categories.
const (
	VariableCategoryStack = "stack"
	VariableCategoryEnv   = "env"
)

// Variable represents a workspace variable.
type Variable struct {
	Resource

	Attributes VariableAttributes `json:"attributes" yaml:"attributes"`
}

// VariableAttributes holds the variable fields. Sensitive values are never
// echoed back by the server.
type VariableAttributes struct {
	Key        string `json:"key"             yaml:"key"`
	Value      string `json:"value,omitempty" yaml:"value,omitempty"`
	Category   string `json:"category"        yaml:"category"`
	Structured bool   `json:"structured"      yaml:"structured"`
	Sensitive  bool   `json:"sensitive"       yaml:"sensitive"`
}

// VariableCreateRequest creates a workspace variable.
type VariableCreateRequest struct {
	Key        string `json:"key"`
	Value      string `json:"value"`
	Category   string `json:"category"`
	Structured bool   `json:"structured,omitempty"`
	Sensitive  bool   `json:"sensitive,omitempty"`
}

// VariableUpdateRequest updates a workspace variable.
type VariableUpdateRequest struct {
	Key        *string `json:"key,omitempty"`
	Value      *string `json:"value,omitempty"`
	Category   *string `json:"category,omitempty"`
	Structured *bool   `json:"structured,omitempty"`
	Sensitive  *bool   `json:"sensitive,omitempty"`
}
