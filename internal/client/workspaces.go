package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/stackplane-io/spapi/internal/http"
	"github.com/stackplane-io/spapi/pkg/spapi"
)

// WorkspacesClient implements spapi.WorkspacesClient.
type WorkspacesClient struct {
	httpClient *http.Client
}

// NewWorkspacesClient creates a new workspaces client.
func NewWorkspacesClient(httpClient *http.Client) *WorkspacesClient {
	return &WorkspacesClient{httpClient: httpClient}
}

func workspacesBasePath(organization string) string {
	return "/api/v2/organizations/" + url.PathEscape(organization) + "/workspaces"
}

func workspacePath(workspaceID string) string {
	return "/api/v2/workspaces/" + url.PathEscape(workspaceID)
}

// Create implements spapi.WorkspacesClient.Create.
func (c *WorkspacesClient) Create(ctx context.Context, organization string, request *spapi.WorkspaceCreateRequest) (*spapi.Workspace, error) {
	if organization == "" {
		return nil, spapi.ErrOrganizationNameRequired
	}

	var body *requestDocument
	if request != nil && request.ProjectID != nil {
		relationships := map[string]interface{}{
			"project": spapi.NewRelationship(spapi.TypeProjects, *request.ProjectID),
		}
		body = newCreateDocumentWithRelationships(spapi.TypeWorkspaces, request, relationships)
	} else {
		body = newCreateDocument(spapi.TypeWorkspaces, request)
	}

	resp, err := c.httpClient.Post(ctx, workspacesBasePath(organization), body)
	if err != nil {
		return nil, fmt.Errorf("creating workspace: %w", err)
	}

	return parseWorkspace(resp.Body)
}

// Get implements spapi.WorkspacesClient.Get.
func (c *WorkspacesClient) Get(ctx context.Context, workspaceID string) (*spapi.Workspace, error) {
	if workspaceID == "" {
		return nil, spapi.ErrWorkspaceIDRequired
	}

	resp, err := c.httpClient.Get(ctx, workspacePath(workspaceID), nil)
	if err != nil {
		return nil, fmt.Errorf("getting workspace: %w", err)
	}

	return parseWorkspace(resp.Body)
}

// GetByName implements spapi.WorkspacesClient.GetByName.
func (c *WorkspacesClient) GetByName(ctx context.Context, organization, name string) (*spapi.Workspace, error) {
	if organization == "" {
		return nil, spapi.ErrOrganizationNameRequired
	}

	resp, err := c.httpClient.Get(ctx, workspacesBasePath(organization)+"/"+url.PathEscape(name), nil)
	if err != nil {
		return nil, fmt.Errorf("getting workspace %q: %w", name, err)
	}

	return parseWorkspace(resp.Body)
}

// List implements spapi.WorkspacesClient.List.
func (c *WorkspacesClient) List(ctx context.Context, organization string, params *spapi.QueryParams) (*spapi.ListResponse[spapi.Workspace], error) {
	if organization == "" {
		return nil, spapi.ErrOrganizationNameRequired
	}

	return c.ListWithPath(ctx, workspacesBasePath(organization), params)
}

// ListWithPath implements spapi.PaginationClient for workspaces.
func (c *WorkspacesClient) ListWithPath(ctx context.Context, path string, params *spapi.QueryParams) (*spapi.ListResponse[spapi.Workspace], error) {
	resp, err := c.httpClient.Get(ctx, path, params.ToValues())
	if err != nil {
		return nil, fmt.Errorf("listing workspaces: %w", err)
	}

	var list spapi.ListResponse[spapi.Workspace]
	if err := json.Unmarshal(resp.Body, &list); err != nil {
		return nil, fmt.Errorf("parsing workspaces list: %w", err)
	}

	return &list, nil
}

// ListAll implements spapi.WorkspacesClient.ListAll.
func (c *WorkspacesClient) ListAll(ctx context.Context, organization string, params *spapi.QueryParams) ([]spapi.Workspace, error) {
	if organization == "" {
		return nil, spapi.ErrOrganizationNameRequired
	}

	return spapi.FetchAllPages(ctx, c, workspacesBasePath(organization), params, nil)
}

// Update implements spapi.WorkspacesClient.Update.
func (c *WorkspacesClient) Update(ctx context.Context, workspaceID string, request *spapi.WorkspaceUpdateRequest) (*spapi.Workspace, error) {
	if workspaceID == "" {
		return nil, spapi.ErrWorkspaceIDRequired
	}

	body := newCreateDocument(spapi.TypeWorkspaces, request)

	resp, err := c.httpClient.Patch(ctx, workspacePath(workspaceID), body)
	if err != nil {
		return nil, fmt.Errorf("updating workspace: %w", err)
	}

	return parseWorkspace(resp.Body)
}

// Delete implements spapi.WorkspacesClient.Delete.
func (c *WorkspacesClient) Delete(ctx context.Context, workspaceID string) error {
	if workspaceID == "" {
		return spapi.ErrWorkspaceIDRequired
	}

	_, err := c.httpClient.Delete(ctx, workspacePath(workspaceID))
	if err != nil {
		return fmt.Errorf("deleting workspace: %w", err)
	}

	return nil
}

// Lock implements spapi.WorkspacesClient.Lock. Locking an already locked
// workspace returns a conflict error from the server.
func (c *WorkspacesClient) Lock(ctx context.Context, workspaceID string, request *spapi.WorkspaceLockRequest) (*spapi.Workspace, error) {
	if workspaceID == "" {
		return nil, spapi.ErrWorkspaceIDRequired
	}

	resp, err := c.httpClient.Post(ctx, workspacePath(workspaceID)+"/actions/lock", request)
	if err != nil {
		return nil, fmt.Errorf("locking workspace: %w", err)
	}

	return parseWorkspace(resp.Body)
}

// Unlock implements spapi.WorkspacesClient.Unlock.
func (c *WorkspacesClient) Unlock(ctx context.Context, workspaceID string) (*spapi.Workspace, error) {
	if workspaceID == "" {
		return nil, spapi.ErrWorkspaceIDRequired
	}

	resp, err := c.httpClient.Post(ctx, workspacePath(workspaceID)+"/actions/unlock", nil)
	if err != nil {
		return nil, fmt.Errorf("unlocking workspace: %w", err)
	}

	return parseWorkspace(resp.Body)
}

func parseWorkspace(body []byte) (*spapi.Workspace, error) {
	var doc spapi.Document[spapi.Workspace]
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("parsing workspace response: %w", err)
	}

	return &doc.Data, nil
}
