package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/stackplane-io/spapi/internal/http"
	"github.com/stackplane-io/spapi/pkg/spapi"
)

// ProjectsClient implements spapi.ProjectsClient.
type ProjectsClient struct {
	httpClient *http.Client
}

// NewProjectsClient creates a new projects client.
func NewProjectsClient(httpClient *http.Client) *ProjectsClient {
	return &ProjectsClient{httpClient: httpClient}
}

func projectsBasePath(organization string) string {
	return "/api/v2/organizations/" + url.PathEscape(organization) + "/projects"
}

// Create implements spapi.ProjectsClient.Create.
func (c *ProjectsClient) Create(ctx context.Context, organization string, request *spapi.ProjectCreateRequest) (*spapi.Project, error) {
	if organization == "" {
		return nil, spapi.ErrOrganizationNameRequired
	}

	body := newCreateDocument(spapi.TypeProjects, request)

	resp, err := c.httpClient.Post(ctx, projectsBasePath(organization), body)
	if err != nil {
		return nil, fmt.Errorf("creating project: %w", err)
	}

	return parseProject(resp.Body)
}

// Get implements spapi.ProjectsClient.Get.
func (c *ProjectsClient) Get(ctx context.Context, projectID string) (*spapi.Project, error) {
	resp, err := c.httpClient.Get(ctx, "/api/v2/projects/"+url.PathEscape(projectID), nil)
	if err != nil {
		return nil, fmt.Errorf("getting project: %w", err)
	}

	return parseProject(resp.Body)
}

// List implements spapi.ProjectsClient.List.
func (c *ProjectsClient) List(ctx context.Context, organization string, params *spapi.QueryParams) (*spapi.ListResponse[spapi.Project], error) {
	if organization == "" {
		return nil, spapi.ErrOrganizationNameRequired
	}

	return c.ListWithPath(ctx, projectsBasePath(organization), params)
}

// ListWithPath implements spapi.PaginationClient for projects.
func (c *ProjectsClient) ListWithPath(ctx context.Context, path string, params *spapi.QueryParams) (*spapi.ListResponse[spapi.Project], error) {
	resp, err := c.httpClient.Get(ctx, path, params.ToValues())
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}

	var list spapi.ListResponse[spapi.Project]
	if err := json.Unmarshal(resp.Body, &list); err != nil {
		return nil, fmt.Errorf("parsing projects list: %w", err)
	}

	return &list, nil
}

// ListAll implements spapi.ProjectsClient.ListAll.
func (c *ProjectsClient) ListAll(ctx context.Context, organization string, params *spapi.QueryParams) ([]spapi.Project, error) {
	if organization == "" {
		return nil, spapi.ErrOrganizationNameRequired
	}

	return spapi.FetchAllPages(ctx, c, projectsBasePath(organization), params, nil)
}

// Update implements spapi.ProjectsClient.Update.
func (c *ProjectsClient) Update(ctx context.Context, projectID string, request *spapi.ProjectUpdateRequest) (*spapi.Project, error) {
	body := newCreateDocument(spapi.TypeProjects, request)

	resp, err := c.httpClient.Patch(ctx, "/api/v2/projects/"+url.PathEscape(projectID), body)
	if err != nil {
		return nil, fmt.Errorf("updating project: %w", err)
	}

	return parseProject(resp.Body)
}

// Delete implements spapi.ProjectsClient.Delete.
func (c *ProjectsClient) Delete(ctx context.Context, projectID string) error {
	_, err := c.httpClient.Delete(ctx, "/api/v2/projects/"+url.PathEscape(projectID))
	if err != nil {
		return fmt.Errorf("deleting project: %w", err)
	}

	return nil
}

func parseProject(body []byte) (*spapi.Project, error) {
	var doc spapi.Document[spapi.Project]
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("parsing project response: %w", err)
	}

	return &doc.Data, nil
}
