package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/stackplane-io/spapi/internal/http"
	"github.com/stackplane-io/spapi/pkg/spapi"
)

const runsBasePath = "/api/v2/runs"

// RunsClient implements spapi.RunsClient.
type RunsClient struct {
	httpClient *http.Client
}

// NewRunsClient creates a new runs client.
func NewRunsClient(httpClient *http.Client) *RunsClient {
	return &RunsClient{httpClient: httpClient}
}

func workspaceRunsPath(workspaceID string) string {
	return "/api/v2/workspaces/" + url.PathEscape(workspaceID) + "/runs"
}

// Create implements spapi.RunsClient.Create. The target workspace comes from
// the request's WorkspaceID and is sent as a relationship.
func (c *RunsClient) Create(ctx context.Context, request *spapi.RunCreateRequest) (*spapi.Run, error) {
	if request == nil || request.WorkspaceID == "" {
		return nil, spapi.ErrWorkspaceIDRequired
	}

	relationships := map[string]interface{}{
		"workspace": spapi.NewRelationship(spapi.TypeWorkspaces, request.WorkspaceID),
	}
	body := newCreateDocumentWithRelationships(spapi.TypeRuns, request, relationships)

	resp, err := c.httpClient.Post(ctx, runsBasePath, body)
	if err != nil {
		return nil, fmt.Errorf("creating run: %w", err)
	}

	return parseRun(resp.Body)
}

// Get implements spapi.RunsClient.Get.
func (c *RunsClient) Get(ctx context.Context, runID string) (*spapi.Run, error) {
	if runID == "" {
		return nil, spapi.ErrRunIDRequired
	}

	resp, err := c.httpClient.Get(ctx, runsBasePath+"/"+url.PathEscape(runID), nil)
	if err != nil {
		return nil, fmt.Errorf("getting run: %w", err)
	}

	return parseRun(resp.Body)
}

// List implements spapi.RunsClient.List.
func (c *RunsClient) List(ctx context.Context, workspaceID string, params *spapi.QueryParams) (*spapi.ListResponse[spapi.Run], error) {
	if workspaceID == "" {
		return nil, spapi.ErrWorkspaceIDRequired
	}

	return c.ListWithPath(ctx, workspaceRunsPath(workspaceID), params)
}

// ListWithPath implements spapi.PaginationClient for runs.
func (c *RunsClient) ListWithPath(ctx context.Context, path string, params *spapi.QueryParams) (*spapi.ListResponse[spapi.Run], error) {
	resp, err := c.httpClient.Get(ctx, path, params.ToValues())
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}

	var list spapi.ListResponse[spapi.Run]
	if err := json.Unmarshal(resp.Body, &list); err != nil {
		return nil, fmt.Errorf("parsing runs list: %w", err)
	}

	return &list, nil
}

// ListAll implements spapi.RunsClient.ListAll.
func (c *RunsClient) ListAll(ctx context.Context, workspaceID string, params *spapi.QueryParams) ([]spapi.Run, error) {
	if workspaceID == "" {
		return nil, spapi.ErrWorkspaceIDRequired
	}

	return spapi.FetchAllPages(ctx, c, workspaceRunsPath(workspaceID), params, nil)
}

// Apply implements spapi.RunsClient.Apply.
func (c *RunsClient) Apply(ctx context.Context, runID string, request *spapi.RunActionRequest) error {
	return c.action(ctx, runID, "apply", request)
}

// Discard implements spapi.RunsClient.Discard.
func (c *RunsClient) Discard(ctx context.Context, runID string, request *spapi.RunActionRequest) error {
	return c.action(ctx, runID, "discard", request)
}

// Cancel implements spapi.RunsClient.Cancel.
func (c *RunsClient) Cancel(ctx context.Context, runID string, request *spapi.RunActionRequest) error {
	return c.action(ctx, runID, "cancel", request)
}

func (c *RunsClient) action(ctx context.Context, runID, action string, request *spapi.RunActionRequest) error {
	if runID == "" {
		return spapi.ErrRunIDRequired
	}

	_, err := c.httpClient.Post(ctx, runsBasePath+"/"+url.PathEscape(runID)+"/actions/"+action, request)
	if err != nil {
		return fmt.Errorf("%s run: %w", action, err)
	}

	return nil
}

func parseRun(body []byte) (*spapi.Run, error) {
	var doc spapi.Document[spapi.Run]
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("parsing run response: %w", err)
	}

	return &doc.Data, nil
}
