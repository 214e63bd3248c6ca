package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/stackplane-io/spapi/internal/http"
	"github.com/stackplane-io/spapi/pkg/spapi"
)

// VariablesClient implements spapi.VariablesClient.
type VariablesClient struct {
	httpClient *http.Client
}

// NewVariablesClient creates a new variables client.
func NewVariablesClient(httpClient *http.Client) *VariablesClient {
	return &VariablesClient{httpClient: httpClient}
}

func variablesBasePath(workspaceID string) string {
	return "/api/v2/workspaces/" + url.PathEscape(workspaceID) + "/vars"
}

// Create implements spapi.VariablesClient.Create.
func (c *VariablesClient) Create(ctx context.Context, workspaceID string, request *spapi.VariableCreateRequest) (*spapi.Variable, error) {
	if workspaceID == "" {
		return nil, spapi.ErrWorkspaceIDRequired
	}

	body := newCreateDocument(spapi.TypeVars, request)

	resp, err := c.httpClient.Post(ctx, variablesBasePath(workspaceID), body)
	if err != nil {
		return nil, fmt.Errorf("creating variable: %w", err)
	}

	return parseVariable(resp.Body)
}

// Get implements spapi.VariablesClient.Get.
func (c *VariablesClient) Get(ctx context.Context, workspaceID, variableID string) (*spapi.Variable, error) {
	if workspaceID == "" {
		return nil, spapi.ErrWorkspaceIDRequired
	}

	resp, err := c.httpClient.Get(ctx, variablesBasePath(workspaceID)+"/"+url.PathEscape(variableID), nil)
	if err != nil {
		return nil, fmt.Errorf("getting variable: %w", err)
	}

	return parseVariable(resp.Body)
}

// List implements spapi.VariablesClient.List. Variable collections are small
// and unpaginated, so a single page holds the full set.
func (c *VariablesClient) List(ctx context.Context, workspaceID string, params *spapi.QueryParams) (*spapi.ListResponse[spapi.Variable], error) {
	if workspaceID == "" {
		return nil, spapi.ErrWorkspaceIDRequired
	}

	resp, err := c.httpClient.Get(ctx, variablesBasePath(workspaceID), params.ToValues())
	if err != nil {
		return nil, fmt.Errorf("listing variables: %w", err)
	}

	var list spapi.ListResponse[spapi.Variable]
	if err := json.Unmarshal(resp.Body, &list); err != nil {
		return nil, fmt.Errorf("parsing variables list: %w", err)
	}

	return &list, nil
}

// Update implements spapi.VariablesClient.Update.
func (c *VariablesClient) Update(ctx context.Context, workspaceID, variableID string, request *spapi.VariableUpdateRequest) (*spapi.Variable, error) {
	if workspaceID == "" {
		return nil, spapi.ErrWorkspaceIDRequired
	}

	body := newCreateDocument(spapi.TypeVars, request)

	resp, err := c.httpClient.Patch(ctx, variablesBasePath(workspaceID)+"/"+url.PathEscape(variableID), body)
	if err != nil {
		return nil, fmt.Errorf("updating variable: %w", err)
	}

	return parseVariable(resp.Body)
}

// Delete implements spapi.VariablesClient.Delete.
func (c *VariablesClient) Delete(ctx context.Context, workspaceID, variableID string) error {
	if workspaceID == "" {
		return spapi.ErrWorkspaceIDRequired
	}

	_, err := c.httpClient.Delete(ctx, variablesBasePath(workspaceID)+"/"+url.PathEscape(variableID))
	if err != nil {
		return fmt.Errorf("deleting variable: %w", err)
	}

	return nil
}

func parseVariable(body []byte) (*spapi.Variable, error) {
	var doc spapi.Document[spapi.Variable]
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("parsing variable response: %w", err)
	}

	return &doc.Data, nil
}
