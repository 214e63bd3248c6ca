package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/stackplane-io/spapi/internal/http"
	"github.com/stackplane-io/spapi/pkg/spapi"
)

const organizationsBasePath = "/api/v2/organizations"

// OrganizationsClient implements spapi.OrganizationsClient.
type OrganizationsClient struct {
	httpClient *http.Client
}

// NewOrganizationsClient creates a new organizations client.
func NewOrganizationsClient(httpClient *http.Client) *OrganizationsClient {
	return &OrganizationsClient{httpClient: httpClient}
}

// Create implements spapi.OrganizationsClient.Create.
func (c *OrganizationsClient) Create(ctx context.Context, request *spapi.OrganizationCreateRequest) (*spapi.Organization, error) {
	body := newCreateDocument(spapi.TypeOrganizations, request)

	resp, err := c.httpClient.Post(ctx, organizationsBasePath, body)
	if err != nil {
		return nil, fmt.Errorf("creating organization: %w", err)
	}

	return parseOrganization(resp.Body)
}

// Get implements spapi.OrganizationsClient.Get.
func (c *OrganizationsClient) Get(ctx context.Context, name string) (*spapi.Organization, error) {
	if name == "" {
		return nil, spapi.ErrOrganizationNameRequired
	}

	resp, err := c.httpClient.Get(ctx, organizationsBasePath+"/"+url.PathEscape(name), nil)
	if err != nil {
		return nil, fmt.Errorf("getting organization: %w", err)
	}

	return parseOrganization(resp.Body)
}

// List implements spapi.OrganizationsClient.List.
func (c *OrganizationsClient) List(ctx context.Context, params *spapi.QueryParams) (*spapi.ListResponse[spapi.Organization], error) {
	return c.ListWithPath(ctx, organizationsBasePath, params)
}

// ListWithPath implements spapi.PaginationClient for organizations.
func (c *OrganizationsClient) ListWithPath(ctx context.Context, path string, params *spapi.QueryParams) (*spapi.ListResponse[spapi.Organization], error) {
	resp, err := c.httpClient.Get(ctx, path, params.ToValues())
	if err != nil {
		return nil, fmt.Errorf("listing organizations: %w", err)
	}

	var list spapi.ListResponse[spapi.Organization]
	if err := json.Unmarshal(resp.Body, &list); err != nil {
		return nil, fmt.Errorf("parsing organizations list: %w", err)
	}

	return &list, nil
}

// ListAll implements spapi.OrganizationsClient.ListAll.
func (c *OrganizationsClient) ListAll(ctx context.Context, params *spapi.QueryParams) ([]spapi.Organization, error) {
	return spapi.FetchAllPages(ctx, c, organizationsBasePath, params, nil)
}

// Update implements spapi.OrganizationsClient.Update.
func (c *OrganizationsClient) Update(ctx context.Context, name string, request *spapi.OrganizationUpdateRequest) (*spapi.Organization, error) {
	if name == "" {
		return nil, spapi.ErrOrganizationNameRequired
	}

	body := newCreateDocument(spapi.TypeOrganizations, request)

	resp, err := c.httpClient.Patch(ctx, organizationsBasePath+"/"+url.PathEscape(name), body)
	if err != nil {
		return nil, fmt.Errorf("updating organization: %w", err)
	}

	return parseOrganization(resp.Body)
}

// Delete implements spapi.OrganizationsClient.Delete.
func (c *OrganizationsClient) Delete(ctx context.Context, name string) error {
	if name == "" {
		return spapi.ErrOrganizationNameRequired
	}

	_, err := c.httpClient.Delete(ctx, organizationsBasePath+"/"+url.PathEscape(name))
	if err != nil {
		return fmt.Errorf("deleting organization: %w", err)
	}

	return nil
}

func parseOrganization(body []byte) (*spapi.Organization, error) {
	var doc spapi.Document[spapi.Organization]
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("parsing organization response: %w", err)
	}

	return &doc.Data, nil
}
