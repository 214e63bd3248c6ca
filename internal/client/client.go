// Package client implements the spapi.Client interface on top of the
// internal HTTP transport.
package client

import (
	"context"
	"crypto/x509"
	"errors"
	"fmt"
	"net/url"
	"os"

	"github.com/stackplane-io/spapi/internal/auth"
	"github.com/stackplane-io/spapi/internal/constants"
	"github.com/stackplane-io/spapi/internal/http"
	"github.com/stackplane-io/spapi/pkg/spapi"
)

// Static errors.
var (
	ErrInvalidProxyURL = errors.New("invalid proxy URL")
	ErrNoCertsInBundle = errors.New("no certificates found in CA bundle")
)

// Client implements the spapi.Client interface.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     spapi.Logger

	organizations spapi.OrganizationsClient
	projects      spapi.ProjectsClient
	workspaces    spapi.WorkspacesClient
	runs          spapi.RunsClient
	variables     spapi.VariablesClient
}

// New creates a new Stackplane API client from config. The address must
// already be normalized (see pkg/spclient).
func New(ctx context.Context, config *spapi.Config) (*Client, error) {
	if config.Address == "" {
		return nil, spapi.ErrAddressRequired
	}

	var tokenManager auth.TokenManager
	if config.Token != "" {
		tokenManager = auth.NewStaticTokenManager(config.Token)
	}

	httpOpts, err := createHTTPClientOptions(config)
	if err != nil {
		return nil, err
	}

	client := &Client{
		httpClient: http.NewClient(config.Address, tokenManager, httpOpts...),
		baseURL:    config.Address,
		logger:     config.Logger,
	}

	client.initializeResourceClients()

	return client, nil
}

// createHTTPClientOptions builds transport options from config.
func createHTTPClientOptions(config *spapi.Config) ([]http.Option, error) {
	var httpOpts []http.Option

	if config.Logger != nil {
		httpOpts = append(httpOpts, http.WithLogger(config.Logger))
	}

	if config.Debug {
		httpOpts = append(httpOpts, http.WithDebug(true))
	}

	if config.UserAgent != "" {
		httpOpts = append(httpOpts, http.WithUserAgentSuffix(config.UserAgent))
	}

	if config.Timeout > 0 {
		httpOpts = append(httpOpts, http.WithTimeout(config.Timeout))
	}

	if config.RetryMax != 0 || config.BackoffBase > 0 || config.BackoffCap > 0 {
		retryMax := config.RetryMax
		if retryMax == 0 {
			retryMax = constants.DefaultRetryMax
		}

		backoffBase := config.BackoffBase
		if backoffBase <= 0 {
			backoffBase = constants.DefaultBackoffBase
		}

		backoffCap := config.BackoffCap
		if backoffCap <= 0 {
			backoffCap = constants.DefaultBackoffCap
		}

		httpOpts = append(httpOpts, http.WithRetryConfig(retryMax, backoffBase, backoffCap))
	}

	if config.BackoffJitter {
		httpOpts = append(httpOpts, http.WithRetryJitter(true))
	}

	tlsOpt, err := createTLSOption(config)
	if err != nil {
		return nil, err
	}

	if tlsOpt != nil {
		httpOpts = append(httpOpts, tlsOpt)
	}

	if config.Proxy != "" {
		proxyURL, err := url.Parse(config.Proxy)
		if err != nil || proxyURL.Host == "" {
			return nil, fmt.Errorf("%w: %s", ErrInvalidProxyURL, config.Proxy)
		}

		httpOpts = append(httpOpts, http.WithProxy(proxyURL))
	}

	if config.DisableHTTP2 {
		httpOpts = append(httpOpts, http.WithHTTP2(false))
	}

	if config.Cache != nil {
		cache, err := spapi.NewCacheFromConfig(config.Cache)
		if err != nil {
			return nil, fmt.Errorf("creating cache: %w", err)
		}

		ttl := config.CacheTTL
		if ttl <= 0 {
			ttl = constants.DefaultCacheTTL
		}

		httpOpts = append(httpOpts, http.WithCache(cache, ttl))
	}

	return httpOpts, nil
}

// createTLSOption loads the custom trust bundle when configured.
func createTLSOption(config *spapi.Config) (http.Option, error) {
	if !config.SkipTLSVerify && config.CACertFile == "" {
		return nil, nil
	}

	var caPool *x509.CertPool

	if config.CACertFile != "" {
		pem, err := os.ReadFile(config.CACertFile)
		if err != nil {
			return nil, fmt.Errorf("reading CA bundle: %w", err)
		}

		caPool = x509.NewCertPool()
		if !caPool.AppendCertsFromPEM(pem) {
			return nil, fmt.Errorf("%w: %s", ErrNoCertsInBundle, config.CACertFile)
		}
	}

	return http.WithTLSConfig(config.SkipTLSVerify, caPool), nil
}

// HTTPClient exposes the transport for advanced callers.
func (c *Client) HTTPClient() *http.Client {
	return c.httpClient
}

// Ping implements spapi.Client.Ping.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.httpClient.Get(ctx, "/api/v2/ping", nil)
	if err != nil {
		return fmt.Errorf("pinging API: %w", err)
	}

	return nil
}

// Organizations implements spapi.Client.Organizations.
func (c *Client) Organizations() spapi.OrganizationsClient {
	return c.organizations
}

// Projects implements spapi.Client.Projects.
func (c *Client) Projects() spapi.ProjectsClient {
	return c.projects
}

// Workspaces implements spapi.Client.Workspaces.
func (c *Client) Workspaces() spapi.WorkspacesClient {
	return c.workspaces
}

// Runs implements spapi.Client.Runs.
func (c *Client) Runs() spapi.RunsClient {
	return c.runs
}

// Variables implements spapi.Client.Variables.
func (c *Client) Variables() spapi.VariablesClient {
	return c.variables
}

// initializeResourceClients initializes all resource-specific clients.
func (c *Client) initializeResourceClients() {
	c.organizations = NewOrganizationsClient(c.httpClient)
	c.projects = NewProjectsClient(c.httpClient)
	c.workspaces = NewWorkspacesClient(c.httpClient)
	c.runs = NewRunsClient(c.httpClient)
	c.variables = NewVariablesClient(c.httpClient)
}
