// Package http implements the HTTP transport shared by all Stackplane
// resource clients: default headers, bearer credential attachment, the retry
// loop for transient failures, and classification of error responses into
// the spapi error taxonomy.
package http

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/stackplane-io/spapi/internal/auth"
	"github.com/stackplane-io/spapi/internal/constants"
	"github.com/stackplane-io/spapi/pkg/spapi"
)

// DefaultUserAgent identifies this client library.
const DefaultUserAgent = "spapi-go/1.0.0"

const contentTypeJSONAPI = "application/vnd.api+json"

// Logger interface for transport logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Request describes one logical API request.
type Request struct {
	Method string
	// Path is joined to the configured base URL, or used verbatim when it is
	// an absolute URL (so callers can follow server-provided links without
	// re-deriving the base address).
	Path string
	// Query is omitted from the wire request when empty.
	Query url.Values
	// Body is serialized as JSON when non-nil.
	Body interface{}
	// Headers are per-call overrides merged over the defaults.
	Headers map[string]string
}

// Response is the outcome of one logical request. Body holds the full
// payload; reading it is idempotent.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
}

// Client executes requests against the Stackplane API. The embedded
// retryable client retries connection errors and the transient status set
// {429, 502, 503, 504}; every terminal failure surfaces as *spapi.APIError.
//
// There is no overall deadline across retries: worst-case latency of one
// call is timeout*(retryMax+1) plus cumulative backoff. Callers needing a
// hard bound should set one on the context.
type Client struct {
	baseURL      string
	tokenManager auth.TokenManager
	retryClient  *retryablehttp.Client

	userAgent    string
	logger       Logger
	debug        bool
	cache        spapi.Cache
	cacheTTL     time.Duration
	interceptors *spapi.InterceptorChain

	timeout       time.Duration
	retryMax      int
	backoffBase   time.Duration
	backoffCap    time.Duration
	backoffJitter bool
	tlsConfig     *tls.Config
	proxy         func(*http.Request) (*url.URL, error)
	disableHTTP2  bool
}

// Option configures the client.
type Option func(*Client)

// WithLogger sets the logger.
func WithLogger(logger Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDebug enables request/response debug logging.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithUserAgent replaces the default User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithUserAgentSuffix appends a product suffix to the default User-Agent.
func WithUserAgentSuffix(suffix string) Option {
	return func(c *Client) {
		c.userAgent = DefaultUserAgent + " " + suffix
	}
}

// WithTimeout bounds each individual request attempt.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithRetryConfig tunes the retry budget and backoff window. A negative
// retryMax disables retries.
func WithRetryConfig(retryMax int, backoffBase, backoffCap time.Duration) Option {
	return func(c *Client) {
		c.retryMax = retryMax
		c.backoffBase = backoffBase
		c.backoffCap = backoffCap
	}
}

// WithRetryJitter randomizes backoff delays.
func WithRetryJitter(jitter bool) Option {
	return func(c *Client) {
		c.backoffJitter = jitter
	}
}

// WithTLSConfig controls certificate verification. A nil pool keeps the
// system trust store.
func WithTLSConfig(insecureSkipVerify bool, caPool *x509.CertPool) Option {
	return func(c *Client) {
		c.tlsConfig = &tls.Config{
			InsecureSkipVerify: insecureSkipVerify, //nolint:gosec // explicit development toggle
			RootCAs:            caPool,
			MinVersion:         tls.VersionTLS12,
		}
	}
}

// WithProxy routes requests through the given proxy URL.
func WithProxy(proxyURL *url.URL) Option {
	return func(c *Client) {
		c.proxy = http.ProxyURL(proxyURL)
	}
}

// WithHTTP2 enables or disables HTTP/2 on the underlying transport.
func WithHTTP2(enabled bool) Option {
	return func(c *Client) {
		c.disableHTTP2 = !enabled
	}
}

// WithCache serves 2xx GET responses from the cache for ttl.
func WithCache(cache spapi.Cache, ttl time.Duration) Option {
	return func(c *Client) {
		c.cache = cache
		c.cacheTTL = ttl
	}
}

// WithInterceptors installs an interceptor chain around every request.
func WithInterceptors(chain *spapi.InterceptorChain) Option {
	return func(c *Client) {
		c.interceptors = chain
	}
}

// NewClient creates a transport for the given base URL. tokenManager may be
// nil for unauthenticated use.
func NewClient(baseURL string, tokenManager auth.TokenManager, opts ...Option) *Client {
	client := &Client{
		baseURL:      strings.TrimSuffix(baseURL, "/"),
		tokenManager: tokenManager,
		userAgent:    DefaultUserAgent,
		timeout:      constants.DefaultHTTPTimeout,
		retryMax:     constants.DefaultRetryMax,
		backoffBase:  constants.DefaultBackoffBase,
		backoffCap:   constants.DefaultBackoffCap,
		cacheTTL:     constants.DefaultCacheTTL,
	}

	for _, opt := range opts {
		opt(client)
	}

	client.retryClient = client.buildRetryClient()

	return client
}

// buildRetryClient wires the retry policy and backoff into a retryablehttp
// client over a transport configured from the TLS/proxy/HTTP2 knobs.
func (c *Client) buildRetryClient() *retryablehttp.Client {
	transport := &http.Transport{
		Proxy:             http.ProxyFromEnvironment,
		TLSClientConfig:   c.tlsConfig,
		ForceAttemptHTTP2: !c.disableHTTP2,
	}

	if c.proxy != nil {
		transport.Proxy = c.proxy
	}

	if c.disableHTTP2 {
		transport.TLSNextProto = make(map[string]func(string, *tls.Conn) http.RoundTripper)
	}

	retryMax := c.retryMax
	if retryMax < 0 {
		retryMax = 0
	}

	backoff := ExponentialBackoff
	if c.backoffJitter {
		backoff = JitterBackoff
	}

	retryClient := retryablehttp.NewClient()
	retryClient.HTTPClient = &http.Client{
		Timeout:   c.timeout,
		Transport: transport,
	}
	retryClient.RetryMax = retryMax
	retryClient.RetryWaitMin = c.backoffBase
	retryClient.RetryWaitMax = c.backoffCap
	retryClient.CheckRetry = RetryPolicy
	retryClient.Backoff = backoff
	retryClient.Logger = nil
	// Surface the last response instead of a generic "giving up" error so
	// exhausted transient statuses classify like any other failure.
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler

	return retryClient
}

// Do executes one logical request, applying retries transparently, and
// returns a Response with a 2xx status or a classified *spapi.APIError. For
// error statuses the Response is returned alongside the error so callers can
// still inspect it.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	fullURL := c.resolveURL(req)
	cacheKey := req.Method + " " + fullURL

	if cached, ok := c.cachedResponse(ctx, req.Method, cacheKey); ok {
		return cached, nil
	}

	var rawBody []byte

	if req.Body != nil {
		data, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("marshaling request body: %w", err)
		}

		rawBody = data
	}

	interceptReq := &spapi.Request{
		Method:  req.Method,
		Path:    req.Path,
		Headers: http.Header{},
		Body:    rawBody,
	}

	if c.interceptors != nil {
		if err := c.interceptors.ExecuteRequestInterceptors(ctx, interceptReq); err != nil {
			return nil, err
		}
	}

	// Interceptors may rewrite the serialized body as well as the headers.
	httpReq, err := c.newHTTPRequest(ctx, req, fullURL, interceptReq.Body, interceptReq.Headers)
	if err != nil {
		return nil, err
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Request", map[string]interface{}{
			"method": req.Method,
			"url":    fullURL,
		})
	}

	httpResp, err := c.retryClient.Do(httpReq)
	if err != nil {
		apiErr := spapi.ClassifyTransportFailure(err)
		c.logResponse(req, 0, apiErr)
		c.notifyResponse(ctx, interceptReq, &spapi.Response{Error: apiErr})

		return nil, apiErr
	}

	body, err := io.ReadAll(httpResp.Body)

	closeErr := httpResp.Body.Close()
	if err == nil {
		err = closeErr
	}

	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	response := &Response{
		StatusCode: httpResp.StatusCode,
		Headers:    httpResp.Header,
		Body:       body,
	}

	if httpResp.StatusCode < http.StatusOK || httpResp.StatusCode >= http.StatusMultipleChoices {
		apiErr := spapi.ClassifyResponse(httpResp.StatusCode, httpResp.Header, body)
		c.logResponse(req, httpResp.StatusCode, apiErr)
		c.notifyResponse(ctx, interceptReq, &spapi.Response{
			StatusCode: httpResp.StatusCode,
			Headers:    httpResp.Header,
			Body:       body,
			Error:      apiErr,
		})

		return response, apiErr
	}

	c.logResponse(req, httpResp.StatusCode, nil)
	c.notifyResponse(ctx, interceptReq, &spapi.Response{
		StatusCode: httpResp.StatusCode,
		Headers:    httpResp.Header,
		Body:       body,
	})
	c.storeResponse(ctx, req.Method, cacheKey, response)

	return response, nil
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodGet, Path: path, Query: query})
}

// Post performs a POST request.
func (c *Client) Post(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPost, Path: path, Body: body})
}

// Put performs a PUT request.
func (c *Client) Put(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPut, Path: path, Body: body})
}

// Patch performs a PATCH request.
func (c *Client) Patch(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPatch, Path: path, Body: body})
}

// Delete performs a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodDelete, Path: path})
}

// resolveURL joins the path to the base URL, passing absolute URLs through
// verbatim, and appends the query string when present.
func (c *Client) resolveURL(req *Request) string {
	fullURL := req.Path
	if !strings.HasPrefix(fullURL, "http://") && !strings.HasPrefix(fullURL, "https://") {
		fullURL = c.baseURL + req.Path
	}

	if len(req.Query) > 0 {
		fullURL += "?" + req.Query.Encode()
	}

	return fullURL
}

// newHTTPRequest builds the outgoing request with default and per-call
// headers attached.
func (c *Client) newHTTPRequest(ctx context.Context, req *Request, fullURL string, rawBody []byte, extraHeaders http.Header) (*retryablehttp.Request, error) {
	var body interface{}
	if rawBody != nil {
		body = rawBody
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, req.Method, fullURL, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	httpReq.Header.Set("Accept", contentTypeJSONAPI)
	httpReq.Header.Set("User-Agent", c.userAgent)

	if rawBody != nil {
		httpReq.Header.Set("Content-Type", contentTypeJSONAPI)
	}

	if c.tokenManager != nil {
		token, err := c.tokenManager.GetToken(ctx)
		if err != nil {
			return nil, fmt.Errorf("getting token: %w", err)
		}

		if token != "" {
			httpReq.Header.Set("Authorization", "Bearer "+token)
		}
	}

	for key, values := range extraHeaders {
		for _, value := range values {
			httpReq.Header.Set(key, value)
		}
	}

	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}

	return httpReq, nil
}

// cachedResponse serves a GET from the cache when a live entry exists.
func (c *Client) cachedResponse(ctx context.Context, method, key string) (*Response, bool) {
	if c.cache == nil || method != http.MethodGet {
		return nil, false
	}

	entry, err := c.cache.Get(ctx, key)
	if err != nil {
		return nil, false
	}

	headers := http.Header{}
	if entry.ETag != "" {
		headers.Set("ETag", entry.ETag)
	}

	return &Response{
		StatusCode: http.StatusOK,
		Headers:    headers,
		Body:       entry.Data,
	}, true
}

// storeResponse caches a successful GET response body.
func (c *Client) storeResponse(ctx context.Context, method, key string, resp *Response) {
	if c.cache == nil || method != http.MethodGet {
		return
	}

	_ = c.cache.Set(ctx, key, &spapi.CacheEntry{
		Data:      resp.Body,
		ETag:      resp.Headers.Get("ETag"),
		ExpiresAt: time.Now().Add(c.cacheTTL),
	})
}

func (c *Client) logResponse(req *Request, status int, apiErr error) {
	if !c.debug || c.logger == nil {
		return
	}

	fields := map[string]interface{}{
		"method": req.Method,
		"path":   req.Path,
		"status": status,
	}

	if apiErr != nil {
		fields["error"] = apiErr.Error()
	}

	c.logger.Debug("HTTP Response", fields)
}

func (c *Client) notifyResponse(ctx context.Context, req *spapi.Request, resp *spapi.Response) {
	if c.interceptors == nil {
		return
	}

	_ = c.interceptors.ExecuteResponseInterceptors(ctx, req, resp)
}
