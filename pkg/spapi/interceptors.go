package spapi

import (
	"context"
	"fmt"
	"net/http"
	"sync"
)

// Request represents an outgoing HTTP request as seen by interceptors.
type Request struct {
	Method  string
	Path    string
	Headers http.Header
	Body    []byte
}

// Response represents an HTTP response as seen by interceptors.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
	Error      error
}

// RequestInterceptor is called before a request is sent. Returning an error
// aborts the call.
type RequestInterceptor func(ctx context.Context, req *Request) error

// ResponseInterceptor is called after a response is received (including
// error responses).
type ResponseInterceptor func(ctx context.Context, req *Request, resp *Response) error

// InterceptorChain manages ordered request and response interceptors.
type InterceptorChain struct {
	requestInterceptors  []RequestInterceptor
	responseInterceptors []ResponseInterceptor
}

// NewInterceptorChain creates an empty chain.
func NewInterceptorChain() *InterceptorChain {
	return &InterceptorChain{}
}

// AddRequestInterceptor appends a request interceptor.
func (c *InterceptorChain) AddRequestInterceptor(interceptor RequestInterceptor) {
	c.requestInterceptors = append(c.requestInterceptors, interceptor)
}

// AddResponseInterceptor appends a response interceptor.
func (c *InterceptorChain) AddResponseInterceptor(interceptor ResponseInterceptor) {
	c.responseInterceptors = append(c.responseInterceptors, interceptor)
}

// ExecuteRequestInterceptors runs all request interceptors in order.
func (c *InterceptorChain) ExecuteRequestInterceptors(ctx context.Context, req *Request) error {
	for _, interceptor := range c.requestInterceptors {
		if err := interceptor(ctx, req); err != nil {
			return fmt.Errorf("request interceptor failed: %w", err)
		}
	}

	return nil
}

// ExecuteResponseInterceptors runs all response interceptors in order.
func (c *InterceptorChain) ExecuteResponseInterceptors(ctx context.Context, req *Request, resp *Response) error {
	for _, interceptor := range c.responseInterceptors {
		if err := interceptor(ctx, req, resp); err != nil {
			return fmt.Errorf("response interceptor failed: %w", err)
		}
	}

	return nil
}

// Common interceptors

// LoggingInterceptor logs each outgoing request.
func LoggingInterceptor(logger Logger) RequestInterceptor {
	return func(ctx context.Context, req *Request) error {
		logger.Debug("API Request", map[string]interface{}{
			"method": req.Method,
			"path":   req.Path,
		})

		return nil
	}
}

// LoggingResponseInterceptor logs each response, at error level for
// failures.
func LoggingResponseInterceptor(logger Logger) ResponseInterceptor {
	return func(ctx context.Context, req *Request, resp *Response) error {
		fields := map[string]interface{}{
			"method": req.Method,
			"path":   req.Path,
			"status": resp.StatusCode,
		}

		if resp.Error != nil {
			fields["error"] = resp.Error.Error()
			logger.Error("API Response", fields)
		} else {
			logger.Debug("API Response", fields)
		}

		return nil
	}
}

// HeaderInterceptor attaches a fixed header to every request.
func HeaderInterceptor(key, value string) RequestInterceptor {
	return func(ctx context.Context, req *Request) error {
		if req.Headers == nil {
			req.Headers = http.Header{}
		}

		req.Headers.Set(key, value)

		return nil
	}
}

// RequestMetrics aggregates response counts by status class.
type RequestMetrics struct {
	mu       sync.Mutex
	counters MetricsCounters
}

// NewRequestMetrics creates a zeroed metrics collector.
func NewRequestMetrics() *RequestMetrics {
	return &RequestMetrics{}
}

// MetricsCounters is a point-in-time view of request metrics.
type MetricsCounters struct {
	Requests        int64
	Success         int64
	ClientErrors    int64
	ServerErrors    int64
	TransportErrors int64
}

// Snapshot returns a copy of the current counters.
func (m *RequestMetrics) Snapshot() MetricsCounters {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.counters
}

// MetricsInterceptor counts responses into metrics.
func MetricsInterceptor(metrics *RequestMetrics) ResponseInterceptor {
	return func(ctx context.Context, req *Request, resp *Response) error {
		metrics.mu.Lock()
		defer metrics.mu.Unlock()

		metrics.counters.Requests++

		switch {
		case resp.Error != nil && resp.StatusCode == 0:
			metrics.counters.TransportErrors++
		case resp.StatusCode >= 500:
			metrics.counters.ServerErrors++
		case resp.StatusCode >= 400:
			metrics.counters.ClientErrors++
		default:
			metrics.counters.Success++
		}

		return nil
	}
}
