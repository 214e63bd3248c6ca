package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stackplane-io/spapi/internal/auth"
	sphttp "github.com/stackplane-io/spapi/internal/http"
	"github.com/stackplane-io/spapi/pkg/spapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockLogger for testing.
type MockLogger struct {
	logs []map[string]interface{}
}

func (l *MockLogger) Debug(msg string, fields map[string]interface{}) {
	l.logs = append(l.logs, map[string]interface{}{"level": "debug", "msg": msg, "fields": fields})
}

func (l *MockLogger) Info(msg string, fields map[string]interface{}) {
	l.logs = append(l.logs, map[string]interface{}{"level": "info", "msg": msg, "fields": fields})
}

func (l *MockLogger) Warn(msg string, fields map[string]interface{}) {
	l.logs = append(l.logs, map[string]interface{}{"level": "warn", "msg": msg, "fields": fields})
}

func (l *MockLogger) Error(msg string, fields map[string]interface{}) {
	l.logs = append(l.logs, map[string]interface{}{"level": "error", "msg": msg, "fields": fields})
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestClient_Do(t *testing.T) {
	t.Parallel()
	t.Run("successful request", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/api/v2/workspaces", request.URL.Path)
			assert.Equal(t, "GET", request.Method)
			assert.Equal(t, "Bearer test-token", request.Header.Get("Authorization"))
			assert.Equal(t, "application/vnd.api+json", request.Header.Get("Accept"))

			response := map[string]string{"id": "ws-1", "name": "test-workspace"}
			_ = json.NewEncoder(writer).Encode(response)
		}))
		defer server.Close()

		tokenManager := auth.NewStaticTokenManager("test-token")
		client := sphttp.NewClient(server.URL, tokenManager)

		req := &sphttp.Request{
			Method: "GET",
			Path:   "/api/v2/workspaces",
		}

		resp, err := client.Do(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)

		var result map[string]string

		err = json.Unmarshal(resp.Body, &result)
		require.NoError(t, err)
		assert.Equal(t, "ws-1", result["id"])
	})

	t.Run("request with query parameters", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "2", request.URL.Query().Get("page[number]"))
			writer.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		client := sphttp.NewClient(server.URL, nil)

		req := &sphttp.Request{
			Method: "GET",
			Path:   "/api/v2/workspaces",
			Query:  url.Values{"page[number]": []string{"2"}},
		}

		resp, err := client.Do(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
	})

	t.Run("request with body", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "application/vnd.api+json", request.Header.Get("Content-Type"))

			var payload map[string]string

			err := json.NewDecoder(request.Body).Decode(&payload)
			require.NoError(t, err)
			assert.Equal(t, "demo", payload["name"])
			writer.WriteHeader(http.StatusCreated)
		}))
		defer server.Close()

		client := sphttp.NewClient(server.URL, nil)

		resp, err := client.Post(context.Background(), "/api/v2/organizations", map[string]string{"name": "demo"})
		require.NoError(t, err)
		assert.Equal(t, http.StatusCreated, resp.StatusCode)
	})

	t.Run("no query string when query is empty", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Empty(t, request.URL.RawQuery)
			writer.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		client := sphttp.NewClient(server.URL, nil)

		_, err := client.Get(context.Background(), "/api/v2/ping", url.Values{})
		require.NoError(t, err)
	})

	t.Run("absolute URL bypasses base URL", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/elsewhere", request.URL.Path)
			writer.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		client := sphttp.NewClient("https://unused.example.com", nil)

		resp, err := client.Get(context.Background(), server.URL+"/elsewhere", nil)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("error response is classified", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			writer.WriteHeader(http.StatusNotFound)
			_, _ = writer.Write([]byte(`{"errors":[{"status":"404","title":"Not Found","detail":"workspace not found"}]}`))
		}))
		defer server.Close()

		client := sphttp.NewClient(server.URL, nil)

		resp, err := client.Get(context.Background(), "/api/v2/workspaces/nope", nil)
		require.Error(t, err)
		require.NotNil(t, resp)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.True(t, spapi.IsNotFound(err))

		apiErr := &spapi.APIError{}
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, "Not Found: workspace not found", apiErr.Message)
	})

	t.Run("unexpected 3xx is classified", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			writer.WriteHeader(http.StatusNotModified)
		}))
		defer server.Close()

		client := sphttp.NewClient(server.URL, nil)

		resp, err := client.Get(context.Background(), "/api/v2/workspaces", nil)
		require.Error(t, err)
		require.NotNil(t, resp)
		assert.Equal(t, http.StatusNotModified, resp.StatusCode)

		apiErr := &spapi.APIError{}
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, spapi.ErrorKindGeneric, apiErr.Kind)
		assert.Equal(t, "HTTP 304", apiErr.Message)
	})

	t.Run("per-call headers override defaults", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "custom-value", request.Header.Get("X-Custom"))
			writer.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		client := sphttp.NewClient(server.URL, nil)

		req := &sphttp.Request{
			Method:  "GET",
			Path:    "/api/v2/ping",
			Headers: map[string]string{"X-Custom": "custom-value"},
		}

		_, err := client.Do(context.Background(), req)
		require.NoError(t, err)
	})
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestClient_Retries(t *testing.T) {
	t.Parallel()
	t.Run("retries transient statuses then succeeds", func(t *testing.T) {
		t.Parallel()

		var attempts int32

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			if atomic.AddInt32(&attempts, 1) < 3 {
				writer.WriteHeader(http.StatusServiceUnavailable)

				return
			}

			writer.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		client := sphttp.NewClient(server.URL, nil,
			sphttp.WithRetryConfig(3, time.Millisecond, 10*time.Millisecond))

		resp, err := client.Get(context.Background(), "/api/v2/ping", nil)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, int32(3), atomic.LoadInt32(&attempts))
	})

	t.Run("exhausted retries surface classified error", func(t *testing.T) {
		t.Parallel()

		var attempts int32

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			atomic.AddInt32(&attempts, 1)
			writer.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer server.Close()

		client := sphttp.NewClient(server.URL, nil,
			sphttp.WithRetryConfig(2, time.Millisecond, 10*time.Millisecond))

		_, err := client.Get(context.Background(), "/api/v2/ping", nil)
		require.Error(t, err)
		assert.True(t, spapi.IsServerError(err))
		// retryMax retries means retryMax+1 attempts total
		assert.Equal(t, int32(3), atomic.LoadInt32(&attempts))
	})

	t.Run("4xx is not retried", func(t *testing.T) {
		t.Parallel()

		var attempts int32

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			atomic.AddInt32(&attempts, 1)
			writer.WriteHeader(http.StatusBadRequest)
		}))
		defer server.Close()

		client := sphttp.NewClient(server.URL, nil,
			sphttp.WithRetryConfig(3, time.Millisecond, 10*time.Millisecond))

		_, err := client.Get(context.Background(), "/api/v2/ping", nil)
		require.Error(t, err)
		assert.True(t, spapi.IsValidation(err))
		assert.Equal(t, int32(1), atomic.LoadInt32(&attempts))
	})

	t.Run("rate limit carries retry-after hint", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			writer.Header().Set("Retry-After", "2")
			writer.WriteHeader(http.StatusTooManyRequests)
		}))
		defer server.Close()

		client := sphttp.NewClient(server.URL, nil,
			sphttp.WithRetryConfig(0, time.Millisecond, 10*time.Millisecond))

		_, err := client.Get(context.Background(), "/api/v2/ping", nil)
		require.Error(t, err)
		assert.True(t, spapi.IsRateLimited(err))

		apiErr := &spapi.APIError{}
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, 2*time.Second, apiErr.RetryAfter)
	})

	t.Run("transport failure is wrapped", func(t *testing.T) {
		t.Parallel()

		client := sphttp.NewClient("http://127.0.0.1:1", nil,
			sphttp.WithRetryConfig(0, time.Millisecond, 10*time.Millisecond),
			sphttp.WithTimeout(time.Second))

		_, err := client.Get(context.Background(), "/api/v2/ping", nil)
		require.Error(t, err)
		assert.True(t, spapi.IsServerError(err))
	})
}

func TestClient_Cache(t *testing.T) {
	t.Parallel()
	t.Run("GET responses are served from cache", func(t *testing.T) {
		t.Parallel()

		var hits int32

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			atomic.AddInt32(&hits, 1)
			_, _ = writer.Write([]byte(`{"data":[]}`))
		}))
		defer server.Close()

		cache := spapi.NewMemoryCache(10)
		client := sphttp.NewClient(server.URL, nil, sphttp.WithCache(cache, time.Minute))

		for i := 0; i < 3; i++ {
			resp, err := client.Get(context.Background(), "/api/v2/organizations", nil)
			require.NoError(t, err)
			assert.Equal(t, `{"data":[]}`, string(resp.Body))
		}

		assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
	})

	t.Run("POST responses are not cached", func(t *testing.T) {
		t.Parallel()

		var hits int32

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			atomic.AddInt32(&hits, 1)
			writer.WriteHeader(http.StatusCreated)
		}))
		defer server.Close()

		cache := spapi.NewMemoryCache(10)
		client := sphttp.NewClient(server.URL, nil, sphttp.WithCache(cache, time.Minute))

		for i := 0; i < 2; i++ {
			_, err := client.Post(context.Background(), "/api/v2/organizations", map[string]string{"name": "x"})
			require.NoError(t, err)
		}

		assert.Equal(t, int32(2), atomic.LoadInt32(&hits))
	})
}

func TestClient_Interceptors(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "injected", request.Header.Get("X-Trace"))
		writer.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	metrics := spapi.NewRequestMetrics()
	chain := spapi.NewInterceptorChain()
	chain.AddRequestInterceptor(spapi.HeaderInterceptor("X-Trace", "injected"))
	chain.AddResponseInterceptor(spapi.MetricsInterceptor(metrics))

	client := sphttp.NewClient(server.URL, nil, sphttp.WithInterceptors(chain))

	_, err := client.Get(context.Background(), "/api/v2/ping", nil)
	require.NoError(t, err)

	snapshot := metrics.Snapshot()
	assert.Equal(t, int64(1), snapshot.Requests)
	assert.Equal(t, int64(1), snapshot.Success)
}

func TestClient_InterceptorBodyRewrite(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		var payload map[string]string

		require.NoError(t, json.NewDecoder(request.Body).Decode(&payload))
		assert.Equal(t, "rewritten", payload["name"])
		writer.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	chain := spapi.NewInterceptorChain()
	chain.AddRequestInterceptor(func(ctx context.Context, req *spapi.Request) error {
		req.Body = []byte(`{"name":"rewritten"}`)

		return nil
	})

	client := sphttp.NewClient(server.URL, nil, sphttp.WithInterceptors(chain))

	_, err := client.Post(context.Background(), "/api/v2/organizations", map[string]string{"name": "original"})
	require.NoError(t, err)
}

func TestClient_UserAgent(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, sphttp.DefaultUserAgent+" spctl/1.0", request.Header.Get("User-Agent"))
		writer.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := sphttp.NewClient(server.URL, nil, sphttp.WithUserAgentSuffix("spctl/1.0"))

	_, err := client.Get(context.Background(), "/api/v2/ping", nil)
	require.NoError(t, err)
}

func TestClient_DebugLogging(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	logger := &MockLogger{}
	client := sphttp.NewClient(server.URL, nil, sphttp.WithLogger(logger), sphttp.WithDebug(true))

	_, err := client.Get(context.Background(), "/api/v2/ping", nil)
	require.NoError(t, err)
	require.Len(t, logger.logs, 2)
	assert.Equal(t, "HTTP Request", logger.logs[0]["msg"])
	assert.Equal(t, "HTTP Response", logger.logs[1]["msg"])
}
