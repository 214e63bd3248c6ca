package spapi_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stackplane-io/spapi/pkg/spapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestClassifyResponse(t *testing.T) {
	t.Parallel()
	t.Run("structured error body", func(t *testing.T) {
		t.Parallel()

		body := []byte(`{"errors":[{"status":"404","code":"not_found","title":"Not Found","detail":"workspace not found"}]}`)

		apiErr := spapi.ClassifyResponse(http.StatusNotFound, nil, body)
		assert.Equal(t, spapi.ErrorKindNotFound, apiErr.Kind)
		assert.Equal(t, http.StatusNotFound, apiErr.Status)
		assert.Equal(t, "Not Found: workspace not found", apiErr.Message)
		require.Len(t, apiErr.Errors, 1)
		assert.Equal(t, "not_found", apiErr.Errors[0].Code)

		detail := apiErr.FirstDetail()
		require.NotNil(t, detail)
		assert.Equal(t, "workspace not found", detail.Detail)
	})

	t.Run("multiple details are joined", func(t *testing.T) {
		t.Parallel()

		body := []byte(`{"errors":[{"detail":"name is required"},{"detail":"category is invalid"}]}`)

		apiErr := spapi.ClassifyResponse(http.StatusUnprocessableEntity, nil, body)
		assert.Equal(t, spapi.ErrorKindValidation, apiErr.Kind)
		assert.Equal(t, "name is required; category is invalid", apiErr.Message)
	})

	t.Run("unparsable body degrades to generic message", func(t *testing.T) {
		t.Parallel()

		apiErr := spapi.ClassifyResponse(http.StatusNotFound, nil, []byte("<html>gateway</html>"))
		assert.Equal(t, spapi.ErrorKindNotFound, apiErr.Kind)
		assert.Equal(t, "HTTP 404", apiErr.Message)
		assert.Empty(t, apiErr.Errors)
	})

	t.Run("empty body degrades to generic message", func(t *testing.T) {
		t.Parallel()

		apiErr := spapi.ClassifyResponse(http.StatusInternalServerError, nil, nil)
		assert.Equal(t, spapi.ErrorKindServer, apiErr.Kind)
		assert.Equal(t, "HTTP 500", apiErr.Message)
	})

	t.Run("classification is repeatable", func(t *testing.T) {
		t.Parallel()

		body := []byte(`{"errors":[{"title":"Too Many Requests"}]}`)
		header := http.Header{"Retry-After": []string{"1.5"}}

		first := spapi.ClassifyResponse(http.StatusTooManyRequests, header, body)
		second := spapi.ClassifyResponse(http.StatusTooManyRequests, header, body)
		assert.Equal(t, first, second)
	})

	t.Run("rate limit carries retry-after", func(t *testing.T) {
		t.Parallel()

		header := http.Header{"Retry-After": []string{"2"}}

		apiErr := spapi.ClassifyResponse(http.StatusTooManyRequests, header, nil)
		assert.Equal(t, spapi.ErrorKindRateLimited, apiErr.Kind)
		assert.Equal(t, 2*time.Second, apiErr.RetryAfter)
	})

	t.Run("retry-after ignored for other kinds", func(t *testing.T) {
		t.Parallel()

		header := http.Header{"Retry-After": []string{"2"}}

		apiErr := spapi.ClassifyResponse(http.StatusServiceUnavailable, header, nil)
		assert.Zero(t, apiErr.RetryAfter)
	})

	t.Run("status mapping", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			status int
			kind   spapi.ErrorKind
		}{
			{http.StatusUnauthorized, spapi.ErrorKindAuth},
			{http.StatusForbidden, spapi.ErrorKindAuth},
			{http.StatusNotFound, spapi.ErrorKindNotFound},
			{http.StatusTooManyRequests, spapi.ErrorKindRateLimited},
			{http.StatusBadRequest, spapi.ErrorKindValidation},
			{http.StatusUnprocessableEntity, spapi.ErrorKindValidation},
			{http.StatusInternalServerError, spapi.ErrorKindServer},
			{http.StatusBadGateway, spapi.ErrorKindServer},
		}

		for _, tt := range tests {
			apiErr := spapi.ClassifyResponse(tt.status, nil, nil)
			assert.Equal(t, tt.kind, apiErr.Kind, "status %d", tt.status)
		}
	})
}

func TestClassifyTransportFailure(t *testing.T) {
	t.Parallel()

	cause := fmt.Errorf("dial tcp: connection refused")

	apiErr := spapi.ClassifyTransportFailure(cause)
	assert.Equal(t, spapi.ErrorKindServer, apiErr.Kind)
	assert.Zero(t, apiErr.Status)
	assert.Contains(t, apiErr.Message, "connection refused")
	require.ErrorIs(t, apiErr, cause)
}

func TestParseRetryAfter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value string
		want  time.Duration
		ok    bool
	}{
		{name: "integer seconds", value: "2", want: 2 * time.Second, ok: true},
		{name: "float seconds", value: "1.5", want: 1500 * time.Millisecond, ok: true},
		{name: "zero", value: "0", want: 0, ok: true},
		{name: "padded", value: " 3 ", want: 3 * time.Second, ok: true},
		{name: "empty", value: "", ok: false},
		{name: "negative", value: "-1", ok: false},
		{name: "http date is not supported", value: "Wed, 21 Oct 2026 07:28:00 GMT", ok: false},
		{name: "garbage", value: "soon", ok: false},
		{name: "overflowing duration", value: "1e15", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := spapi.ParseRetryAfter(tt.value)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestErrorPredicates(t *testing.T) {
	t.Parallel()

	notFound := spapi.ClassifyResponse(http.StatusNotFound, nil, nil)
	auth := spapi.ClassifyResponse(http.StatusUnauthorized, nil, nil)
	rateLimited := spapi.ClassifyResponse(http.StatusTooManyRequests, nil, nil)
	validation := spapi.ClassifyResponse(http.StatusUnprocessableEntity, nil, nil)
	server := spapi.ClassifyResponse(http.StatusBadGateway, nil, nil)

	assert.True(t, spapi.IsNotFound(notFound))
	assert.True(t, spapi.IsAuth(auth))
	assert.True(t, spapi.IsRateLimited(rateLimited))
	assert.True(t, spapi.IsValidation(validation))
	assert.True(t, spapi.IsServerError(server))

	assert.False(t, spapi.IsNotFound(auth))
	assert.False(t, spapi.IsAuth(notFound))
	assert.False(t, spapi.IsNotFound(nil))
	assert.False(t, spapi.IsServerError(fmt.Errorf("plain error")))
}

func TestErrorPredicates_Wrapped(t *testing.T) {
	t.Parallel()

	apiErr := spapi.ClassifyResponse(http.StatusNotFound, nil, nil)
	wrapped := fmt.Errorf("getting workspace: %w", apiErr)

	assert.True(t, spapi.IsNotFound(wrapped))
	assert.False(t, spapi.IsAuth(wrapped))
}

func TestErrorDetail_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Title: detail", spapi.ErrorDetail{Title: "Title", Detail: "detail"}.String())
	assert.Equal(t, "detail", spapi.ErrorDetail{Detail: "detail"}.String())
	assert.Equal(t, "Title", spapi.ErrorDetail{Title: "Title"}.String())
	assert.Empty(t, spapi.ErrorDetail{Code: "code_only"}.String())
}
