package client

import (
	"encoding/json"
	"net/http"

	internalhttp "github.com/stackplane-io/spapi/internal/http"
)

// NewTestClient creates a client wired to the given base URL without
// authentication, for use against httptest servers.
func NewTestClient(baseURL string) *Client {
	client := &Client{
		httpClient: internalhttp.NewClient(baseURL, nil),
		baseURL:    baseURL,
	}

	client.initializeResourceClients()

	return client
}

// writeJSON writes v as the response body.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/vnd.api+json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeErrors writes a JSON:API error envelope.
func writeErrors(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]interface{}{
		"errors": []map[string]string{{"detail": detail}},
	})
}
