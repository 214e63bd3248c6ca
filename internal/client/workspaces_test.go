package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stackplane-io/spapi/pkg/spapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkspacesClient_Create(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v2/organizations/acme/workspaces", r.URL.Path)
		assert.Equal(t, "POST", r.Method)

		var doc map[string]interface{}

		err := json.NewDecoder(r.Body).Decode(&doc)
		require.NoError(t, err)

		data, ok := doc["data"].(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, spapi.TypeWorkspaces, data["type"])

		writeJSON(w, http.StatusCreated, spapi.Document[spapi.Workspace]{
			Data: spapi.Workspace{
				Resource:   spapi.Resource{ID: "ws-1", Type: spapi.TypeWorkspaces},
				Attributes: spapi.WorkspaceAttributes{Name: "production"},
			},
		})
	}))
	defer server.Close()

	client := NewTestClient(server.URL)

	workspace, err := client.Workspaces().Create(context.Background(), "acme", &spapi.WorkspaceCreateRequest{
		Name: "production",
	})
	require.NoError(t, err)
	assert.Equal(t, "ws-1", workspace.ID)
}

func TestWorkspacesClient_Create_WithProject(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var doc map[string]interface{}

		err := json.NewDecoder(r.Body).Decode(&doc)
		require.NoError(t, err)

		data, ok := doc["data"].(map[string]interface{})
		require.True(t, ok)

		relationships, ok := data["relationships"].(map[string]interface{})
		require.True(t, ok)

		project, ok := relationships["project"].(map[string]interface{})
		require.True(t, ok)

		projectData, ok := project["data"].(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, "proj-1", projectData["id"])

		writeJSON(w, http.StatusCreated, spapi.Document[spapi.Workspace]{
			Data: spapi.Workspace{Resource: spapi.Resource{ID: "ws-1"}},
		})
	}))
	defer server.Close()

	client := NewTestClient(server.URL)
	projectID := "proj-1"

	_, err := client.Workspaces().Create(context.Background(), "acme", &spapi.WorkspaceCreateRequest{
		Name:      "production",
		ProjectID: &projectID,
	})
	require.NoError(t, err)
}

func TestWorkspacesClient_GetByName(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v2/organizations/acme/workspaces/production", r.URL.Path)

		writeJSON(w, http.StatusOK, spapi.Document[spapi.Workspace]{
			Data: spapi.Workspace{
				Resource:   spapi.Resource{ID: "ws-1"},
				Attributes: spapi.WorkspaceAttributes{Name: "production"},
			},
		})
	}))
	defer server.Close()

	client := NewTestClient(server.URL)

	workspace, err := client.Workspaces().GetByName(context.Background(), "acme", "production")
	require.NoError(t, err)
	assert.Equal(t, "production", workspace.Attributes.Name)
}

func TestWorkspacesClient_Lock(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v2/workspaces/ws-1/actions/lock", r.URL.Path)
		assert.Equal(t, "POST", r.Method)

		var request spapi.WorkspaceLockRequest

		err := json.NewDecoder(r.Body).Decode(&request)
		require.NoError(t, err)
		assert.Equal(t, "maintenance window", request.Reason)

		writeJSON(w, http.StatusOK, spapi.Document[spapi.Workspace]{
			Data: spapi.Workspace{
				Resource:   spapi.Resource{ID: "ws-1"},
				Attributes: spapi.WorkspaceAttributes{Name: "production", Locked: true},
			},
		})
	}))
	defer server.Close()

	client := NewTestClient(server.URL)

	workspace, err := client.Workspaces().Lock(context.Background(), "ws-1", &spapi.WorkspaceLockRequest{
		Reason: "maintenance window",
	})
	require.NoError(t, err)
	assert.True(t, workspace.Attributes.Locked)
}

func TestWorkspacesClient_Lock_Conflict(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeErrors(w, http.StatusConflict, "workspace already locked")
	}))
	defer server.Close()

	client := NewTestClient(server.URL)

	_, err := client.Workspaces().Lock(context.Background(), "ws-1", nil)
	require.Error(t, err)
	assert.True(t, spapi.IsValidation(err))
	assert.Contains(t, err.Error(), "workspace already locked")
}

func TestWorkspacesClient_Unlock(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v2/workspaces/ws-1/actions/unlock", r.URL.Path)
		assert.Equal(t, "POST", r.Method)

		writeJSON(w, http.StatusOK, spapi.Document[spapi.Workspace]{
			Data: spapi.Workspace{
				Resource:   spapi.Resource{ID: "ws-1"},
				Attributes: spapi.WorkspaceAttributes{Name: "production", Locked: false},
			},
		})
	}))
	defer server.Close()

	client := NewTestClient(server.URL)

	workspace, err := client.Workspaces().Unlock(context.Background(), "ws-1")
	require.NoError(t, err)
	assert.False(t, workspace.Attributes.Locked)
}

func TestWorkspacesClient_RequiredIDs(t *testing.T) {
	client := NewTestClient("http://unused.example.com")
	ctx := context.Background()

	_, err := client.Workspaces().Get(ctx, "")
	require.ErrorIs(t, err, spapi.ErrWorkspaceIDRequired)

	_, err = client.Workspaces().Lock(ctx, "", nil)
	require.ErrorIs(t, err, spapi.ErrWorkspaceIDRequired)

	_, err = client.Workspaces().Create(ctx, "", nil)
	require.ErrorIs(t, err, spapi.ErrOrganizationNameRequired)

	_, err = client.Workspaces().ListAll(ctx, "", nil)
	require.ErrorIs(t, err, spapi.ErrOrganizationNameRequired)
}
