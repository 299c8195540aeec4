package jira_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"taskdash/domain/model"
	"taskdash/infrastructure/clients/jira"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_SearchIssues(t *testing.T) {
	var gotPath, gotJQL, gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotJQL = r.URL.Query().Get("jql")
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"issues": []map[string]interface{}{
				{
					"id":  "10001",
					"key": "DASH-1",
					"fields": map[string]interface{}{
						"summary":     "Edit weekly video",
						"description": "Cut the raw footage",
						"status":      map[string]string{"name": "In Progress"},
						"priority":    map[string]string{"name": "High"},
						"assignee":    map[string]string{"displayName": "Sam"},
						"duedate":     "2026-09-01",
						"updated":     "2026-08-20T10:30:00.000+0000",
						"project":     map[string]string{"key": "DASH"},
					},
				},
				{
					"id":  "10002",
					"key": "DASH-2",
					"fields": map[string]interface{}{
						"summary": "Publish thumbnail",
						"status":  map[string]string{"name": "Done"},
					},
				},
			},
		})
	}))
	defer server.Close()

	client := jira.NewClient(jira.Config{BaseURL: server.URL, Email: "me@example.com", APIToken: "tok"})
	tasks, err := client.SearchIssues(context.Background(), "project = DASH", 25)
	require.NoError(t, err)

	assert.Equal(t, "/rest/api/2/search", gotPath)
	assert.Equal(t, "project = DASH", gotJQL)
	assert.NotEmpty(t, gotAuth)

	require.Len(t, tasks, 2)
	assert.Equal(t, "DASH-1", tasks[0].JiraKey)
	assert.Equal(t, "Edit weekly video", tasks[0].Title)
	assert.Equal(t, "in_progress", tasks[0].Status)
	assert.Equal(t, "High", tasks[0].Priority)
	assert.Equal(t, "Sam", tasks[0].Assignee)
	require.NotNil(t, tasks[0].DueDate)
	assert.Equal(t, "2026-09-01", tasks[0].DueDate.Format("2006-01-02"))
	assert.Equal(t, "done", tasks[1].Status)
}

func TestClient_SearchIssuesServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	client := jira.NewClient(jira.Config{BaseURL: server.URL})
	_, err := client.SearchIssues(context.Background(), "bad jql (", 10)
	assert.ErrorIs(t, err, model.ErrRemoteAPI)
}

func TestClient_TransitionIssue(t *testing.T) {
	var gotBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rest/api/2/issue/DASH-1/transitions", r.URL.Path)
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := jira.NewClient(jira.Config{BaseURL: server.URL})
	err := client.TransitionIssue(context.Background(), "DASH-1", "31")
	require.NoError(t, err)
	assert.JSONEq(t, `{"transition":{"id":"31"}}`, gotBody)
}

func TestClient_TransitionIssueFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
	}))
	defer server.Close()

	client := jira.NewClient(jira.Config{BaseURL: server.URL})
	err := client.TransitionIssue(context.Background(), "DASH-1", "31")
	assert.ErrorIs(t, err, model.ErrRemoteAPI)
}
