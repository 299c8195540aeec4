package jira

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"taskdash/domain/model"
	"taskdash/domain/repository"

	"github.com/google/go-querystring/query"
)

// Config holds Jira Cloud connection settings (basic auth email/API token).
type Config struct {
	BaseURL  string
	Email    string
	APIToken string
}

// Client is a thin request/response wrapper over the Jira REST API.
type Client struct {
	config     Config
	httpClient *http.Client
}

func NewClient(config Config) *Client {
	return &Client{
		config:     config,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

type searchParams struct {
	JQL        string `url:"jql"`
	MaxResults int    `url:"maxResults"`
	Fields     string `url:"fields"`
}

type issueFields struct {
	Summary     string `json:"summary"`
	Description string `json:"description"`
	Status      *struct {
		Name string `json:"name"`
	} `json:"status"`
	Priority *struct {
		Name string `json:"name"`
	} `json:"priority"`
	Assignee *struct {
		DisplayName string `json:"displayName"`
	} `json:"assignee"`
	DueDate string `json:"duedate"`
	Updated string `json:"updated"`
	Project *struct {
		Key string `json:"key"`
	} `json:"project"`
}

type searchResponse struct {
	Issues []struct {
		ID     string      `json:"id"`
		Key    string      `json:"key"`
		Fields issueFields `json:"fields"`
	} `json:"issues"`
}

// SearchIssues runs a JQL search and maps the issues to local tasks.
func (c *Client) SearchIssues(ctx context.Context, jql string, maxResults int) ([]model.Task, error) {
	if maxResults <= 0 {
		maxResults = 50
	}
	params := searchParams{
		JQL:        jql,
		MaxResults: maxResults,
		Fields:     "summary,description,status,priority,assignee,duedate,updated,project",
	}
	v, err := query.Values(params)
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/rest/api/2/search?%s", c.config.BaseURL, v.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.SetBasicAuth(c.config.Email, c.config.APIToken)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: jira search: %v", model.ErrRemoteAPI, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: jira search returned %d: %s", model.ErrRemoteAPI, resp.StatusCode, string(body))
	}

	var sr searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("%w: decode jira response: %v", model.ErrRemoteAPI, err)
	}

	tasks := make([]model.Task, 0, len(sr.Issues))
	for _, issue := range sr.Issues {
		task := model.Task{
			ID:          issue.ID,
			JiraKey:     issue.Key,
			Title:       issue.Fields.Summary,
			Description: issue.Fields.Description,
		}
		if issue.Fields.Project != nil {
			task.ProjectID = issue.Fields.Project.Key
		}
		if issue.Fields.Status != nil {
			task.Status = mapStatus(issue.Fields.Status.Name)
		}
		if issue.Fields.Priority != nil {
			task.Priority = issue.Fields.Priority.Name
		}
		if issue.Fields.Assignee != nil {
			task.Assignee = issue.Fields.Assignee.DisplayName
		}
		if issue.Fields.DueDate != "" {
			if due, err := time.Parse("2006-01-02", issue.Fields.DueDate); err == nil {
				task.DueDate = &due
			}
		}
		if issue.Fields.Updated != "" {
			if upd, err := time.Parse("2006-01-02T15:04:05.000-0700", issue.Fields.Updated); err == nil {
				task.UpdatedAt = upd
			}
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}

func mapStatus(jiraStatus string) string {
	switch jiraStatus {
	case "Done", "Closed", "Resolved":
		return "done"
	case "In Progress", "In Review":
		return "in_progress"
	default:
		return "todo"
	}
}

// TransitionIssue moves an issue through a workflow transition.
func (c *Client) TransitionIssue(ctx context.Context, issueKey, transitionID string) error {
	body := fmt.Sprintf(`{"transition":{"id":%q}}`, transitionID)
	url := fmt.Sprintf("%s/rest/api/2/issue/%s/transitions", c.config.BaseURL, issueKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, strings.NewReader(body))
	if err != nil {
		return err
	}
	req.SetBasicAuth(c.config.Email, c.config.APIToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: jira transition: %v", model.ErrRemoteAPI, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: jira transition returned %d: %s", model.ErrRemoteAPI, resp.StatusCode, string(respBody))
	}
	return nil
}

var _ repository.IJira = (*Client)(nil)
