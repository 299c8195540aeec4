package model

import "time"

// Task is a locally tracked work item, optionally linked to a Jira issue.
type Task struct {
	ID          string     `json:"id"`
	ProjectID   string     `json:"project_id"`
	JiraKey     string     `json:"jira_key,omitempty"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      string     `json:"status"` // todo | in_progress | done
	Priority    string     `json:"priority,omitempty"`
	Assignee    string     `json:"assignee,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// TaskBreakdown is the AI-generated decomposition of a task.
type TaskBreakdown struct {
	TaskID    string   `json:"task_id"`
	Subtasks  []string `json:"subtasks"`
	Model     string   `json:"model"`
	CreatedAt time.Time `json:"created_at"`
}
