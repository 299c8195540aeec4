package dto

// TaskSyncRequest controls a Jira pull for one project.
type TaskSyncRequest struct {
	JQL        string `json:"jql,omitempty"`
	MaxResults int    `json:"max_results,omitempty"`
}

// TaskSyncResponse reports how many issues were pulled.
type TaskSyncResponse struct {
	ProjectID string `json:"project_id"`
	Synced    int    `json:"synced"`
}

// BreakdownRequest asks the AI provider to split a task into subtasks.
type BreakdownRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description,omitempty"`
	MaxSubtasks int    `json:"max_subtasks,omitempty"`
}
