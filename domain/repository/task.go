package repository

import (
	"context"

	"taskdash/domain/model"
)

// IJira is the thin task-sync surface over the Jira REST API.
type IJira interface {
	// SearchIssues runs a JQL search and maps issues to local tasks.
	SearchIssues(ctx context.Context, jql string, maxResults int) ([]model.Task, error)
	// TransitionIssue moves an issue through a workflow transition.
	TransitionIssue(ctx context.Context, issueKey, transitionID string) error
}

// IAICompletion is the generic completion surface used for task breakdown.
type IAICompletion interface {
	// Complete sends a prompt and returns the raw completion text.
	Complete(ctx context.Context, prompt string) (string, error)
}

// INotifier delivers best-effort user notifications. Implementations must
// never propagate delivery failures to the caller.
type INotifier interface {
	Notify(title, message string)
}
