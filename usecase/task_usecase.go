package usecase

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"taskdash/domain/dto"
	"taskdash/domain/model"
	"taskdash/domain/repository"
	"taskdash/infrastructure/logger"
)

const defaultMaxSubtasks = 8

// ITaskUsecase syncs Jira issues into the local task list and produces AI
// task breakdowns.
type ITaskUsecase interface {
	// Sync pulls issues from Jira and replaces the project's local task
	// list with the result.
	Sync(ctx context.Context, projectID string, req dto.TaskSyncRequest) (dto.TaskSyncResponse, error)
	List(projectID string) ([]model.Task, error)
	Transition(ctx context.Context, issueKey, transitionID string) error
	// BreakDown asks the configured AI provider to split a task into
	// actionable subtasks.
	BreakDown(ctx context.Context, projectID string, req dto.BreakdownRequest) (model.TaskBreakdown, error)
}

type TaskUsecase struct {
	jira    repository.IJira
	ai      repository.IAICompletion
	tasks   repository.ITaskStore
	aiModel string
	now     func() time.Time
}

func NewTaskUsecase(jira repository.IJira, ai repository.IAICompletion, tasks repository.ITaskStore, aiModel string) *TaskUsecase {
	return &TaskUsecase{
		jira:    jira,
		ai:      ai,
		tasks:   tasks,
		aiModel: aiModel,
		now:     time.Now,
	}
}

func (u *TaskUsecase) Sync(ctx context.Context, projectID string, req dto.TaskSyncRequest) (dto.TaskSyncResponse, error) {
	jql := req.JQL
	if jql == "" {
		jql = "assignee = currentUser() AND statusCategory != Done ORDER BY priority DESC"
	}
	maxResults := req.MaxResults
	if maxResults <= 0 {
		maxResults = 50
	}

	issues, err := u.jira.SearchIssues(ctx, jql, maxResults)
	if err != nil {
		return dto.TaskSyncResponse{}, err
	}
	for i := range issues {
		issues[i].ProjectID = projectID
	}
	if err := u.tasks.Replace(projectID, issues); err != nil {
		return dto.TaskSyncResponse{}, err
	}

	logger.GetLogger().WithField("project_id", projectID).WithField("count", len(issues)).Info("Jira tasks synced")
	return dto.TaskSyncResponse{ProjectID: projectID, Synced: len(issues)}, nil
}

func (u *TaskUsecase) List(projectID string) ([]model.Task, error) {
	return u.tasks.List(projectID)
}

func (u *TaskUsecase) Transition(ctx context.Context, issueKey, transitionID string) error {
	return u.jira.TransitionIssue(ctx, issueKey, transitionID)
}

func (u *TaskUsecase) BreakDown(ctx context.Context, projectID string, req dto.BreakdownRequest) (model.TaskBreakdown, error) {
	maxSubtasks := req.MaxSubtasks
	if maxSubtasks <= 0 {
		maxSubtasks = defaultMaxSubtasks
	}

	prompt := buildBreakdownPrompt(req.Title, req.Description, maxSubtasks)
	completion, err := u.ai.Complete(ctx, prompt)
	if err != nil {
		return model.TaskBreakdown{}, err
	}

	subtasks := parseSubtasks(completion, maxSubtasks)
	if len(subtasks) == 0 {
		return model.TaskBreakdown{}, fmt.Errorf("%w: completion contained no subtasks", model.ErrRemoteAPI)
	}

	return model.TaskBreakdown{
		TaskID:    projectID,
		Subtasks:  subtasks,
		Model:     u.aiModel,
		CreatedAt: u.now(),
	}, nil
}

func buildBreakdownPrompt(title, description string, maxSubtasks int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Break the following task into at most %d concrete, independently completable subtasks.\n", maxSubtasks)
	b.WriteString("Answer with a plain numbered list, one subtask per line, nothing else.\n\n")
	fmt.Fprintf(&b, "Task: %s\n", title)
	if description != "" {
		fmt.Fprintf(&b, "Details: %s\n", description)
	}
	return b.String()
}

// Matches "1. foo", "1) foo", "- foo" and "* foo" list items.
var listItemRe = regexp.MustCompile(`^\s*(?:\d+[.)]|[-*])\s+(.+)$`)

func parseSubtasks(completion string, limit int) []string {
	var out []string
	for _, line := range strings.Split(completion, "\n") {
		m := listItemRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		item := strings.TrimSpace(m[1])
		if item == "" {
			continue
		}
		out = append(out, item)
		if len(out) == limit {
			break
		}
	}
	return out
}

var _ ITaskUsecase = (*TaskUsecase)(nil)
