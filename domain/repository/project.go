package repository

import "taskdash/domain/model"

// IProjectStore is the local project registry. Background jobs resolve a
// project id back to its name (the credential namespace) through it.
type IProjectStore interface {
	Save(project model.Project) error
	Get(id string) (model.Project, error)
	List() ([]model.Project, error)
	Delete(id string) error
}

// ITaskStore persists the locally synced task list per project.
type ITaskStore interface {
	// Replace swaps the stored task list for a project.
	Replace(projectID string, tasks []model.Task) error
	List(projectID string) ([]model.Task, error)
}
