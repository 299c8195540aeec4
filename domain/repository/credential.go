package repository

import "taskdash/domain/model"

// ICredentialStore persists per-project OAuth client pairs.
type ICredentialStore interface {
	// Get looks up the client pair for a project. Missing file or missing
	// keys yield empty fields, never an error.
	Get(projectID, projectName string) (model.ProjectCredential, error)
	// Set upserts the client pair for a project name, rewriting the store.
	Set(projectName, clientID, clientSecret string) error
}
