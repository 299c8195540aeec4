package repository

import "taskdash/domain/model"

// ITokenCache holds per-project token state backed by the settings store.
type ITokenCache interface {
	// Load restores the token state for a project. The refresh token is
	// restored unconditionally; the access token only if its persisted
	// expiry is still in the future.
	Load(projectID string) (model.ProjectTokenState, error)
	// Save persists whichever fields of the state are set.
	Save(state model.ProjectTokenState) error
	// Clear removes all token material for a project (logout).
	Clear(projectID string) error
}
