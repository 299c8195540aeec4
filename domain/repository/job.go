package repository

import (
	"time"

	"taskdash/domain/model"
)

// IJobStore is the durable background job registry. Registrations survive
// process restarts; the scheduler polls Due on a ticker.
type IJobStore interface {
	// Put registers a job, replacing any existing registration with the
	// same key.
	Put(job model.ScheduledJob) error
	// Delete removes a registration by key; no-op when absent.
	Delete(key string) error
	// DeleteByProjectKind removes the registration(s) for a project+kind;
	// no-op when absent.
	DeleteByProjectKind(projectID string, kind model.JobKind) error
	// Due returns jobs whose RunAt is at or before now.
	Due(now time.Time) ([]model.ScheduledJob, error)
	// List returns all registrations.
	List() ([]model.ScheduledJob, error)
}
