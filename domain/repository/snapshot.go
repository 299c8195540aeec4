package repository

import "taskdash/domain/model"

// ISnapshotStore keeps the bounded per-project analytics history.
type ISnapshotStore interface {
	// Append adds a snapshot, evicting the oldest entry beyond the cap.
	Append(projectID string, snap model.AnalyticsSnapshot) error
	// List returns the retained snapshots, oldest first.
	List(projectID string) ([]model.AnalyticsSnapshot, error)
}

// IUploadHistory is the shared append-only upload record file.
type IUploadHistory interface {
	Append(rec model.UploadRecord) error
	// ListByProject filters the shared history by project id.
	ListByProject(projectID string) ([]model.UploadRecord, error)
}
