package persistence

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"taskdash/domain/model"
	"taskdash/domain/repository"
)

// SnapshotCap bounds the rolling analytics history per project; at a weekly
// cadence this approximates one year.
const SnapshotCap = 52

// SnapshotStore keeps a bounded append-only analytics history per project,
// one JSON array file each.
type SnapshotStore struct {
	dataDir string
	mu      sync.Mutex
}

func NewSnapshotStore(dataDir string) *SnapshotStore {
	return &SnapshotStore{dataDir: dataDir}
}

func (s *SnapshotStore) filePath(projectID string) string {
	return filepath.Join(s.dataDir, fmt.Sprintf("analytics_%s.json", projectID))
}

// Append adds a snapshot, evicting the oldest entries beyond the cap.
func (s *SnapshotStore) Append(projectID string, snap model.AnalyticsSnapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snaps, _ := s.read(projectID)
	snaps = append(snaps, snap)
	if len(snaps) > SnapshotCap {
		snaps = snaps[len(snaps)-SnapshotCap:]
	}
	data, err := json.MarshalIndent(snaps, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.filePath(projectID), data, 0o644); err != nil {
		return fmt.Errorf("%w: write snapshots for %s: %v", model.ErrFileIO, projectID, err)
	}
	return nil
}

// List returns the retained snapshots, oldest first. A missing file yields
// an empty history.
func (s *SnapshotStore) List(projectID string) ([]model.AnalyticsSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read(projectID)
}

func (s *SnapshotStore) read(projectID string) ([]model.AnalyticsSnapshot, error) {
	data, err := os.ReadFile(s.filePath(projectID))
	if err != nil {
		return []model.AnalyticsSnapshot{}, nil
	}
	var snaps []model.AnalyticsSnapshot
	if err := json.Unmarshal(data, &snaps); err != nil {
		return []model.AnalyticsSnapshot{}, fmt.Errorf("%w: corrupt snapshot file for %s: %v", model.ErrFileIO, projectID, err)
	}
	return snaps, nil
}

var _ repository.ISnapshotStore = (*SnapshotStore)(nil)
