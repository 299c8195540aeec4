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

// TaskStore keeps the last synced task list per project, one JSON file each.
type TaskStore struct {
	dataDir string
	mu      sync.Mutex
}

func NewTaskStore(dataDir string) *TaskStore {
	return &TaskStore{dataDir: dataDir}
}

func (s *TaskStore) filePath(projectID string) string {
	return filepath.Join(s.dataDir, fmt.Sprintf("tasks_%s.json", projectID))
}

func (s *TaskStore) Replace(projectID string, tasks []model.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(tasks, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.filePath(projectID), data, 0o644); err != nil {
		return fmt.Errorf("%w: write tasks for %s: %v", model.ErrFileIO, projectID, err)
	}
	return nil
}

func (s *TaskStore) List(projectID string) ([]model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.filePath(projectID))
	if err != nil {
		return []model.Task{}, nil
	}
	var tasks []model.Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		return []model.Task{}, fmt.Errorf("%w: corrupt task file for %s: %v", model.ErrFileIO, projectID, err)
	}
	return tasks, nil
}

var _ repository.ITaskStore = (*TaskStore)(nil)
