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

const uploadHistoryFileName = "upload_history.json"

// UploadHistory is the single JSON array of upload records shared across all
// projects, filtered by project id on read. The file grows without bound.
type UploadHistory struct {
	path string
	mu   sync.Mutex
}

func NewUploadHistory(dataDir string) *UploadHistory {
	return &UploadHistory{path: filepath.Join(dataDir, uploadHistoryFileName)}
}

func (h *UploadHistory) Append(rec model.UploadRecord) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	recs := h.read()
	recs = append(recs, rec)
	data, err := json.MarshalIndent(recs, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(h.path, data, 0o644); err != nil {
		return fmt.Errorf("%w: write %s: %v", model.ErrFileIO, h.path, err)
	}
	return nil
}

func (h *UploadHistory) ListByProject(projectID string) ([]model.UploadRecord, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := []model.UploadRecord{}
	for _, rec := range h.read() {
		if rec.ProjectID == projectID {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (h *UploadHistory) read() []model.UploadRecord {
	data, err := os.ReadFile(h.path)
	if err != nil {
		return []model.UploadRecord{}
	}
	var recs []model.UploadRecord
	if err := json.Unmarshal(data, &recs); err != nil {
		return []model.UploadRecord{}
	}
	return recs
}

var _ repository.IUploadHistory = (*UploadHistory)(nil)
