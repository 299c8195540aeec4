package persistence

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"taskdash/domain/model"
	"taskdash/domain/repository"
)

const projectFileName = "projects.json"

// ErrProjectNotFound indicates the project id is not registered.
var ErrProjectNotFound = fmt.Errorf("project not found")

// ProjectStore keeps the project registry in a JSON map keyed by id.
type ProjectStore struct {
	path string
	mu   sync.Mutex
}

func NewProjectStore(dataDir string) *ProjectStore {
	return &ProjectStore{path: filepath.Join(dataDir, projectFileName)}
}

func (s *ProjectStore) Save(project model.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	projects := s.read()
	projects[project.ID] = project
	return s.write(projects)
}

func (s *ProjectStore) Get(id string) (model.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	projects := s.read()
	p, ok := projects[id]
	if !ok {
		return model.Project{}, fmt.Errorf("%w: %s", ErrProjectNotFound, id)
	}
	return p, nil
}

func (s *ProjectStore) List() ([]model.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []model.Project
	for _, p := range s.read() {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *ProjectStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	projects := s.read()
	if _, ok := projects[id]; !ok {
		return nil
	}
	delete(projects, id)
	return s.write(projects)
}

func (s *ProjectStore) read() map[string]model.Project {
	projects := map[string]model.Project{}
	data, err := os.ReadFile(s.path)
	if err != nil {
		return projects
	}
	_ = json.Unmarshal(data, &projects)
	return projects
}

func (s *ProjectStore) write(projects map[string]model.Project) error {
	data, err := json.MarshalIndent(projects, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("%w: write %s: %v", model.ErrFileIO, s.path, err)
	}
	return nil
}

var _ repository.IProjectStore = (*ProjectStore)(nil)
