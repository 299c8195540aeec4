package persistence

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"taskdash/domain/model"
	"taskdash/domain/repository"
)

const jobRegistryFileName = "scheduled_jobs.json"

// JobStore is the durable job registry: a JSON map keyed by job key,
// rewritten on every mutation so registrations survive restarts.
type JobStore struct {
	path string
	mu   sync.Mutex
}

func NewJobStore(dataDir string) *JobStore {
	return &JobStore{path: filepath.Join(dataDir, jobRegistryFileName)}
}

// Put registers a job, replacing any existing registration with the same key.
func (s *JobStore) Put(job model.ScheduledJob) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	jobs := s.read()
	jobs[job.Key] = job
	return s.write(jobs)
}

// Delete removes a registration by key; no-op when absent.
func (s *JobStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	jobs := s.read()
	if _, ok := jobs[key]; !ok {
		return nil
	}
	delete(jobs, key)
	return s.write(jobs)
}

// DeleteByProjectKind removes all registrations for a project+kind.
func (s *JobStore) DeleteByProjectKind(projectID string, kind model.JobKind) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	jobs := s.read()
	changed := false
	for key, job := range jobs {
		if job.ProjectID == projectID && job.Kind == kind {
			delete(jobs, key)
			changed = true
		}
	}
	if !changed {
		return nil
	}
	return s.write(jobs)
}

// Due returns jobs whose RunAt is at or before now, oldest first.
func (s *JobStore) Due(now time.Time) ([]model.ScheduledJob, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var due []model.ScheduledJob
	for _, job := range s.read() {
		if !job.RunAt.After(now) {
			due = append(due, job)
		}
	}
	sort.Slice(due, func(i, j int) bool { return due[i].RunAt.Before(due[j].RunAt) })
	return due, nil
}

// List returns all registrations.
func (s *JobStore) List() ([]model.ScheduledJob, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []model.ScheduledJob
	for _, job := range s.read() {
		out = append(out, job)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

func (s *JobStore) read() map[string]model.ScheduledJob {
	jobs := map[string]model.ScheduledJob{}
	data, err := os.ReadFile(s.path)
	if err != nil {
		return jobs
	}
	_ = json.Unmarshal(data, &jobs)
	return jobs
}

func (s *JobStore) write(jobs map[string]model.ScheduledJob) error {
	data, err := json.MarshalIndent(jobs, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("%w: write %s: %v", model.ErrFileIO, s.path, err)
	}
	return nil
}

var _ repository.IJobStore = (*JobStore)(nil)
