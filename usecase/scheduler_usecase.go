package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"taskdash/domain/model"
	"taskdash/domain/repository"
	"taskdash/infrastructure/logger"
)

// JobHandler executes one due job. Returning an error marks the run as
// failed; the job still completes (a recurring job is re-armed, a one-off
// job is removed).
type JobHandler func(ctx context.Context, job model.ScheduledJob) error

// ISchedulerUsecase owns the durable job table and the dispatch loop.
type ISchedulerUsecase interface {
	Register(kind model.JobKind, handler JobHandler)
	// ScheduleRecurring registers (or replaces) the recurring job for a
	// project and kind.
	ScheduleRecurring(projectID string, kind model.JobKind, interval time.Duration) error
	// ScheduleDeferred registers a one-off job. A zero or past run time
	// executes the job immediately without touching the job table.
	ScheduleDeferred(ctx context.Context, projectID string, kind model.JobKind, runAt time.Time, payload model.UploadPayload) (model.ScheduledJob, error)
	// Cancel removes the recurring job for a project and kind. Removing a
	// job that does not exist is a no-op.
	Cancel(projectID string, kind model.JobKind) error
	List() ([]model.ScheduledJob, error)
	// Run polls for due jobs until the context is done.
	Run(ctx context.Context) error
	// DispatchDue runs everything due at the given instant once.
	DispatchDue(ctx context.Context, now time.Time)
}

type SchedulerUsecase struct {
	jobs     repository.IJobStore
	notifier repository.INotifier
	poll     time.Duration
	now      func() time.Time

	mu       sync.RWMutex
	handlers map[model.JobKind]JobHandler
}

func NewSchedulerUsecase(jobs repository.IJobStore, notifier repository.INotifier, poll time.Duration) *SchedulerUsecase {
	if poll <= 0 {
		poll = 30 * time.Second
	}
	return &SchedulerUsecase{
		jobs:     jobs,
		notifier: notifier,
		poll:     poll,
		now:      time.Now,
		handlers: make(map[model.JobKind]JobHandler),
	}
}

func (s *SchedulerUsecase) Register(kind model.JobKind, handler JobHandler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handlers[kind] = handler
}

func (s *SchedulerUsecase) handler(kind model.JobKind) (JobHandler, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	h, ok := s.handlers[kind]
	return h, ok
}

func (s *SchedulerUsecase) ScheduleRecurring(projectID string, kind model.JobKind, interval time.Duration) error {
	if interval <= 0 {
		return fmt.Errorf("interval must be positive, got %s", interval)
	}
	now := s.now()
	job := model.ScheduledJob{
		Key:       model.RecurringJobKey(kind, projectID),
		Kind:      kind,
		ProjectID: projectID,
		RunAt:     now.Add(interval),
		Interval:  interval,
		CreatedAt: now,
	}
	if err := s.jobs.Put(job); err != nil {
		return err
	}
	logger.GetLogger().WithField("key", job.Key).WithField("run_at", job.RunAt).Info("Recurring job scheduled")
	return nil
}

func (s *SchedulerUsecase) ScheduleDeferred(ctx context.Context, projectID string, kind model.JobKind, runAt time.Time, payload model.UploadPayload) (model.ScheduledJob, error) {
	now := s.now()
	job := model.ScheduledJob{
		Kind:      kind,
		ProjectID: projectID,
		Payload:   payload,
		RunAt:     runAt,
		CreatedAt: now,
	}
	if runAt.IsZero() || !runAt.After(now) {
		// Already due: run it now instead of registering it.
		handler, ok := s.handler(kind)
		if !ok {
			return model.ScheduledJob{}, fmt.Errorf("no handler registered for job kind %s", kind)
		}
		job.RunAt = now
		if err := handler(ctx, job); err != nil {
			return model.ScheduledJob{}, err
		}
		return job, nil
	}

	job.Key = model.OneOffJobKey(kind, now)
	if err := s.jobs.Put(job); err != nil {
		return model.ScheduledJob{}, err
	}
	logger.GetLogger().WithField("key", job.Key).WithField("run_at", job.RunAt).Info("Deferred job scheduled")
	return job, nil
}

func (s *SchedulerUsecase) Cancel(projectID string, kind model.JobKind) error {
	return s.jobs.DeleteByProjectKind(projectID, kind)
}

func (s *SchedulerUsecase) List() ([]model.ScheduledJob, error) {
	return s.jobs.List()
}

func (s *SchedulerUsecase) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.poll)
	defer ticker.Stop()

	logger.GetLogger().WithField("poll_interval", s.poll).Info("Job scheduler started")
	for {
		select {
		case <-ctx.Done():
			logger.GetLogger().Info("Job scheduler stopped")
			return ctx.Err()
		case <-ticker.C:
			s.DispatchDue(ctx, s.now())
		}
	}
}

func (s *SchedulerUsecase) DispatchDue(ctx context.Context, now time.Time) {
	due, err := s.jobs.Due(now)
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("Failed to read due jobs")
		return
	}
	for _, job := range due {
		s.dispatch(ctx, job, now)
	}
}

// dispatch runs one job and completes it. A failed run is logged and
// surfaced through the notifier, never retried as-is: the recurring job
// gets its next slot, the one-off job is dropped.
func (s *SchedulerUsecase) dispatch(ctx context.Context, job model.ScheduledJob, now time.Time) {
	log := logger.GetLogger().WithField("key", job.Key).WithField("kind", job.Kind).WithField("project_id", job.ProjectID)

	handler, ok := s.handler(job.Kind)
	if !ok {
		log.Error("No handler registered for job kind, removing job")
		if err := s.jobs.Delete(job.Key); err != nil {
			log.WithField("error", err).Error("Failed to remove orphaned job")
		}
		return
	}

	log.Info("Dispatching job")
	if err := handler(ctx, job); err != nil {
		log.WithField("error", err).Error("Job execution failed")
		s.notifier.Notify("Scheduled job failed", fmt.Sprintf("%s for project %s: %v", job.Kind, job.ProjectID, err))
	}

	if job.Recurring() {
		job.RunAt = now.Add(job.Interval)
		if err := s.jobs.Put(job); err != nil {
			log.WithField("error", err).Error("Failed to re-arm recurring job")
		}
		return
	}
	if err := s.jobs.Delete(job.Key); err != nil {
		log.WithField("error", err).Error("Failed to remove completed job")
	}
}

var _ ISchedulerUsecase = (*SchedulerUsecase)(nil)
