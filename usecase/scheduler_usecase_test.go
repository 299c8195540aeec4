package usecase_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"taskdash/domain/model"
	"taskdash/infrastructure/persistence"
	"taskdash/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingNotifier struct {
	mu       sync.Mutex
	messages []string
}

func (n *recordingNotifier) Notify(title, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, title+": "+message)
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.messages)
}

func newScheduler(t *testing.T) (*usecase.SchedulerUsecase, *persistence.JobStore, *recordingNotifier) {
	t.Helper()
	store := persistence.NewJobStore(t.TempDir())
	notifier := &recordingNotifier{}
	return usecase.NewSchedulerUsecase(store, notifier, time.Second), store, notifier
}

func TestScheduler_RecurringIsIdempotent(t *testing.T) {
	s, store, _ := newScheduler(t)
	s.Register(model.JobKindWeeklyAnalytics, func(ctx context.Context, job model.ScheduledJob) error { return nil })

	require.NoError(t, s.ScheduleRecurring("p1", model.JobKindWeeklyAnalytics, 7*24*time.Hour))
	require.NoError(t, s.ScheduleRecurring("p1", model.JobKindWeeklyAnalytics, 7*24*time.Hour))

	jobs, err := store.List()
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, model.RecurringJobKey(model.JobKindWeeklyAnalytics, "p1"), jobs[0].Key)
	assert.True(t, jobs[0].Recurring())
}

func TestScheduler_RecurringRejectsNonPositiveInterval(t *testing.T) {
	s, _, _ := newScheduler(t)
	assert.Error(t, s.ScheduleRecurring("p1", model.JobKindWeeklyAnalytics, 0))
}

func TestScheduler_DeferredPastRunsImmediately(t *testing.T) {
	s, store, _ := newScheduler(t)

	var ran []model.UploadPayload
	s.Register(model.JobKindDeferredUpload, func(ctx context.Context, job model.ScheduledJob) error {
		ran = append(ran, job.Payload)
		return nil
	})

	payload := model.UploadPayload{VideoPath: "/tmp/v.mp4", Title: "Past due"}
	job, err := s.ScheduleDeferred(context.Background(), "p1", model.JobKindDeferredUpload, time.Now().Add(-time.Minute), payload)
	require.NoError(t, err)
	assert.Empty(t, job.Key, "an immediately-run job is never registered")

	require.Len(t, ran, 1)
	assert.Equal(t, "Past due", ran[0].Title)

	jobs, _ := store.List()
	assert.Empty(t, jobs)
}

func TestScheduler_DeferredFutureIsRegistered(t *testing.T) {
	s, store, _ := newScheduler(t)
	s.Register(model.JobKindDeferredUpload, func(ctx context.Context, job model.ScheduledJob) error {
		t.Fatal("future job must not run at registration time")
		return nil
	})

	runAt := time.Now().Add(time.Hour)
	job, err := s.ScheduleDeferred(context.Background(), "p1", model.JobKindDeferredUpload, runAt, model.UploadPayload{Title: "Later"})
	require.NoError(t, err)
	assert.NotEmpty(t, job.Key)

	jobs, _ := store.List()
	require.Len(t, jobs, 1)
	assert.Equal(t, "Later", jobs[0].Payload.Title)
}

func TestScheduler_DispatchReArmsRecurring(t *testing.T) {
	s, store, _ := newScheduler(t)

	runs := 0
	s.Register(model.JobKindWeeklyAnalytics, func(ctx context.Context, job model.ScheduledJob) error {
		runs++
		return nil
	})

	interval := 7 * 24 * time.Hour
	require.NoError(t, store.Put(model.ScheduledJob{
		Key:       model.RecurringJobKey(model.JobKindWeeklyAnalytics, "p1"),
		Kind:      model.JobKindWeeklyAnalytics,
		ProjectID: "p1",
		RunAt:     time.Now().Add(-time.Minute),
		Interval:  interval,
	}))

	now := time.Now()
	s.DispatchDue(context.Background(), now)

	assert.Equal(t, 1, runs)
	jobs, _ := store.List()
	require.Len(t, jobs, 1, "recurring job stays registered")
	assert.WithinDuration(t, now.Add(interval), jobs[0].RunAt, time.Second)
}

func TestScheduler_DispatchRemovesOneOff(t *testing.T) {
	s, store, _ := newScheduler(t)

	runs := 0
	s.Register(model.JobKindDeferredUpload, func(ctx context.Context, job model.ScheduledJob) error {
		runs++
		return nil
	})

	require.NoError(t, store.Put(model.ScheduledJob{
		Key:       model.OneOffJobKey(model.JobKindDeferredUpload, time.Now()),
		Kind:      model.JobKindDeferredUpload,
		ProjectID: "p1",
		RunAt:     time.Now().Add(-time.Minute),
	}))

	s.DispatchDue(context.Background(), time.Now())
	assert.Equal(t, 1, runs)
	jobs, _ := store.List()
	assert.Empty(t, jobs)
}

func TestScheduler_FailedDispatchNotifiesAndCompletes(t *testing.T) {
	s, store, notifier := newScheduler(t)
	s.Register(model.JobKindDeferredUpload, func(ctx context.Context, job model.ScheduledJob) error {
		return errors.New("upload exploded")
	})

	require.NoError(t, store.Put(model.ScheduledJob{
		Key:       model.OneOffJobKey(model.JobKindDeferredUpload, time.Now()),
		Kind:      model.JobKindDeferredUpload,
		ProjectID: "p1",
		RunAt:     time.Now().Add(-time.Minute),
	}))

	s.DispatchDue(context.Background(), time.Now())

	assert.Equal(t, 1, notifier.count())
	jobs, _ := store.List()
	assert.Empty(t, jobs, "failed one-off job is still completed, not retried")
}

func TestScheduler_CancelAbsentIsNoOp(t *testing.T) {
	s, _, _ := newScheduler(t)
	assert.NoError(t, s.Cancel("ghost", model.JobKindWeeklyAnalytics))
}
