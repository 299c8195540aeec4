package usecase_test

import (
	"context"
	"testing"
	"time"

	"taskdash/domain/dto"
	"taskdash/domain/model"
	"taskdash/infrastructure/persistence"
	"taskdash/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// Mock implementations
type MockYouTube struct {
	mock.Mock
}

func (m *MockYouTube) GetChannelReport(ctx context.Context, projectID string) (*model.ChannelReport, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ChannelReport), args.Error(1)
}

func (m *MockYouTube) UploadVideo(ctx context.Context, projectID string, req *dto.VideoUploadRequest) (string, error) {
	args := m.Called(ctx, projectID, req)
	return args.String(0), args.Error(1)
}

func (m *MockYouTube) GetUploadStatus(ctx context.Context, projectID, videoID string) (*model.UploadStatus, error) {
	args := m.Called(ctx, projectID, videoID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.UploadStatus), args.Error(1)
}

func (m *MockYouTube) UpdateVideo(ctx context.Context, projectID, videoID string, req *dto.VideoUpdateRequest) error {
	args := m.Called(ctx, projectID, videoID, req)
	return args.Error(0)
}

func (m *MockYouTube) DeleteVideo(ctx context.Context, projectID, videoID string) error {
	args := m.Called(ctx, projectID, videoID)
	return args.Error(0)
}

type stubAuth struct {
	usecase.IAuthUsecase
	authenticated bool
}

func (s *stubAuth) IsAuthenticated(projectID string) bool { return s.authenticated }

func newUploadFixture(t *testing.T, authenticated bool) (*usecase.UploadUsecase, *MockYouTube, *persistence.UploadHistory, *recordingNotifier, *usecase.SchedulerUsecase) {
	t.Helper()
	dir := t.TempDir()
	yt := new(MockYouTube)
	history := persistence.NewUploadHistory(dir)
	notifier := &recordingNotifier{}
	scheduler := usecase.NewSchedulerUsecase(persistence.NewJobStore(dir), notifier, time.Second)
	u := usecase.NewUploadUsecase(yt, history, &stubAuth{authenticated: authenticated}, scheduler, notifier)
	scheduler.Register(model.JobKindDeferredUpload, func(ctx context.Context, job model.ScheduledJob) error {
		_, err := u.ExecuteUpload(ctx, job.ProjectID, job.Payload)
		return err
	})
	return u, yt, history, notifier, scheduler
}

func TestUploadUsecase_ImmediateUpload(t *testing.T) {
	u, yt, history, notifier, _ := newUploadFixture(t, true)
	yt.On("UploadVideo", mock.Anything, "p1", mock.Anything).Return("vid-1", nil)

	res, err := u.Upload(context.Background(), "p1", dto.VideoUploadRequest{
		VideoPath: "/tmp/v.mp4",
		Title:     "Launch video",
	})
	require.NoError(t, err)
	assert.Equal(t, "vid-1", res.VideoID)
	assert.False(t, res.Scheduled)

	recs, _ := history.ListByProject("p1")
	require.Len(t, recs, 1)
	assert.Equal(t, "vid-1", recs[0].VideoID)
	assert.Equal(t, 1, notifier.count())
	yt.AssertExpectations(t)
}

func TestUploadUsecase_DeferredUpload(t *testing.T) {
	u, yt, history, _, scheduler := newUploadFixture(t, true)
	yt.On("UploadVideo", mock.Anything, "p1", mock.Anything).Return("vid-2", nil)

	scheduleAt := time.Now().Add(time.Hour)
	res, err := u.Upload(context.Background(), "p1", dto.VideoUploadRequest{
		VideoPath:  "/tmp/v.mp4",
		Title:      "Later video",
		ScheduleAt: &scheduleAt,
	})
	require.NoError(t, err)
	assert.True(t, res.Scheduled)
	assert.Empty(t, res.VideoID)
	require.NotNil(t, res.RunAt)

	// Nothing uploaded yet.
	yt.AssertNotCalled(t, "UploadVideo", mock.Anything, mock.Anything, mock.Anything)
	recs, _ := history.ListByProject("p1")
	assert.Empty(t, recs)

	// Once the slot passes, dispatch runs the upload.
	scheduler.DispatchDue(context.Background(), scheduleAt.Add(time.Minute))
	recs, _ = history.ListByProject("p1")
	require.Len(t, recs, 1)
	assert.Equal(t, "vid-2", recs[0].VideoID)
}

func TestUploadUsecase_PastScheduleUploadsNow(t *testing.T) {
	u, yt, history, _, _ := newUploadFixture(t, true)
	yt.On("UploadVideo", mock.Anything, "p1", mock.Anything).Return("vid-3", nil)

	scheduleAt := time.Now().Add(-time.Hour)
	res, err := u.Upload(context.Background(), "p1", dto.VideoUploadRequest{
		VideoPath:  "/tmp/v.mp4",
		Title:      "Overdue",
		ScheduleAt: &scheduleAt,
	})
	require.NoError(t, err)
	assert.False(t, res.Scheduled)
	assert.Equal(t, "vid-3", res.VideoID)

	recs, _ := history.ListByProject("p1")
	assert.Len(t, recs, 1)
}

func TestUploadUsecase_RequiresAuthentication(t *testing.T) {
	u, yt, _, _, _ := newUploadFixture(t, false)

	_, err := u.Upload(context.Background(), "p1", dto.VideoUploadRequest{
		VideoPath: "/tmp/v.mp4",
		Title:     "Nope",
	})
	assert.ErrorIs(t, err, model.ErrAuthenticationRequired)
	yt.AssertNotCalled(t, "UploadVideo", mock.Anything, mock.Anything, mock.Anything)

	assert.ErrorIs(t, u.Update(context.Background(), "p1", "vid", dto.VideoUpdateRequest{}), model.ErrAuthenticationRequired)
	assert.ErrorIs(t, u.Delete(context.Background(), "p1", "vid"), model.ErrAuthenticationRequired)
}

func TestUploadUsecase_HistoryIsPerProject(t *testing.T) {
	u, yt, _, _, _ := newUploadFixture(t, true)
	yt.On("UploadVideo", mock.Anything, mock.Anything, mock.Anything).Return("vid-x", nil)

	_, err := u.Upload(context.Background(), "p1", dto.VideoUploadRequest{VideoPath: "/tmp/a.mp4", Title: "A"})
	require.NoError(t, err)
	_, err = u.Upload(context.Background(), "p2", dto.VideoUploadRequest{VideoPath: "/tmp/b.mp4", Title: "B"})
	require.NoError(t, err)

	p1, _ := u.History("p1")
	p2, _ := u.History("p2")
	require.Len(t, p1, 1)
	require.Len(t, p2, 1)
	assert.Equal(t, "A", p1[0].Title)
	assert.Equal(t, "B", p2[0].Title)
}
