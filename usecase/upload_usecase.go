package usecase

import (
	"context"
	"fmt"
	"time"

	"taskdash/domain/dto"
	"taskdash/domain/model"
	"taskdash/domain/repository"
	"taskdash/infrastructure/logger"
)

// IUploadUsecase handles immediate and deferred video uploads plus the
// post-upload management operations.
type IUploadUsecase interface {
	// Upload runs the upload now, or registers a deferred job when the
	// request carries a future schedule time.
	Upload(ctx context.Context, projectID string, req dto.VideoUploadRequest) (dto.UploadResponse, error)
	// ExecuteUpload is the job-side entry point shared by immediate and
	// scheduled uploads.
	ExecuteUpload(ctx context.Context, projectID string, payload model.UploadPayload) (string, error)
	Status(ctx context.Context, projectID, videoID string) (*model.UploadStatus, error)
	Update(ctx context.Context, projectID, videoID string, req dto.VideoUpdateRequest) error
	Delete(ctx context.Context, projectID, videoID string) error
	History(projectID string) ([]model.UploadRecord, error)
}

type UploadUsecase struct {
	youtube   repository.IYouTube
	history   repository.IUploadHistory
	auth      IAuthUsecase
	scheduler ISchedulerUsecase
	notifier  repository.INotifier
	now       func() time.Time
}

func NewUploadUsecase(youtube repository.IYouTube, history repository.IUploadHistory, auth IAuthUsecase, scheduler ISchedulerUsecase, notifier repository.INotifier) *UploadUsecase {
	return &UploadUsecase{
		youtube:   youtube,
		history:   history,
		auth:      auth,
		scheduler: scheduler,
		notifier:  notifier,
		now:       time.Now,
	}
}

func (u *UploadUsecase) Upload(ctx context.Context, projectID string, req dto.VideoUploadRequest) (dto.UploadResponse, error) {
	payload := model.UploadPayload{
		VideoPath:   req.VideoPath,
		Title:       req.Title,
		Description: req.Description,
		Tags:        req.Tags,
		Privacy:     req.Privacy,
	}

	if req.ScheduleAt != nil && req.ScheduleAt.After(u.now()) {
		job, err := u.scheduler.ScheduleDeferred(ctx, projectID, model.JobKindDeferredUpload, *req.ScheduleAt, payload)
		if err != nil {
			return dto.UploadResponse{}, err
		}
		return dto.UploadResponse{Scheduled: true, RunAt: &job.RunAt, JobKey: job.Key}, nil
	}

	videoID, err := u.ExecuteUpload(ctx, projectID, payload)
	if err != nil {
		return dto.UploadResponse{}, err
	}
	return dto.UploadResponse{VideoID: videoID}, nil
}

func (u *UploadUsecase) ExecuteUpload(ctx context.Context, projectID string, payload model.UploadPayload) (string, error) {
	if !u.auth.IsAuthenticated(projectID) {
		return "", fmt.Errorf("%w: cannot upload for project %s", model.ErrAuthenticationRequired, projectID)
	}

	uploadReq := dto.VideoUploadRequest{
		VideoPath:   payload.VideoPath,
		Title:       payload.Title,
		Description: payload.Description,
		Tags:        payload.Tags,
		Privacy:     payload.Privacy,
	}
	videoID, err := u.youtube.UploadVideo(ctx, projectID, &uploadReq)
	if err != nil {
		return "", err
	}

	record := model.UploadRecord{
		ProjectID:  projectID,
		VideoID:    videoID,
		Title:      payload.Title,
		VideoPath:  payload.VideoPath,
		UploadedAt: u.now(),
	}
	if err := u.history.Append(record); err != nil {
		// The video is live; a history write failure must not fail it.
		logger.GetLogger().WithField("video_id", videoID).WithField("error", err).Error("Failed to record upload history")
	}

	logger.GetLogger().WithField("project_id", projectID).WithField("video_id", videoID).Info("Video uploaded")
	u.notifier.Notify("Upload complete", fmt.Sprintf("%s is now on YouTube (%s)", payload.Title, videoID))
	return videoID, nil
}

func (u *UploadUsecase) Status(ctx context.Context, projectID, videoID string) (*model.UploadStatus, error) {
	return u.youtube.GetUploadStatus(ctx, projectID, videoID)
}

func (u *UploadUsecase) Update(ctx context.Context, projectID, videoID string, req dto.VideoUpdateRequest) error {
	if !u.auth.IsAuthenticated(projectID) {
		return fmt.Errorf("%w: cannot update video for project %s", model.ErrAuthenticationRequired, projectID)
	}
	return u.youtube.UpdateVideo(ctx, projectID, videoID, &req)
}

func (u *UploadUsecase) Delete(ctx context.Context, projectID, videoID string) error {
	if !u.auth.IsAuthenticated(projectID) {
		return fmt.Errorf("%w: cannot delete video for project %s", model.ErrAuthenticationRequired, projectID)
	}
	return u.youtube.DeleteVideo(ctx, projectID, videoID)
}

func (u *UploadUsecase) History(projectID string) ([]model.UploadRecord, error) {
	return u.history.ListByProject(projectID)
}

var _ IUploadUsecase = (*UploadUsecase)(nil)
