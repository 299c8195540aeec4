package repository

import (
	"context"

	"taskdash/domain/dto"
	"taskdash/domain/model"
)

// IYouTube is the per-project authenticated YouTube surface the core needs:
// channel analytics reads plus the video upload lifecycle.
type IYouTube interface {
	// GetChannelReport fetches channel snippet+statistics and the 10 most
	// recent videos ordered by publish date descending.
	GetChannelReport(ctx context.Context, projectID string) (*model.ChannelReport, error)
	// UploadVideo starts a resumable upload and returns the new video id.
	UploadVideo(ctx context.Context, projectID string, req *dto.VideoUploadRequest) (string, error)
	GetUploadStatus(ctx context.Context, projectID, videoID string) (*model.UploadStatus, error)
	UpdateVideo(ctx context.Context, projectID, videoID string, req *dto.VideoUpdateRequest) error
	DeleteVideo(ctx context.Context, projectID, videoID string) error
}
