package youtube

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"taskdash/domain/dto"
	"taskdash/domain/model"
	"taskdash/domain/repository"

	"golang.org/x/oauth2"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

// recentVideoCount is how many of the latest uploads a channel report carries.
const recentVideoCount = 10

// TokenProvider yields a ready-to-use access token for a project, refreshing
// it first when the cached one is absent or expired.
type TokenProvider interface {
	FreshToken(ctx context.Context, projectID string) (*oauth2.Token, error)
}

// Client is the per-project YouTube API surface: channel analytics reads and
// the video upload lifecycle. A service is constructed per call from freshly
// acquired token material so background jobs never depend on in-memory state.
type Client struct {
	tokens TokenProvider
	opts   []option.ClientOption
	now    func() time.Time
}

// NewClient creates the YouTube client. Extra options are forwarded to the
// API service constructor (tests use option.WithEndpoint).
func NewClient(tokens TokenProvider, opts ...option.ClientOption) *Client {
	return &Client{tokens: tokens, opts: opts, now: time.Now}
}

func (c *Client) service(ctx context.Context, projectID string) (*youtube.Service, error) {
	tok, err := c.tokens.FreshToken(ctx, projectID)
	if err != nil {
		return nil, err
	}
	opts := append([]option.ClientOption{option.WithTokenSource(oauth2.StaticTokenSource(tok))}, c.opts...)
	svc, err := youtube.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create YouTube service: %w", err)
	}
	return svc, nil
}

// GetChannelReport fetches the channel's snippet+statistics plus its 10 most
// recent videos ordered by publish date descending.
func (c *Client) GetChannelReport(ctx context.Context, projectID string) (*model.ChannelReport, error) {
	svc, err := c.service(ctx, projectID)
	if err != nil {
		return nil, err
	}

	chResp, err := svc.Channels.List([]string{"snippet", "statistics"}).Mine(true).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("%w: get my channel: %v", model.ErrRemoteAPI, err)
	}
	if len(chResp.Items) == 0 {
		return nil, fmt.Errorf("%w: no channel found for authenticated user", model.ErrRemoteAPI)
	}
	ch := chResp.Items[0]
	publishedAt, _ := time.Parse(time.RFC3339, ch.Snippet.PublishedAt)

	report := &model.ChannelReport{
		ChannelID:   ch.Id,
		Title:       ch.Snippet.Title,
		Description: ch.Snippet.Description,
		CustomURL:   ch.Snippet.CustomUrl,
		PublishedAt: publishedAt,
		CollectedAt: c.now().UTC(),
	}
	if ch.Statistics != nil {
		report.SubscriberCount = int64(ch.Statistics.SubscriberCount)
		report.VideoCount = int64(ch.Statistics.VideoCount)
		report.ViewCount = int64(ch.Statistics.ViewCount)
	}

	searchResp, err := svc.Search.List([]string{"id", "snippet"}).
		ChannelId(ch.Id).
		Type("video").
		Order("date").
		MaxResults(recentVideoCount).
		Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("%w: list recent videos: %v", model.ErrRemoteAPI, err)
	}

	var videoIDs []string
	for _, item := range searchResp.Items {
		if item.Id != nil && item.Id.VideoId != "" {
			videoIDs = append(videoIDs, item.Id.VideoId)
		}
	}

	report.RecentVideos = make([]model.VideoSummary, 0, len(videoIDs))
	if len(videoIDs) > 0 {
		detailResp, err := svc.Videos.List([]string{"snippet", "statistics", "contentDetails", "status"}).
			Id(strings.Join(videoIDs, ",")).
			Context(ctx).Do()
		if err != nil {
			return nil, fmt.Errorf("%w: get video details: %v", model.ErrRemoteAPI, err)
		}
		for _, v := range detailResp.Items {
			report.RecentVideos = append(report.RecentVideos, convertVideo(v))
		}
	}
	return report, nil
}

func convertVideo(v *youtube.Video) model.VideoSummary {
	publishedAt, _ := time.Parse(time.RFC3339, v.Snippet.PublishedAt)
	sum := model.VideoSummary{
		ID:          v.Id,
		Title:       v.Snippet.Title,
		Description: v.Snippet.Description,
		PublishedAt: publishedAt,
	}
	if v.Snippet.Thumbnails != nil && v.Snippet.Thumbnails.Default != nil {
		sum.Thumbnail = v.Snippet.Thumbnails.Default.Url
	}
	if v.Statistics != nil {
		sum.ViewCount = int64(v.Statistics.ViewCount)
		sum.LikeCount = int64(v.Statistics.LikeCount)
	}
	if v.ContentDetails != nil {
		sum.Duration = v.ContentDetails.Duration
	}
	if v.Status != nil {
		sum.Privacy = v.Status.PrivacyStatus
	}
	return sum
}

// UploadVideo validates the local file and starts a resumable upload,
// returning the new video id.
func (c *Client) UploadVideo(ctx context.Context, projectID string, req *dto.VideoUploadRequest) (string, error) {
	if _, err := os.Stat(req.VideoPath); err != nil {
		return "", fmt.Errorf("%w: video file %s: %v", model.ErrFileIO, req.VideoPath, err)
	}

	svc, err := c.service(ctx, projectID)
	if err != nil {
		return "", err
	}

	f, err := os.Open(req.VideoPath)
	if err != nil {
		return "", fmt.Errorf("%w: open %s: %v", model.ErrFileIO, req.VideoPath, err)
	}
	defer f.Close()

	privacy := req.Privacy
	if privacy == "" {
		privacy = "private"
	}
	video := &youtube.Video{
		Snippet: &youtube.VideoSnippet{
			Title:       req.Title,
			Description: req.Description,
			Tags:        req.Tags,
		},
		Status: &youtube.VideoStatus{PrivacyStatus: privacy},
	}

	resp, err := svc.Videos.Insert([]string{"snippet", "status"}, video).Media(f).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("%w: upload video: %v", model.ErrRemoteAPI, err)
	}
	return resp.Id, nil
}

// GetUploadStatus polls the processing state of an uploaded video.
func (c *Client) GetUploadStatus(ctx context.Context, projectID, videoID string) (*model.UploadStatus, error) {
	svc, err := c.service(ctx, projectID)
	if err != nil {
		return nil, err
	}

	resp, err := svc.Videos.List([]string{"status", "processingDetails"}).Id(videoID).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("%w: get upload status: %v", model.ErrRemoteAPI, err)
	}
	if len(resp.Items) == 0 {
		return nil, fmt.Errorf("%w: video not found: %s", model.ErrRemoteAPI, videoID)
	}
	v := resp.Items[0]

	status := &model.UploadStatus{VideoID: videoID}
	if v.Status != nil {
		status.UploadStatus = v.Status.UploadStatus
		status.FailureReason = v.Status.FailureReason
		status.Privacy = v.Status.PrivacyStatus
	}
	if v.ProcessingDetails != nil {
		status.ProcessingStatus = v.ProcessingDetails.ProcessingStatus
	}
	return status, nil
}

// UpdateVideo fetches the existing snippet+status, applies the non-nil
// fields and performs the update call.
func (c *Client) UpdateVideo(ctx context.Context, projectID, videoID string, req *dto.VideoUpdateRequest) error {
	svc, err := c.service(ctx, projectID)
	if err != nil {
		return err
	}

	existingResp, err := svc.Videos.List([]string{"snippet", "status"}).Id(videoID).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("%w: fetch existing video: %v", model.ErrRemoteAPI, err)
	}
	if len(existingResp.Items) == 0 {
		return fmt.Errorf("%w: video not found: %s", model.ErrRemoteAPI, videoID)
	}
	existing := existingResp.Items[0]

	if req.Title != nil {
		existing.Snippet.Title = *req.Title
	}
	if req.Description != nil {
		existing.Snippet.Description = *req.Description
	}
	if req.Tags != nil {
		existing.Snippet.Tags = *req.Tags
	}
	if req.Privacy != nil {
		if existing.Status == nil {
			existing.Status = &youtube.VideoStatus{}
		}
		existing.Status.PrivacyStatus = *req.Privacy
	}

	if _, err := svc.Videos.Update([]string{"snippet", "status"}, existing).Context(ctx).Do(); err != nil {
		return fmt.Errorf("%w: update video: %v", model.ErrRemoteAPI, err)
	}
	return nil
}

// DeleteVideo removes a video from the channel.
func (c *Client) DeleteVideo(ctx context.Context, projectID, videoID string) error {
	svc, err := c.service(ctx, projectID)
	if err != nil {
		return err
	}
	if err := svc.Videos.Delete(videoID).Context(ctx).Do(); err != nil {
		return fmt.Errorf("%w: delete video: %v", model.ErrRemoteAPI, err)
	}
	return nil
}

var _ repository.IYouTube = (*Client)(nil)
