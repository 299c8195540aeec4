package model

import "time"

// ChannelReport is the flat analytics record assembled from channel
// snippet+statistics plus the most recent uploads. The caller is responsible
// for snapshotting it.
type ChannelReport struct {
	ChannelID       string         `json:"channel_id"`
	Title           string         `json:"title"`
	Description     string         `json:"description"`
	CustomURL       string         `json:"custom_url,omitempty"`
	PublishedAt     time.Time      `json:"published_at"`
	SubscriberCount int64          `json:"subscriber_count"`
	VideoCount      int64          `json:"video_count"`
	ViewCount       int64          `json:"view_count"`
	RecentVideos    []VideoSummary `json:"recent_videos"`
	CollectedAt     time.Time      `json:"collected_at"`
}

// VideoSummary is a condensed video record for the dashboard.
type VideoSummary struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	PublishedAt time.Time `json:"published_at"`
	Thumbnail   string    `json:"thumbnail,omitempty"`
	ViewCount   int64     `json:"view_count"`
	LikeCount   int64     `json:"like_count"`
	Duration    string    `json:"duration,omitempty"`
	Privacy     string    `json:"privacy,omitempty"`
}

// UploadStatus is the processing state of an uploaded video.
type UploadStatus struct {
	VideoID          string `json:"video_id"`
	UploadStatus     string `json:"upload_status"`     // uploaded | processed | failed | rejected
	ProcessingStatus string `json:"processing_status"` // processing | succeeded | failed
	FailureReason    string `json:"failure_reason,omitempty"`
	Privacy          string `json:"privacy,omitempty"`
}
