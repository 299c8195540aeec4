package model

import (
	"fmt"
	"time"
)

// JobKind identifies the two background job families.
type JobKind string

const (
	JobKindWeeklyAnalytics JobKind = "youtube_analytics_collection"
	JobKindDeferredUpload  JobKind = "youtube_scheduled_upload"
)

// ScheduledJob is a durable background job registration. Recurring jobs carry
// an Interval and are re-armed after each run; one-off jobs carry only a
// RunAt and are removed once dispatched.
type ScheduledJob struct {
	Key       string        `json:"key"`
	Kind      JobKind       `json:"kind"`
	ProjectID string        `json:"project_id"`
	Payload   UploadPayload `json:"payload,omitempty"`
	RunAt     time.Time     `json:"run_at"`
	Interval  time.Duration `json:"interval,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
}

// Recurring reports whether the job re-arms itself after dispatch.
func (j ScheduledJob) Recurring() bool { return j.Interval > 0 }

// RecurringJobKey builds the unique key for a recurring registration so that
// re-registering for the same project replaces the prior one.
func RecurringJobKey(kind JobKind, projectID string) string {
	return fmt.Sprintf("%s_%s", kind, projectID)
}

// OneOffJobKey builds the unique key for a one-shot registration from the
// submission time.
func OneOffJobKey(kind JobKind, submittedAt time.Time) string {
	return fmt.Sprintf("%s_%d", kind, submittedAt.UnixMilli())
}

// UploadPayload carries the job-kind-specific fields for deferred uploads.
// Weekly analytics jobs carry none.
type UploadPayload struct {
	VideoPath   string   `json:"video_path,omitempty"`
	Title       string   `json:"title,omitempty"`
	Description string   `json:"description,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Privacy     string   `json:"privacy,omitempty"`
}

// AnalyticsSnapshot is a timestamped capture of channel analytics, retained
// per project in a bounded rolling history.
type AnalyticsSnapshot struct {
	Timestamp time.Time      `json:"timestamp"`
	Data      *ChannelReport `json:"data"`
}

// UploadRecord is one completed upload; the history file is shared across
// projects and filtered by project id on read.
type UploadRecord struct {
	ProjectID  string    `json:"project_id"`
	VideoID    string    `json:"video_id"`
	Title      string    `json:"title"`
	VideoPath  string    `json:"video_path"`
	UploadedAt time.Time `json:"uploaded_at"`
}
