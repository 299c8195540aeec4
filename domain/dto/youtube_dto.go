package dto

import "time"

// CredentialRequest submits an OAuth client pair for a project, either as
// explicit fields or as the raw Google client-secret JSON file contents.
type CredentialRequest struct {
	ProjectName      string `json:"project_name" binding:"required"`
	ClientID         string `json:"client_id,omitempty"`
	ClientSecret     string `json:"client_secret,omitempty"`
	ClientSecretJSON string `json:"client_secret_json,omitempty"`
}

// AuthStatusResponse reports the per-project authentication state.
type AuthStatusResponse struct {
	ProjectID       string     `json:"project_id"`
	Authenticated   bool       `json:"authenticated"`
	HasCredentials  bool       `json:"has_credentials"`
	HasRefreshToken bool       `json:"has_refresh_token"`
	AccessExpiry    *time.Time `json:"access_expiry,omitempty"`
}

// VideoUploadRequest describes an upload, immediate or deferred. ScheduleAt
// in the past or absent means upload now.
type VideoUploadRequest struct {
	VideoPath   string     `json:"video_path" binding:"required"`
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description,omitempty"`
	Tags        []string   `json:"tags,omitempty"`
	Privacy     string     `json:"privacy,omitempty"` // private, public, unlisted
	ScheduleAt  *time.Time `json:"schedule_at,omitempty"`
}

// VideoUpdateRequest carries partial metadata updates; nil fields are left
// untouched.
type VideoUpdateRequest struct {
	Title       *string   `json:"title,omitempty"`
	Description *string   `json:"description,omitempty"`
	Tags        *[]string `json:"tags,omitempty"`
	Privacy     *string   `json:"privacy,omitempty"`
}

// UploadResponse is returned for both immediate and deferred uploads.
type UploadResponse struct {
	VideoID   string     `json:"video_id,omitempty"`
	Scheduled bool       `json:"scheduled"`
	RunAt     *time.Time `json:"run_at,omitempty"`
	JobKey    string     `json:"job_key,omitempty"`
}
