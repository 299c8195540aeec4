package youtube_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"taskdash/domain/dto"
	"taskdash/domain/model"
	youtubeclient "taskdash/infrastructure/clients/youtube"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
	"google.golang.org/api/option"
)

type staticTokens struct {
	err error
}

func (s *staticTokens) FreshToken(ctx context.Context, projectID string) (*oauth2.Token, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &oauth2.Token{AccessToken: "test-token", TokenType: "Bearer", Expiry: time.Now().Add(time.Hour)}, nil
}

func fakeAPIServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case strings.HasSuffix(r.URL.Path, "/channels"):
			assert.Equal(t, "true", r.URL.Query().Get("mine"))
			_ = json.NewEncoder(w).Encode(map[string]interface{}{
				"items": []map[string]interface{}{{
					"id": "ch-1",
					"snippet": map[string]interface{}{
						"title":       "My Channel",
						"publishedAt": "2020-01-02T15:04:05Z",
					},
					"statistics": map[string]interface{}{
						"subscriberCount": "1200",
						"videoCount":      "34",
						"viewCount":       "56789",
					},
				}},
			})
		case strings.HasSuffix(r.URL.Path, "/search"):
			assert.Equal(t, "date", r.URL.Query().Get("order"))
			assert.Equal(t, "10", r.URL.Query().Get("maxResults"))
			_ = json.NewEncoder(w).Encode(map[string]interface{}{
				"items": []map[string]interface{}{
					{"id": map[string]string{"kind": "youtube#video", "videoId": "vid-1"}},
					{"id": map[string]string{"kind": "youtube#video", "videoId": "vid-2"}},
				},
			})
		case strings.HasSuffix(r.URL.Path, "/videos") && r.Method == http.MethodGet:
			if strings.Contains(strings.Join(r.URL.Query()["part"], ","), "processingDetails") {
				_ = json.NewEncoder(w).Encode(map[string]interface{}{
					"items": []map[string]interface{}{{
						"id":                "vid-1",
						"status":            map[string]string{"uploadStatus": "uploaded", "privacyStatus": "private"},
						"processingDetails": map[string]string{"processingStatus": "processing"},
					}},
				})
				return
			}
			_ = json.NewEncoder(w).Encode(map[string]interface{}{
				"items": []map[string]interface{}{
					{
						"id": "vid-1",
						"snippet": map[string]interface{}{
							"title":       "First video",
							"publishedAt": "2026-08-20T00:00:00Z",
						},
						"statistics": map[string]interface{}{"viewCount": "100", "likeCount": "10"},
					},
					{
						"id": "vid-2",
						"snippet": map[string]interface{}{
							"title":       "Second video",
							"publishedAt": "2026-08-10T00:00:00Z",
						},
					},
				},
			})
		case strings.HasSuffix(r.URL.Path, "/videos") && r.Method == http.MethodDelete:
			w.WriteHeader(http.StatusNoContent)
		default:
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprintf(w, `{"error":{"code":404,"message":"unexpected path %s"}}`, r.URL.Path)
		}
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func newTestClient(t *testing.T, tokens youtubeclient.TokenProvider) *youtubeclient.Client {
	server := fakeAPIServer(t)
	return youtubeclient.NewClient(tokens, option.WithEndpoint(server.URL))
}

func TestClient_GetChannelReport(t *testing.T) {
	client := newTestClient(t, &staticTokens{})

	report, err := client.GetChannelReport(context.Background(), "p1")
	require.NoError(t, err)

	assert.Equal(t, "ch-1", report.ChannelID)
	assert.Equal(t, "My Channel", report.Title)
	assert.Equal(t, int64(1200), report.SubscriberCount)
	assert.Equal(t, int64(34), report.VideoCount)
	assert.Equal(t, int64(56789), report.ViewCount)
	require.Len(t, report.RecentVideos, 2)
	assert.Equal(t, "First video", report.RecentVideos[0].Title)
	assert.Equal(t, int64(100), report.RecentVideos[0].ViewCount)
	assert.False(t, report.CollectedAt.IsZero())
}

func TestClient_GetUploadStatus(t *testing.T) {
	client := newTestClient(t, &staticTokens{})

	status, err := client.GetUploadStatus(context.Background(), "p1", "vid-1")
	require.NoError(t, err)
	assert.Equal(t, "uploaded", status.UploadStatus)
	assert.Equal(t, "processing", status.ProcessingStatus)
	assert.Equal(t, "private", status.Privacy)
}

func TestClient_DeleteVideo(t *testing.T) {
	client := newTestClient(t, &staticTokens{})
	require.NoError(t, client.DeleteVideo(context.Background(), "p1", "vid-1"))
}

func TestClient_TokenFailurePropagates(t *testing.T) {
	client := newTestClient(t, &staticTokens{err: fmt.Errorf("%w: no refresh token", model.ErrAuthenticationRequired)})

	_, err := client.GetChannelReport(context.Background(), "p1")
	assert.True(t, errors.Is(err, model.ErrAuthenticationRequired))
}

func TestClient_UploadMissingFile(t *testing.T) {
	client := newTestClient(t, &staticTokens{})

	_, err := client.UploadVideo(context.Background(), "p1", &dto.VideoUploadRequest{
		VideoPath: "/nonexistent/video.mp4",
		Title:     "Ghost",
	})
	assert.ErrorIs(t, err, model.ErrFileIO)
}
