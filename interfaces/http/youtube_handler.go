package http

import (
	"errors"
	"net/http"

	"taskdash/domain/dto"
	"taskdash/domain/model"
	"taskdash/infrastructure/logger"
	"taskdash/usecase"

	"github.com/gin-gonic/gin"
)

// IYouTubeHandler exposes analytics collection and the upload lifecycle.
type IYouTubeHandler interface {
	CollectAnalytics(ctx *gin.Context)
	AnalyticsHistory(ctx *gin.Context)
	EnableWeekly(ctx *gin.Context)
	DisableWeekly(ctx *gin.Context)

	UploadVideo(ctx *gin.Context)
	UploadStatus(ctx *gin.Context)
	UpdateVideo(ctx *gin.Context)
	DeleteVideo(ctx *gin.Context)
	UploadHistory(ctx *gin.Context)
	ListJobs(ctx *gin.Context)
}

type YouTubeHandler struct {
	analyticsUsecase usecase.IAnalyticsUsecase
	uploadUsecase    usecase.IUploadUsecase
	schedulerUsecase usecase.ISchedulerUsecase
}

func NewYouTubeHandler(analyticsUsecase usecase.IAnalyticsUsecase, uploadUsecase usecase.IUploadUsecase, schedulerUsecase usecase.ISchedulerUsecase) IYouTubeHandler {
	return &YouTubeHandler{
		analyticsUsecase: analyticsUsecase,
		uploadUsecase:    uploadUsecase,
		schedulerUsecase: schedulerUsecase,
	}
}

func writeYouTubeError(ctx *gin.Context, err error) {
	status := http.StatusBadGateway
	switch {
	case errors.Is(err, model.ErrAuthenticationRequired), errors.Is(err, model.ErrMissingCredentials):
		status = http.StatusUnauthorized
	case errors.Is(err, model.ErrFileIO):
		status = http.StatusUnprocessableEntity
	}
	ctx.JSON(status, gin.H{"error": err.Error()})
}

// CollectAnalytics handles POST /api/projects/:projectId/youtube/analytics/collect
func (h *YouTubeHandler) CollectAnalytics(ctx *gin.Context) {
	projectID := ctx.Param("projectId")
	report, err := h.analyticsUsecase.CollectNow(ctx.Request.Context(), projectID)
	if err != nil {
		logger.GetLogger().WithField("project_id", projectID).WithField("error", err).Error("Analytics collection failed")
		writeYouTubeError(ctx, err)
		return
	}
	if report == nil {
		// Not authenticated yet; the dashboard shows an empty panel.
		ctx.JSON(http.StatusOK, gin.H{"collected": false, "report": nil})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"collected": true, "report": report})
}

// AnalyticsHistory handles GET /api/projects/:projectId/youtube/analytics
func (h *YouTubeHandler) AnalyticsHistory(ctx *gin.Context) {
	snapshots, err := h.analyticsUsecase.History(ctx.Param("projectId"))
	if err != nil {
		writeYouTubeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"snapshots": snapshots})
}

// EnableWeekly handles POST /api/projects/:projectId/youtube/analytics/schedule
func (h *YouTubeHandler) EnableWeekly(ctx *gin.Context) {
	if err := h.analyticsUsecase.EnableWeekly(ctx.Param("projectId")); err != nil {
		writeYouTubeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"scheduled": true})
}

// DisableWeekly handles DELETE /api/projects/:projectId/youtube/analytics/schedule
func (h *YouTubeHandler) DisableWeekly(ctx *gin.Context) {
	if err := h.analyticsUsecase.DisableWeekly(ctx.Param("projectId")); err != nil {
		writeYouTubeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"scheduled": false})
}

// UploadVideo handles POST /api/projects/:projectId/youtube/videos
func (h *YouTubeHandler) UploadVideo(ctx *gin.Context) {
	var req dto.VideoUploadRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := h.uploadUsecase.Upload(ctx.Request.Context(), ctx.Param("projectId"), req)
	if err != nil {
		writeYouTubeError(ctx, err)
		return
	}
	if res.Scheduled {
		ctx.JSON(http.StatusAccepted, res)
		return
	}
	ctx.JSON(http.StatusCreated, res)
}

// UploadStatus handles GET /api/projects/:projectId/youtube/videos/:videoId/status
func (h *YouTubeHandler) UploadStatus(ctx *gin.Context) {
	status, err := h.uploadUsecase.Status(ctx.Request.Context(), ctx.Param("projectId"), ctx.Param("videoId"))
	if err != nil {
		writeYouTubeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, status)
}

// UpdateVideo handles PATCH /api/projects/:projectId/youtube/videos/:videoId
func (h *YouTubeHandler) UpdateVideo(ctx *gin.Context) {
	var req dto.VideoUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.uploadUsecase.Update(ctx.Request.Context(), ctx.Param("projectId"), ctx.Param("videoId"), req); err != nil {
		writeYouTubeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"updated": true})
}

// DeleteVideo handles DELETE /api/projects/:projectId/youtube/videos/:videoId
func (h *YouTubeHandler) DeleteVideo(ctx *gin.Context) {
	if err := h.uploadUsecase.Delete(ctx.Request.Context(), ctx.Param("projectId"), ctx.Param("videoId")); err != nil {
		writeYouTubeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"deleted": true})
}

// UploadHistory handles GET /api/projects/:projectId/youtube/videos
func (h *YouTubeHandler) UploadHistory(ctx *gin.Context) {
	records, err := h.uploadUsecase.History(ctx.Param("projectId"))
	if err != nil {
		writeYouTubeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"uploads": records})
}

// ListJobs handles GET /api/jobs
func (h *YouTubeHandler) ListJobs(ctx *gin.Context) {
	jobs, err := h.schedulerUsecase.List()
	if err != nil {
		writeYouTubeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"jobs": jobs})
}
