package http

import (
	"errors"
	"net/http"

	"taskdash/domain/model"
	"taskdash/infrastructure/logger"
	"taskdash/usecase"

	"github.com/gin-gonic/gin"
)

// IYouTubeAuthHandler drives the per-project OAuth2 flow from the dashboard.
type IYouTubeAuthHandler interface {
	Authenticate(ctx *gin.Context)
	Cancel(ctx *gin.Context)
	Logout(ctx *gin.Context)
	Status(ctx *gin.Context)
}

type YouTubeAuthHandler struct {
	authUsecase    usecase.IAuthUsecase
	projectUsecase usecase.IProjectUsecase
}

func NewYouTubeAuthHandler(authUsecase usecase.IAuthUsecase, projectUsecase usecase.IProjectUsecase) IYouTubeAuthHandler {
	return &YouTubeAuthHandler{
		authUsecase:    authUsecase,
		projectUsecase: projectUsecase,
	}
}

func (h *YouTubeAuthHandler) projectName(ctx *gin.Context) (string, bool) {
	project, err := h.projectUsecase.Get(ctx.Param("projectId"))
	if err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return "", false
	}
	return project.Name, true
}

// Authenticate handles POST /api/projects/:projectId/youtube/auth. The call
// blocks until the browser flow finishes, is cancelled, or times out.
func (h *YouTubeAuthHandler) Authenticate(ctx *gin.Context) {
	projectID := ctx.Param("projectId")
	name, ok := h.projectName(ctx)
	if !ok {
		return
	}

	authenticated, err := h.authUsecase.Authenticate(ctx.Request.Context(), projectID, name)
	if err != nil {
		logger.GetLogger().WithField("project_id", projectID).WithField("error", err).Warn("Authentication failed")
		status := http.StatusBadGateway
		switch {
		case errors.Is(err, model.ErrMissingCredentials):
			status = http.StatusPreconditionFailed
		case errors.Is(err, model.ErrRedirectMismatch):
			status = http.StatusBadRequest
		}
		ctx.JSON(status, gin.H{"authenticated": false, "error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"authenticated": authenticated})
}

// Cancel handles POST /api/projects/:projectId/youtube/auth/cancel
func (h *YouTubeAuthHandler) Cancel(ctx *gin.Context) {
	h.authUsecase.Cancel(ctx.Param("projectId"))
	ctx.JSON(http.StatusOK, gin.H{"cancelled": true})
}

// Logout handles POST /api/projects/:projectId/youtube/logout
func (h *YouTubeAuthHandler) Logout(ctx *gin.Context) {
	if err := h.authUsecase.Logout(ctx.Param("projectId")); err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"logged_out": true})
}

// Status handles GET /api/projects/:projectId/youtube/status
func (h *YouTubeAuthHandler) Status(ctx *gin.Context) {
	name, ok := h.projectName(ctx)
	if !ok {
		return
	}
	ctx.JSON(http.StatusOK, h.authUsecase.Status(ctx.Param("projectId"), name))
}
