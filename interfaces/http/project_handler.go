package http

import (
	"errors"
	"net/http"

	"taskdash/domain/dto"
	"taskdash/infrastructure/logger"
	"taskdash/infrastructure/persistence"
	"taskdash/usecase"

	"github.com/gin-gonic/gin"
)

// IProjectHandler exposes the project registry and credential management.
type IProjectHandler interface {
	Create(ctx *gin.Context)
	List(ctx *gin.Context)
	Get(ctx *gin.Context)
	Delete(ctx *gin.Context)
	SetCredentials(ctx *gin.Context)
}

type ProjectHandler struct {
	projectUsecase usecase.IProjectUsecase
}

func NewProjectHandler(projectUsecase usecase.IProjectUsecase) IProjectHandler {
	return &ProjectHandler{projectUsecase: projectUsecase}
}

type createProjectRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description,omitempty"`
}

// Create handles POST /api/projects
func (h *ProjectHandler) Create(ctx *gin.Context) {
	var req createProjectRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	project, err := h.projectUsecase.Create(req.Name, req.Description)
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("Failed to create project")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusCreated, project)
}

// List handles GET /api/projects
func (h *ProjectHandler) List(ctx *gin.Context) {
	projects, err := h.projectUsecase.List()
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"projects": projects})
}

// Get handles GET /api/projects/:projectId
func (h *ProjectHandler) Get(ctx *gin.Context) {
	project, err := h.projectUsecase.Get(ctx.Param("projectId"))
	if err != nil {
		if errors.Is(err, persistence.ErrProjectNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, project)
}

// Delete handles DELETE /api/projects/:projectId
func (h *ProjectHandler) Delete(ctx *gin.Context) {
	if err := h.projectUsecase.Delete(ctx.Param("projectId")); err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"deleted": true})
}

// SetCredentials handles PUT /api/projects/:projectId/credentials
func (h *ProjectHandler) SetCredentials(ctx *gin.Context) {
	var req dto.CredentialRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.projectUsecase.SetCredentials(req); err != nil {
		logger.GetLogger().WithField("error", err).Error("Failed to store credentials")
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"stored": true})
}
