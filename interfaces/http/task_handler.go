package http

import (
	"net/http"

	"taskdash/domain/dto"
	"taskdash/infrastructure/logger"
	"taskdash/usecase"

	"github.com/gin-gonic/gin"
)

// ITaskHandler exposes Jira sync and AI task breakdown.
type ITaskHandler interface {
	Sync(ctx *gin.Context)
	List(ctx *gin.Context)
	Transition(ctx *gin.Context)
	BreakDown(ctx *gin.Context)
}

type TaskHandler struct {
	taskUsecase usecase.ITaskUsecase
}

func NewTaskHandler(taskUsecase usecase.ITaskUsecase) ITaskHandler {
	return &TaskHandler{taskUsecase: taskUsecase}
}

// Sync handles POST /api/projects/:projectId/tasks/sync
func (h *TaskHandler) Sync(ctx *gin.Context) {
	var req dto.TaskSyncRequest
	if err := ctx.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := h.taskUsecase.Sync(ctx.Request.Context(), ctx.Param("projectId"), req)
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("Task sync failed")
		ctx.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, res)
}

// List handles GET /api/projects/:projectId/tasks
func (h *TaskHandler) List(ctx *gin.Context) {
	tasks, err := h.taskUsecase.List(ctx.Param("projectId"))
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"tasks": tasks})
}

type transitionRequest struct {
	TransitionID string `json:"transition_id" binding:"required"`
}

// Transition handles POST /api/tasks/:issueKey/transition
func (h *TaskHandler) Transition(ctx *gin.Context) {
	var req transitionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.taskUsecase.Transition(ctx.Request.Context(), ctx.Param("issueKey"), req.TransitionID); err != nil {
		ctx.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"transitioned": true})
}

// BreakDown handles POST /api/projects/:projectId/tasks/breakdown
func (h *TaskHandler) BreakDown(ctx *gin.Context) {
	var req dto.BreakdownRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	breakdown, err := h.taskUsecase.BreakDown(ctx.Request.Context(), ctx.Param("projectId"), req)
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("Task breakdown failed")
		ctx.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, breakdown)
}
