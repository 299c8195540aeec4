package server

import (
	"net/http"
	"time"

	httpHandler "taskdash/interfaces/http"
	"taskdash/interfaces/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func InitiateRouter(
	sessionHandler httpHandler.ISessionHandler,
	projectHandler httpHandler.IProjectHandler,
	youtubeAuthHandler httpHandler.IYouTubeAuthHandler,
	youtubeHandler httpHandler.IYouTubeHandler,
	taskHandler httpHandler.ITaskHandler,
	secretKey string,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:4200", "http://localhost:5173", "http://127.0.0.1:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.POST("/login", sessionHandler.Login)
	router.GET("/healthz", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("api")
	api.Use(middleware.Auth(secretKey))

	projects := api.Group("/projects")
	{
		projects.POST("", projectHandler.Create)
		projects.GET("", projectHandler.List)
		projects.GET("/:projectId", projectHandler.Get)
		projects.DELETE("/:projectId", projectHandler.Delete)
		projects.PUT("/:projectId/credentials", projectHandler.SetCredentials)

		projects.POST("/:projectId/youtube/auth", youtubeAuthHandler.Authenticate)
		projects.POST("/:projectId/youtube/auth/cancel", youtubeAuthHandler.Cancel)
		projects.POST("/:projectId/youtube/logout", youtubeAuthHandler.Logout)
		projects.GET("/:projectId/youtube/status", youtubeAuthHandler.Status)

		projects.POST("/:projectId/youtube/analytics/collect", youtubeHandler.CollectAnalytics)
		projects.GET("/:projectId/youtube/analytics", youtubeHandler.AnalyticsHistory)
		projects.POST("/:projectId/youtube/analytics/schedule", youtubeHandler.EnableWeekly)
		projects.DELETE("/:projectId/youtube/analytics/schedule", youtubeHandler.DisableWeekly)

		projects.POST("/:projectId/youtube/videos", youtubeHandler.UploadVideo)
		projects.GET("/:projectId/youtube/videos", youtubeHandler.UploadHistory)
		projects.GET("/:projectId/youtube/videos/:videoId/status", youtubeHandler.UploadStatus)
		projects.PATCH("/:projectId/youtube/videos/:videoId", youtubeHandler.UpdateVideo)
		projects.DELETE("/:projectId/youtube/videos/:videoId", youtubeHandler.DeleteVideo)

		projects.POST("/:projectId/tasks/sync", taskHandler.Sync)
		projects.GET("/:projectId/tasks", taskHandler.List)
		projects.POST("/:projectId/tasks/breakdown", taskHandler.BreakDown)
	}

	api.GET("/jobs", youtubeHandler.ListJobs)
	api.POST("/tasks/:issueKey/transition", taskHandler.Transition)

	return router
}
