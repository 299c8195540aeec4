package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"taskdash/domain/model"
	aiclient "taskdash/infrastructure/clients/ai"
	jiraclient "taskdash/infrastructure/clients/jira"
	youtubeclient "taskdash/infrastructure/clients/youtube"
	"taskdash/infrastructure/configuration"
	"taskdash/infrastructure/logger"
	"taskdash/infrastructure/notification"
	"taskdash/infrastructure/persistence"
	httpHandler "taskdash/interfaces/http"
	"taskdash/server"
	"taskdash/usecase"

	"golang.org/x/sync/errgroup"
)

var httpServer *http.Server

func recoverPanic() {
	if err := recover(); err != nil {
		logger.GetLogger().WithField("error", err).Error("Application panic recovered")
	}
}

func main() {
	defer recoverPanic()
	ctx := context.Background()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(interrupt)

	g, ctx := errgroup.WithContext(ctx)

	app := configuration.C.App
	dataDir := configuration.C.Storage.DataDir

	// Local file-backed stores
	credentialStore := persistence.NewCredentialStore(dataDir)
	settingsStore := persistence.NewSettingsStore(dataDir)
	tokenCache := persistence.NewTokenCache(settingsStore)
	snapshotStore := persistence.NewSnapshotStore(dataDir)
	uploadHistory := persistence.NewUploadHistory(dataDir)
	jobStore := persistence.NewJobStore(dataDir)
	projectStore := persistence.NewProjectStore(dataDir)
	taskStore := persistence.NewTaskStore(dataDir)

	notifier := notification.NewNotifier()

	authUsecase := usecase.NewAuthUsecase(credentialStore, tokenCache, projectStore, usecase.AuthConfig{
		LoopbackPort: configuration.C.YouTube.LoopbackPort,
		AuthTimeout:  time.Duration(configuration.C.YouTube.AuthTimeoutSeconds) * time.Second,
	})
	youtubeClient := youtubeclient.NewClient(authUsecase)

	schedulerUsecase := usecase.NewSchedulerUsecase(jobStore, notifier,
		time.Duration(configuration.C.Scheduler.PollIntervalSeconds)*time.Second)
	analyticsUsecase := usecase.NewAnalyticsUsecase(youtubeClient, snapshotStore, authUsecase, schedulerUsecase)
	uploadUsecase := usecase.NewUploadUsecase(youtubeClient, uploadHistory, authUsecase, schedulerUsecase, notifier)
	projectUsecase := usecase.NewProjectUsecase(projectStore, credentialStore)

	jiraClient := jiraclient.NewClient(jiraclient.Config{
		BaseURL:  configuration.C.Jira.BaseURL,
		Email:    configuration.C.Jira.Email,
		APIToken: configuration.C.Jira.APIToken,
	})
	aiClient := aiclient.NewClient(aiclient.Config{
		Provider: configuration.C.AI.Provider,
		Endpoint: configuration.C.AI.Endpoint,
		APIKey:   configuration.C.AI.APIKey,
		Model:    configuration.C.AI.Model,
	})
	taskUsecase := usecase.NewTaskUsecase(jiraClient, aiClient, taskStore, configuration.C.AI.Model)

	// Durable jobs survive restarts; handlers must be registered before the
	// scheduler loop starts so overdue jobs from a previous run dispatch.
	schedulerUsecase.Register(model.JobKindWeeklyAnalytics, func(ctx context.Context, job model.ScheduledJob) error {
		_, err := analyticsUsecase.CollectNow(ctx, job.ProjectID)
		return err
	})
	schedulerUsecase.Register(model.JobKindDeferredUpload, func(ctx context.Context, job model.ScheduledJob) error {
		_, err := uploadUsecase.ExecuteUpload(ctx, job.ProjectID, job.Payload)
		return err
	})

	g.Go(func() error {
		err := schedulerUsecase.Run(ctx)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})

	sessionHandler := httpHandler.NewSessionHandler()
	projectHandler := httpHandler.NewProjectHandler(projectUsecase)
	youtubeAuthHandler := httpHandler.NewYouTubeAuthHandler(authUsecase, projectUsecase)
	youtubeHandler := httpHandler.NewYouTubeHandler(analyticsUsecase, uploadUsecase, schedulerUsecase)
	taskHandler := httpHandler.NewTaskHandler(taskUsecase)

	router := server.InitiateRouter(sessionHandler, projectHandler, youtubeAuthHandler, youtubeHandler, taskHandler, app.SecretKey)

	port := app.Port
	logger.GetLogger().WithField("port", port).Info("Starting application")
	g.Go(func() error {
		httpServer = &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: router,
		}
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	select {
	case <-interrupt:
		logger.GetLogger().Info("Application shutdown requested")
	case <-ctx.Done():
	}

	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if httpServer != nil {
		_ = httpServer.Shutdown(shutdownCtx)
	}

	if err := g.Wait(); err != nil {
		logger.GetLogger().WithField("error", err).Error("Server returned an error")
		os.Exit(2)
	}
}
