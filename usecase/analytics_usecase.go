package usecase

import (
	"context"
	"time"

	"taskdash/domain/model"
	"taskdash/domain/repository"
	"taskdash/infrastructure/logger"
)

// IAnalyticsUsecase collects channel snapshots and serves the local history.
type IAnalyticsUsecase interface {
	// CollectNow fetches a fresh channel report and appends it to the
	// project's snapshot history. An unauthenticated project yields a nil
	// report without error so a dashboard poll never breaks.
	CollectNow(ctx context.Context, projectID string) (*model.ChannelReport, error)
	History(projectID string) ([]model.AnalyticsSnapshot, error)
	// EnableWeekly registers the recurring collection job for the project.
	EnableWeekly(projectID string) error
	DisableWeekly(projectID string) error
}

const weeklyInterval = 7 * 24 * time.Hour

type AnalyticsUsecase struct {
	youtube   repository.IYouTube
	snapshots repository.ISnapshotStore
	auth      IAuthUsecase
	scheduler ISchedulerUsecase
	now       func() time.Time
}

func NewAnalyticsUsecase(youtube repository.IYouTube, snapshots repository.ISnapshotStore, auth IAuthUsecase, scheduler ISchedulerUsecase) *AnalyticsUsecase {
	return &AnalyticsUsecase{
		youtube:   youtube,
		snapshots: snapshots,
		auth:      auth,
		scheduler: scheduler,
		now:       time.Now,
	}
}

func (u *AnalyticsUsecase) CollectNow(ctx context.Context, projectID string) (*model.ChannelReport, error) {
	if !u.auth.IsAuthenticated(projectID) {
		logger.GetLogger().WithField("project_id", projectID).Info("Skipping analytics collection, project not authenticated")
		return nil, nil
	}

	report, err := u.youtube.GetChannelReport(ctx, projectID)
	if err != nil {
		return nil, err
	}
	snapshot := model.AnalyticsSnapshot{
		Timestamp: u.now(),
		Data:      report,
	}
	if err := u.snapshots.Append(projectID, snapshot); err != nil {
		return nil, err
	}
	logger.GetLogger().WithField("project_id", projectID).WithField("channel_id", report.ChannelID).Info("Analytics snapshot recorded")
	return report, nil
}

func (u *AnalyticsUsecase) History(projectID string) ([]model.AnalyticsSnapshot, error) {
	return u.snapshots.List(projectID)
}

func (u *AnalyticsUsecase) EnableWeekly(projectID string) error {
	return u.scheduler.ScheduleRecurring(projectID, model.JobKindWeeklyAnalytics, weeklyInterval)
}

func (u *AnalyticsUsecase) DisableWeekly(projectID string) error {
	return u.scheduler.Cancel(projectID, model.JobKindWeeklyAnalytics)
}

var _ IAnalyticsUsecase = (*AnalyticsUsecase)(nil)
