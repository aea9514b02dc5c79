package jobs

import (
	"context"
	"time"

	"volunteer-backend/internal/config"
	"volunteer-backend/internal/logger"
	"volunteer-backend/internal/notify"
	"volunteer-backend/internal/repository"
	"volunteer-backend/internal/service"
)

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	repos    *Repositories
	services *Services
	config   *config.Config
	now      func() time.Time
}

// Repositories holds the repositories jobs read and write
type Repositories struct {
	Shifts        repository.ShiftRepository
	Users         repository.UserRepository
	Registrations repository.RegistrationRepository
	Notifications repository.NotificationRepository
}

// Services holds all service dependencies needed by jobs
type Services struct {
	Achievements service.AchievementService
	Pusher       notify.Pusher
}

// NewJobRunner creates a new job runner with all dependencies
func NewJobRunner(repos *Repositories, services *Services, cfg *config.Config) *JobRunner {
	return &JobRunner{
		repos:    repos,
		services: services,
		config:   cfg,
		now:      time.Now,
	}
}

// Config returns the configuration the runner was built with
func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func(ctx context.Context) error) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
		}
	}()

	ctx := logger.WithContext(context.Background(), logger.Get().With("job", jobName))
	start := jr.now()
	logger.Info("Starting job", "job", jobName)
	if err := jobFunc(ctx); err != nil {
		logger.Error("Job failed", "job", jobName, "error", err)
		return
	}
	logger.Info("Job completed", "job", jobName, "duration", jr.now().Sub(start))
}

// RunAll runs every job once (for manual execution)
func (jr *JobRunner) RunAll() {
	jr.ReconcileVolunteerCounts()
	jr.SendShiftReminders()
	jr.AwardAchievements()
}
