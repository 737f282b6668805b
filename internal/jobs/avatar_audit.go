package jobs

import (
	"context"
	"fmt"
	"sort"
	"time"

	"myapp_backend/internal/config"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// FileLister lists the public paths of stored uploads.
type FileLister interface {
	ListFiles() ([]string, error)
}

// AvatarSource lists the avatar paths profiles point at.
type AvatarSource interface {
	AvatarPaths(ctx context.Context) ([]string, error)
}

// AuditReport is the outcome of one audit run.
type AuditReport struct {
	Files      int
	Referenced int
	// Orphans are stored files no profile points at.
	Orphans []string
	// Missing are avatars a profile points at that are not on disk.
	Missing []string
}

// AvatarAuditJob finds uploads left behind when a profile replaced its
// avatar. It only reports; nothing is deleted.
type AvatarAuditJob struct {
	files         FileLister
	avatars       AvatarSource
	logger        *zap.Logger
	schedule      string
	timeout       time.Duration
	cronScheduler *cron.Cron
}

func NewAvatarAuditJob(files FileLister, avatars AvatarSource, logger *zap.Logger, cfg *config.Config) *AvatarAuditJob {
	scheduler := cron.New(
		cron.WithLogger(NewCronLogger(logger.Named("cron"))),
		cron.WithChain(cron.SkipIfStillRunning(NewCronLogger(logger.Named("cron")))),
	)

	return &AvatarAuditJob{
		files:         files,
		avatars:       avatars,
		logger:        logger.Named("AvatarAuditJob"),
		schedule:      cfg.AvatarAuditJobSchedule,
		timeout:       5 * time.Minute,
		cronScheduler: scheduler,
	}
}

// SetupAndStart schedules the audit and starts the scheduler. An empty
// schedule disables it.
func (j *AvatarAuditJob) SetupAndStart() error {
	if j.schedule == "" {
		j.logger.Warn("Avatar audit schedule not defined (AVATAR_AUDIT_SCHEDULE). Job will not run.")
		return nil
	}

	jobID, err := j.cronScheduler.AddFunc(j.schedule, j.runJob)
	if err != nil {
		j.logger.Error("Failed to schedule avatar audit job", zap.String("schedule", j.schedule), zap.Error(err))
		return fmt.Errorf("schedule avatar audit %q: %w", j.schedule, err)
	}

	j.logger.Info("Avatar audit job scheduled", zap.String("schedule", j.schedule), zap.Any("jobID", jobID))
	j.cronScheduler.Start()
	return nil
}

func (j *AvatarAuditJob) runJob() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	if _, err := j.RunOnce(ctx); err != nil {
		j.logger.Error("Avatar audit run failed", zap.Error(err))
	}
}

// RunOnce compares the upload directory with the stored profiles and logs
// every orphaned file.
func (j *AvatarAuditJob) RunOnce(ctx context.Context) (*AuditReport, error) {
	j.logger.Info("Starting avatar audit run...")

	files, err := j.files.ListFiles()
	if err != nil {
		return nil, fmt.Errorf("list uploads: %w", err)
	}
	referenced, err := j.avatars.AvatarPaths(ctx)
	if err != nil {
		return nil, fmt.Errorf("list avatar references: %w", err)
	}

	report := &AuditReport{Files: len(files), Referenced: len(referenced)}

	onDisk := make(map[string]struct{}, len(files))
	for _, f := range files {
		onDisk[f] = struct{}{}
	}
	inUse := make(map[string]struct{}, len(referenced))
	for _, r := range referenced {
		inUse[r] = struct{}{}
		if _, ok := onDisk[r]; !ok {
			report.Missing = append(report.Missing, r)
		}
	}
	for _, f := range files {
		if _, ok := inUse[f]; !ok {
			report.Orphans = append(report.Orphans, f)
			j.logger.Warn("Orphaned avatar file", zap.String("path", f))
		}
	}
	sort.Strings(report.Missing)

	j.logger.Info("Avatar audit run completed",
		zap.Int("files", report.Files),
		zap.Int("referenced", report.Referenced),
		zap.Int("orphans", len(report.Orphans)),
		zap.Strings("missing", report.Missing),
	)
	return report, nil
}

// Stop waits up to 10s for a running audit to finish.
func (j *AvatarAuditJob) Stop() {
	if j.cronScheduler == nil {
		return
	}
	j.logger.Info("Stopping avatar audit scheduler...")
	stopCtx := j.cronScheduler.Stop()
	select {
	case <-stopCtx.Done():
		j.logger.Info("Avatar audit scheduler stopped gracefully.")
	case <-time.After(10 * time.Second):
		j.logger.Warn("Avatar audit scheduler stop timed out.")
	}
}
