package jobs

import (
	"context"
	"fmt"

	"github.com/labaid/labaid-api/internal/metrics"
	"go.uber.org/zap"
)

const (
	AuditRetentionJobName = "audit_retention"
	MetricsRefreshJobName = "metrics_refresh"
)

// AuditPurger deletes audit entries older than a number of days
type AuditPurger interface {
	PurgeOlderThan(ctx context.Context, days int) (int64, error)
}

// AuditRetentionJob removes audit entries past the retention window
type AuditRetentionJob struct {
	purger AuditPurger
	days   int
	logger *zap.Logger
}

func NewAuditRetentionJob(purger AuditPurger, days int, logger *zap.Logger) *AuditRetentionJob {
	return &AuditRetentionJob{purger: purger, days: days, logger: logger}
}

func (j *AuditRetentionJob) Run(ctx context.Context) error {
	if j.days <= 0 {
		return nil
	}
	deleted, err := j.purger.PurgeOlderThan(ctx, j.days)
	if err != nil {
		return fmt.Errorf("failed to purge audit log: %w", err)
	}
	j.logger.Info("audit retention applied",
		zap.Int("retention_days", j.days),
		zap.Int64("deleted", deleted))
	return nil
}

// RegisterAuditRetentionJob schedules retention; nothing is scheduled when days is 0
func RegisterAuditRetentionJob(scheduler *Scheduler, purger AuditPurger, days int, cronExpr string, logger *zap.Logger) error {
	if days <= 0 {
		logger.Info("audit retention disabled")
		return nil
	}
	job := NewAuditRetentionJob(purger, days, logger)
	return scheduler.AddJob(AuditRetentionJobName, cronExpr, job.Run)
}

// MetricsRefreshJob returns the job that keeps the vial gauge current
func MetricsRefreshJob(m *metrics.Metrics, counter metrics.VialCounter) JobFunc {
	return func(ctx context.Context) error {
		return m.RefreshVials(ctx, counter)
	}
}

// RegisterMetricsRefreshJob schedules the vial gauge refresh
func RegisterMetricsRefreshJob(scheduler *Scheduler, m *metrics.Metrics, counter metrics.VialCounter, cronExpr string) error {
	return scheduler.AddJob(MetricsRefreshJobName, cronExpr, MetricsRefreshJob(m, counter))
}
