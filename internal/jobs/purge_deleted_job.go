package jobs

import (
	"context"
	"log/slog"
	"time"

	"dds/internal/core/ports"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/robfig/cron/v3"
)

// PurgeDeletedJob removes soft-deleted customers and products once they have
// been deleted for longer than the retention period.
type PurgeDeletedJob struct {
	purger    ports.DeletedPurger
	schedule  string
	retention time.Duration
	now       func() time.Time

	purged prometheus.Counter
	cron   *cron.Cron
	logger *slog.Logger
}

// NewPurgeDeletedJob creates the job. schedule is a cron expression with a
// leading seconds field, e.g. "0 0 3 * * *" for every day at 03:00.
func NewPurgeDeletedJob(
	purger ports.DeletedPurger,
	schedule string,
	retention time.Duration,
	registerer prometheus.Registerer,
	logger *slog.Logger,
) (*PurgeDeletedJob, error) {
	purged := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "dds",
		Subsystem: "jobs",
		Name:      "purged_rows_total",
		Help:      "Soft-deleted rows removed by the purge job.",
	})
	if err := registerer.Register(purged); err != nil {
		return nil, err
	}

	return &PurgeDeletedJob{
		purger:    purger,
		schedule:  schedule,
		retention: retention,
		now:       time.Now,
		purged:    purged,
		cron:      cron.New(cron.WithSeconds()),
		logger:    logger.With("component", "purge_deleted_job"),
	}, nil
}

// Name identifies the job in logs and errors.
func (j *PurgeDeletedJob) Name() string {
	return "purge deleted"
}

// Start schedules the job. An invalid schedule is reported here.
func (j *PurgeDeletedJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()
		if _, err := j.Run(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Purge deleted job failed", "error", err)
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Purge deleted job started",
		"schedule", j.schedule, "retention", j.retention.String())
	return nil
}

// Run purges once and returns how many rows were removed.
func (j *PurgeDeletedJob) Run(ctx context.Context) (int64, error) {
	cutoff := j.now().Add(-j.retention)

	purged, err := j.purger.PurgeDeleted(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	j.purged.Add(float64(purged))
	if purged > 0 {
		j.logger.InfoContext(ctx, "Purged deleted records", "rows", purged, "cutoff", cutoff)
	}
	return purged, nil
}

// Stop unschedules the job and waits for a running purge to finish.
func (j *PurgeDeletedJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Purge deleted job stopped")
}
