package jobs_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"dds/internal/jobs"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockDeletedPurger struct {
	mock.Mock
}

func (m *MockDeletedPurger) PurgeDeleted(ctx context.Context, before time.Time) (int64, error) {
	args := m.Called(ctx, before)
	return args.Get(0).(int64), args.Error(1)
}

func newJob(t *testing.T, purger *MockDeletedPurger, schedule string, logs *bytes.Buffer) (*jobs.PurgeDeletedJob, *prometheus.Registry) {
	t.Helper()
	registry := prometheus.NewRegistry()
	logger := slog.New(slog.NewTextHandler(logs, nil))

	job, err := jobs.NewPurgeDeletedJob(purger, schedule, 24*time.Hour, registry, logger)
	require.NoError(t, err)
	return job, registry
}

func TestPurgeDeletedJob_Run(t *testing.T) {
	purger := new(MockDeletedPurger)
	logs := new(bytes.Buffer)
	job, registry := newJob(t, purger, "@every 1h", logs)

	start := time.Now()
	purger.On("PurgeDeleted", mock.Anything, mock.MatchedBy(func(before time.Time) bool {
		cutoff := start.Add(-24 * time.Hour)
		return !before.Before(cutoff) && before.Before(cutoff.Add(time.Minute))
	})).Return(int64(3), nil).Once()

	purged, err := job.Run(t.Context())

	require.NoError(t, err)
	assert.Equal(t, int64(3), purged)
	assert.Contains(t, logs.String(), "component=purge_deleted_job")
	assert.Contains(t, logs.String(), "rows=3")

	count, err := testutil.GatherAndCount(registry, "dds_jobs_purged_rows_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	purger.AssertExpectations(t)
}

func TestPurgeDeletedJob_RunFailure(t *testing.T) {
	purger := new(MockDeletedPurger)
	job, _ := newJob(t, purger, "@every 1h", new(bytes.Buffer))
	boom := errors.New("database is down")
	purger.On("PurgeDeleted", mock.Anything, mock.Anything).Return(int64(0), boom).Once()

	_, err := job.Run(t.Context())

	require.ErrorIs(t, err, boom)
}

func TestPurgeDeletedJob_InvalidSchedule(t *testing.T) {
	job, _ := newJob(t, new(MockDeletedPurger), "not a schedule", new(bytes.Buffer))

	assert.Error(t, job.Start())
}

func TestPurgeDeletedJob_RunsOnSchedule(t *testing.T) {
	purger := new(MockDeletedPurger)
	logs := new(bytes.Buffer)
	job, _ := newJob(t, purger, "* * * * * *", logs)

	ran := make(chan struct{}, 8)
	purger.On("PurgeDeleted", mock.Anything, mock.Anything).
		Return(int64(0), errors.New("temporary failure")).
		Run(func(mock.Arguments) { ran <- struct{}{} })

	require.NoError(t, job.Start())
	select {
	case <-ran:
	case <-time.After(3 * time.Second):
		t.Fatal("purge did not run")
	}
	job.Stop()

	assert.Contains(t, logs.String(), "Purge deleted job failed")
}

func TestNewPurgeDeletedJob_DuplicateRegistration(t *testing.T) {
	registry := prometheus.NewRegistry()
	logger := slog.New(slog.DiscardHandler)

	_, err := jobs.NewPurgeDeletedJob(new(MockDeletedPurger), "@daily", time.Hour, registry, logger)
	require.NoError(t, err)
	_, err = jobs.NewPurgeDeletedJob(new(MockDeletedPurger), "@daily", time.Hour, registry, logger)
	assert.Error(t, err)
}
