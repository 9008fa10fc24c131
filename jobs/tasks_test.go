package jobs

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubLibrary struct {
	orphans []string
	err     error
}

func (s *stubLibrary) ScanOrphans(ctx context.Context) ([]string, error) {
	return s.orphans, s.err
}

type stubAuditStore struct {
	cutoff  time.Time
	removed int64
	err     error
}

func (s *stubAuditStore) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	s.cutoff = cutoff
	return s.removed, s.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestMediaScanHandler(t *testing.T) {
	handler := NewMediaScanHandler(&stubLibrary{orphans: []string{"stray.tmp"}}, discardLogger())
	assert.NoError(t, handler(context.Background(), NewMediaScanTask()))

	handler = NewMediaScanHandler(&stubLibrary{err: errors.New("disk gone")}, discardLogger())
	assert.Error(t, handler(context.Background(), NewMediaScanTask()))
}

func TestAuditPruneHandlerUsesRetentionWindow(t *testing.T) {
	store := &stubAuditStore{removed: 5}
	handler := NewAuditPruneHandler(store, discardLogger())

	task, err := NewAuditPruneTask(AuditPrunePayload{RetentionHours: 24})
	require.NoError(t, err)
	require.NoError(t, handler(context.Background(), task))

	wantCutoff := time.Now().Add(-24 * time.Hour)
	assert.WithinDuration(t, wantCutoff, store.cutoff, time.Minute)
}

func TestAuditPruneHandlerSkipsBadPayload(t *testing.T) {
	store := &stubAuditStore{}
	handler := NewAuditPruneHandler(store, discardLogger())

	err := handler(context.Background(), asynq.NewTask(TaskAuditPrune, []byte("not json")))
	assert.ErrorIs(t, err, asynq.SkipRetry)

	task, err := NewAuditPruneTask(AuditPrunePayload{RetentionHours: 0})
	require.NoError(t, err)
	err = handler(context.Background(), task)
	assert.ErrorIs(t, err, asynq.SkipRetry)
	assert.True(t, store.cutoff.IsZero(), "zero retention must not delete anything")
}
