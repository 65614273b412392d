package cleanup

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
)

type fakeRetentionStore struct {
	cutoff  time.Time
	deleted int64
	err     error
}

func (s *fakeRetentionStore) DeleteOlderThan(_ context.Context, cutoff time.Time) (int64, error) {
	s.cutoff = cutoff
	if s.err != nil {
		return 0, s.err
	}
	return s.deleted, nil
}

func TestRunPrunesBothStores(t *testing.T) {
	calls := &fakeRetentionStore{deleted: 3}
	reactions := &fakeRetentionStore{deleted: 7}
	job := New(calls, reactions, 30*24*time.Hour, zap.NewNop())
	job.now = func() time.Time { return time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC) }

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	wantCutoff := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	if !calls.cutoff.Equal(wantCutoff) {
		t.Fatalf("calls cutoff = %v, want %v", calls.cutoff, wantCutoff)
	}
	if !reactions.cutoff.Equal(wantCutoff) {
		t.Fatalf("reactions cutoff = %v, want %v", reactions.cutoff, wantCutoff)
	}
}

func TestRunStopsOnStoreError(t *testing.T) {
	calls := &fakeRetentionStore{err: errors.New("db down")}
	reactions := &fakeRetentionStore{}
	job := New(calls, reactions, 0, nil)

	if err := job.Run(context.Background()); err == nil {
		t.Fatal("expected error from calls store")
	}
	if !reactions.cutoff.IsZero() {
		t.Fatal("reactions must not be pruned after calls failure")
	}
}

func TestRunSkipsNilStores(t *testing.T) {
	job := New(nil, nil, time.Hour, nil)

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("Run with nil stores: %v", err)
	}
}
