package cleanup

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

type retentionStore interface {
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// Job prunes aged call and reaction rows. Trial state lives in redis with a
// TTL and needs no pruning here.
type Job struct {
	calls     retentionStore
	reactions retentionStore
	retention time.Duration
	now       func() time.Time
	logger    *zap.Logger
}

func New(calls, reactions retentionStore, retention time.Duration, logger *zap.Logger) *Job {
	if retention <= 0 {
		retention = 90 * 24 * time.Hour
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Job{
		calls:     calls,
		reactions: reactions,
		retention: retention,
		now:       time.Now,
		logger:    logger,
	}
}

func (j *Job) Run(ctx context.Context) error {
	cutoff := j.now().Add(-j.retention)

	if j.calls != nil {
		rows, err := j.calls.DeleteOlderThan(ctx, cutoff)
		if err != nil {
			return fmt.Errorf("cleanup old calls: %w", err)
		}
		if rows > 0 {
			j.logger.Info("cleanup old calls completed", zap.Int64("deleted", rows))
		}
	}

	if j.reactions != nil {
		rows, err := j.reactions.DeleteOlderThan(ctx, cutoff)
		if err != nil {
			return fmt.Errorf("cleanup old reactions: %w", err)
		}
		if rows > 0 {
			j.logger.Info("cleanup old reactions completed", zap.Int64("deleted", rows))
		}
	}

	return nil
}
