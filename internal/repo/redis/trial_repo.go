package redis

import (
	"context"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

const trialPrefix = "trials:device:"

// TrialRepo is the key-value persistence adapter for per-device trial state.
// Values are opaque JSON payloads owned by the trials ledger; a TTL keeps
// stale device records from accumulating (the ledger resets counters on day
// rollover anyway).
type TrialRepo struct {
	client *goredis.Client
	ttl    time.Duration
}

func NewTrialRepo(client *goredis.Client, ttl time.Duration) *TrialRepo {
	if ttl <= 0 {
		ttl = 48 * time.Hour
	}
	return &TrialRepo{client: client, ttl: ttl}
}

func (r *TrialRepo) Get(ctx context.Context, deviceID string) (string, bool, error) {
	if r.client == nil {
		return "", false, fmt.Errorf("redis client is nil")
	}
	if strings.TrimSpace(deviceID) == "" {
		return "", false, fmt.Errorf("device id is required")
	}

	payload, err := r.client.Get(ctx, trialKey(deviceID)).Result()
	if err == goredis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get trial state: %w", err)
	}

	return payload, true, nil
}

func (r *TrialRepo) Set(ctx context.Context, deviceID, payload string) error {
	if r.client == nil {
		return fmt.Errorf("redis client is nil")
	}
	if strings.TrimSpace(deviceID) == "" || payload == "" {
		return fmt.Errorf("invalid trial state payload")
	}

	if err := r.client.Set(ctx, trialKey(deviceID), payload, r.ttl).Err(); err != nil {
		return fmt.Errorf("set trial state: %w", err)
	}

	return nil
}

func trialKey(deviceID string) string {
	return trialPrefix + deviceID
}
