package handlers

import (
	"context"
	"net/http"
	"time"

	authsvc "github.com/PaulinaShao/Akilipesa-sub002/internal/services/auth"
	entsvc "github.com/PaulinaShao/Akilipesa-sub002/internal/services/entitlements"
	trialssvc "github.com/PaulinaShao/Akilipesa-sub002/internal/services/trials"
)

type memoryTrialStore struct {
	payloads map[string]string
}

func newMemoryTrialStore() *memoryTrialStore {
	return &memoryTrialStore{payloads: map[string]string{}}
}

func (s *memoryTrialStore) Get(_ context.Context, deviceID string) (string, bool, error) {
	payload, ok := s.payloads[deviceID]
	return payload, ok, nil
}

func (s *memoryTrialStore) Set(_ context.Context, deviceID, payload string) error {
	s.payloads[deviceID] = payload
	return nil
}

func newTestGate() *entsvc.Gate {
	ledger := trialssvc.NewLedger(newMemoryTrialStore(), trialssvc.Config{
		FreeCallsEnabled: true,
		FreeCallsPerDay:  1,
		AiTrialsPerDay:   2,
		ReactionsPerDay:  5,
		CallCooldown:     10 * time.Minute,
	})
	return entsvc.NewGate(ledger)
}

func asGuest(r *http.Request, deviceID string) *http.Request {
	ctx := authsvc.WithIdentity(r.Context(), authsvc.Identity{
		UserID:    1,
		SID:       "sid-test",
		Role:      "GUEST",
		DeviceID:  deviceID,
		Anonymous: true,
	})
	return r.WithContext(authsvc.WithDeviceID(ctx, deviceID))
}

func asUser(r *http.Request, userID int64) *http.Request {
	ctx := authsvc.WithIdentity(r.Context(), authsvc.Identity{
		UserID:   userID,
		SID:      "sid-user",
		Role:     "USER",
		DeviceID: "device-user",
	})
	return r.WithContext(ctx)
}
