package trials

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/PaulinaShao/Akilipesa-sub002/internal/domain/model"
	"github.com/PaulinaShao/Akilipesa-sub002/internal/domain/rules"
)

var ErrValidation = errors.New("validation error")

// Store persists one JSON-serialized trial state per device. A missing key is
// reported via ok=false, not an error.
type Store interface {
	Get(ctx context.Context, deviceID string) (payload string, ok bool, err error)
	Set(ctx context.Context, deviceID, payload string) error
}

type Config struct {
	FreeCallsEnabled bool
	FreeCallsPerDay  int
	AiTrialsPerDay   int
	ReactionsPerDay  int
	CallCooldown     time.Duration
	ResetTimezone    string
}

// Ledger owns the quota arithmetic and day-rollover logic for guest trials.
// It has no knowledge of why an action is gated; consume methods are pure and
// the caller persists the result.
type Ledger struct {
	store Store
	cfg   Config
	loc   *time.Location
	now   func() time.Time
}

func NewLedger(store Store, cfg Config) *Ledger {
	if cfg.AiTrialsPerDay <= 0 {
		cfg.AiTrialsPerDay = rules.AiTrialsPerDay
	}
	if cfg.ReactionsPerDay <= 0 {
		cfg.ReactionsPerDay = rules.ReactionsPerDay
	}
	if cfg.CallCooldown <= 0 {
		cfg.CallCooldown = rules.CallCooldown
	}
	if strings.TrimSpace(cfg.ResetTimezone) == "" {
		cfg.ResetTimezone = rules.ReferenceTimezone
	}

	loc, err := time.LoadLocation(cfg.ResetTimezone)
	if err != nil {
		loc = time.UTC
	}

	return &Ledger{
		store: store,
		cfg:   cfg,
		loc:   loc,
		now:   time.Now,
	}
}

// SetClock replaces the wall clock, letting tests and callers simulate day
// rollovers and cooldown expiry deterministically.
func (l *Ledger) SetClock(now func() time.Time) {
	if now != nil {
		l.now = now
	}
}

// Load reads the persisted state for a device, synthesizing fresh defaults
// when the state is absent, corrupt, or unreadable, and normalizing the day
// rollover before returning. It never fails: a broken store yields a fresh
// trial, not unlimited access.
func (l *Ledger) Load(ctx context.Context, deviceID string) model.TrialState {
	deviceID = strings.TrimSpace(deviceID)
	if l.store == nil || deviceID == "" {
		return l.defaultState(deviceID)
	}

	payload, ok, err := l.store.Get(ctx, deviceID)
	if err != nil || !ok {
		return l.defaultState(deviceID)
	}

	var state model.TrialState
	if err := json.Unmarshal([]byte(payload), &state); err != nil {
		return l.defaultState(deviceID)
	}
	state.DeviceID = deviceID

	return l.normalize(state)
}

func (l *Ledger) Save(ctx context.Context, state model.TrialState) error {
	if strings.TrimSpace(state.DeviceID) == "" {
		return ErrValidation
	}
	if l.store == nil {
		return fmt.Errorf("trial store is nil")
	}

	payload, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal trial state: %w", err)
	}
	if err := l.store.Set(ctx, state.DeviceID, string(payload)); err != nil {
		return fmt.Errorf("persist trial state: %w", err)
	}

	return nil
}

// CanStartFreeCall is a pure predicate: the remote flag is on, a call remains
// today, and the cooldown window since the last call has elapsed.
func (l *Ledger) CanStartFreeCall(state model.TrialState) bool {
	if !l.cfg.FreeCallsEnabled || state.FreeCallsRemaining <= 0 {
		return false
	}
	return rules.CooldownRemaining(state.LastCallAt, l.now().UTC(), l.cfg.CallCooldown) == 0
}

// CooldownRetryAfter reports whole seconds until the next free call is
// permitted, 0 when no cooldown is pending.
func (l *Ledger) CooldownRetryAfter(state model.TrialState) int64 {
	remaining := rules.CooldownRemaining(state.LastCallAt, l.now().UTC(), l.cfg.CallCooldown)
	if remaining <= 0 {
		return 0
	}
	sec := int64(remaining / time.Second)
	if remaining%time.Second != 0 {
		sec++
	}
	return sec
}

func (l *Ledger) ConsumeCall(state model.TrialState) model.TrialState {
	if state.FreeCallsRemaining > 0 {
		state.FreeCallsRemaining--
	}
	at := l.now().UTC().UnixMilli()
	state.LastCallAt = &at
	return state
}

func (l *Ledger) ConsumeAiTrial(state model.TrialState) model.TrialState {
	if state.AiTrialsRemaining > 0 {
		state.AiTrialsRemaining--
	}
	return state
}

func (l *Ledger) ConsumeReaction(state model.TrialState) model.TrialState {
	if state.ReactionsRemaining > 0 {
		state.ReactionsRemaining--
	}
	return state
}

// NextResetAt is the upcoming midnight in the reference timezone, for UI
// "resets at" copy.
func (l *Ledger) NextResetAt() time.Time {
	return rules.NextResetAt(l.now().UTC(), l.loc)
}

func (l *Ledger) defaultState(deviceID string) model.TrialState {
	return model.TrialState{
		DeviceID:           deviceID,
		FreeCallsRemaining: rules.FreeCallAllotment(l.cfg.FreeCallsEnabled, l.cfg.FreeCallsPerDay),
		AiTrialsRemaining:  l.cfg.AiTrialsPerDay,
		ReactionsRemaining: l.cfg.ReactionsPerDay,
		LastCallAt:         nil,
		ResetAt:            rules.DayKey(l.now().UTC(), l.loc),
		FreeCallsEnabled:   l.cfg.FreeCallsEnabled,
	}
}

// normalize applies the day rollover and clamps stale counters. Crossing
// midnight in the reference timezone always refreshes the allotment; two
// reads on the same reference-timezone day never do.
func (l *Ledger) normalize(state model.TrialState) model.TrialState {
	today := rules.DayKey(l.now().UTC(), l.loc)
	if state.ResetAt != today {
		fresh := l.defaultState(state.DeviceID)
		fresh.LastCallAt = state.LastCallAt
		return fresh
	}

	callAllotment := rules.FreeCallAllotment(l.cfg.FreeCallsEnabled, l.cfg.FreeCallsPerDay)
	state.FreeCallsRemaining = rules.ClampCounter(state.FreeCallsRemaining, callAllotment)
	state.AiTrialsRemaining = rules.ClampCounter(state.AiTrialsRemaining, l.cfg.AiTrialsPerDay)
	state.ReactionsRemaining = rules.ClampCounter(state.ReactionsRemaining, l.cfg.ReactionsPerDay)
	state.FreeCallsEnabled = l.cfg.FreeCallsEnabled

	return state
}
