package entitlements

import (
	"context"
	"fmt"

	"github.com/PaulinaShao/Akilipesa-sub002/internal/domain/enums"
	"github.com/PaulinaShao/Akilipesa-sub002/internal/domain/model"
	trialssvc "github.com/PaulinaShao/Akilipesa-sub002/internal/services/trials"
)

type Reason string

const (
	ReasonNone           Reason = "none"
	ReasonQuotaExhausted Reason = "quota_exhausted"
	ReasonCooldownActive Reason = "cooldown_active"
)

// Identity is the slice of the auth identity the gate cares about. A real
// user is authenticated and not anonymous; everything else is a guest.
type Identity struct {
	Authenticated bool
	Anonymous     bool
	DeviceID      string
}

func (id Identity) Guest() bool {
	return !id.Authenticated || id.Anonymous
}

// Decision is the terminal allow/deny outcome for one action request. Denials
// are product states, not errors. State carries the post-decision trial
// snapshot for guests so callers can render remaining counts.
type Decision struct {
	Allowed       bool
	Reason        Reason
	RetryAfterSec int64
	State         *model.TrialState
}

// Gate translates action + identity into an allow/deny decision, consuming
// trial quota on allow. It holds no state of its own between calls.
type Gate struct {
	ledger *trialssvc.Ledger
}

func NewGate(ledger *trialssvc.Ledger) *Gate {
	return &Gate{ledger: ledger}
}

// CheckAndConsume is the sole entry point that mutates quota state. The
// returned decision is always valid; a non-nil error only reports that
// persisting the consumed state failed, which leaves a bounded window where
// the next request sees the un-decremented counter. The action itself stands.
func (g *Gate) CheckAndConsume(ctx context.Context, action enums.ActionKind, identity Identity) (Decision, error) {
	if !identity.Guest() {
		return Decision{Allowed: true, Reason: ReasonNone}, nil
	}
	if g.ledger == nil {
		return Decision{Allowed: true, Reason: ReasonNone}, fmt.Errorf("trial ledger is nil")
	}

	state := g.ledger.Load(ctx, identity.DeviceID)

	switch action {
	case enums.ActionCall:
		return g.decideCall(ctx, state)
	case enums.ActionAiChat:
		if state.AiTrialsRemaining <= 0 {
			return deny(ReasonQuotaExhausted, state), nil
		}
		state = g.ledger.ConsumeAiTrial(state)
		return allow(state), g.persist(ctx, state)
	case enums.ActionReaction:
		if state.ReactionsRemaining <= 0 {
			return deny(ReasonQuotaExhausted, state), nil
		}
		state = g.ledger.ConsumeReaction(state)
		return allow(state), g.persist(ctx, state)
	default:
		// Browsing and anything else is unlimited for guests.
		return Decision{Allowed: true, Reason: ReasonNone}, nil
	}
}

// Snapshot returns the current trial state for a device without consuming
// anything.
func (g *Gate) Snapshot(ctx context.Context, identity Identity) (model.TrialState, error) {
	if g.ledger == nil {
		return model.TrialState{}, fmt.Errorf("trial ledger is nil")
	}
	return g.ledger.Load(ctx, identity.DeviceID), nil
}

func (g *Gate) decideCall(ctx context.Context, state model.TrialState) (Decision, error) {
	if g.ledger.CanStartFreeCall(state) {
		state = g.ledger.ConsumeCall(state)
		return allow(state), g.persist(ctx, state)
	}

	if state.FreeCallsRemaining <= 0 || !state.FreeCallsEnabled {
		return deny(ReasonQuotaExhausted, state), nil
	}

	d := deny(ReasonCooldownActive, state)
	d.RetryAfterSec = g.ledger.CooldownRetryAfter(state)
	return d, nil
}

func (g *Gate) persist(ctx context.Context, state model.TrialState) error {
	if err := g.ledger.Save(ctx, state); err != nil {
		return fmt.Errorf("persist consumed trial state: %w", err)
	}
	return nil
}

func allow(state model.TrialState) Decision {
	return Decision{Allowed: true, Reason: ReasonNone, State: &state}
}

func deny(reason Reason, state model.TrialState) Decision {
	return Decision{Allowed: false, Reason: reason, State: &state}
}
