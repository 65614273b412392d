package handlers

import (
	"net/http"

	"github.com/PaulinaShao/Akilipesa-sub002/internal/domain/model"
	authsvc "github.com/PaulinaShao/Akilipesa-sub002/internal/services/auth"
	entsvc "github.com/PaulinaShao/Akilipesa-sub002/internal/services/entitlements"
	"github.com/PaulinaShao/Akilipesa-sub002/internal/transport/http/dto"
	httperrors "github.com/PaulinaShao/Akilipesa-sub002/internal/transport/http/errors"
)

type TrialHandler struct {
	gate *entsvc.Gate
}

func NewTrialHandler(gate *entsvc.Gate) *TrialHandler {
	return &TrialHandler{gate: gate}
}

// Handle returns the caller's current trial allotment. Real users get the
// full allotment shape so the client renders nothing as locked.
func (h *TrialHandler) Handle(w http.ResponseWriter, r *http.Request) {
	identity, ok := gateIdentity(r)
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.gate == nil {
		writeInternal(w, "TRIAL_SERVICE_UNAVAILABLE", "trial service is unavailable")
		return
	}

	state, err := h.gate.Snapshot(r.Context(), identity)
	if err != nil {
		writeInternal(w, "INTERNAL_ERROR", "failed to load trial state")
		return
	}

	httperrors.Write(w, http.StatusOK, mapTrialState(&state))
}

// gateIdentity projects the authenticated identity onto the slice the
// entitlement gate consumes.
func gateIdentity(r *http.Request) (entsvc.Identity, bool) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		return entsvc.Identity{}, false
	}
	return entsvc.Identity{
		Authenticated: true,
		Anonymous:     identity.Anonymous,
		DeviceID:      identity.DeviceID,
	}, true
}

func mapTrialState(state *model.TrialState) *dto.TrialStateResponse {
	if state == nil {
		return nil
	}
	return &dto.TrialStateResponse{
		FreeCallsRemaining: state.FreeCallsRemaining,
		AiTrialsRemaining:  state.AiTrialsRemaining,
		ReactionsRemaining: state.ReactionsRemaining,
		LastCallAt:         state.LastCallAt,
		ResetAt:            state.ResetAt,
		FreeCallsEnabled:   state.FreeCallsEnabled,
	}
}
