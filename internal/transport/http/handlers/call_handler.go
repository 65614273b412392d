package handlers

import (
	"net/http"
	"time"

	"github.com/PaulinaShao/Akilipesa-sub002/internal/domain/enums"
	authsvc "github.com/PaulinaShao/Akilipesa-sub002/internal/services/auth"
	callsvc "github.com/PaulinaShao/Akilipesa-sub002/internal/services/calls"
	entsvc "github.com/PaulinaShao/Akilipesa-sub002/internal/services/entitlements"
	"github.com/PaulinaShao/Akilipesa-sub002/internal/transport/http/dto"
	httperrors "github.com/PaulinaShao/Akilipesa-sub002/internal/transport/http/errors"
)

type CallHandler struct {
	gate   *entsvc.Gate
	calls  *callsvc.Service
	upsell string
}

func NewCallHandler(gate *entsvc.Gate, calls *callsvc.Service, upsell string) *CallHandler {
	return &CallHandler{gate: gate, calls: calls, upsell: upsell}
}

func (h *CallHandler) Start(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.gate == nil || h.calls == nil {
		writeInternal(w, "CALL_SERVICE_UNAVAILABLE", "call service is unavailable")
		return
	}

	var req dto.StartCallRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := decodeJSON(r, &req); err != nil {
			writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
			return
		}
	}

	gateID, _ := gateIdentity(r)
	decision, gateErr := h.gate.CheckAndConsume(r.Context(), enums.ActionCall, gateID)
	if !decision.Allowed {
		writeGateDenial(w, decision, h.upsell)
		return
	}
	_ = gateErr // persistence failure must not revoke the grant

	grant, err := h.calls.Start(r.Context(), identity.UserID, req.CalleeID)
	if err != nil {
		writeInternal(w, "INTERNAL_ERROR", "failed to start call")
		return
	}

	httperrors.Write(w, http.StatusOK, dto.CallGrantResponse{
		CallID:       grant.CallID,
		Channel:      grant.Channel,
		Token:        grant.Token,
		ExpiresInSec: maxInt64(0, int64(time.Until(grant.ExpiresAt).Seconds())),
		Trial:        mapTrialState(decision.State),
	})
}
