package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/PaulinaShao/Akilipesa-sub002/internal/domain/enums"
	authsvc "github.com/PaulinaShao/Akilipesa-sub002/internal/services/auth"
	entsvc "github.com/PaulinaShao/Akilipesa-sub002/internal/services/entitlements"
	reactsvc "github.com/PaulinaShao/Akilipesa-sub002/internal/services/reactions"
	"github.com/PaulinaShao/Akilipesa-sub002/internal/transport/http/dto"
	httperrors "github.com/PaulinaShao/Akilipesa-sub002/internal/transport/http/errors"
)

type ReactionHandler struct {
	gate      *entsvc.Gate
	reactions *reactsvc.Service
	upsell    string
}

func NewReactionHandler(gate *entsvc.Gate, reactions *reactsvc.Service, upsell string) *ReactionHandler {
	return &ReactionHandler{gate: gate, reactions: reactions, upsell: upsell}
}

func (h *ReactionHandler) Handle(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.gate == nil || h.reactions == nil {
		writeInternal(w, "REACTION_SERVICE_UNAVAILABLE", "reaction service is unavailable")
		return
	}

	var req dto.ReactionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}
	if strings.TrimSpace(req.TargetID) == "" {
		writeBadRequest(w, "VALIDATION_ERROR", "target_id is required")
		return
	}

	gateID, _ := gateIdentity(r)
	decision, _ := h.gate.CheckAndConsume(r.Context(), enums.ActionReaction, gateID)
	if !decision.Allowed {
		writeGateDenial(w, decision, h.upsell)
		return
	}

	reaction, err := h.reactions.React(r.Context(), identity.UserID, req.TargetID, enums.ReactionKind(req.Kind))
	if err != nil {
		switch {
		case errors.Is(err, reactsvc.ErrValidation):
			writeBadRequest(w, "VALIDATION_ERROR", "reaction validation failed")
		case errors.Is(err, reactsvc.ErrRateLimited):
			writeRateLimited(w, 0)
		default:
			writeInternal(w, "INTERNAL_ERROR", "failed to store reaction")
		}
		return
	}

	httperrors.Write(w, http.StatusOK, dto.ReactionResponse{
		ID:    reaction.ID,
		Trial: mapTrialState(decision.State),
	})
}
