package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/PaulinaShao/Akilipesa-sub002/internal/domain/enums"
	authsvc "github.com/PaulinaShao/Akilipesa-sub002/internal/services/auth"
	chatsvc "github.com/PaulinaShao/Akilipesa-sub002/internal/services/chat"
	entsvc "github.com/PaulinaShao/Akilipesa-sub002/internal/services/entitlements"
	"github.com/PaulinaShao/Akilipesa-sub002/internal/services/rate"
	"github.com/PaulinaShao/Akilipesa-sub002/internal/transport/http/dto"
	httperrors "github.com/PaulinaShao/Akilipesa-sub002/internal/transport/http/errors"
)

type ChatHandler struct {
	gate    *entsvc.Gate
	chat    *chatsvc.Service
	limiter *rate.Limiter
	upsell  string
}

func NewChatHandler(gate *entsvc.Gate, chat *chatsvc.Service, limiter *rate.Limiter, upsell string) *ChatHandler {
	return &ChatHandler{gate: gate, chat: chat, limiter: limiter, upsell: upsell}
}

func (h *ChatHandler) Handle(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.gate == nil || h.chat == nil {
		writeInternal(w, "CHAT_SERVICE_UNAVAILABLE", "chat service is unavailable")
		return
	}

	var req dto.ChatRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	if h.limiter != nil {
		retryAfter, allowed, err := h.limiter.Allow(r.Context(), rate.SubjectForUser(identity.UserID))
		if err == nil && !allowed {
			writeRateLimited(w, retryAfter)
			return
		}
	}

	gateID, _ := gateIdentity(r)
	decision, _ := h.gate.CheckAndConsume(r.Context(), enums.ActionAiChat, gateID)
	if !decision.Allowed {
		writeGateDenial(w, decision, h.upsell)
		return
	}

	history := make([]chatsvc.Message, 0, len(req.History))
	for _, msg := range req.History {
		history = append(history, chatsvc.Message{Role: msg.Role, Content: msg.Content})
	}

	reply, err := h.chat.Reply(r.Context(), req.Prompt, history)
	if err != nil {
		if errors.Is(err, chatsvc.ErrValidation) {
			writeBadRequest(w, "VALIDATION_ERROR", "prompt validation failed")
			return
		}
		writeInternal(w, "INTERNAL_ERROR", "failed to generate reply")
		return
	}

	httperrors.Write(w, http.StatusOK, dto.ChatResponse{
		Reply: reply,
		Trial: mapTrialState(decision.State),
	})
}

func writeRateLimited(w http.ResponseWriter, retryAfterSec int64) {
	if retryAfterSec > 0 {
		w.Header().Set("Retry-After", strconv.FormatInt(retryAfterSec, 10))
	}
	httperrors.Write(w, http.StatusTooManyRequests, httperrors.RateLimitError{
		Code:          "RATE_LIMITED",
		Message:       "too many requests",
		RetryAfterSec: retryAfterSec,
	})
}
