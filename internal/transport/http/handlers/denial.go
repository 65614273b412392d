package handlers

import (
	"net/http"
	"strconv"

	entsvc "github.com/PaulinaShao/Akilipesa-sub002/internal/services/entitlements"
	httperrors "github.com/PaulinaShao/Akilipesa-sub002/internal/transport/http/errors"
)

// writeGateDenial renders a gate rejection. Cooldowns are retryable and go
// out as 429 with a Retry-After header; an exhausted quota is 403 until the
// day rolls over.
func writeGateDenial(w http.ResponseWriter, decision entsvc.Decision, upsell string) {
	status := http.StatusForbidden
	message := "daily free allotment is used up"
	if decision.Reason == entsvc.ReasonCooldownActive {
		status = http.StatusTooManyRequests
		message = "call cooldown is active"
		if decision.RetryAfterSec > 0 {
			w.Header().Set("Retry-After", strconv.FormatInt(decision.RetryAfterSec, 10))
		}
	}

	httperrors.Write(w, status, httperrors.DenialError{
		Code:          "TRIAL_DENIED",
		Reason:        string(decision.Reason),
		Message:       message,
		RetryAfterSec: decision.RetryAfterSec,
		Upsell:        upsell,
	})
}
