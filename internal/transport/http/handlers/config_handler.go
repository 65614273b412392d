package handlers

import (
	"net/http"

	"github.com/PaulinaShao/Akilipesa-sub002/internal/config"
	"github.com/PaulinaShao/Akilipesa-sub002/internal/transport/http/dto"
	httperrors "github.com/PaulinaShao/Akilipesa-sub002/internal/transport/http/errors"
)

type ConfigHandler struct {
	remote config.RemoteConfig
}

func NewConfigHandler(remote config.RemoteConfig) *ConfigHandler {
	return &ConfigHandler{remote: remote}
}

func (h *ConfigHandler) Handle(w http.ResponseWriter, _ *http.Request) {
	httperrors.Write(w, http.StatusOK, dto.ConfigResponse{
		Trials: dto.ConfigTrialsResponse{
			FreeCallsEnabled: h.remote.Trials.FreeCallsEnabled,
			FreeCallsPerDay:  h.remote.Trials.FreeCallsPerDay,
			AiTrialsPerDay:   h.remote.Trials.AiTrialsPerDay,
			ReactionsPerDay:  h.remote.Trials.ReactionsPerDay,
			CallCooldownSec:  int64(h.remote.Trials.CallCooldown.Seconds()),
			ResetTimezone:    h.remote.Trials.ResetTimezone,
		},
		AntiAbuse: dto.ConfigAntiAbuseResponse{
			ReactionMaxPerMin: h.remote.AntiAbuse.ReactionMaxPerMin,
			ReactionMax10Sec:  h.remote.AntiAbuse.ReactionMax10Sec,
			ChatMaxPerMin:     h.remote.AntiAbuse.ChatMaxPerMin,
			CooldownStepsSec:  h.remote.AntiAbuse.CooldownStepsSec,
		},
		Upsell: dto.ConfigUpsellResponse{
			SignInPrompt: h.remote.Upsell.SignInPrompt,
		},
	})
}
