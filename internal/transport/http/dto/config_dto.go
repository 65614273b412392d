package dto

type ConfigTrialsResponse struct {
	FreeCallsEnabled bool   `json:"free_calls_enabled"`
	FreeCallsPerDay  int    `json:"free_calls_per_day"`
	AiTrialsPerDay   int    `json:"ai_trials_per_day"`
	ReactionsPerDay  int    `json:"reactions_per_day"`
	CallCooldownSec  int64  `json:"call_cooldown_sec"`
	ResetTimezone    string `json:"reset_timezone"`
}

type ConfigAntiAbuseResponse struct {
	ReactionMaxPerMin int   `json:"reaction_max_min"`
	ReactionMax10Sec  int   `json:"reaction_max_10s"`
	ChatMaxPerMin     int   `json:"chat_max_min"`
	CooldownStepsSec  []int `json:"cooldown_steps_sec"`
}

type ConfigUpsellResponse struct {
	SignInPrompt string `json:"sign_in_prompt"`
}

type ConfigResponse struct {
	Trials    ConfigTrialsResponse    `json:"trials"`
	AntiAbuse ConfigAntiAbuseResponse `json:"antiabuse"`
	Upsell    ConfigUpsellResponse    `json:"upsell"`
}
