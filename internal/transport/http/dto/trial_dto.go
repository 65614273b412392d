package dto

// TrialStateResponse mirrors the client-side trial record field for field.
type TrialStateResponse struct {
	FreeCallsRemaining int    `json:"freeCallsRemaining"`
	AiTrialsRemaining  int    `json:"aiTrialsRemaining"`
	ReactionsRemaining int    `json:"reactionsRemaining"`
	LastCallAt         *int64 `json:"lastCallAt"`
	ResetAt            string `json:"resetAt"`
	FreeCallsEnabled   bool   `json:"freeCallsEnabled"`
}
