package model

// TrialState is the per-device daily allotment for guest identities. It is
// stored JSON-serialized under a device-scoped key; LastCallAt is epoch
// milliseconds to match the client record layout, ResetAt is "YYYY-MM-DD" in
// the product reference timezone.
type TrialState struct {
	DeviceID           string `json:"deviceId"`
	FreeCallsRemaining int    `json:"freeCallsRemaining"`
	AiTrialsRemaining  int    `json:"aiTrialsRemaining"`
	ReactionsRemaining int    `json:"reactionsRemaining"`
	LastCallAt         *int64 `json:"lastCallAt"`
	ResetAt            string `json:"resetAt"`
	FreeCallsEnabled   bool   `json:"freeCallsEnabled"`
}
