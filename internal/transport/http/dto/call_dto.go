package dto

type StartCallRequest struct {
	CalleeID int64 `json:"callee_id,omitempty"`
}

type CallGrantResponse struct {
	CallID       string              `json:"call_id"`
	Channel      string              `json:"channel"`
	Token        string              `json:"token"`
	ExpiresInSec int64               `json:"expires_in_sec"`
	Trial        *TrialStateResponse `json:"trial,omitempty"`
}
