package dto

type ReactionRequest struct {
	TargetID string `json:"target_id"`
	Kind     string `json:"kind"`
}

type ReactionResponse struct {
	ID    int64               `json:"id"`
	Trial *TrialStateResponse `json:"trial,omitempty"`
}
