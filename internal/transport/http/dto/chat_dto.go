package dto

type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatRequest struct {
	Prompt  string        `json:"prompt"`
	History []ChatMessage `json:"history,omitempty"`
}

type ChatResponse struct {
	Reply string              `json:"reply"`
	Trial *TrialStateResponse `json:"trial,omitempty"`
}
