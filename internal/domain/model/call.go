package model

import "time"

type Call struct {
	ID        string    `json:"id"`
	UserID    int64     `json:"user_id"`
	Channel   string    `json:"channel"`
	CalleeID  int64     `json:"callee_id,omitempty"`
	StartedAt time.Time `json:"started_at"`
}
