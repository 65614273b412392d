package model

import (
	"time"

	"github.com/PaulinaShao/Akilipesa-sub002/internal/domain/enums"
)

type Reaction struct {
	ID        int64              `json:"id"`
	UserID    int64              `json:"user_id"`
	TargetID  string             `json:"target_id"`
	Kind      enums.ReactionKind `json:"kind"`
	CreatedAt time.Time          `json:"created_at"`
}
