package reactions

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/PaulinaShao/Akilipesa-sub002/internal/domain/enums"
	"github.com/PaulinaShao/Akilipesa-sub002/internal/domain/model"
	"github.com/PaulinaShao/Akilipesa-sub002/internal/services/rate"
)

var (
	ErrValidation  = errors.New("validation error")
	ErrRateLimited = errors.New("rate limited")
)

type ReactionStore interface {
	Create(ctx context.Context, reaction model.Reaction) (model.Reaction, error)
}

type Service struct {
	store   ReactionStore
	limiter *rate.Limiter
}

// NewService wires the reaction writer. The limiter is optional and guards
// against burst abuse on top of the per-day quota.
func NewService(store ReactionStore, limiter *rate.Limiter) *Service {
	return &Service{store: store, limiter: limiter}
}

func (s *Service) React(ctx context.Context, userID int64, targetID string, kind enums.ReactionKind) (model.Reaction, error) {
	targetID = strings.TrimSpace(targetID)
	if userID <= 0 {
		return model.Reaction{}, fmt.Errorf("%w: invalid user id", ErrValidation)
	}
	if targetID == "" {
		return model.Reaction{}, fmt.Errorf("%w: target id is required", ErrValidation)
	}
	if !validKind(kind) {
		return model.Reaction{}, fmt.Errorf("%w: unknown reaction kind %q", ErrValidation, kind)
	}
	if s.store == nil {
		return model.Reaction{}, fmt.Errorf("reaction store is not configured")
	}

	if s.limiter != nil {
		retryAfter, allowed, err := s.limiter.Allow(ctx, rate.SubjectForUser(userID))
		if err != nil {
			return model.Reaction{}, fmt.Errorf("check reaction rate: %w", err)
		}
		if !allowed {
			return model.Reaction{}, fmt.Errorf("%w: retry after %ds", ErrRateLimited, retryAfter)
		}
	}

	reaction, err := s.store.Create(ctx, model.Reaction{
		UserID:   userID,
		TargetID: targetID,
		Kind:     kind,
	})
	if err != nil {
		return model.Reaction{}, fmt.Errorf("create reaction: %w", err)
	}

	return reaction, nil
}

func validKind(kind enums.ReactionKind) bool {
	switch kind {
	case enums.ReactionKindLike, enums.ReactionKindComment, enums.ReactionKindSave, enums.ReactionKindFollow:
		return true
	default:
		return false
	}
}
