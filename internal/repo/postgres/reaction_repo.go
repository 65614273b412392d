package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/PaulinaShao/Akilipesa-sub002/internal/domain/model"
)

type ReactionRepo struct {
	pool *pgxpool.Pool
}

func NewReactionRepo(pool *pgxpool.Pool) *ReactionRepo {
	return &ReactionRepo{pool: pool}
}

func (r *ReactionRepo) Create(ctx context.Context, reaction model.Reaction) (model.Reaction, error) {
	if reaction.UserID <= 0 {
		return model.Reaction{}, fmt.Errorf("invalid user id")
	}
	if reaction.TargetID == "" {
		return model.Reaction{}, fmt.Errorf("target id is required")
	}
	if r.pool == nil {
		reaction.ID = 1
		reaction.CreatedAt = time.Now().UTC()
		return reaction, nil
	}

	err := r.pool.QueryRow(ctx, `
INSERT INTO reactions (user_id, target_id, kind, created_at)
VALUES ($1, $2, $3, NOW())
RETURNING id, created_at
`, reaction.UserID, reaction.TargetID, string(reaction.Kind)).Scan(&reaction.ID, &reaction.CreatedAt)
	if err != nil {
		return model.Reaction{}, fmt.Errorf("create reaction: %w", err)
	}

	return reaction, nil
}

func (r *ReactionRepo) CountForUserSince(ctx context.Context, userID int64, since time.Time) (int64, error) {
	if r.pool == nil {
		return 0, nil
	}

	var count int64
	err := r.pool.QueryRow(ctx, `
SELECT COUNT(*)
FROM reactions
WHERE user_id = $1 AND created_at >= $2
`, userID, since).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count reactions: %w", err)
	}

	return count, nil
}

func (r *ReactionRepo) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	if r.pool == nil {
		return 0, nil
	}

	tag, err := r.pool.Exec(ctx, `DELETE FROM reactions WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("delete old reactions: %w", err)
	}

	return tag.RowsAffected(), nil
}
