package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/PaulinaShao/Akilipesa-sub002/internal/domain/model"
)

type CallRepo struct {
	pool *pgxpool.Pool
}

func NewCallRepo(pool *pgxpool.Pool) *CallRepo {
	return &CallRepo{pool: pool}
}

func (r *CallRepo) Create(ctx context.Context, call model.Call) (model.Call, error) {
	if call.ID == "" {
		return model.Call{}, fmt.Errorf("call id is required")
	}
	if call.UserID <= 0 {
		return model.Call{}, fmt.Errorf("invalid user id")
	}
	if r.pool == nil {
		call.StartedAt = time.Now().UTC()
		return call, nil
	}

	err := r.pool.QueryRow(ctx, `
INSERT INTO calls (id, user_id, channel, callee_id, started_at)
VALUES ($1, $2, $3, NULLIF($4, 0), NOW())
RETURNING started_at
`, call.ID, call.UserID, call.Channel, call.CalleeID).Scan(&call.StartedAt)
	if err != nil {
		return model.Call{}, fmt.Errorf("create call: %w", err)
	}

	return call, nil
}

func (r *CallRepo) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	if r.pool == nil {
		return 0, nil
	}

	tag, err := r.pool.Exec(ctx, `DELETE FROM calls WHERE started_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("delete old calls: %w", err)
	}

	return tag.RowsAffected(), nil
}
