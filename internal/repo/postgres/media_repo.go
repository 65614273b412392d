package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/PaulinaShao/Akilipesa-sub002/internal/services/media"
)

type MediaRepo struct {
	pool *pgxpool.Pool
}

func NewMediaRepo(pool *pgxpool.Pool) *MediaRepo {
	return &MediaRepo{pool: pool}
}

func (r *MediaRepo) CreateMedia(ctx context.Context, record media.Record) (media.Record, error) {
	if r.pool == nil {
		return record, nil
	}

	err := r.pool.QueryRow(ctx, `
INSERT INTO media (id, owner_id, object_key, content_type, size_bytes, created_at)
VALUES ($1, $2, $3, $4, $5, NOW())
RETURNING created_at
`, record.ID, record.OwnerID, record.ObjectKey, record.ContentType, record.Size).Scan(&record.CreatedAt)
	if err != nil {
		return media.Record{}, fmt.Errorf("create media: %w", err)
	}

	return record, nil
}

func (r *MediaRepo) GetMedia(ctx context.Context, id string) (media.Record, error) {
	if r.pool == nil {
		return media.Record{}, media.ErrMediaNotFound
	}

	var record media.Record
	err := r.pool.QueryRow(ctx, `
SELECT id, owner_id, object_key, content_type, size_bytes, created_at
FROM media
WHERE id = $1
`, id).Scan(&record.ID, &record.OwnerID, &record.ObjectKey, &record.ContentType, &record.Size, &record.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return media.Record{}, media.ErrMediaNotFound
		}
		return media.Record{}, fmt.Errorf("get media: %w", err)
	}

	return record, nil
}
