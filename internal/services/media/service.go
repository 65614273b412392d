package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrValidation    = errors.New("validation error")
	ErrMediaNotFound = errors.New("media not found")
)

const (
	signedURLTTL = 15 * time.Minute
	MaxUploadLen = 64 << 20
)

type Record struct {
	ID          string
	OwnerID     int64
	ObjectKey   string
	ContentType string
	Size        int64
	CreatedAt   time.Time
}

type Store interface {
	CreateMedia(ctx context.Context, record Record) (Record, error)
	GetMedia(ctx context.Context, id string) (Record, error)
}

type ObjectStorage interface {
	EnsureBucket(ctx context.Context) error
	PutObject(ctx context.Context, key string, body io.Reader, size int64, contentType string) error
	PresignGet(ctx context.Context, key string, ttl time.Duration) (string, error)
	Delete(ctx context.Context, key string) error
}

type Service struct {
	store   Store
	storage ObjectStorage
	now     func() time.Time
}

// Media is the client-facing view; URL is a short-lived presigned link.
type Media struct {
	ID          string    `json:"id"`
	URL         string    `json:"url"`
	ContentType string    `json:"content_type"`
	CreatedAt   time.Time `json:"created_at"`
}

func NewService(store Store, storage ObjectStorage) *Service {
	return &Service{
		store:   store,
		storage: storage,
		now:     time.Now,
	}
}

func (s *Service) Upload(ctx context.Context, ownerID int64, fileName, contentType string, body io.Reader, size int64) (Media, error) {
	if ownerID <= 0 || body == nil || size <= 0 {
		return Media{}, ErrValidation
	}
	if size > MaxUploadLen {
		return Media{}, fmt.Errorf("%w: upload too large", ErrValidation)
	}
	if s.store == nil || s.storage == nil {
		return Media{}, fmt.Errorf("media dependencies are not configured")
	}

	if err := s.storage.EnsureBucket(ctx); err != nil {
		return Media{}, fmt.Errorf("ensure bucket: %w", err)
	}

	id := uuid.NewString()
	objectKey := buildObjectKey(ownerID, id, fileName)

	if strings.TrimSpace(contentType) == "" {
		contentType = "application/octet-stream"
	}

	if err := s.storage.PutObject(ctx, objectKey, body, size, contentType); err != nil {
		return Media{}, fmt.Errorf("put object: %w", err)
	}

	record, err := s.store.CreateMedia(ctx, Record{
		ID:          id,
		OwnerID:     ownerID,
		ObjectKey:   objectKey,
		ContentType: contentType,
		Size:        size,
		CreatedAt:   s.now().UTC(),
	})
	if err != nil {
		_ = s.storage.Delete(ctx, objectKey)
		return Media{}, fmt.Errorf("create media record: %w", err)
	}

	url, err := s.storage.PresignGet(ctx, record.ObjectKey, signedURLTTL)
	if err != nil {
		return Media{}, fmt.Errorf("presign media url: %w", err)
	}

	return Media{
		ID:          record.ID,
		URL:         url,
		ContentType: record.ContentType,
		CreatedAt:   record.CreatedAt,
	}, nil
}

func (s *Service) Get(ctx context.Context, id string) (Media, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Media{}, ErrValidation
	}
	if s.store == nil || s.storage == nil {
		return Media{}, fmt.Errorf("media dependencies are not configured")
	}

	record, err := s.store.GetMedia(ctx, id)
	if err != nil {
		if errors.Is(err, ErrMediaNotFound) {
			return Media{}, ErrMediaNotFound
		}
		return Media{}, fmt.Errorf("get media record: %w", err)
	}

	url, err := s.storage.PresignGet(ctx, record.ObjectKey, signedURLTTL)
	if err != nil {
		return Media{}, fmt.Errorf("presign media url: %w", err)
	}

	return Media{
		ID:          record.ID,
		URL:         url,
		ContentType: record.ContentType,
		CreatedAt:   record.CreatedAt,
	}, nil
}

func buildObjectKey(ownerID int64, id, fileName string) string {
	ext := strings.ToLower(path.Ext(strings.TrimSpace(fileName)))
	if ext == "" {
		ext = ".bin"
	}
	return fmt.Sprintf("users/%d/media/%s%s", ownerID, id, ext)
}
