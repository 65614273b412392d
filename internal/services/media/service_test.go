package media

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"
)

type fakeStore struct {
	records   map[string]Record
	createErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{records: map[string]Record{}}
}

func (f *fakeStore) CreateMedia(_ context.Context, record Record) (Record, error) {
	if f.createErr != nil {
		return Record{}, f.createErr
	}
	f.records[record.ID] = record
	return record, nil
}

func (f *fakeStore) GetMedia(_ context.Context, id string) (Record, error) {
	record, ok := f.records[id]
	if !ok {
		return Record{}, ErrMediaNotFound
	}
	return record, nil
}

type fakeStorage struct {
	putCalls    int
	deleteCalls int
}

func (f *fakeStorage) EnsureBucket(_ context.Context) error {
	return nil
}

func (f *fakeStorage) PutObject(_ context.Context, _ string, _ io.Reader, _ int64, _ string) error {
	f.putCalls++
	return nil
}

func (f *fakeStorage) PresignGet(_ context.Context, key string, _ time.Duration) (string, error) {
	return "https://signed.local/" + key, nil
}

func (f *fakeStorage) Delete(_ context.Context, _ string) error {
	f.deleteCalls++
	return nil
}

func TestUploadStoresAndSigns(t *testing.T) {
	store := newFakeStore()
	storage := &fakeStorage{}
	svc := NewService(store, storage)

	uploaded, err := svc.Upload(context.Background(), 1, "clip.mp4", "video/mp4", strings.NewReader("abc"), 3)
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if uploaded.ID == "" {
		t.Fatal("expected media id")
	}
	if !strings.HasPrefix(uploaded.URL, "https://signed.local/users/1/media/") {
		t.Fatalf("unexpected signed url: %q", uploaded.URL)
	}
	if !strings.HasSuffix(uploaded.URL, ".mp4") {
		t.Fatalf("object key should keep the extension, got %q", uploaded.URL)
	}
	if storage.putCalls != 1 {
		t.Fatalf("put calls = %d, want 1", storage.putCalls)
	}

	fetched, err := svc.Get(context.Background(), uploaded.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if fetched.ContentType != "video/mp4" {
		t.Fatalf("content type = %q", fetched.ContentType)
	}
}

func TestUploadCleansUpOnRecordFailure(t *testing.T) {
	store := newFakeStore()
	store.createErr = errors.New("db down")
	storage := &fakeStorage{}
	svc := NewService(store, storage)

	if _, err := svc.Upload(context.Background(), 1, "clip.mp4", "video/mp4", strings.NewReader("abc"), 3); err == nil {
		t.Fatal("expected error from record creation")
	}
	if storage.deleteCalls != 1 {
		t.Fatalf("expected cleanup delete call, got %d", storage.deleteCalls)
	}
}

func TestUploadValidatesInput(t *testing.T) {
	svc := NewService(newFakeStore(), &fakeStorage{})
	ctx := context.Background()

	if _, err := svc.Upload(ctx, 0, "clip.mp4", "video/mp4", strings.NewReader("abc"), 3); !errors.Is(err, ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation for owner", err)
	}
	if _, err := svc.Upload(ctx, 1, "clip.mp4", "video/mp4", nil, 3); !errors.Is(err, ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation for body", err)
	}
	if _, err := svc.Upload(ctx, 1, "clip.mp4", "video/mp4", strings.NewReader("abc"), MaxUploadLen+1); !errors.Is(err, ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation for size", err)
	}
}

func TestGetUnknownMedia(t *testing.T) {
	svc := NewService(newFakeStore(), &fakeStorage{})

	if _, err := svc.Get(context.Background(), "missing"); !errors.Is(err, ErrMediaNotFound) {
		t.Fatalf("err = %v, want ErrMediaNotFound", err)
	}
}
