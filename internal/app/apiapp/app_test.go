package apiapp

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"

	"github.com/PaulinaShao/Akilipesa-sub002/internal/domain/enums"
	"github.com/PaulinaShao/Akilipesa-sub002/internal/domain/model"
	redrepo "github.com/PaulinaShao/Akilipesa-sub002/internal/repo/redis"
)

func newTestRedis(t *testing.T) *miniredis.Miniredis {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)
	return mr
}

func newTestSessionRepo(mr *miniredis.Miniredis) *redrepo.SessionRepo {
	return redrepo.NewSessionRepo(redrepo.NewClient(mr.Addr(), "", 0))
}

type staticUserStore struct{}

func (staticUserStore) EnsureGuest(_ context.Context, deviceID string) (model.User, error) {
	return model.User{
		ID:        1,
		DeviceID:  deviceID,
		Role:      enums.RoleGuest,
		Anonymous: true,
	}, nil
}

func (staticUserStore) EnsurePhoneUser(_ context.Context, phone, deviceID string) (model.User, error) {
	return model.User{
		ID:       2,
		DeviceID: deviceID,
		Phone:    phone,
		Role:     enums.RoleUser,
	}, nil
}
