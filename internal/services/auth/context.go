package auth

import "context"

type identityContextKey string

const (
	identityKey identityContextKey = "auth_identity"
	deviceIDKey identityContextKey = "auth_device_id"
)

type Identity struct {
	UserID    int64
	SID       string
	Role      string
	DeviceID  string
	Anonymous bool
}

func WithIdentity(ctx context.Context, identity Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

func IdentityFromContext(ctx context.Context) (Identity, bool) {
	identity, ok := ctx.Value(identityKey).(Identity)
	return identity, ok
}

func WithDeviceID(ctx context.Context, deviceID string) context.Context {
	return context.WithValue(ctx, deviceIDKey, deviceID)
}

func DeviceIDFromContext(ctx context.Context) (string, bool) {
	deviceID, ok := ctx.Value(deviceIDKey).(string)
	return deviceID, ok
}
