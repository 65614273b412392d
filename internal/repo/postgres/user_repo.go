package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/PaulinaShao/Akilipesa-sub002/internal/domain/enums"
	"github.com/PaulinaShao/Akilipesa-sub002/internal/domain/model"
)

var ErrUserNotFound = errors.New("user not found")

type UserRepo struct {
	pool *pgxpool.Pool
}

func NewUserRepo(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

// EnsureGuest upserts the anonymous user row for a device. Without a pool the
// repo degrades to a synthetic row so auth keeps working in dev.
func (r *UserRepo) EnsureGuest(ctx context.Context, deviceID string) (model.User, error) {
	deviceID = strings.TrimSpace(deviceID)
	if deviceID == "" {
		return model.User{}, fmt.Errorf("device id is required")
	}
	if r.pool == nil {
		return model.User{
			ID:        1,
			DeviceID:  deviceID,
			Role:      enums.RoleGuest,
			Anonymous: true,
		}, nil
	}

	var user model.User
	var role string
	err := r.pool.QueryRow(ctx, `
INSERT INTO users (device_id, username, role, anonymous, created_at, updated_at)
VALUES ($1, '', 'GUEST', TRUE, NOW(), NOW())
ON CONFLICT (device_id) DO UPDATE SET
	updated_at = NOW()
RETURNING id, device_id, username, role, anonymous
`, deviceID).Scan(&user.ID, &user.DeviceID, &user.Username, &role, &user.Anonymous)
	if err != nil {
		return model.User{}, fmt.Errorf("ensure guest user: %w", err)
	}
	user.Role = enums.Role(role)
	if user.Role == "" {
		user.Role = enums.RoleGuest
	}

	return user, nil
}

// EnsurePhoneUser upserts a real user row for a verified phone number and
// binds the current device to it.
func (r *UserRepo) EnsurePhoneUser(ctx context.Context, phone, deviceID string) (model.User, error) {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return model.User{}, fmt.Errorf("phone is required")
	}
	if r.pool == nil {
		return model.User{
			ID:       1,
			DeviceID: deviceID,
			Phone:    phone,
			Role:     enums.RoleUser,
		}, nil
	}

	var user model.User
	var role string
	err := r.pool.QueryRow(ctx, `
INSERT INTO users (phone, device_id, username, role, anonymous, created_at, updated_at)
VALUES ($1, $2, '', 'USER', FALSE, NOW(), NOW())
ON CONFLICT (phone) DO UPDATE SET
	device_id = EXCLUDED.device_id,
	role = CASE WHEN users.role = 'GUEST' THEN 'USER' ELSE users.role END,
	anonymous = FALSE,
	updated_at = NOW()
RETURNING id, device_id, phone, username, role, anonymous
`, phone, deviceID).Scan(&user.ID, &user.DeviceID, &user.Phone, &user.Username, &role, &user.Anonymous)
	if err != nil {
		return model.User{}, fmt.Errorf("ensure phone user: %w", err)
	}
	user.Role = enums.Role(role)
	if user.Role == "" {
		user.Role = enums.RoleUser
	}

	return user, nil
}

func (r *UserRepo) GetByID(ctx context.Context, userID int64) (model.User, error) {
	if r.pool == nil {
		return model.User{}, fmt.Errorf("postgres pool is nil")
	}
	if userID <= 0 {
		return model.User{}, fmt.Errorf("invalid user id")
	}

	var user model.User
	var role string
	err := r.pool.QueryRow(ctx, `
SELECT id, device_id, COALESCE(phone, ''), username, role, anonymous, created_at, updated_at
FROM users
WHERE id = $1
`, userID).Scan(&user.ID, &user.DeviceID, &user.Phone, &user.Username, &role, &user.Anonymous, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, ErrUserNotFound
		}
		return model.User{}, fmt.Errorf("get user by id: %w", err)
	}
	user.Role = enums.Role(role)

	return user, nil
}
