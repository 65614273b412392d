package model

import (
	"time"

	"github.com/PaulinaShao/Akilipesa-sub002/internal/domain/enums"
)

type User struct {
	ID        int64      `json:"id"`
	DeviceID  string     `json:"device_id"`
	Phone     string     `json:"phone,omitempty"`
	Username  string     `json:"username"`
	Role      enums.Role `json:"role"`
	Anonymous bool       `json:"anonymous"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}
