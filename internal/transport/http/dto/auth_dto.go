package dto

type GuestAuthRequest struct {
	DeviceID string `json:"device_id,omitempty"`
}

type PhoneAuthRequest struct {
	Phone string `json:"phone"`
	Code  string `json:"code"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type AuthMeResponse struct {
	ID        int64  `json:"id"`
	Role      string `json:"role"`
	Anonymous bool   `json:"anonymous"`
}

type AuthTokensResponse struct {
	AccessToken  string         `json:"access_token"`
	RefreshToken string         `json:"refresh_token"`
	ExpiresInSec int64          `json:"expires_in_sec"`
	Me           AuthMeResponse `json:"me"`
}

type LogoutResponse struct {
	OK bool `json:"ok"`
}
