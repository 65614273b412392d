package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/PaulinaShao/Akilipesa-sub002/internal/domain/enums"
	"github.com/PaulinaShao/Akilipesa-sub002/internal/domain/model"
	"github.com/PaulinaShao/Akilipesa-sub002/internal/pkg/validate"
)

const (
	MinRefreshTTL = 30 * 24 * time.Hour
	MaxRefreshTTL = 90 * 24 * time.Hour
)

type SessionStore interface {
	Create(ctx context.Context, session SessionRecord, refreshToken string) error
	GetSession(ctx context.Context, sid string) (SessionRecord, error)
	GetByRefreshToken(ctx context.Context, refreshToken string) (SessionRecord, error)
	RotateRefresh(ctx context.Context, sid, oldRefreshToken, newRefreshToken string, expiresAt time.Time) error
	DeleteSession(ctx context.Context, sid string) error
	DeleteAllForUser(ctx context.Context, userID int64) error
}

// UserStore creates or resolves user rows lazily on login. A guest row is
// keyed by device; a phone login upgrades the identity to a real user.
type UserStore interface {
	EnsureGuest(ctx context.Context, deviceID string) (model.User, error)
	EnsurePhoneUser(ctx context.Context, phone, deviceID string) (model.User, error)
}

type Service struct {
	jwt        *JWTManager
	sessions   SessionStore
	users      UserStore
	otp        OTPVerifier
	refreshTTL time.Duration
	now        func() time.Time
}

func NewService(jwtManager *JWTManager, sessions SessionStore, users UserStore, refreshTTL time.Duration) *Service {
	if refreshTTL < MinRefreshTTL {
		refreshTTL = MinRefreshTTL
	}
	if refreshTTL > MaxRefreshTTL {
		refreshTTL = MaxRefreshTTL
	}

	return &Service{
		jwt:        jwtManager,
		sessions:   sessions,
		users:      users,
		refreshTTL: refreshTTL,
		now:        time.Now,
	}
}

func (s *Service) AttachOTP(verifier OTPVerifier) {
	s.otp = verifier
}

// LoginGuest issues an anonymous identity bound to a device. The guest's
// quota trail is keyed by the same device id.
func (s *Service) LoginGuest(ctx context.Context, deviceID string) (AuthResult, error) {
	deviceID = strings.TrimSpace(deviceID)
	if deviceID == "" {
		return AuthResult{}, ErrInvalidInput
	}
	if s.users == nil {
		return AuthResult{}, fmt.Errorf("user store is not configured")
	}

	user, err := s.users.EnsureGuest(ctx, deviceID)
	if err != nil {
		return AuthResult{}, fmt.Errorf("ensure guest user: %w", err)
	}

	return s.issueForUser(ctx, user.ID, deviceID, string(enums.RoleGuest), true)
}

// LoginPhone verifies the one-time code and issues a real (non-anonymous)
// identity.
func (s *Service) LoginPhone(ctx context.Context, phone, code, deviceID string) (AuthResult, error) {
	phone = strings.TrimSpace(phone)
	deviceID = strings.TrimSpace(deviceID)
	if !validate.Phone(phone) || strings.TrimSpace(code) == "" || deviceID == "" {
		return AuthResult{}, ErrInvalidInput
	}
	if s.users == nil {
		return AuthResult{}, fmt.Errorf("user store is not configured")
	}
	if s.otp == nil {
		return AuthResult{}, fmt.Errorf("otp verifier is not configured")
	}

	ok, err := s.otp.Verify(ctx, phone, code)
	if err != nil {
		return AuthResult{}, fmt.Errorf("verify otp: %w", err)
	}
	if !ok {
		return AuthResult{}, ErrOTPRejected
	}

	user, err := s.users.EnsurePhoneUser(ctx, phone, deviceID)
	if err != nil {
		return AuthResult{}, fmt.Errorf("ensure phone user: %w", err)
	}

	return s.issueForUser(ctx, user.ID, deviceID, string(enums.RoleUser), false)
}

func (s *Service) Refresh(ctx context.Context, refreshToken string) (AuthResult, error) {
	if strings.TrimSpace(refreshToken) == "" {
		return AuthResult{}, ErrInvalidInput
	}

	session, err := s.sessions.GetByRefreshToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, ErrRefreshNotFound) {
			return AuthResult{}, ErrUnauthorized
		}
		return AuthResult{}, fmt.Errorf("get refresh token session: %w", err)
	}
	if s.now().After(session.ExpiresAt) {
		return AuthResult{}, ErrUnauthorized
	}

	newRefreshToken, err := NewRefreshToken()
	if err != nil {
		return AuthResult{}, fmt.Errorf("generate refresh token: %w", err)
	}

	newExpiresAt := s.now().Add(s.refreshTTL)
	if err := s.sessions.RotateRefresh(ctx, session.SID, refreshToken, newRefreshToken, newExpiresAt); err != nil {
		if errors.Is(err, ErrRefreshNotFound) {
			return AuthResult{}, ErrUnauthorized
		}
		return AuthResult{}, fmt.Errorf("rotate refresh token: %w", err)
	}

	session.ExpiresAt = newExpiresAt
	accessToken, accessExpires, err := s.jwt.GenerateAccessToken(session)
	if err != nil {
		return AuthResult{}, fmt.Errorf("generate access token: %w", err)
	}

	return AuthResult{
		AccessToken:   accessToken,
		RefreshToken:  newRefreshToken,
		AccessExpires: accessExpires,
		Me: Me{
			ID:        session.UserID,
			Role:      session.Role,
			Anonymous: session.Anonymous,
		},
	}, nil
}

func (s *Service) Logout(ctx context.Context, sid string) error {
	if strings.TrimSpace(sid) == "" {
		return ErrInvalidInput
	}
	if err := s.sessions.DeleteSession(ctx, sid); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (s *Service) LogoutAll(ctx context.Context, userID int64) error {
	if userID <= 0 {
		return ErrInvalidInput
	}
	if err := s.sessions.DeleteAllForUser(ctx, userID); err != nil {
		return fmt.Errorf("delete all sessions: %w", err)
	}
	return nil
}

func (s *Service) ValidateAccessToken(ctx context.Context, accessToken string) (AccessClaims, error) {
	claims, err := s.jwt.ParseAccessToken(accessToken)
	if err != nil {
		return AccessClaims{}, ErrUnauthorized
	}

	session, err := s.sessions.GetSession(ctx, claims.SID)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return AccessClaims{}, ErrUnauthorized
		}
		return AccessClaims{}, fmt.Errorf("get session: %w", err)
	}

	if session.UserID != claims.UserID || session.Role != claims.Role {
		return AccessClaims{}, ErrUnauthorized
	}
	if s.now().After(session.ExpiresAt) {
		return AccessClaims{}, ErrUnauthorized
	}

	return claims, nil
}

func (s *Service) issueForUser(ctx context.Context, userID int64, deviceID, role string, anonymous bool) (AuthResult, error) {
	sessionID, err := NewSessionID()
	if err != nil {
		return AuthResult{}, fmt.Errorf("generate session id: %w", err)
	}
	refreshToken, err := NewRefreshToken()
	if err != nil {
		return AuthResult{}, fmt.Errorf("generate refresh token: %w", err)
	}

	session := SessionRecord{
		SID:       sessionID,
		UserID:    userID,
		DeviceID:  deviceID,
		Role:      role,
		Anonymous: anonymous,
		ExpiresAt: s.now().Add(s.refreshTTL),
	}
	if err := s.sessions.Create(ctx, session, refreshToken); err != nil {
		return AuthResult{}, fmt.Errorf("create session: %w", err)
	}

	accessToken, accessExpires, err := s.jwt.GenerateAccessToken(session)
	if err != nil {
		return AuthResult{}, fmt.Errorf("generate access token: %w", err)
	}

	return AuthResult{
		AccessToken:   accessToken,
		RefreshToken:  refreshToken,
		AccessExpires: accessExpires,
		Me: Me{
			ID:        userID,
			Role:      role,
			Anonymous: anonymous,
		},
	}, nil
}
