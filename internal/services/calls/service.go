package calls

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/PaulinaShao/Akilipesa-sub002/internal/domain/model"
)

var ErrValidation = errors.New("validation error")

// CallStore records started calls. A nil store is allowed; token minting
// still works without persistence.
type CallStore interface {
	Create(ctx context.Context, call model.Call) (model.Call, error)
}

type Config struct {
	AppID       string
	TokenSecret string
	TokenTTL    time.Duration
}

// Grant is everything a client needs to join an RTC channel.
type Grant struct {
	CallID    string    `json:"call_id"`
	Channel   string    `json:"channel"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

type Service struct {
	store CallStore
	cfg   Config
	now   func() time.Time
}

func NewService(store CallStore, cfg Config) *Service {
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = 2 * time.Hour
	}

	return &Service{
		store: store,
		cfg:   cfg,
		now:   time.Now,
	}
}

// Start mints an RTC grant for the caller and records the call. CalleeID is
// zero for calls into the public lobby.
func (s *Service) Start(ctx context.Context, userID, calleeID int64) (Grant, error) {
	if userID <= 0 {
		return Grant{}, fmt.Errorf("%w: invalid user id", ErrValidation)
	}
	if s.cfg.TokenSecret == "" {
		return Grant{}, fmt.Errorf("rtc token secret is not configured")
	}

	callID := uuid.NewString()
	channel := "call-" + callID

	token, expiresAt, err := s.mintToken(channel, userID)
	if err != nil {
		return Grant{}, fmt.Errorf("mint rtc token: %w", err)
	}

	if s.store != nil {
		_, err := s.store.Create(ctx, model.Call{
			ID:       callID,
			UserID:   userID,
			Channel:  channel,
			CalleeID: calleeID,
		})
		if err != nil {
			return Grant{}, fmt.Errorf("record call: %w", err)
		}
	}

	return Grant{
		CallID:    callID,
		Channel:   channel,
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

type rtcClaims struct {
	AppID   string `json:"app"`
	Channel string `json:"chn"`
	UserID  int64  `json:"uid"`
	jwt.RegisteredClaims
}

func (s *Service) mintToken(channel string, userID int64) (string, time.Time, error) {
	if strings.TrimSpace(channel) == "" {
		return "", time.Time{}, fmt.Errorf("channel is required")
	}

	now := s.now().UTC()
	expiresAt := now.Add(s.cfg.TokenTTL)
	claims := rtcClaims{
		AppID:   s.cfg.AppID,
		Channel: channel,
		UserID:  userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.TokenSecret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign rtc token: %w", err)
	}

	return signed, expiresAt, nil
}
