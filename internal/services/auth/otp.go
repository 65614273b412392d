package auth

import (
	"context"
	"strings"
)

// OTPVerifier checks a one-time code for a phone number. Delivery (SMS) is an
// external concern; the service only consumes the verification result.
type OTPVerifier interface {
	Verify(ctx context.Context, phone, code string) (bool, error)
}

// StaticOTPVerifier accepts a single fixed code. Used for dev and test
// environments where no SMS provider is wired.
type StaticOTPVerifier struct {
	Code string
}

func (v StaticOTPVerifier) Verify(_ context.Context, _, code string) (bool, error) {
	if strings.TrimSpace(v.Code) == "" {
		return false, nil
	}
	return code == v.Code, nil
}
