package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// HTTPOTPVerifier checks codes against an external verification provider.
type HTTPOTPVerifier struct {
	client   *http.Client
	endpoint string
	apiKey   string
}

func NewHTTPOTPVerifier(client *http.Client, endpoint, apiKey string) *HTTPOTPVerifier {
	return &HTTPOTPVerifier{
		client:   client,
		endpoint: strings.TrimRight(endpoint, "/"),
		apiKey:   apiKey,
	}
}

func (v *HTTPOTPVerifier) Verify(ctx context.Context, phone, code string) (bool, error) {
	if v.client == nil || v.endpoint == "" {
		return false, fmt.Errorf("otp verifier is not configured")
	}

	payload, err := json.Marshal(map[string]string{
		"phone": phone,
		"code":  code,
	})
	if err != nil {
		return false, fmt.Errorf("encode otp check: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.endpoint+"/check", bytes.NewReader(payload))
	if err != nil {
		return false, fmt.Errorf("build otp request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if v.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+v.apiKey)
	}

	resp, err := v.client.Do(req)
	if err != nil {
		return false, fmt.Errorf("call otp provider: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		var body struct {
			Approved bool `json:"approved"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			return false, fmt.Errorf("decode otp response: %w", err)
		}
		return body.Approved, nil
	case http.StatusNotFound, http.StatusUnprocessableEntity:
		return false, nil
	default:
		return false, fmt.Errorf("otp provider returned status %d", resp.StatusCode)
	}
}
