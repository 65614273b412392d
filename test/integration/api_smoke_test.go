package integration_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"go.uber.org/zap"

	"github.com/PaulinaShao/Akilipesa-sub002/internal/app/apiapp"
	"github.com/PaulinaShao/Akilipesa-sub002/internal/config"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	cfg := config.Default()
	cfg.HTTP.Addr = ":0"
	cfg.Postgres.DSN = ""
	cfg.Redis.Addr = mr.Addr()

	app, err := apiapp.New(context.Background(), cfg, zap.NewNop())
	if err != nil {
		t.Fatalf("create app: %v", err)
	}

	ts := httptest.NewServer(app.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func TestHealthz(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatalf("get healthz: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status: got %d want %d", resp.StatusCode, http.StatusOK)
	}

	var payload struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.Status != "ok" {
		t.Fatalf("unexpected payload: %+v", payload)
	}
}

func TestGuestLoginAndTrialSnapshot(t *testing.T) {
	ts := newTestServer(t)
	client := ts.Client()

	loginReq, err := http.NewRequest(http.MethodPost, ts.URL+"/v1/auth/guest", bytes.NewReader([]byte(`{"device_id":"smoke-device-1"}`)))
	if err != nil {
		t.Fatalf("build login request: %v", err)
	}
	loginReq.Header.Set("Content-Type", "application/json")

	loginResp, err := client.Do(loginReq)
	if err != nil {
		t.Fatalf("guest login: %v", err)
	}
	defer loginResp.Body.Close()

	if loginResp.StatusCode != http.StatusOK {
		t.Fatalf("guest login status: got %d want %d", loginResp.StatusCode, http.StatusOK)
	}

	var tokens struct {
		AccessToken string `json:"access_token"`
		Me          struct {
			Anonymous bool `json:"anonymous"`
		} `json:"me"`
	}
	if err := json.NewDecoder(loginResp.Body).Decode(&tokens); err != nil {
		t.Fatalf("decode login response: %v", err)
	}
	if tokens.AccessToken == "" {
		t.Fatal("access token missing")
	}
	if !tokens.Me.Anonymous {
		t.Fatal("guest login must be anonymous")
	}

	trialsReq, err := http.NewRequest(http.MethodGet, ts.URL+"/v1/trials", nil)
	if err != nil {
		t.Fatalf("build trials request: %v", err)
	}
	trialsReq.Header.Set("Authorization", "Bearer "+tokens.AccessToken)

	trialsResp, err := client.Do(trialsReq)
	if err != nil {
		t.Fatalf("get trials: %v", err)
	}
	defer trialsResp.Body.Close()

	if trialsResp.StatusCode != http.StatusOK {
		t.Fatalf("trials status: got %d want %d", trialsResp.StatusCode, http.StatusOK)
	}

	var trial struct {
		FreeCallsRemaining int    `json:"freeCallsRemaining"`
		AiTrialsRemaining  int    `json:"aiTrialsRemaining"`
		ReactionsRemaining int    `json:"reactionsRemaining"`
		ResetAt            string `json:"resetAt"`
	}
	if err := json.NewDecoder(trialsResp.Body).Decode(&trial); err != nil {
		t.Fatalf("decode trials response: %v", err)
	}
	if trial.FreeCallsRemaining != 1 || trial.AiTrialsRemaining != 2 || trial.ReactionsRemaining != 5 {
		t.Fatalf("unexpected default allotment: %+v", trial)
	}
	if trial.ResetAt == "" {
		t.Fatal("resetAt missing")
	}
}

func TestConfigEndpoint(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/v1/config")
	if err != nil {
		t.Fatalf("get config: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status: got %d want %d", resp.StatusCode, http.StatusOK)
	}

	var payload struct {
		Trials struct {
			ResetTimezone string `json:"reset_timezone"`
		} `json:"trials"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.Trials.ResetTimezone != "Africa/Nairobi" {
		t.Fatalf("unexpected reset timezone: %q", payload.Trials.ResetTimezone)
	}
}
