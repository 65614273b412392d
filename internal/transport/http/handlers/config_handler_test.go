package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/PaulinaShao/Akilipesa-sub002/internal/config"
)

func TestConfigHandlerResponseShape(t *testing.T) {
	remote := config.Default().Remote
	h := NewConfigHandler(remote)

	req := httptest.NewRequest(http.MethodGet, "/v1/config", nil)
	rr := httptest.NewRecorder()
	h.Handle(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("unexpected status: got %d want %d", rr.Code, http.StatusOK)
	}

	var raw map[string]interface{}
	if err := json.Unmarshal(rr.Body.Bytes(), &raw); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	requireObjectKey(t, raw, "trials")
	requireObjectKey(t, raw, "antiabuse")
	requireObjectKey(t, raw, "upsell")

	trials := raw["trials"].(map[string]interface{})
	if trials["free_calls_enabled"].(bool) != true {
		t.Fatalf("unexpected trials.free_calls_enabled: %v", trials["free_calls_enabled"])
	}
	if int(trials["free_calls_per_day"].(float64)) != 1 {
		t.Fatalf("unexpected trials.free_calls_per_day: %v", trials["free_calls_per_day"])
	}
	if int(trials["ai_trials_per_day"].(float64)) != 2 {
		t.Fatalf("unexpected trials.ai_trials_per_day: %v", trials["ai_trials_per_day"])
	}
	if int(trials["reactions_per_day"].(float64)) != 5 {
		t.Fatalf("unexpected trials.reactions_per_day: %v", trials["reactions_per_day"])
	}
	if int(trials["call_cooldown_sec"].(float64)) != 600 {
		t.Fatalf("unexpected trials.call_cooldown_sec: %v", trials["call_cooldown_sec"])
	}
	if trials["reset_timezone"].(string) != "Africa/Nairobi" {
		t.Fatalf("unexpected trials.reset_timezone: %v", trials["reset_timezone"])
	}

	antiabuse := raw["antiabuse"].(map[string]interface{})
	if int(antiabuse["reaction_max_min"].(float64)) <= 0 {
		t.Fatalf("unexpected antiabuse.reaction_max_min: %v", antiabuse["reaction_max_min"])
	}
	steps := antiabuse["cooldown_steps_sec"].([]interface{})
	if len(steps) == 0 {
		t.Fatalf("unexpected antiabuse.cooldown_steps_sec: %v", antiabuse["cooldown_steps_sec"])
	}

	upsell := raw["upsell"].(map[string]interface{})
	if upsell["sign_in_prompt"].(string) == "" {
		t.Fatal("upsell.sign_in_prompt must be set")
	}
}

func requireObjectKey(t *testing.T, m map[string]interface{}, key string) {
	t.Helper()
	if _, ok := m[key]; !ok {
		t.Fatalf("missing key %q", key)
	}
}
