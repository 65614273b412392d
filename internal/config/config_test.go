package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadUsesDefaultsAndYAMLOverrides(t *testing.T) {
	clearConfigEnv(t)

	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.yaml")
	yaml := `
remote:
  trials:
    free_calls_enabled: false
    ai_trials_per_day: 4
    call_cooldown: 20m
    reset_timezone: UTC
  antiabuse:
    reaction_max_min: 66
    chat_max_min: 3
  upsell:
    sign_in_prompt: "Join AkiliPesa"
`
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatalf("write temp config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	if cfg.Remote.Trials.FreeCallsEnabled {
		t.Fatalf("free_calls_enabled override should be false")
	}
	if cfg.Remote.Trials.AiTrialsPerDay != 4 {
		t.Fatalf("unexpected ai trials/day: %d", cfg.Remote.Trials.AiTrialsPerDay)
	}
	if cfg.Remote.Trials.CallCooldown.String() != "20m0s" {
		t.Fatalf("unexpected call cooldown: %s", cfg.Remote.Trials.CallCooldown)
	}
	if cfg.Remote.Trials.ResetTimezone != "UTC" {
		t.Fatalf("unexpected reset timezone: %s", cfg.Remote.Trials.ResetTimezone)
	}
	if cfg.Remote.AntiAbuse.ReactionMaxPerMin != 66 {
		t.Fatalf("unexpected antiabuse reaction_max_min: %d", cfg.Remote.AntiAbuse.ReactionMaxPerMin)
	}
	if cfg.Remote.AntiAbuse.ChatMaxPerMin != 3 {
		t.Fatalf("unexpected antiabuse chat_max_min: %d", cfg.Remote.AntiAbuse.ChatMaxPerMin)
	}
	if cfg.Remote.Upsell.SignInPrompt != "Join AkiliPesa" {
		t.Fatalf("unexpected upsell prompt: %s", cfg.Remote.Upsell.SignInPrompt)
	}

	if cfg.Remote.Trials.ReactionsPerDay != 5 {
		t.Fatalf("reactions_per_day default should stay 5, got %d", cfg.Remote.Trials.ReactionsPerDay)
	}
	if cfg.Remote.AntiAbuse.ReactionMax10Sec != 8 {
		t.Fatalf("antiabuse reaction_max_10s default should stay 8")
	}
}

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	clearConfigEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("load config with missing file: %v", err)
	}

	if !cfg.Remote.Trials.FreeCallsEnabled {
		t.Fatalf("free_calls_enabled should default to true")
	}
	if cfg.Remote.Trials.FreeCallsPerDay != 1 {
		t.Fatalf("unexpected default free calls/day: %d", cfg.Remote.Trials.FreeCallsPerDay)
	}
	if cfg.Remote.Trials.AiTrialsPerDay != 2 {
		t.Fatalf("unexpected default ai trials/day: %d", cfg.Remote.Trials.AiTrialsPerDay)
	}
	if cfg.Remote.Trials.ReactionsPerDay != 5 {
		t.Fatalf("unexpected default reactions/day: %d", cfg.Remote.Trials.ReactionsPerDay)
	}
	if cfg.Remote.Trials.CallCooldown.String() != "10m0s" {
		t.Fatalf("unexpected default call cooldown: %s", cfg.Remote.Trials.CallCooldown)
	}
	if cfg.Remote.Trials.ResetTimezone != "Africa/Nairobi" {
		t.Fatalf("unexpected default reset timezone: %s", cfg.Remote.Trials.ResetTimezone)
	}
	if len(cfg.Remote.AntiAbuse.CooldownStepsSec) != 4 {
		t.Fatalf("unexpected antiabuse cooldown steps length: %d", len(cfg.Remote.AntiAbuse.CooldownStepsSec))
	}
}

func TestLoadEnvOverridesWin(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("TRIALS_FREE_CALLS_ENABLED", "false")
	t.Setenv("TRIALS_CALL_COOLDOWN", "5m")
	t.Setenv("REDIS_ADDR", "redis:6400")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	if cfg.Remote.Trials.FreeCallsEnabled {
		t.Fatalf("env override for free_calls_enabled should win")
	}
	if cfg.Remote.Trials.CallCooldown.String() != "5m0s" {
		t.Fatalf("unexpected call cooldown: %s", cfg.Remote.Trials.CallCooldown)
	}
	if cfg.Redis.Addr != "redis:6400" {
		t.Fatalf("unexpected redis addr: %s", cfg.Redis.Addr)
	}
}

func clearConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"APP_ENV",
		"HTTP_ADDR",
		"HTTP_READ_TIMEOUT",
		"HTTP_WRITE_TIMEOUT",
		"HTTP_IDLE_TIMEOUT",
		"LOG_LEVEL",
		"POSTGRES_DSN",
		"REDIS_ADDR",
		"REDIS_PASSWORD",
		"REDIS_DB",
		"S3_ENDPOINT",
		"S3_ACCESS_KEY",
		"S3_SECRET_KEY",
		"S3_BUCKET",
		"S3_USE_SSL",
		"JWT_SECRET",
		"JWT_ACCESS_TTL",
		"REFRESH_TTL",
		"AUTH_DEV_OTP_CODE",
		"AUTH_OTP_ENDPOINT",
		"AUTH_OTP_API_KEY",
		"JOBS_CLEANUP_INTERVAL",
		"JOBS_RETENTION",
		"RTC_APP_ID",
		"RTC_TOKEN_SECRET",
		"RTC_TOKEN_TTL",
		"OPENAI_API_KEY",
		"OPENAI_MODEL",
		"TRIALS_FREE_CALLS_ENABLED",
		"TRIALS_AI_PER_DAY",
		"TRIALS_REACTIONS_PER_DAY",
		"TRIALS_CALL_COOLDOWN",
		"TRIALS_RESET_TIMEZONE",
	} {
		t.Setenv(key, "")
	}
}
