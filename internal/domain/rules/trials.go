package rules

import "time"

const (
	// ReferenceTimezone is the product timezone for daily resets ("resets at
	// midnight East Africa Time"), independent of the client's clock.
	ReferenceTimezone = "Africa/Nairobi"

	FreeCallsPerDay    = 1
	AiTrialsPerDay     = 2
	ReactionsPerDay    = 5
	MaxFreeCallsPerDay = 1

	CallCooldown = 10 * time.Minute
)

func DayKey(now time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return now.In(loc).Format("2006-01-02")
}

func NextResetAt(now time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	local := now.In(loc)
	next := time.Date(local.Year(), local.Month(), local.Day()+1, 0, 0, 0, 0, loc)
	return next.UTC()
}

// FreeCallAllotment is the calls-per-day default, honoring the remote flag.
func FreeCallAllotment(freeCallsEnabled bool, perDay int) int {
	if !freeCallsEnabled {
		return 0
	}
	if perDay <= 0 || perDay > MaxFreeCallsPerDay {
		return MaxFreeCallsPerDay
	}
	return perDay
}

// ClampCounter bounds a persisted counter into [0, max]; stale or corrupt
// stored state must never grant more than the daily allotment.
func ClampCounter(v, max int) int {
	if v < 0 {
		return 0
	}
	if v > max {
		return max
	}
	return v
}

// CooldownRemaining reports how long until another free call is allowed.
// lastCallAt is epoch milliseconds; nil means no call has happened yet.
func CooldownRemaining(lastCallAt *int64, now time.Time, cooldown time.Duration) time.Duration {
	if lastCallAt == nil || cooldown <= 0 {
		return 0
	}
	last := time.UnixMilli(*lastCallAt)
	elapsed := now.Sub(last)
	if elapsed >= cooldown {
		return 0
	}
	return cooldown - elapsed
}
