package models

import "time"

// ── Course XP Configuration ───────────────────────────────

// XPConfig is the per-course tuning document stored on course_settings.
type XPConfig struct {
	XPValues         map[string]int   `json:"xp_values,omitempty"`
	BehaviorRewards  map[string]int   `json:"behavior_rewards,omitempty"`
	MultiplierConfig MultiplierConfig `json:"multiplier_config"`
}

// MultiplierConfig controls streak-based multipliers. ApplyStreakOnAward
// opts the award path into the streak multiplier; the effective-XP
// preview always includes it.
type MultiplierConfig struct {
	StreakThresholds   []StreakThreshold `json:"streak_thresholds,omitempty"`
	ApplyStreakOnAward bool              `json:"apply_streak_on_award"`
}

// StreakThreshold maps a minimum streak length to a multiplier. The
// highest qualifying threshold wins; thresholds never stack.
type StreakThreshold struct {
	MinStreak  int     `json:"min_streak"`
	Multiplier float64 `json:"multiplier"`
}

// ── Multiplier Events ─────────────────────────────────────

// MultiplierEvent is a teacher-triggered, time-boxed XP boost. At most
// one exists per course; expiry is checked lazily at read time.
type MultiplierEvent struct {
	CourseID   string    `json:"course_id"`
	Multiplier float64   `json:"multiplier"`
	Label      string    `json:"label,omitempty"`
	StartedAt  time.Time `json:"started_at"`
	ExpiresAt  time.Time `json:"expires_at"`
}

type SetMultiplierRequest struct {
	Multiplier      float64 `json:"multiplier"`
	DurationMinutes int     `json:"duration_minutes"`
	Label           string  `json:"label,omitempty"`
}

type EffectiveXPResponse struct {
	BaseXP           int     `json:"base_xp"`
	StreakMultiplier float64 `json:"streak_multiplier"`
	EventMultiplier  float64 `json:"event_multiplier"`
	EffectiveXP      int     `json:"effective_xp"`
}
