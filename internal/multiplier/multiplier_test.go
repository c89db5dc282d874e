package multiplier

import (
	"testing"
	"time"

	"github.com/learnquest/backend/internal/models"
)

func TestEventMultiplierLifecycle(t *testing.T) {
	start := time.Date(2026, time.August, 26, 10, 0, 0, 0, time.UTC)
	ev := &models.MultiplierEvent{
		CourseID:   "algebra-1",
		Multiplier: 3,
		StartedAt:  start,
		ExpiresAt:  start.Add(60 * time.Minute),
	}

	tests := []struct {
		at   time.Time
		want float64
	}{
		{start, 3},
		{start.Add(30 * time.Minute), 3},
		{start.Add(60 * time.Minute), 3}, // expiry boundary is inclusive
		{start.Add(61 * time.Minute), 1},
	}

	for _, tt := range tests {
		if got := EventMultiplier(ev, tt.at); got != tt.want {
			t.Errorf("EventMultiplier at %s = %f, want %f", tt.at.Format(time.Kitchen), got, tt.want)
		}
	}

	if got := EventMultiplier(nil, start); got != 1 {
		t.Errorf("EventMultiplier(nil) = %f, want 1", got)
	}
}

func TestStreakMultiplierHighestWins(t *testing.T) {
	cfg := models.MultiplierConfig{
		StreakThresholds: []models.StreakThreshold{
			{MinStreak: 14, Multiplier: 1.5},
			{MinStreak: 3, Multiplier: 1.1},
			{MinStreak: 7, Multiplier: 1.25},
		},
	}

	tests := []struct {
		streak int
		want   float64
	}{
		{0, 1},
		{2, 1},
		{3, 1.1},
		{6, 1.1},
		{7, 1.25},
		{14, 1.5},
		{100, 1.5}, // thresholds never stack
	}

	for _, tt := range tests {
		if got := StreakMultiplier(cfg, tt.streak); got != tt.want {
			t.Errorf("StreakMultiplier(streak=%d) = %f, want %f", tt.streak, got, tt.want)
		}
	}
}

func TestStreakMultiplierNoThresholds(t *testing.T) {
	if got := StreakMultiplier(models.MultiplierConfig{}, 50); got != 1 {
		t.Errorf("StreakMultiplier with no thresholds = %f, want 1", got)
	}
}

func TestEffectiveXPCombinesMultiplicatively(t *testing.T) {
	now := time.Date(2026, time.August, 26, 10, 0, 0, 0, time.UTC)
	cfg := models.MultiplierConfig{
		StreakThresholds: []models.StreakThreshold{{MinStreak: 7, Multiplier: 1.5}},
	}
	ev := &models.MultiplierEvent{
		Multiplier: 2,
		StartedAt:  now.Add(-10 * time.Minute),
		ExpiresAt:  now.Add(10 * time.Minute),
	}

	resp := EffectiveXP(10, cfg, 8, ev, now)
	if resp.EffectiveXP != 30 {
		t.Errorf("EffectiveXP = %d, want 30 (10 × 1.5 × 2)", resp.EffectiveXP)
	}
	if resp.StreakMultiplier != 1.5 || resp.EventMultiplier != 2 {
		t.Errorf("multipliers = %f, %f; want 1.5, 2", resp.StreakMultiplier, resp.EventMultiplier)
	}

	// Expired event contributes nothing.
	resp = EffectiveXP(10, cfg, 8, ev, now.Add(time.Hour))
	if resp.EffectiveXP != 15 {
		t.Errorf("EffectiveXP with expired event = %d, want 15", resp.EffectiveXP)
	}
}
