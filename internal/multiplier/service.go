package multiplier

import (
	"context"
	"math"
	"time"

	"github.com/learnquest/backend/internal/apperrors"
	"github.com/learnquest/backend/internal/models"
)

type Service struct {
	store *Store
}

func NewService(store *Store) *Service {
	return &Service{store: store}
}

// SetActiveMultiplier starts (or overwrites) the course's multiplier
// event. Events never stack; a new one simply replaces the old.
func (s *Service) SetActiveMultiplier(ctx context.Context, courseID string, multiplier float64, durationMinutes int, label string, now time.Time) (*models.MultiplierEvent, error) {
	if multiplier <= 0 || math.IsNaN(multiplier) || math.IsInf(multiplier, 0) {
		return nil, apperrors.ErrInvalidMultiplier
	}
	if durationMinutes <= 0 {
		return nil, apperrors.ErrInvalidDuration
	}

	ev := &models.MultiplierEvent{
		CourseID:   courseID,
		Multiplier: multiplier,
		Label:      label,
		StartedAt:  now,
		ExpiresAt:  now.Add(time.Duration(durationMinutes) * time.Minute),
	}
	if err := s.store.Upsert(ctx, ev); err != nil {
		return nil, err
	}
	return ev, nil
}

// ClearActiveMultiplier ends the course's event early. Clearing a course
// with no event is a no-op.
func (s *Service) ClearActiveMultiplier(ctx context.Context, courseID string) error {
	return s.store.Delete(ctx, courseID)
}

// GetActive returns the live event for a course, or nil when none exists
// or the stored one has expired. Expiry is evaluated here, lazily; no
// cleanup job ever runs.
func (s *Service) GetActive(ctx context.Context, courseID string, now time.Time) (*models.MultiplierEvent, error) {
	ev, err := s.store.Get(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if !IsLive(ev, now) {
		return nil, nil
	}
	return ev, nil
}

// ResolveActiveMultiplier returns the multiplier the ledger should apply
// right now: the live event's value, or 1 when none is live.
func (s *Service) ResolveActiveMultiplier(ctx context.Context, courseID string, now time.Time) (float64, error) {
	ev, err := s.GetActive(ctx, courseID, now)
	if err != nil {
		return 0, err
	}
	return EventMultiplier(ev, now), nil
}

// IsLive reports whether the event exists and has not yet expired.
func IsLive(ev *models.MultiplierEvent, now time.Time) bool {
	return ev != nil && !now.After(ev.ExpiresAt)
}

// EventMultiplier returns ev's value while live, else 1.
func EventMultiplier(ev *models.MultiplierEvent, now time.Time) float64 {
	if IsLive(ev, now) {
		return ev.Multiplier
	}
	return 1
}

// StreakMultiplier returns the multiplier of the highest qualifying
// streak threshold in cfg. Thresholds do not stack; no qualifying
// threshold means 1.
func StreakMultiplier(cfg models.MultiplierConfig, currentStreak int) float64 {
	best := 1.0
	bestMin := -1
	for _, th := range cfg.StreakThresholds {
		if currentStreak >= th.MinStreak && th.MinStreak > bestMin {
			best = th.Multiplier
			bestMin = th.MinStreak
		}
	}
	return best
}

// EffectiveXP is a read-only preview combining the streak-threshold
// multiplier with the live event multiplier, multiplicatively. It is not
// the award path: AwardXP applies the streak multiplier only when the
// course config opts in.
func EffectiveXP(baseXP int, cfg models.MultiplierConfig, currentStreak int, ev *models.MultiplierEvent, now time.Time) models.EffectiveXPResponse {
	streakMult := StreakMultiplier(cfg, currentStreak)
	eventMult := EventMultiplier(ev, now)
	return models.EffectiveXPResponse{
		BaseXP:           baseXP,
		StreakMultiplier: streakMult,
		EventMultiplier:  eventMult,
		EffectiveXP:      int(math.Round(float64(baseXP) * streakMult * eventMult)),
	}
}
