package progression

import (
	"context"
	"log"
	"time"

	"github.com/learnquest/backend/internal/apperrors"
	"github.com/learnquest/backend/internal/levels"
	"github.com/learnquest/backend/internal/models"
	"github.com/learnquest/backend/internal/multiplier"
	"github.com/learnquest/backend/internal/perks"
)

// Service owns the XP ledger and badge evaluation. It leans on the
// multiplier service for live event lookups and on the perks service
// for per-course multiplier config.
type Service struct {
	store       *Store
	multipliers *multiplier.Service
	courses     *perks.Service
}

func NewService(store *Store, multipliers *multiplier.Service, courses *perks.Service) *Service {
	return &Service{store: store, multipliers: multipliers, courses: courses}
}

// ProgressResponse is the full progress view: the ledger row plus
// derived level, tier and badge display states.
type ProgressResponse struct {
	Progress models.StudentProgress `json:"progress"`
	Level    levels.LevelInfo       `json:"level"`
	Tier     string                 `json:"tier"`
	Badges   []models.BadgeState    `json:"badges"`
}

// AwardXP validates and applies one XP award. The live event multiplier
// is resolved up front; whether the streak multiplier also applies at
// award time is a per-course config switch, off by default, and is
// decided inside the award transaction where the fresh streak is known.
func (s *Service) AwardXP(ctx context.Context, studentID int64, req models.AwardXPRequest) (*models.AwardXPResponse, error) {
	if req.BaseAmount < 0 {
		return nil, apperrors.ErrInvalidAmount
	}
	source := req.Source
	if source == "" {
		source = "activity"
	}

	now := time.Now().UTC()
	eventMult, err := s.multipliers.ResolveActiveMultiplier(ctx, req.CourseID, now)
	if err != nil {
		return nil, err
	}
	cfg, err := s.courses.GetXPConfig(ctx, req.CourseID)
	if err != nil {
		return nil, err
	}

	resp, err := s.store.ApplyAward(ctx, studentID, req.CourseID, req.BaseAmount, eventMult, cfg.MultiplierConfig, source, now)
	if err != nil {
		return nil, err
	}
	log.Printf("[progression] awarded %d XP to student %d (base %d, x%.2f, source %s)",
		resp.Awarded, studentID, req.BaseAmount, resp.Multiplier, source)
	return resp, nil
}

// GetProgress returns the progress view for a student. Students with no
// record yet get a zeroed default rather than a 404.
func (s *Service) GetProgress(ctx context.Context, studentID int64, courseID string) (*ProgressResponse, error) {
	rec, err := s.store.Get(ctx, studentID, courseID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		rec = &models.StudentProgress{StudentID: studentID, CourseID: courseID, Badges: []string{}}
	}

	info := levels.GetLevelInfo(rec.TotalXP)
	return &ProgressResponse{
		Progress: *rec,
		Level:    info,
		Tier:     levels.RankTier(info.Current.Level),
		Badges:   badgeStates(rec.Badges),
	}, nil
}

// UpdateStats merges partial stats and re-evaluates badges.
func (s *Service) UpdateStats(ctx context.Context, studentID int64, update models.StatsUpdate) (*models.StatsUpdateResponse, error) {
	now := time.Now().UTC()
	rec, newly, err := s.store.MergeStats(ctx, studentID, update.CourseID, update, levels.LevelForXP, now)
	if err != nil {
		return nil, err
	}
	if len(newly) > 0 {
		log.Printf("[progression] student %d earned badges %v", studentID, newly)
	}
	if newly == nil {
		newly = []string{}
	}
	return &models.StatsUpdateResponse{
		Progress:    *rec,
		Level:       levels.LevelForXP(rec.TotalXP),
		Badges:      badgeStates(rec.Badges),
		NewlyEarned: newly,
	}, nil
}

// CurrentStreak reports the live streak for a student. It recomputes
// from the activity history so previews do not see a stale stored value.
func (s *Service) CurrentStreak(ctx context.Context, studentID int64, courseID string) (int, error) {
	return s.store.CurrentStreak(ctx, studentID, courseID)
}

// badgeStates maps the full catalog to display states. Hidden badges
// stay in the list until the handler filters unearned ones out.
func badgeStates(earned []string) []models.BadgeState {
	have := make(map[string]bool, len(earned))
	for _, id := range earned {
		have[id] = true
	}
	states := make([]models.BadgeState, 0, len(Badges))
	for _, b := range Badges {
		states = append(states, models.BadgeState{
			ID:          b.ID,
			Name:        b.Name,
			Description: b.Description,
			Rarity:      b.Rarity,
			Hidden:      b.Hidden,
			Earned:      have[b.ID],
		})
	}
	return states
}
