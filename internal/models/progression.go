package models

import "time"

// ── Progress Record ──────────────────────────────────────

// StudentProgress is the per-student (optionally per-course) ledger row.
// CourseID "" is the platform-wide record. Mutated only inside store
// transactions.
type StudentProgress struct {
	StudentID        int64      `json:"student_id"`
	CourseID         string     `json:"course_id,omitempty"`
	TotalXP          int64      `json:"total_xp"`
	CurrentStreak    int        `json:"current_streak"`
	LongestStreak    int        `json:"longest_streak"`
	StreakFreezes    int        `json:"streak_freezes"`
	LessonsCompleted int        `json:"lessons_completed"`
	TotalAnswered    int        `json:"total_answered"`
	TotalCorrect     int        `json:"total_correct"`
	Badges           []string   `json:"badges"`
	LastXPSource     string     `json:"last_xp_source,omitempty"`
	LastXPAmount     int        `json:"last_xp_amount"`
	LastXPAt         *time.Time `json:"last_xp_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// ── Request Types ─────────────────────────────────────────

type AwardXPRequest struct {
	BaseAmount int    `json:"base_amount"`
	Source     string `json:"source"`
	CourseID   string `json:"course_id,omitempty"`
}

// StatsUpdate carries a partial stats merge. Nil fields are left
// untouched; set fields replace the stored value.
type StatsUpdate struct {
	LessonsCompleted *int   `json:"lessons_completed,omitempty"`
	TotalAnswered    *int   `json:"total_answered,omitempty"`
	TotalCorrect     *int   `json:"total_correct,omitempty"`
	CourseID         string `json:"course_id,omitempty"`
}

// ── Response Types ────────────────────────────────────────

type AwardXPResponse struct {
	NewTotal      int64   `json:"new_total"`
	Awarded       int     `json:"awarded"`
	Multiplier    float64 `json:"multiplier"`
	CurrentStreak int     `json:"current_streak"`
}

type StatsUpdateResponse struct {
	Progress     StudentProgress `json:"progress"`
	Level        int             `json:"level"`
	Badges       []BadgeState    `json:"badges"`
	NewlyEarned  []string        `json:"newly_earned"`
}

// BadgeState is one badge with earned status for display. Hidden badges
// that are not yet earned are filtered by the handler, not the evaluator.
type BadgeState struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Rarity      string `json:"rarity"`
	Hidden      bool   `json:"hidden,omitempty"`
	Earned      bool   `json:"earned"`
}
