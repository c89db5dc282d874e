package progression

import "github.com/learnquest/backend/internal/models"

// Badge rarities.
const (
	RarityCommon    = "common"
	RarityUncommon  = "uncommon"
	RarityRare      = "rare"
	RarityEpic      = "epic"
	RarityLegendary = "legendary"
)

// Badge is one achievement: metadata plus a pure predicate over a
// merged progress record and its derived level. The set below is the
// whole catalog — it is enumerable at compile time and never mutated at
// runtime.
type Badge struct {
	ID          string
	Name        string
	Description string
	Rarity      string
	Hidden      bool
	Evaluate    func(rec *models.StudentProgress, level int) bool
}

var Badges = []Badge{
	{
		ID: "first_lesson", Name: "First Steps", Description: "Complete your first lesson", Rarity: RarityCommon,
		Evaluate: func(rec *models.StudentProgress, _ int) bool { return rec.LessonsCompleted >= 1 },
	},
	{
		ID: "lessons_10", Name: "Getting Somewhere", Description: "Complete 10 lessons", Rarity: RarityCommon,
		Evaluate: func(rec *models.StudentProgress, _ int) bool { return rec.LessonsCompleted >= 10 },
	},
	{
		ID: "lessons_50", Name: "Course Crusher", Description: "Complete 50 lessons", Rarity: RarityRare,
		Evaluate: func(rec *models.StudentProgress, _ int) bool { return rec.LessonsCompleted >= 50 },
	},
	{
		ID: "streak_5", Name: "Full Week", Description: "Keep a 5-day streak", Rarity: RarityUncommon,
		Evaluate: func(rec *models.StudentProgress, _ int) bool { return rec.CurrentStreak >= 5 || rec.LongestStreak >= 5 },
	},
	{
		ID: "streak_20", Name: "Unstoppable", Description: "Keep a 20-day streak", Rarity: RarityEpic,
		Evaluate: func(rec *models.StudentProgress, _ int) bool { return rec.CurrentStreak >= 20 || rec.LongestStreak >= 20 },
	},
	{
		ID: "level_5", Name: "Apprentice", Description: "Reach level 5", Rarity: RarityCommon,
		Evaluate: func(_ *models.StudentProgress, level int) bool { return level >= 5 },
	},
	{
		ID: "level_10", Name: "Scholar", Description: "Reach level 10", Rarity: RarityUncommon,
		Evaluate: func(_ *models.StudentProgress, level int) bool { return level >= 10 },
	},
	{
		ID: "level_25", Name: "Honor Roll", Description: "Reach level 25", Rarity: RarityEpic,
		Evaluate: func(_ *models.StudentProgress, level int) bool { return level >= 25 },
	},
	{
		ID: "level_35", Name: "Living Legend", Description: "Reach the final level", Rarity: RarityLegendary,
		Evaluate: func(_ *models.StudentProgress, level int) bool { return level >= 35 },
	},
	{
		ID: "xp_1000", Name: "Rising Star", Description: "Earn 1,000 total XP", Rarity: RarityCommon,
		Evaluate: func(rec *models.StudentProgress, _ int) bool { return rec.TotalXP >= 1000 },
	},
	{
		ID: "xp_5000", Name: "Powerhouse", Description: "Earn 5,000 total XP", Rarity: RarityRare,
		Evaluate: func(rec *models.StudentProgress, _ int) bool { return rec.TotalXP >= 5000 },
	},
	{
		ID: "sharpshooter", Name: "Sharpshooter", Description: "90% accuracy over 50+ answers", Rarity: RarityRare, Hidden: true,
		Evaluate: func(rec *models.StudentProgress, _ int) bool {
			return rec.TotalAnswered >= 50 && float64(rec.TotalCorrect) >= 0.9*float64(rec.TotalAnswered)
		},
	},
	{
		ID: "frozen_solid", Name: "Frozen Solid", Description: "Bank the maximum 3 streak freezes", Rarity: RarityEpic, Hidden: true,
		Evaluate: func(rec *models.StudentProgress, _ int) bool { return rec.StreakFreezes >= maxStreakFreezes },
	},
}

// EvaluateBadges returns the ids of every badge whose predicate holds
// for the record. The set is recomputed from scratch on each call.
func EvaluateBadges(rec *models.StudentProgress, level int) []string {
	var earned []string
	for _, b := range Badges {
		if b.Evaluate(rec, level) {
			earned = append(earned, b.ID)
		}
	}
	return earned
}

// MergeBadges unions previously stored ids with a fresh evaluation so
// the stored set only ever grows, and returns the union plus the ids
// that are new this time.
func MergeBadges(stored, evaluated []string) (all []string, newly []string) {
	have := make(map[string]bool, len(stored))
	all = append(all, stored...)
	for _, id := range stored {
		have[id] = true
	}
	for _, id := range evaluated {
		if !have[id] {
			have[id] = true
			all = append(all, id)
			newly = append(newly, id)
		}
	}
	return all, newly
}

// BadgeByID returns the catalog entry for an id, or nil.
func BadgeByID(id string) *Badge {
	for i := range Badges {
		if Badges[i].ID == id {
			return &Badges[i]
		}
	}
	return nil
}
