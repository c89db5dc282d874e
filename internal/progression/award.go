package progression

import (
	"math"
	"time"

	"github.com/learnquest/backend/internal/models"
	"github.com/learnquest/backend/internal/streak"
)

const (
	maxStreakFreezes = 3
	// A freeze is banked every time the streak crosses another full week.
	freezeEvery = 7
)

// finalAmount applies a multiplier to a base award and rounds half away
// from zero. Base amounts are validated non-negative before this runs.
func finalAmount(base int, multiplier float64) int {
	return int(math.Round(float64(base) * multiplier))
}

// advanceStreak recomputes the streak fields on a locked record from
// the full activity history. newDay is true when today's activity date
// was inserted for the first time; freezes only accrue on a genuinely
// new day so repeated awards on the same date cannot farm them.
func advanceStreak(rec *models.StudentProgress, activity []time.Time, newDay bool, now time.Time) {
	rec.CurrentStreak = streak.Count(activity, now)
	if rec.CurrentStreak > rec.LongestStreak {
		rec.LongestStreak = rec.CurrentStreak
	}
	if newDay && rec.CurrentStreak > 0 && rec.CurrentStreak%freezeEvery == 0 && rec.StreakFreezes < maxStreakFreezes {
		rec.StreakFreezes++
	}
}
