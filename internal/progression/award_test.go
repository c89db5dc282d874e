package progression

import (
	"testing"
	"time"

	"github.com/learnquest/backend/internal/models"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestFinalAmountRounding(t *testing.T) {
	tests := []struct {
		base int
		mult float64
		want int
	}{
		{100, 1.0, 100},
		{100, 1.5, 150},
		{10, 1.25, 13},  // 12.5 rounds up
		{10, 1.15, 12},  // 11.5 rounds up
		{7, 1.1, 8},     // 7.7 rounds up
		{3, 1.1, 3},     // 3.3 rounds down
		{0, 3.0, 0},
		{25, 2.0, 50},
	}
	for _, tt := range tests {
		if got := finalAmount(tt.base, tt.mult); got != tt.want {
			t.Errorf("finalAmount(%d, %v) = %d, want %d", tt.base, tt.mult, got, tt.want)
		}
	}
}

func TestAdvanceStreakBasics(t *testing.T) {
	// 2026-08-26 is a Wednesday.
	now := day("2026-08-26")
	activity := []time.Time{day("2026-08-24"), day("2026-08-25"), day("2026-08-26")}

	rec := &models.StudentProgress{}
	advanceStreak(rec, activity, true, now)

	if rec.CurrentStreak != 3 {
		t.Errorf("CurrentStreak = %d, want 3", rec.CurrentStreak)
	}
	if rec.LongestStreak != 3 {
		t.Errorf("LongestStreak = %d, want 3", rec.LongestStreak)
	}
	if rec.StreakFreezes != 0 {
		t.Errorf("StreakFreezes = %d, want 0", rec.StreakFreezes)
	}
}

func TestAdvanceStreakPreservesLongest(t *testing.T) {
	now := day("2026-08-26")
	rec := &models.StudentProgress{LongestStreak: 12}
	advanceStreak(rec, []time.Time{day("2026-08-26")}, true, now)

	if rec.CurrentStreak != 1 {
		t.Errorf("CurrentStreak = %d, want 1", rec.CurrentStreak)
	}
	if rec.LongestStreak != 12 {
		t.Errorf("LongestStreak = %d, want 12 (must not shrink)", rec.LongestStreak)
	}
}

func TestAdvanceStreakFreezeAccrual(t *testing.T) {
	// Seven consecutive weekdays: Wed 08-19 .. Thu 08-27, weekend skipped.
	days := []string{
		"2026-08-19", "2026-08-20", "2026-08-21", // Wed Thu Fri
		"2026-08-24", "2026-08-25", "2026-08-26", "2026-08-27", // Mon..Thu
	}
	var activity []time.Time
	for _, d := range days {
		activity = append(activity, day(d))
	}
	now := day("2026-08-27")

	rec := &models.StudentProgress{}
	advanceStreak(rec, activity, true, now)

	if rec.CurrentStreak != 7 {
		t.Fatalf("CurrentStreak = %d, want 7", rec.CurrentStreak)
	}
	if rec.StreakFreezes != 1 {
		t.Errorf("StreakFreezes = %d, want 1 at the 7-day mark", rec.StreakFreezes)
	}

	// A second award the same day is not a new day: no double accrual.
	advanceStreak(rec, activity, false, now)
	if rec.StreakFreezes != 1 {
		t.Errorf("StreakFreezes = %d after same-day repeat, want 1", rec.StreakFreezes)
	}
}

func TestAdvanceStreakFreezeCap(t *testing.T) {
	var activity []time.Time
	for _, d := range []string{
		"2026-08-19", "2026-08-20", "2026-08-21",
		"2026-08-24", "2026-08-25", "2026-08-26", "2026-08-27",
	} {
		activity = append(activity, day(d))
	}
	now := day("2026-08-27")

	rec := &models.StudentProgress{StreakFreezes: maxStreakFreezes}
	advanceStreak(rec, activity, true, now)

	if rec.StreakFreezes != maxStreakFreezes {
		t.Errorf("StreakFreezes = %d, want cap %d", rec.StreakFreezes, maxStreakFreezes)
	}
}

func TestAdvanceStreakNonMilestoneNoFreeze(t *testing.T) {
	now := day("2026-08-26")
	activity := []time.Time{day("2026-08-25"), day("2026-08-26")}

	rec := &models.StudentProgress{}
	advanceStreak(rec, activity, true, now)

	if rec.CurrentStreak != 2 {
		t.Fatalf("CurrentStreak = %d, want 2", rec.CurrentStreak)
	}
	if rec.StreakFreezes != 0 {
		t.Errorf("StreakFreezes = %d, want 0 off milestone", rec.StreakFreezes)
	}
}
