package streak

import (
	"testing"
	"time"
)

// day returns a UTC date. 2026-08-24 is a Monday.
func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

var (
	mon = day(2026, time.August, 24)
	tue = day(2026, time.August, 25)
	wed = day(2026, time.August, 26)
	thu = day(2026, time.August, 27)
	fri = day(2026, time.August, 28)
	sat = day(2026, time.August, 29)
	sun = day(2026, time.August, 30)
)

func TestCountEmpty(t *testing.T) {
	if got := Count(nil, wed); got != 0 {
		t.Errorf("Count(nil) = %d, want 0", got)
	}
}

func TestCountSingleDayToday(t *testing.T) {
	if got := Count([]time.Time{wed}, wed); got != 1 {
		t.Errorf("Count([today]) = %d, want 1", got)
	}
}

func TestCountWeekendOnlyActivity(t *testing.T) {
	if got := Count([]time.Time{sat, sun}, sun); got != 0 {
		t.Errorf("weekend-only activity = %d, want 0", got)
	}

	// Weekend entries mixed into a weekday run change nothing.
	with := Count([]time.Time{thu, fri, sat, sun}, fri)
	without := Count([]time.Time{thu, fri}, fri)
	if with != without {
		t.Errorf("weekend entries changed result: %d vs %d", with, without)
	}
}

func TestCountConsecutiveWeekdays(t *testing.T) {
	got := Count([]time.Time{mon, tue, wed}, wed)
	if got != 3 {
		t.Errorf("Mon,Tue,Wed with now=Wed = %d, want 3", got)
	}
}

func TestCountBridgesWeekend(t *testing.T) {
	nextMon := day(2026, time.August, 31)
	// Friday activity, checked on Monday after an active Monday:
	// Monday's previous business day is Friday.
	got := Count([]time.Time{thu, fri, nextMon}, nextMon)
	if got != 3 {
		t.Errorf("Thu,Fri,Mon with now=Mon = %d, want 3", got)
	}
}

func TestCountGraceWindow(t *testing.T) {
	// Last activity was the weekday before the reference day: still alive.
	got := Count([]time.Time{tue, wed}, thu)
	if got != 2 {
		t.Errorf("Tue,Wed with now=Thu = %d, want 2", got)
	}

	// Two missed weekdays break the streak.
	nextMon := day(2026, time.August, 31)
	got = Count([]time.Time{mon, tue, wed}, nextMon)
	if got != 0 {
		t.Errorf("Mon..Wed checked the following Monday = %d, want 0", got)
	}
}

func TestCountWeekendReferenceDay(t *testing.T) {
	// Checked on Sunday: reference day is Friday, so a Thu+Fri run holds.
	got := Count([]time.Time{thu, fri}, sun)
	if got != 2 {
		t.Errorf("Thu,Fri with now=Sun = %d, want 2", got)
	}
}

func TestCountStopsAtGap(t *testing.T) {
	// Mon missing: Wed,Tue count, then the chain stops before Friday of
	// the prior week.
	prevFri := day(2026, time.August, 21)
	got := Count([]time.Time{prevFri, tue, wed}, wed)
	if got != 2 {
		t.Errorf("Fri(prev),Tue,Wed with now=Wed = %d, want 2", got)
	}
}

func TestCountDuplicateInstantsSameDay(t *testing.T) {
	morning := time.Date(2026, time.August, 26, 8, 30, 0, 0, time.UTC)
	evening := time.Date(2026, time.August, 26, 21, 0, 0, 0, time.UTC)
	got := Count([]time.Time{morning, evening, tue}, wed)
	if got != 2 {
		t.Errorf("duplicate same-day instants = %d, want 2", got)
	}
}
