// Package streak computes consecutive-business-day activity streaks.
// Weekends neither count toward nor break a streak.
package streak

import (
	"sort"
	"time"
)

// DateOnly truncates an instant to its UTC calendar date.
func DateOnly(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func isWeekend(d time.Time) bool {
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// prevBusinessDay returns the weekday immediately before d, skipping
// Saturday and Sunday.
func prevBusinessDay(d time.Time) time.Time {
	d = d.AddDate(0, 0, -1)
	for isWeekend(d) {
		d = d.AddDate(0, 0, -1)
	}
	return d
}

// referenceDay returns today, or the prior weekday when now falls on a
// weekend. Weekend checks look back to Friday rather than breaking.
func referenceDay(now time.Time) time.Time {
	d := DateOnly(now)
	for isWeekend(d) {
		d = d.AddDate(0, 0, -1)
	}
	return d
}

// Count returns the consecutive-business-day streak ending at "now".
//
// Activity instants are normalized to calendar dates; weekend entries are
// discarded. The streak is alive if the most recent activity weekday is
// the reference day or the weekday immediately before it (a one-weekday
// grace window). A gap of two or more weekdays returns 0.
func Count(activity []time.Time, now time.Time) int {
	seen := make(map[time.Time]bool, len(activity))
	var days []time.Time
	for _, t := range activity {
		d := DateOnly(t)
		if isWeekend(d) || seen[d] {
			continue
		}
		seen[d] = true
		days = append(days, d)
	}
	if len(days) == 0 {
		return 0
	}

	sort.Slice(days, func(i, j int) bool { return days[i].After(days[j]) })

	ref := referenceDay(now)
	if !days[0].Equal(ref) && !days[0].Equal(prevBusinessDay(ref)) {
		return 0
	}

	count := 1
	for i := 1; i < len(days); i++ {
		if !days[i].Equal(prevBusinessDay(days[i-1])) {
			break
		}
		count++
	}
	return count
}
