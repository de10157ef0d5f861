// Package streak holds the rules for how a completion event moves a
// habit's consecutive-day counter. Nothing here touches storage.
package streak

import (
	"sort"
	"time"

	"github.com/julianstephens/habitrack/internal/constants"
)

// Compute returns the streak that results from completing a habit on today,
// given the day of its last streak-counting completion and its current streak.
//
// A habit completed again on the same day keeps its streak and shouldUpdate is
// false. A completion the day after lastCompleted extends the streak by one.
// Anything else, including a habit never completed before, starts over at 1.
// Each time is reduced to the calendar date it shows in its own location.
func Compute(lastCompleted *time.Time, today time.Time, currentStreak int) (newStreak int, shouldUpdate bool) {
	if currentStreak < 0 {
		currentStreak = 0
	}
	if lastCompleted == nil {
		return 1, true
	}

	day := truncate(today)
	last := truncate(*lastCompleted)

	switch {
	case last.Equal(day):
		return currentStreak, false
	case last.Equal(day.AddDate(0, 0, -1)):
		return currentStreak + 1, true
	default:
		return 1, true
	}
}

// Longest returns the longest run of consecutive calendar days in days.
// Duplicates and unparsable entries are ignored.
func Longest(days []string) int {
	parsed := make([]time.Time, 0, len(days))
	seen := make(map[string]bool, len(days))
	for _, d := range days {
		if seen[d] {
			continue
		}
		t, err := ParseDay(d)
		if err != nil {
			continue
		}
		seen[d] = true
		parsed = append(parsed, t)
	}
	if len(parsed) == 0 {
		return 0
	}

	sort.Slice(parsed, func(i, j int) bool { return parsed[i].Before(parsed[j]) })

	longest, run := 1, 1
	for i := 1; i < len(parsed); i++ {
		if parsed[i].Equal(parsed[i-1].AddDate(0, 0, 1)) {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}
	return longest
}

// ParseDay parses a YYYY-MM-DD string as midnight UTC.
func ParseDay(day string) (time.Time, error) {
	return time.Parse(constants.DateFormat, day)
}

// FormatDay formats t as YYYY-MM-DD in its own location.
func FormatDay(t time.Time) string {
	return t.Format(constants.DateFormat)
}

// truncate drops the time of day. The result is expressed in UTC so
// AddDate never trips over DST transitions.
func truncate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Trailing returns the run of consecutive days ending at the latest day in
// days, together with that day. It rebuilds a stored streak from history.
func Trailing(days []string) (int, string) {
	set := make(map[string]bool, len(days))
	latest := ""
	for _, d := range days {
		if _, err := ParseDay(d); err != nil {
			continue
		}
		set[d] = true
		if d > latest {
			latest = d
		}
	}
	if latest == "" {
		return 0, ""
	}

	cur, _ := ParseDay(latest)
	run := 0
	for set[FormatDay(cur)] {
		run++
		cur = cur.AddDate(0, 0, -1)
	}
	return run, latest
}
