// Package stats derives gamification numbers from a user's mood entries.
// It is pure: callers pass the entry dates and the reference day, so both the
// server endpoint and the API client share one implementation.
package stats

import "time"

const pointsPerEntry = 10

// Points returns the total points for entryCount entries. Every entry counts,
// including multiple entries on the same day.
func Points(entryCount int) int {
	return entryCount * pointsPerEntry
}

// Streak returns the length of the run of consecutive calendar days with at
// least one entry, ending at today or yesterday. Dates are normalized to
// calendar days in today's location, so duplicate entries on a day count once.
func Streak(dates []time.Time, today time.Time) int {
	if len(dates) == 0 {
		return 0
	}

	loc := today.Location()
	days := make(map[time.Time]struct{}, len(dates))
	for _, d := range dates {
		days[truncateToDay(d.In(loc))] = struct{}{}
	}

	cursor := truncateToDay(today)
	if _, ok := days[cursor]; !ok {
		cursor = cursor.AddDate(0, 0, -1)
		if _, ok := days[cursor]; !ok {
			return 0
		}
	}

	streak := 1
	for {
		prev := cursor.AddDate(0, 0, -1)
		if _, ok := days[prev]; !ok {
			return streak
		}
		streak++
		cursor = prev
	}
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
