package services

import (
	"sort"
	"time"
)

// DayFormat is the calendar-date layout used for check-ins.
const DayFormat = "2006-01-02"

// Streak counts the consecutive run of check-in days ending today.
// Input order and duplicates are irrelevant. A run that stopped
// yesterday is broken: unless today itself was checked in, the streak
// is zero. The caller supplies "today" already in the server's
// location; dates are compared as calendar days, never as instants.
func Streak(checkIns []string, today time.Time) int {
	if len(checkIns) == 0 {
		return 0
	}

	seen := make(map[string]struct{}, len(checkIns))
	days := make([]string, 0, len(checkIns))
	for _, day := range checkIns {
		if _, dup := seen[day]; dup {
			continue
		}
		seen[day] = struct{}{}
		days = append(days, day)
	}

	// ISO dates order the same lexicographically and chronologically.
	sort.Sort(sort.Reverse(sort.StringSlice(days)))

	streak := 0
	for i, day := range days {
		expected := today.AddDate(0, 0, -i).Format(DayFormat)
		if day != expected {
			break
		}
		streak++
	}
	return streak
}
