package progress

import (
	"math"
	"sort"
	"time"
)

const dayLayout = "2006-01-02"

// Streak computes the current consecutive-day run from a habit's history of
// YYYY-MM-DD dates. The run must end within 48 hours of today's date or the
// streak is 0. Returns the streak and the most recent logged date.
func Streak(history []string, today time.Time) (int, string) {
	days := make([]time.Time, 0, len(history))
	for _, raw := range history {
		day, err := time.ParseInLocation(dayLayout, raw, time.UTC)
		if err != nil {
			continue
		}
		days = append(days, day)
	}
	if len(days) == 0 {
		return 0, ""
	}

	sort.Slice(days, func(i, j int) bool { return days[i].After(days[j]) })
	last := days[0].Format(dayLayout)

	todayDay := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	if todayDay.Sub(days[0]).Hours() > 48 {
		return 0, last
	}

	streak := 1
	for i := 0; i < len(days)-1; i++ {
		gap := int(math.Round(days[i].Sub(days[i+1]).Hours() / 24))
		if gap != 1 {
			break
		}
		streak++
	}
	return streak, last
}

// ToggleDate adds day to history when absent and removes it when present,
// returning the updated history.
func ToggleDate(history []string, day string) []string {
	for i, existing := range history {
		if existing == day {
			return append(history[:i], history[i+1:]...)
		}
	}
	return append(history, day)
}
