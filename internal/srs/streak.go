package srs

import "time"

// StreakFromDays computes the current study streak from the distinct days
// with at least one review, ordered most recent first. The streak is the
// run of consecutive days ending today, or ending yesterday when today's
// session has not happened yet.
func StreakFromDays(days []time.Time, today time.Time) int {
	if len(days) == 0 {
		return 0
	}

	today = truncateDay(today)
	cursor := truncateDay(days[0])
	if !cursor.Equal(today) && !cursor.Equal(today.AddDate(0, 0, -1)) {
		return 0
	}

	streak := 1
	for _, day := range days[1:] {
		day = truncateDay(day)
		if !day.Equal(cursor.AddDate(0, 0, -1)) {
			break
		}
		streak++
		cursor = day
	}
	return streak
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
