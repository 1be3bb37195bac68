package movie

import "time"

// WeekBounds returns the Monday and Sunday, at midnight UTC, of the week
// containing t.
func WeekBounds(t time.Time) (monday, sunday time.Time) {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)

	// time.Weekday counts from Sunday; shift so Monday is 0.
	offset := (int(day.Weekday()) + DaysPerWeek - 1) % DaysPerWeek
	monday = day.AddDate(0, 0, -offset)

	return monday, monday.AddDate(0, 0, Sunday)
}

// ParseDate parses a YYYYMMDD date at midnight UTC.
func ParseDate(raw string) (time.Time, error) {
	return time.Parse(OpenDateLayout, raw)
}
