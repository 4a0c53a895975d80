package store

import "time"

// dayKeyLayout produces keys whose lexicographic order matches
// chronological order, so sorted map keys are already a timeline.
const dayKeyLayout = "2006-01-02"

// DayKey returns the calendar-day key for t in loc.
func DayKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(dayKeyLayout)
}

// dayStart truncates t to midnight in loc.
func dayStart(t time.Time, loc *time.Location) time.Time {
	lt := t.In(loc)
	return time.Date(lt.Year(), lt.Month(), lt.Day(), 0, 0, 0, 0, loc)
}
