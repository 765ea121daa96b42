package toast

import "time"

// IsToastDay reports whether 'now' falls on the user's preferred weekday in
// the user's own calendar. Only the local day-of-week matters; DST shifts and
// the server's timezone do not. An invalid or empty timezone falls back to
// UTC rather than failing the user's run.
func IsToastDay(timezone string, preferredWeekday time.Weekday, now time.Time) bool {
	loc, err := time.LoadLocation(timezone)
	if err != nil || timezone == "" {
		loc = time.UTC
	}
	return now.In(loc).Weekday() == preferredWeekday
}

// WeeklyWindow returns the canonical weekly eligibility window: the trailing
// 7-day interval ending at 'now'. Notes are gathered over it and at most one
// WEEKLY toast may cover it.
func WeeklyWindow(now time.Time) (start, end time.Time) {
	return now.AddDate(0, 0, -WeeklyWindowDays), now
}
