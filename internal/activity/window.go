// AngelaMos | 2026
// window.go

package activity

import (
	"time"
)

const (
	WindowDays = 7
	DayLabel   = "02 Jan"
)

// CivilDate returns the calendar day t falls on in loc, expressed as UTC
// midnight so dates compare and step without DST effects.
func CivilDate(t time.Time, loc *time.Location) time.Time {
	lt := t.In(loc)
	return time.Date(lt.Year(), lt.Month(), lt.Day(), 0, 0, 0, 0, time.UTC)
}

// TrailingWindow lists the WindowDays civil dates ending on ref's day,
// oldest first.
func TrailingWindow(ref time.Time, loc *time.Location) []time.Time {
	end := CivilDate(ref, loc)
	days := make([]time.Time, WindowDays)
	for i := range WindowDays {
		days[i] = end.AddDate(0, 0, i-(WindowDays-1))
	}
	return days
}

// StartOfDay converts a civil date back into the instant its day begins in
// loc.
func StartOfDay(civil time.Time, loc *time.Location) time.Time {
	return time.Date(civil.Year(), civil.Month(), civil.Day(), 0, 0, 0, 0, loc)
}

func Label(civil time.Time) string {
	return civil.Format(DayLabel)
}
