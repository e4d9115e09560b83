package timespan

import "time"

// Span is a half-open time interval [Start, Stop).
type Span struct {
	Start time.Time
	Stop  time.Time
}

// StartMillis returns the span's start as epoch milliseconds.
func (s Span) StartMillis() int64 {
	return s.Start.UnixMilli()
}

// StopMillis returns the span's stop as epoch milliseconds.
func (s Span) StopMillis() int64 {
	return s.Stop.UnixMilli()
}

// StartOfDay returns midnight of the day containing t, in t's location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// Week returns the span covering the seven days up to stop, starting on a
// start-of-day boundary. Date arithmetic is done on calendar days so a
// daylight saving changeover inside the window does not shift the start.
func Week(stop time.Time) Span {
	start := StartOfDay(stop).AddDate(0, 0, -7)
	return Span{Start: start, Stop: stop}
}

// Year returns the span covering one year up to stop, starting on a
// start-of-day boundary. If the start would land on an invalid date
// (Feb 29 of a non-leap year) the day before is used.
func Year(stop time.Time) Span {
	sod := StartOfDay(stop)
	start := sod.AddDate(-1, 0, 0)
	// AddDate normalizes Feb 29 to Mar 1; pull back onto the last of Feb.
	if sod.Month() == time.February && sod.Day() == 29 && start.Month() == time.March {
		start = start.AddDate(0, 0, -1)
	}
	return Span{Start: start, Stop: stop}
}

// UTCOffset returns the UTC offset of t's location in seconds.
func UTCOffset(t time.Time) int {
	_, offset := t.Zone()
	return offset
}
