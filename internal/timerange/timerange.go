// Package timerange models a reservation window as a half-open interval
// [Start, End) on the timeline.
package timerange

import "time"

type Range struct {
	Start time.Time
	End   time.Time
}

func New(start, end time.Time) Range {
	return Range{Start: start, End: end}
}

// IsValid reports whether the range is non-empty with Start before End.
func (r Range) IsValid() bool {
	return r.Start.Before(r.End)
}

// Overlaps reports whether the two half-open intervals share any instant.
func (r Range) Overlaps(o Range) bool {
	return r.Start.Before(o.End) && o.Start.Before(r.End)
}

// Minutes is the whole-minute duration of the range.
func (r Range) Minutes() int {
	return int(r.End.Sub(r.Start).Minutes())
}

// StartClock is the zero-padded "HH:MM" clock time of Start, the form
// auto-approval rules compare their hour bounds against.
func (r Range) StartClock() string {
	return r.Start.Format("15:04")
}
