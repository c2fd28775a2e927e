package clock

import "time"

// gulfZone is Gulf Standard Time. The UAE does not observe daylight saving.
var gulfZone = time.FixedZone("GST", 4*60*60)

// Clock supplies the current local time for every date comparison in the service.
type Clock interface {
	// Now returns the current instant in the Gulf zone.
	Now() time.Time
	// Today returns the local calendar date as midnight UTC.
	Today() time.Time
}

type gulfClock struct{}

// NewGulfClock returns a Clock fixed to UTC+4 regardless of the host timezone.
func NewGulfClock() Clock {
	return gulfClock{}
}

// Now truncates to microseconds so values round-trip through timestamptz unchanged.
func (gulfClock) Now() time.Time {
	return time.Now().In(gulfZone).Truncate(time.Microsecond)
}

func (c gulfClock) Today() time.Time {
	return DateOf(c.Now())
}

type fixedClock struct {
	t time.Time
}

// Fixed returns a Clock frozen at t. Intended for tests.
func Fixed(t time.Time) Clock {
	return fixedClock{t: t.In(gulfZone)}
}

func (c fixedClock) Now() time.Time {
	return c.t
}

func (c fixedClock) Today() time.Time {
	return DateOf(c.t)
}

// DateOf returns the calendar date of t as seen in the Gulf zone, expressed as midnight UTC.
// DATE columns scan back from pgx in the same shape.
func DateOf(t time.Time) time.Time {
	y, m, d := t.In(gulfZone).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Location returns the fixed Gulf zone.
func Location() *time.Location {
	return gulfZone
}
