package attendance

import "time"

// Clock abstracts time.Now() so the cutoff boundary can be tested with
// literal timestamps.
type Clock interface {
	Now() time.Time
}

type systemClock struct {
	loc *time.Location
}

// NewSystemClock returns a Clock reporting wall time in loc. The location
// matters: the 08:30 cutoff and the "today" boundary are local concepts.
func NewSystemClock(loc *time.Location) Clock {
	if loc == nil {
		loc = time.UTC
	}
	return systemClock{loc: loc}
}

func (c systemClock) Now() time.Time {
	return time.Now().In(c.loc)
}
