package timeline

import (
	"fmt"
	"time"
)

// Windowed is anything exposing the time window it occupies (a shift, an opening window, a raw period)
type Windowed interface {
	Window() Period
}

// Period is the half-open span between two instants, quantized into ticks
type Period struct {
	start time.Time
	end   time.Time
}

func NewPeriod(start, end time.Time) (Period, error) {
	if !end.After(start) {
		return Period{}, &TimeError{Start: start, End: end}
	}
	return Period{start: start, end: end}, nil
}

// MustPeriod is like NewPeriod but panics on invalid bounds. Intended for fixed catalogs and tests
func MustPeriod(start, end time.Time) Period {
	period, err := NewPeriod(start, end)
	if err != nil {
		panic(err)
	}
	return period
}

func (period Period) Start() time.Time { return period.start }

func (period Period) End() time.Time { return period.end }

func (period Period) Duration() time.Duration { return period.end.Sub(period.start) }

func (period Period) Window() Period { return period }

// Composition returns the tick boundaries from start to end, both included
func (period Period) Composition() []time.Time {
	ticks := Ticks(period.Duration())
	composition := make([]time.Time, 0, ticks+1)
	for i := range ticks {
		composition = append(composition, period.start.Add(time.Duration(i)*Tick))
	}
	return append(composition, period.end)
}

func (period Period) Equal(other Period) bool {
	return period.start.Equal(other.start) && period.end.Equal(other.end)
}

func (period Period) String() string {
	return fmt.Sprintf("%v - %v", Clock(period.start), Clock(period.end))
}

// Contains reports whether other lies entirely within period
func (period Period) Contains(other Period) bool {
	return !period.start.After(other.start) && !period.end.Before(other.end)
}

func (period Period) ContainsTime(t time.Time) bool {
	return !t.Before(period.start) && t.Before(period.end)
}

func (period Period) ContainsTimeInclusive(t time.Time) bool {
	return !t.Before(period.start) && !t.After(period.end)
}

// Overlaps reports whether both periods share some positive stretch of time; touching ends do not count
func (period Period) Overlaps(other Period) bool {
	latestStart := period.start
	if other.start.After(latestStart) {
		latestStart = other.start
	}
	earliestEnd := period.end
	if other.end.Before(earliestEnd) {
		earliestEnd = other.end
	}
	return latestStart.Before(earliestEnd)
}

// Split divides the period into parts contiguous sub-periods of equal tick count; the last one absorbs the remainder
func (period Period) Split(parts int) ([]Period, error) {
	composition := period.Composition()
	ticks := len(composition) - 1
	if parts <= 0 || parts > ticks {
		return nil, fmt.Errorf("%w: %v parts for %v ticks", ErrTooManyParts, parts, ticks)
	}

	size := ticks / parts
	split := make([]Period, 0, parts)
	for i := range parts {
		end := composition[len(composition)-1]
		if i < parts-1 {
			end = composition[(i+1)*size]
		}
		split = append(split, Period{start: composition[i*size], end: end})
	}
	return split, nil
}

// Overlap reports whether the windows of a and b strictly overlap
func Overlap(a, b Windowed) bool {
	return a.Window().Overlaps(b.Window())
}

// Covers reports whether the window of a fully contains the window of b
func Covers(a, b Windowed) bool {
	return a.Window().Contains(b.Window())
}
