package timeline

import (
	"fmt"
	"time"
)

// Tick is the atomic unit every period is quantized into
const Tick = 30 * time.Minute

const (
	clockLayout = "03:04 PM"
	dayLayout   = "2006-01-02"
	hourLayout  = "15:04"
)

// ParseDay parses an operating day in "2006-01-02" form
func ParseDay(day string) (time.Time, error) {
	parsed, err := time.Parse(dayLayout, day)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid day %q: %w", day, err)
	}
	return parsed, nil
}

// At anchors a "15:04" wall-clock value on the given day
func At(day time.Time, clock string) (time.Time, error) {
	parsed, err := time.Parse(hourLayout, clock)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid clock value %q: %w", clock, err)
	}
	return time.Date(day.Year(), day.Month(), day.Day(), parsed.Hour(), parsed.Minute(), 0, 0, day.Location()), nil
}

// Clock formats t the way periods are printed
func Clock(t time.Time) string {
	return t.Format(clockLayout)
}

// Ticks returns how many ticks are needed to span d, rounding up
func Ticks(d time.Duration) int {
	ticks := int(d / Tick)
	if d%Tick > 0 {
		ticks++
	}
	return ticks
}
