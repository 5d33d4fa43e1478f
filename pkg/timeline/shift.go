package timeline

import "time"

const longShiftThreshold = 5 * time.Hour

// Shift is the working window of a single staff member
type Shift struct {
	Period
}

func NewShift(start, end time.Time) (Shift, error) {
	period, err := NewPeriod(start, end)
	if err != nil {
		return Shift{}, err
	}
	return Shift{Period: period}, nil
}

// BreakLength is one hour for shifts longer than five hours, half an hour otherwise
func (shift Shift) BreakLength() time.Duration {
	if shift.Duration() > longShiftThreshold {
		return time.Hour
	}
	return 30 * time.Minute
}

// PossibleBreaks lists every break window, aligned on ticks, that fits inside the shift
func (shift Shift) PossibleBreaks() []Period {
	length := shift.BreakLength()
	breaks := make([]Period, 0)
	for end := shift.Start().Add(length); !end.After(shift.End()); end = end.Add(Tick) {
		breaks = append(breaks, Period{start: end.Add(-length), end: end})
	}
	return breaks
}
