package timeline

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidPeriod = errors.New("end time needs to be later than start time")
	ErrTooManyParts  = errors.New("cannot divide time period into that many parts")
)

// TimeError reports a period whose bounds are not strictly ordered
type TimeError struct {
	Start time.Time
	End   time.Time
}

func (err *TimeError) Error() string {
	return fmt.Sprintf("%v: %v - %v", ErrInvalidPeriod, err.Start.Format(clockLayout), err.End.Format(clockLayout))
}

func (err *TimeError) Unwrap() error {
	return ErrInvalidPeriod
}
