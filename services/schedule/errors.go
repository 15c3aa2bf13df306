package schedule

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidRange is matched by errors.Is on every InvalidRangeError.
var ErrInvalidRange = errors.New("invalid campaign range")

// InvalidRangeError is returned when the configured start lies after the end.
// No grid is produced in that case.
type InvalidRangeError struct {
	Start time.Time
	End   time.Time
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("invalid campaign range: start %s is after end %s",
		e.Start.Format(time.RFC3339), e.End.Format(time.RFC3339))
}

func (e *InvalidRangeError) Unwrap() error {
	return ErrInvalidRange
}
