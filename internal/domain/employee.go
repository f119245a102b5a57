package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// ErrInvalidSchedule stored schedule entry violates start < break.start < break.end < end
var ErrInvalidSchedule = errors.New("domain: invalid schedule entry")

// Employee is a salon staff member who can be booked
type Employee struct {
	ID       int64
	SalonID  int64
	Name     string
	IsActive bool
}

// Service is a bookable salon service. Only its duration matters to availability.
type Service struct {
	ID              int64
	SalonID         int64
	Name            string
	DurationMinutes int
}

// Duration returns the service length
func (s *Service) Duration() time.Duration {
	return time.Duration(s.DurationMinutes) * time.Minute
}

// ScheduleEntry is an employee's working hours for one weekday.
// Weekday follows time.Weekday numbering (0 = Sunday).
// Nil Start or End means the employee does not work that day.
type ScheduleEntry struct {
	EmployeeID int64
	Weekday    time.Weekday
	Start      *types.TimeString
	End        *types.TimeString
	BreakStart *types.TimeString
	BreakEnd   *types.TimeString
}

// MinuteRange is a half-open range [From, To) of minutes since midnight
type MinuteRange struct {
	From int
	To   int
}

// Overlaps reports whether two half-open ranges intersect. Touching ranges do not.
func (r MinuteRange) Overlaps(other MinuteRange) bool {
	return r.From < other.To && other.From < r.To
}

// Length in minutes
func (r MinuteRange) Length() int {
	return r.To - r.From
}

// WorkingWindow is the bookable part of a working day
type WorkingWindow struct {
	Hours MinuteRange
	Break *MinuteRange
}

// Contains reports whether [start, end) lies inside working hours and outside the break
func (w WorkingWindow) Contains(r MinuteRange) bool {
	if r.From < w.Hours.From || r.To > w.Hours.To {
		return false
	}
	if w.Break != nil && r.Overlaps(*w.Break) {
		return false
	}
	return true
}

// Window converts the entry into a WorkingWindow.
// Returns nil, nil for a day off.
func (e *ScheduleEntry) Window() (*WorkingWindow, error) {
	if e == nil || e.Start == nil || e.End == nil {
		return nil, nil
	}

	start, err := e.Start.Minutes()
	if err != nil {
		return nil, fmt.Errorf("%w: start: %v", ErrInvalidSchedule, err)
	}
	end, err := e.End.Minutes()
	if err != nil {
		return nil, fmt.Errorf("%w: end: %v", ErrInvalidSchedule, err)
	}
	if start >= end {
		return nil, fmt.Errorf("%w: start %s is not before end %s", ErrInvalidSchedule, *e.Start, *e.End)
	}

	window := &WorkingWindow{Hours: MinuteRange{From: start, To: end}}

	if e.BreakStart == nil && e.BreakEnd == nil {
		return window, nil
	}
	if e.BreakStart == nil || e.BreakEnd == nil {
		return nil, fmt.Errorf("%w: break must have both start and end", ErrInvalidSchedule)
	}

	breakStart, err := e.BreakStart.Minutes()
	if err != nil {
		return nil, fmt.Errorf("%w: break start: %v", ErrInvalidSchedule, err)
	}
	breakEnd, err := e.BreakEnd.Minutes()
	if err != nil {
		return nil, fmt.Errorf("%w: break end: %v", ErrInvalidSchedule, err)
	}
	if !(start < breakStart && breakStart < breakEnd && breakEnd < end) {
		return nil, fmt.Errorf("%w: break %s-%s is not inside %s-%s",
			ErrInvalidSchedule, *e.BreakStart, *e.BreakEnd, *e.Start, *e.End)
	}

	window.Break = &MinuteRange{From: breakStart, To: breakEnd}
	return window, nil
}
