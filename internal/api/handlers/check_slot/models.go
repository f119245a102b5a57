package check_slot

import "time"

// SlotCheckResponse HTTP response model
type SlotCheckResponse struct {
	EmployeeID      int64     `json:"employeeId"`
	StartAt         time.Time `json:"startAt"`
	DurationMinutes int       `json:"durationMinutes"`
	Available       bool      `json:"available"`
}
