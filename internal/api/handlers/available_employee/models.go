package available_employee

import "time"

// AvailableEmployeeResponse HTTP response model; employeeId = null, если свободных нет
type AvailableEmployeeResponse struct {
	SalonID    int64     `json:"salonId"`
	ServiceID  int64     `json:"serviceId"`
	StartAt    time.Time `json:"startAt"`
	EmployeeID *int64    `json:"employeeId"`
}
