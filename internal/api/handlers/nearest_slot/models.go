package nearest_slot

import "time"

// NearestSlotResponse HTTP response model; startAt = null, если в горизонте слотов нет
type NearestSlotResponse struct {
	SalonID    int64      `json:"salonId"`
	ServiceID  int64      `json:"serviceId"`
	EmployeeID *int64     `json:"employeeId,omitempty"`
	StartAt    *time.Time `json:"startAt"`
}
