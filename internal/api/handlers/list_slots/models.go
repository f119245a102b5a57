package list_slots

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// SlotsResponse HTTP response model
type SlotsResponse struct {
	Date       string      `json:"date"`
	SalonID    int64       `json:"salonId"`
	ServiceID  int64       `json:"serviceId"`
	EmployeeID *int64      `json:"employeeId,omitempty"`
	Slots      []time.Time `json:"slots"`
}

// NewSlotsResponse собирает ответ; пустой список сериализуется как []
func NewSlotsResponse(salonID, serviceID int64, employeeID *int64, date time.Time, slots []time.Time) *SlotsResponse {
	if slots == nil {
		slots = []time.Time{}
	}
	return &SlotsResponse{
		Date:       date.Format(domain.DateFormat),
		SalonID:    salonID,
		ServiceID:  serviceID,
		EmployeeID: employeeID,
		Slots:      slots,
	}
}
