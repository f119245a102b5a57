package reschedule_booking

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/bookings/models"
	rescheduleBooking "github.com/m04kA/SMC-AvailabilityService/internal/usecase/reschedule_booking"
)

// RescheduleBookingRequest HTTP request model
type RescheduleBookingRequest struct {
	StartAt    time.Time `json:"startAt"`
	EmployeeID *int64    `json:"employeeId,omitempty"` // null = тот же сотрудник
}

// RescheduleBookingResponse HTTP response model
type RescheduleBookingResponse struct {
	Booking  *models.BookingResponse `json:"booking"`
	Previous PreviousInterval        `json:"previous"`
}

// PreviousInterval интервал до переноса
type PreviousInterval struct {
	EmployeeID int64     `json:"employeeId"`
	StartAt    time.Time `json:"startAt"`
	EndAt      time.Time `json:"endAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *RescheduleBookingRequest) ToUseCaseRequest(userID int64, ref domain.BookingRef) *rescheduleBooking.Request {
	return &rescheduleBooking.Request{
		UserID:     userID,
		Kind:       ref.Kind,
		BookingID:  ref.ID,
		StartAt:    r.StartAt,
		EmployeeID: r.EmployeeID,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *rescheduleBooking.Response) *RescheduleBookingResponse {
	return &RescheduleBookingResponse{
		Booking: models.FromDomainBooking(resp.Booking),
		Previous: PreviousInterval{
			EmployeeID: resp.PreviousEmployeeID,
			StartAt:    resp.PreviousStartAt,
			EndAt:      resp.PreviousEndAt,
		},
	}
}
