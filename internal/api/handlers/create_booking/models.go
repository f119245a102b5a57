package create_booking

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	createBooking "github.com/m04kA/SMC-AvailabilityService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	Kind       string    `json:"kind"` // client | staff
	SalonID    int64     `json:"salonId"`
	ServiceID  int64     `json:"serviceId"`
	EmployeeID *int64    `json:"employeeId,omitempty"` // null = автоподбор
	StartAt    time.Time `json:"startAt"`
	Notes      *string   `json:"notes,omitempty"`
	Status     *string   `json:"status,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID              int64     `json:"id"`
	Kind            string    `json:"kind"`
	SalonID         int64     `json:"salonId"`
	EmployeeID      int64     `json:"employeeId"`
	ServiceID       int64     `json:"serviceId"`
	UserID          int64     `json:"userId"`
	StartAt         time.Time `json:"startAt"`
	EndAt           time.Time `json:"endAt"`
	DurationMinutes int       `json:"durationMinutes"`
	Status          string    `json:"status"`
	Notes           *string   `json:"notes,omitempty"`
	AutoAssigned    bool      `json:"autoAssigned"`
	CreatedAt       string    `json:"createdAt"`
	UpdatedAt       string    `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(userID int64) (*createBooking.Request, error) {
	kind, err := domain.ParseBookingKind(r.Kind)
	if err != nil {
		return nil, err
	}

	req := &createBooking.Request{
		Kind:       kind,
		UserID:     userID,
		SalonID:    r.SalonID,
		ServiceID:  r.ServiceID,
		EmployeeID: r.EmployeeID,
		StartAt:    r.StartAt,
		Notes:      r.Notes,
	}

	if r.Status != nil {
		status, err := domain.ParseBookingStatus(*r.Status)
		if err != nil {
			return nil, err
		}
		req.Status = &status
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:              resp.ID,
		Kind:            string(resp.Kind),
		SalonID:         resp.SalonID,
		EmployeeID:      resp.EmployeeID,
		ServiceID:       resp.ServiceID,
		UserID:          resp.UserID,
		StartAt:         resp.StartAt,
		EndAt:           resp.EndAt,
		DurationMinutes: resp.DurationMinutes,
		Status:          string(resp.Status),
		Notes:           resp.Notes,
		AutoAssigned:    resp.AutoAssigned,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
