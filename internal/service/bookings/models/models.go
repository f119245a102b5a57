package models

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// Request модели

// CancelBookingRequest запрос на отмену бронирования
type CancelBookingRequest struct {
	UserID             int64   `json:"-"`
	CancellationReason *string `json:"cancellationReason,omitempty"`
}

// UpdateStatusRequest запрос на смену статуса бронирования
type UpdateStatusRequest struct {
	UserID int64  `json:"-"`
	Status string `json:"status"`
}

// EmployeeDayRequest запрос бронирований сотрудника на дату (обе таблицы)
type EmployeeDayRequest struct {
	EmployeeID       int64
	Date             time.Time // календарная дата в таймзоне салона
	IncludeCancelled bool
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID                 int64     `json:"id"`
	Kind               string    `json:"kind"`
	SalonID            int64     `json:"salonId"`
	EmployeeID         int64     `json:"employeeId"`
	ServiceID          int64     `json:"serviceId"`
	UserID             int64     `json:"userId"`
	StartAt            time.Time `json:"startAt"`
	EndAt              time.Time `json:"endAt"`
	DurationMinutes    int       `json:"durationMinutes"`
	Status             string    `json:"status"`
	Notes              *string   `json:"notes,omitempty"`
	CancellationReason *string   `json:"cancellationReason,omitempty"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	return &BookingResponse{
		ID:                 b.ID,
		Kind:               string(b.Kind),
		SalonID:            b.SalonID,
		EmployeeID:         b.EmployeeID,
		ServiceID:          b.ServiceID,
		UserID:             b.UserID,
		StartAt:            b.StartAt,
		EndAt:              b.EndAt,
		DurationMinutes:    int(b.EndAt.Sub(b.StartAt) / time.Minute),
		Status:             string(b.Status),
		Notes:              b.Notes,
		CancellationReason: b.CancellationReason,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, b := range bookings {
		if item := FromDomainBooking(b); item != nil {
			resp.Bookings = append(resp.Bookings, *item)
		}
	}

	return resp
}
