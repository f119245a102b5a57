package reschedule_booking

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// Request модель запроса на перенос бронирования
type Request struct {
	UserID     int64              // автор изменения
	Kind       domain.BookingKind // вид переносимого бронирования
	BookingID  int64              // ID бронирования
	StartAt    time.Time          // новое начало
	EmployeeID *int64             // nil = тот же сотрудник
}

// Response перенесённое бронирование и прежний интервал
type Response struct {
	Booking            *domain.Booking
	PreviousEmployeeID int64
	PreviousStartAt    time.Time
	PreviousEndAt      time.Time
}
