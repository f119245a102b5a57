package create_booking

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// Request модель запроса на создание бронирования
type Request struct {
	Kind       domain.BookingKind    // client или staff
	UserID     int64                 // клиент (client) или автор записи (staff)
	SalonID    int64                 // ID салона
	ServiceID  int64                 // ID услуги
	EmployeeID *int64                // nil = первый свободный подходящий сотрудник
	StartAt    time.Time             // Начало интервала
	Notes      *string               // Заметки (опционально)
	Status     *domain.BookingStatus // Начальный статус; nil = по виду бронирования
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID              int64
	Kind            domain.BookingKind
	SalonID         int64
	EmployeeID      int64
	ServiceID       int64
	UserID          int64
	StartAt         time.Time
	EndAt           time.Time
	DurationMinutes int
	Status          domain.BookingStatus
	Notes           *string
	AutoAssigned    bool // сотрудник подобран автоматически

	CreatedAt time.Time
	UpdatedAt time.Time
}

func newResponse(b *domain.Booking, autoAssigned bool) *Response {
	return &Response{
		ID:              b.ID,
		Kind:            b.Kind,
		SalonID:         b.SalonID,
		EmployeeID:      b.EmployeeID,
		ServiceID:       b.ServiceID,
		UserID:          b.UserID,
		StartAt:         b.StartAt,
		EndAt:           b.EndAt,
		DurationMinutes: int(b.EndAt.Sub(b.StartAt) / time.Minute),
		Status:          b.Status,
		Notes:           b.Notes,
		AutoAssigned:    autoAssigned,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}

// initialStatus начальный статус по умолчанию: клиентская запись ждёт подтверждения
func initialStatus(kind domain.BookingKind) domain.BookingStatus {
	if kind == domain.BookingKindStaff {
		return domain.StatusConfirmed
	}
	return domain.StatusRequested
}
