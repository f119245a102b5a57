package reschedule_booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("reschedule_booking: booking not found")

	// ErrNotReschedulable возвращается для отменённых и завершённых бронирований
	ErrNotReschedulable = errors.New("reschedule_booking: booking cannot be rescheduled in its current status")

	// ErrEmployeeNotFound возвращается, когда новый сотрудник не найден в салоне
	ErrEmployeeNotFound = errors.New("reschedule_booking: employee not found")

	// ErrEmployeeNotEligible возвращается, когда новый сотрудник не оказывает услугу
	ErrEmployeeNotEligible = errors.New("reschedule_booking: employee is not eligible for service")

	// ErrStartInPast возвращается при переносе на прошедшее время
	ErrStartInPast = errors.New("reschedule_booking: start time is in the past")

	// ErrTooLateToBook возвращается, когда перенос нарушает minBookingNoticeMinutes
	ErrTooLateToBook = errors.New("reschedule_booking: too late to book this slot")

	// ErrDateTooFarInFuture возвращается, когда дата превышает ограничение advanceBookingDays
	ErrDateTooFarInFuture = errors.New("reschedule_booking: date is too far in the future")

	// ErrSlotNotAvailable возвращается, когда новый интервал занят или вне рабочего окна
	ErrSlotNotAvailable = errors.New("reschedule_booking: slot is not available")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reschedule_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("reschedule_booking: internal error")
)
