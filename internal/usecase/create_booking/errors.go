package create_booking

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена в салоне
	ErrServiceNotFound = errors.New("create_booking: service not found")

	// ErrEmployeeNotFound возвращается, когда сотрудник не найден в салоне
	ErrEmployeeNotFound = errors.New("create_booking: employee not found")

	// ErrEmployeeNotEligible возвращается, когда сотрудник не оказывает услугу или неактивен
	ErrEmployeeNotEligible = errors.New("create_booking: employee is not eligible for service")

	// ErrStartInPast возвращается при попытке записи на прошедшее время
	ErrStartInPast = errors.New("create_booking: start time is in the past")

	// ErrTooLateToBook возвращается, когда запись нарушает minBookingNoticeMinutes
	ErrTooLateToBook = errors.New("create_booking: too late to book this slot")

	// ErrDateTooFarInFuture возвращается, когда дата превышает ограничение advanceBookingDays
	ErrDateTooFarInFuture = errors.New("create_booking: date is too far in the future")

	// ErrSlotNotAvailable возвращается, когда интервал занят или вне рабочего окна сотрудника
	ErrSlotNotAvailable = errors.New("create_booking: slot is not available")

	// ErrNoEmployeeAvailable возвращается, когда при автоподборе никто не свободен
	ErrNoEmployeeAvailable = errors.New("create_booking: no employee available for this slot")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
