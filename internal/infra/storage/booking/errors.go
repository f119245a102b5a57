package booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking.repository: booking not found")

	// ErrStaleBooking условное обновление не нашло строку в ожидаемом состоянии:
	// бронирование изменено конкурентным запросом (или удалено)
	ErrStaleBooking = errors.New("booking.repository: booking changed concurrently")

	// ErrOverlap нарушено ограничение исключения: пересечение активных бронирований сотрудника
	ErrOverlap = errors.New("booking.repository: overlapping active booking")

	// ErrUnknownKind возвращается для неизвестного вида бронирования
	ErrUnknownKind = errors.New("booking.repository: unknown booking kind")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("booking.repository: failed to scan row")
)
