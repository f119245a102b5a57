package availability

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AvailabilityService/pkg/txmanager"
)

var (
	// ErrInvalidInput некорректные входные данные (дата, время, длительность, enum)
	ErrInvalidInput = errors.New("availability: invalid input data")

	// ErrServiceNotFound услуга не найдена или принадлежит другому салону
	ErrServiceNotFound = errors.New("availability: service not found")

	// ErrEmployeeNotFound сотрудник не найден или принадлежит другому салону
	ErrEmployeeNotFound = errors.New("availability: employee not found")

	// ErrEmployeeNotEligible сотрудник не оказывает услугу или неактивен
	ErrEmployeeNotEligible = errors.New("availability: employee is not eligible for service")

	// ErrInternal ошибка чтения из хранилища
	ErrInternal = errors.New("availability: internal error")
)

// storageError оборачивает ошибку хранилища в ErrInternal.
// Сбой сериализации сохраняет txmanager.ErrSerializationFailure: внутри транзакции записи это конфликт, а не внутренняя ошибка.
func storageError(msg string, err error) error {
	if errors.Is(err, txmanager.ErrSerializationFailure) {
		return fmt.Errorf("%w: %s: %v", txmanager.ErrSerializationFailure, msg, err)
	}
	return fmt.Errorf("%w: %s: %v", ErrInternal, msg, err)
}
