package get_employee_bookings

import (
	"strconv"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/bookings/models"
)

// ToServiceRequest формирует запрос к сервису из URL и query параметров
func ToServiceRequest(employeeID int64, dateStr, includeCancelledStr string) (*models.EmployeeDayRequest, error) {
	date, err := handlers.ParseDate(dateStr)
	if err != nil {
		return nil, err
	}

	req := &models.EmployeeDayRequest{
		EmployeeID: employeeID,
		Date:       date,
	}

	// Парсим includeCancelled если указан
	if includeCancelledStr != "" {
		includeCancelled, err := strconv.ParseBool(includeCancelledStr)
		if err != nil {
			return nil, err
		}
		req.IncludeCancelled = includeCancelled
	}

	return req, nil
}
