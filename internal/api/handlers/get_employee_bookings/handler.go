package get_employee_bookings

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/bookings"
)

const (
	msgInvalidEmployeeID = "некорректный ID сотрудника"
	msgMissingDate       = "дата обязательна"
	msgInvalidParams     = "некорректные параметры запроса"
	msgEmployeeNotFound  = "сотрудник не найден"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/employees/{employeeId}/bookings
// Query params: date (required), includeCancelled (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	employeeID, err := handlers.PathID(r, "employeeId")
	if err != nil {
		h.logger.Warn("GET /employees/{id}/bookings - Invalid employee ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEmployeeID)
		return
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /employees/{id}/bookings - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	serviceReq, err := ToServiceRequest(employeeID, dateStr, r.URL.Query().Get("includeCancelled"))
	if err != nil {
		h.logger.Warn("GET /employees/{id}/bookings - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.service.ListEmployeeDay(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrEmployeeNotFound):
			h.logger.Warn("GET /employees/{id}/bookings - Employee not found: employee_id=%d", employeeID)
			handlers.RespondNotFound(w, msgEmployeeNotFound)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /employees/{id}/bookings - Invalid parameters: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /employees/{id}/bookings - Failed to get bookings: employee_id=%d, error=%v",
				employeeID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /employees/{id}/bookings - Bookings retrieved successfully: employee_id=%d, date=%s, count=%d",
		employeeID, dateStr, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result)
}
