package available_employee

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/availability"
)

const (
	msgInvalidSalonID   = "некорректный ID салона"
	msgInvalidServiceID = "некорректный ID услуги"
	msgMissingStartAt   = "startAt обязателен"
	msgInvalidStartAt   = "некорректный формат startAt, ожидается RFC 3339"
	msgInvalidDuration  = "некорректная длительность"
	msgInvalidParams    = "некорректные параметры запроса"
	msgServiceNotFound  = "услуга не найдена"
)

type Handler struct {
	service AvailabilityService
	logger  Logger
}

func NewHandler(service AvailabilityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/salons/{salonId}/services/{serviceId}/available-employee
// Query params: startAt (required), durationMinutes (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	salonID, err := handlers.PathID(r, "salonId")
	if err != nil {
		h.logger.Warn("GET /salons/{id}/services/{id}/available-employee - Invalid salon ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSalonID)
		return
	}

	serviceID, err := handlers.PathID(r, "serviceId")
	if err != nil {
		h.logger.Warn("GET /salons/{id}/services/{id}/available-employee - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	startAt, err := handlers.QueryOptionalTime(r, "startAt")
	if err != nil {
		h.logger.Warn("GET /salons/{id}/services/{id}/available-employee - Invalid startAt: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStartAt)
		return
	}
	if startAt == nil {
		h.logger.Warn("GET /salons/{id}/services/{id}/available-employee - Missing startAt")
		handlers.RespondBadRequest(w, msgMissingStartAt)
		return
	}

	duration, err := handlers.QueryOptionalInt(r, "durationMinutes")
	if err != nil {
		h.logger.Warn("GET /salons/{id}/services/{id}/available-employee - Invalid duration: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDuration)
		return
	}

	employeeID, err := h.service.FindAvailableEmployee(r.Context(), &availability.FindEmployeeRequest{
		SalonID:         salonID,
		ServiceID:       serviceID,
		StartAt:         *startAt,
		DurationMinutes: duration,
	})
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrInvalidInput):
			h.logger.Warn("GET /salons/{id}/services/{id}/available-employee - Invalid params: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		case errors.Is(err, availability.ErrServiceNotFound):
			h.logger.Warn("GET /salons/{id}/services/{id}/available-employee - Service not found: salon_id=%d, service_id=%d",
				salonID, serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		default:
			h.logger.Error("GET /salons/{id}/services/{id}/available-employee - Failed to find employee: salon_id=%d, service_id=%d, error=%v",
				salonID, serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /salons/{id}/services/{id}/available-employee - Search finished: salon_id=%d, service_id=%d, found=%t",
		salonID, serviceID, employeeID != nil)
	handlers.RespondJSON(w, http.StatusOK, &AvailableEmployeeResponse{
		SalonID:    salonID,
		ServiceID:  serviceID,
		StartAt:    *startAt,
		EmployeeID: employeeID,
	})
}
