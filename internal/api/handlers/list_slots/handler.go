package list_slots

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/availability"
)

const (
	msgInvalidSalonID      = "некорректный ID салона"
	msgInvalidServiceID    = "некорректный ID услуги"
	msgInvalidEmployeeID   = "некорректный ID сотрудника"
	msgMissingDate         = "дата обязательна"
	msgInvalidDate         = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidParams       = "некорректные параметры запроса"
	msgServiceNotFound     = "услуга не найдена"
	msgEmployeeNotFound    = "сотрудник не найден"
	msgEmployeeNotEligible = "сотрудник не оказывает эту услугу"
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

// Handle GET /api/v1/salons/{salonId}/services/{serviceId}/slots
// Query params: date (required, YYYY-MM-DD), employeeId (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	salonID, err := handlers.PathID(r, "salonId")
	if err != nil {
		h.logger.Warn("GET /salons/{id}/services/{id}/slots - Invalid salon ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSalonID)
		return
	}

	serviceID, err := handlers.PathID(r, "serviceId")
	if err != nil {
		h.logger.Warn("GET /salons/{id}/services/{id}/slots - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	employeeID, err := handlers.QueryOptionalID(r, "employeeId")
	if err != nil {
		h.logger.Warn("GET /salons/{id}/services/{id}/slots - Invalid employee ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEmployeeID)
		return
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /salons/{id}/services/{id}/slots - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	date, err := handlers.ParseDate(dateStr)
	if err != nil {
		h.logger.Warn("GET /salons/{id}/services/{id}/slots - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	slots, err := h.service.ListSlots(r.Context(), &availability.ListSlotsRequest{
		SalonID:    salonID,
		ServiceID:  serviceID,
		EmployeeID: employeeID,
		Date:       date,
	})
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrInvalidInput):
			h.logger.Warn("GET /salons/{id}/services/{id}/slots - Invalid params: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		case errors.Is(err, availability.ErrServiceNotFound):
			h.logger.Warn("GET /salons/{id}/services/{id}/slots - Service not found: salon_id=%d, service_id=%d",
				salonID, serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, availability.ErrEmployeeNotFound):
			h.logger.Warn("GET /salons/{id}/services/{id}/slots - Employee not found: salon_id=%d", salonID)
			handlers.RespondNotFound(w, msgEmployeeNotFound)

		case errors.Is(err, availability.ErrEmployeeNotEligible):
			h.logger.Warn("GET /salons/{id}/services/{id}/slots - Employee not eligible: service_id=%d", serviceID)
			handlers.RespondUnprocessable(w, msgEmployeeNotEligible)

		default:
			h.logger.Error("GET /salons/{id}/services/{id}/slots - Failed to list slots: salon_id=%d, service_id=%d, error=%v",
				salonID, serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /salons/{id}/services/{id}/slots - Slots retrieved successfully: salon_id=%d, service_id=%d, slots_count=%d",
		salonID, serviceID, len(slots))
	handlers.RespondJSON(w, http.StatusOK, NewSlotsResponse(salonID, serviceID, employeeID, date, slots))
}
