package nearest_slot

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
	msgInvalidPreferredAt  = "некорректный формат preferredAt, ожидается RFC 3339"
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

// Handle GET /api/v1/salons/{salonId}/services/{serviceId}/nearest-slot
// Query params: employeeId, preferredAt (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	salonID, err := handlers.PathID(r, "salonId")
	if err != nil {
		h.logger.Warn("GET /salons/{id}/services/{id}/nearest-slot - Invalid salon ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSalonID)
		return
	}

	serviceID, err := handlers.PathID(r, "serviceId")
	if err != nil {
		h.logger.Warn("GET /salons/{id}/services/{id}/nearest-slot - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	employeeID, err := handlers.QueryOptionalID(r, "employeeId")
	if err != nil {
		h.logger.Warn("GET /salons/{id}/services/{id}/nearest-slot - Invalid employee ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEmployeeID)
		return
	}

	preferredAt, err := handlers.QueryOptionalTime(r, "preferredAt")
	if err != nil {
		h.logger.Warn("GET /salons/{id}/services/{id}/nearest-slot - Invalid preferredAt: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPreferredAt)
		return
	}

	slot, err := h.service.NearestSlot(r.Context(), &availability.NearestSlotRequest{
		SalonID:     salonID,
		ServiceID:   serviceID,
		EmployeeID:  employeeID,
		PreferredAt: preferredAt,
	})
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrInvalidInput):
			h.logger.Warn("GET /salons/{id}/services/{id}/nearest-slot - Invalid params: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		case errors.Is(err, availability.ErrServiceNotFound):
			h.logger.Warn("GET /salons/{id}/services/{id}/nearest-slot - Service not found: salon_id=%d, service_id=%d",
				salonID, serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, availability.ErrEmployeeNotFound):
			h.logger.Warn("GET /salons/{id}/services/{id}/nearest-slot - Employee not found: salon_id=%d", salonID)
			handlers.RespondNotFound(w, msgEmployeeNotFound)

		case errors.Is(err, availability.ErrEmployeeNotEligible):
			h.logger.Warn("GET /salons/{id}/services/{id}/nearest-slot - Employee not eligible: service_id=%d", serviceID)
			handlers.RespondUnprocessable(w, msgEmployeeNotEligible)

		default:
			h.logger.Error("GET /salons/{id}/services/{id}/nearest-slot - Failed to find slot: salon_id=%d, service_id=%d, error=%v",
				salonID, serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /salons/{id}/services/{id}/nearest-slot - Search finished: salon_id=%d, service_id=%d, found=%t",
		salonID, serviceID, slot != nil)
	handlers.RespondJSON(w, http.StatusOK, &NearestSlotResponse{
		SalonID:    salonID,
		ServiceID:  serviceID,
		EmployeeID: employeeID,
		StartAt:    slot,
	})
}
