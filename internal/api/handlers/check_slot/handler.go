package check_slot

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/availability"
)

const (
	msgInvalidEmployeeID = "некорректный ID сотрудника"
	msgMissingStartAt    = "startAt обязателен"
	msgInvalidStartAt    = "некорректный формат startAt, ожидается RFC 3339"
	msgMissingDuration   = "durationMinutes обязателен"
	msgInvalidDuration   = "некорректная длительность"
	msgInvalidExclude    = "excludeId и excludeKind задаются вместе"
	msgInvalidParams     = "некорректные параметры запроса"
	msgEmployeeNotFound  = "сотрудник не найден"
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

// Handle GET /api/v1/employees/{employeeId}/slot-check
// Query params: startAt, durationMinutes (required), excludeId + excludeKind (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	employeeID, err := handlers.PathID(r, "employeeId")
	if err != nil {
		h.logger.Warn("GET /employees/{id}/slot-check - Invalid employee ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEmployeeID)
		return
	}

	startAt, err := handlers.QueryOptionalTime(r, "startAt")
	if err != nil {
		h.logger.Warn("GET /employees/{id}/slot-check - Invalid startAt: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStartAt)
		return
	}
	if startAt == nil {
		handlers.RespondBadRequest(w, msgMissingStartAt)
		return
	}

	duration, err := handlers.QueryOptionalInt(r, "durationMinutes")
	if err != nil {
		h.logger.Warn("GET /employees/{id}/slot-check - Invalid duration: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDuration)
		return
	}
	if duration == nil {
		handlers.RespondBadRequest(w, msgMissingDuration)
		return
	}

	exclude, err := parseExclude(r)
	if err != nil {
		h.logger.Warn("GET /employees/{id}/slot-check - Invalid exclude: %v", err)
		handlers.RespondBadRequest(w, msgInvalidExclude)
		return
	}

	available, err := h.service.IsSlotAvailable(r.Context(), &availability.SlotCheckRequest{
		EmployeeID:      employeeID,
		StartAt:         *startAt,
		DurationMinutes: *duration,
		Exclude:         exclude,
	})
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrInvalidInput):
			h.logger.Warn("GET /employees/{id}/slot-check - Invalid params: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		case errors.Is(err, availability.ErrEmployeeNotFound):
			h.logger.Warn("GET /employees/{id}/slot-check - Employee not found: employee_id=%d", employeeID)
			handlers.RespondNotFound(w, msgEmployeeNotFound)

		default:
			h.logger.Error("GET /employees/{id}/slot-check - Failed to check slot: employee_id=%d, error=%v",
				employeeID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /employees/{id}/slot-check - Slot checked: employee_id=%d, available=%t", employeeID, available)
	handlers.RespondJSON(w, http.StatusOK, &SlotCheckResponse{
		EmployeeID:      employeeID,
		StartAt:         *startAt,
		DurationMinutes: *duration,
		Available:       available,
	})
}

func parseExclude(r *http.Request) (*domain.BookingRef, error) {
	id, err := handlers.QueryOptionalID(r, "excludeId")
	if err != nil {
		return nil, err
	}
	rawKind := r.URL.Query().Get("excludeKind")

	if id == nil && rawKind == "" {
		return nil, nil
	}
	if id == nil {
		return nil, errors.New("excludeKind without excludeId")
	}

	kind, err := domain.ParseBookingKind(rawKind)
	if err != nil {
		return nil, err
	}
	return &domain.BookingRef{ID: *id, Kind: kind}, nil
}
