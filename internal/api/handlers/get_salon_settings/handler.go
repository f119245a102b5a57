package get_salon_settings

import (
	"net/http"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
)

const (
	msgInvalidSalonID = "некорректный ID салона"
)

type Handler struct {
	service SettingsService
	logger  Logger
}

func NewHandler(service SettingsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/salons/{salonId}/settings
// Публичный endpoint; для салона без сохранённых настроек отдаются значения по умолчанию
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	salonID, err := handlers.PathID(r, "salonId")
	if err != nil {
		h.logger.Warn("GET /salons/{id}/settings - Invalid salon ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSalonID)
		return
	}

	result, err := h.service.Get(r.Context(), salonID)
	if err != nil {
		h.logger.Error("GET /salons/{id}/settings - Failed to get settings: salon_id=%d, error=%v", salonID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /salons/{id}/settings - Settings retrieved successfully: salon_id=%d, is_default=%t",
		salonID, result.IsDefault)
	handlers.RespondJSON(w, http.StatusOK, result)
}
