package update_salon_settings

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	"github.com/m04kA/SMC-AvailabilityService/internal/api/middleware"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/settings"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/settings/models"
)

const (
	msgInvalidSalonID     = "некорректный ID салона"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidData        = "некорректные данные настроек"
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

// Handle PUT /api/v1/salons/{salonId}/settings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	salonID, err := handlers.PathID(r, "salonId")
	if err != nil {
		h.logger.Warn("PUT /salons/{id}/settings - Invalid salon ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSalonID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /salons/{id}/settings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req models.UpdateSettingsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /salons/{id}/settings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.SalonID = salonID
	req.UserID = userID

	result, err := h.service.Update(r.Context(), &req)
	if err != nil {
		if errors.Is(err, settings.ErrInvalidInput) {
			h.logger.Warn("PUT /salons/{id}/settings - Invalid data: %v", err)
			handlers.RespondBadRequest(w, msgInvalidData)
			return
		}

		h.logger.Error("PUT /salons/{id}/settings - Failed to update settings: salon_id=%d, error=%v", salonID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("PUT /salons/{id}/settings - Settings updated successfully: salon_id=%d, user_id=%d", salonID, userID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
