package update_booking_status

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	"github.com/m04kA/SMC-AvailabilityService/internal/api/middleware"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/bookings"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/bookings/models"
)

const (
	msgInvalidBookingRef  = "некорректный вид или ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidStatus      = "некорректный статус"
	msgNotFound           = "бронирование не найдено"
	msgInvalidTransition  = "недопустимая смена статуса"
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

// Handle PATCH /api/v1/bookings/{kind}/{bookingId}/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	ref, err := handlers.PathBookingRef(r)
	if err != nil {
		h.logger.Warn("PATCH /bookings/{kind}/{id}/status - Invalid booking ref: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingRef)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /bookings/{kind}/{id}/status - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req models.UpdateStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /bookings/{kind}/{id}/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.UserID = userID

	booking, err := h.service.UpdateStatus(r.Context(), ref, &req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/{kind}/{id}/status - Booking not found: kind=%s, booking_id=%d", ref.Kind, ref.ID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrInvalidTransition):
			h.logger.Warn("PATCH /bookings/{kind}/{id}/status - %v", err)
			handlers.RespondConflict(w, msgInvalidTransition)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("PATCH /bookings/{kind}/{id}/status - Invalid status: %v", err)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("PATCH /bookings/{kind}/{id}/status - Failed to update status: kind=%s, booking_id=%d, error=%v",
				ref.Kind, ref.ID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/{kind}/{id}/status - Status updated: kind=%s, booking_id=%d, status=%s, user_id=%d",
		ref.Kind, ref.ID, booking.Status, userID)
	handlers.RespondJSON(w, http.StatusOK, booking)
}
