package cancel_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	"github.com/m04kA/SMC-AvailabilityService/internal/api/middleware"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/bookings"
)

const (
	msgInvalidBookingRef  = "некорректный вид или ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidData        = "некорректная причина отмены"
	msgNotFound           = "бронирование не найдено"
	msgCannotCancel       = "бронирование не может быть отменено"
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

// Handle PATCH /api/v1/bookings/{kind}/{bookingId}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	ref, err := handlers.PathBookingRef(r)
	if err != nil {
		h.logger.Warn("PATCH /bookings/{kind}/{id}/cancel - Invalid booking ref: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingRef)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /bookings/{kind}/{id}/cancel - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Декодируем body (причина отмены опциональна)
	var req CancelBookingRequest
	if r.ContentLength != 0 {
		if err := handlers.DecodeJSON(r, &req); err != nil {
			h.logger.Warn("PATCH /bookings/{kind}/{id}/cancel - Invalid request body: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)
			return
		}
	}

	booking, err := h.service.Cancel(r.Context(), ref, req.ToServiceRequest(userID))
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/{kind}/{id}/cancel - Booking not found: kind=%s, booking_id=%d", ref.Kind, ref.ID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrCannotCancel):
			h.logger.Warn("PATCH /bookings/{kind}/{id}/cancel - Cannot cancel: kind=%s, booking_id=%d", ref.Kind, ref.ID)
			handlers.RespondConflict(w, msgCannotCancel)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("PATCH /bookings/{kind}/{id}/cancel - Invalid data: %v", err)
			handlers.RespondBadRequest(w, msgInvalidData)

		default:
			h.logger.Error("PATCH /bookings/{kind}/{id}/cancel - Failed to cancel booking: kind=%s, booking_id=%d, error=%v",
				ref.Kind, ref.ID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/{kind}/{id}/cancel - Booking cancelled successfully: kind=%s, booking_id=%d, user_id=%d",
		ref.Kind, ref.ID, userID)
	handlers.RespondJSON(w, http.StatusOK, booking)
}
