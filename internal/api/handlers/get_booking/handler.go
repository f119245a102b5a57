package get_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/bookings"
)

const (
	msgInvalidBookingRef = "некорректный вид или ID бронирования"
	msgNotFound          = "бронирование не найдено"
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

// Handle GET /api/v1/bookings/{kind}/{bookingId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	ref, err := handlers.PathBookingRef(r)
	if err != nil {
		h.logger.Warn("GET /bookings/{kind}/{id} - Invalid booking ref: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingRef)
		return
	}

	booking, err := h.service.GetByID(r.Context(), ref)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("GET /bookings/{kind}/{id} - Booking not found: kind=%s, booking_id=%d", ref.Kind, ref.ID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidBookingRef)

		default:
			h.logger.Error("GET /bookings/{kind}/{id} - Failed to get booking: kind=%s, booking_id=%d, error=%v",
				ref.Kind, ref.ID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /bookings/{kind}/{id} - Booking retrieved successfully: kind=%s, booking_id=%d", ref.Kind, ref.ID)
	handlers.RespondJSON(w, http.StatusOK, booking)
}
