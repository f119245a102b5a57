package reschedule_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	"github.com/m04kA/SMC-AvailabilityService/internal/api/middleware"
	rescheduleBooking "github.com/m04kA/SMC-AvailabilityService/internal/usecase/reschedule_booking"
)

const (
	msgInvalidBookingRef   = "некорректный вид или ID бронирования"
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgMissingUserID       = "отсутствует ID пользователя"
	msgInvalidData         = "некорректные данные переноса"
	msgNotFound            = "бронирование не найдено"
	msgNotReschedulable    = "бронирование в текущем статусе нельзя перенести"
	msgSlotNotAvailable    = "выбранный временной слот недоступен"
	msgEmployeeNotFound    = "сотрудник не найден"
	msgEmployeeNotEligible = "сотрудник не оказывает эту услугу"
	msgStartInPast         = "нельзя перенести на прошедшее время"
	msgTooLateToBook       = "слишком поздно для бронирования этого слота"
	msgDateTooFar          = "дата бронирования слишком далеко в будущем"
)

type Handler struct {
	useCase RescheduleBookingUseCase
	logger  Logger
}

func NewHandler(useCase RescheduleBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/bookings/{kind}/{bookingId}/reschedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	ref, err := handlers.PathBookingRef(r)
	if err != nil {
		h.logger.Warn("PATCH /bookings/{kind}/{id}/reschedule - Invalid booking ref: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingRef)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /bookings/{kind}/{id}/reschedule - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req RescheduleBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /bookings/{kind}/{id}/reschedule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(userID, ref))
	if err != nil {
		switch {
		case errors.Is(err, rescheduleBooking.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/{kind}/{id}/reschedule - Booking not found: kind=%s, booking_id=%d", ref.Kind, ref.ID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, rescheduleBooking.ErrNotReschedulable):
			h.logger.Warn("PATCH /bookings/{kind}/{id}/reschedule - Not reschedulable: kind=%s, booking_id=%d", ref.Kind, ref.ID)
			handlers.RespondConflict(w, msgNotReschedulable)

		case errors.Is(err, rescheduleBooking.ErrSlotNotAvailable):
			h.logger.Warn("PATCH /bookings/{kind}/{id}/reschedule - Slot not available: kind=%s, booking_id=%d", ref.Kind, ref.ID)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, rescheduleBooking.ErrEmployeeNotFound):
			h.logger.Warn("PATCH /bookings/{kind}/{id}/reschedule - Employee not found: booking_id=%d", ref.ID)
			handlers.RespondNotFound(w, msgEmployeeNotFound)

		case errors.Is(err, rescheduleBooking.ErrEmployeeNotEligible):
			h.logger.Warn("PATCH /bookings/{kind}/{id}/reschedule - Employee not eligible: booking_id=%d", ref.ID)
			handlers.RespondUnprocessable(w, msgEmployeeNotEligible)

		case errors.Is(err, rescheduleBooking.ErrStartInPast):
			handlers.RespondBadRequest(w, msgStartInPast)

		case errors.Is(err, rescheduleBooking.ErrTooLateToBook):
			handlers.RespondBadRequest(w, msgTooLateToBook)

		case errors.Is(err, rescheduleBooking.ErrDateTooFarInFuture):
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, rescheduleBooking.ErrInvalidInput):
			h.logger.Warn("PATCH /bookings/{kind}/{id}/reschedule - Invalid data: %v", err)
			handlers.RespondBadRequest(w, msgInvalidData)

		default:
			h.logger.Error("PATCH /bookings/{kind}/{id}/reschedule - Failed to reschedule: kind=%s, booking_id=%d, error=%v",
				ref.Kind, ref.ID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/{kind}/{id}/reschedule - Booking moved: kind=%s, booking_id=%d, employee_id=%d, user_id=%d",
		ref.Kind, ref.ID, result.Booking.EmployeeID, userID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
