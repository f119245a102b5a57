package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	"github.com/m04kA/SMC-AvailabilityService/internal/api/middleware"
	createBooking "github.com/m04kA/SMC-AvailabilityService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidKindOrStatus = "некорректный вид или статус бронирования"
	msgMissingUserID       = "отсутствует ID пользователя"
	msgInvalidData         = "некорректные данные бронирования"
	msgSlotNotAvailable    = "выбранный временной слот недоступен"
	msgNoEmployee          = "нет свободных сотрудников на выбранное время"
	msgServiceNotFound     = "услуга не найдена"
	msgEmployeeNotFound    = "сотрудник не найден"
	msgEmployeeNotEligible = "сотрудник не оказывает эту услугу"
	msgStartInPast         = "нельзя записаться на прошедшее время"
	msgTooLateToBook       = "слишком поздно для бронирования этого слота"
	msgDateTooFar          = "дата бронирования слишком далеко в будущем"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом вида и статуса)
	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidKindOrStatus)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrSlotNotAvailable):
			h.logger.Warn("POST /bookings - Slot not available: user_id=%d, salon_id=%d", userID, req.SalonID)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, createBooking.ErrNoEmployeeAvailable):
			h.logger.Warn("POST /bookings - No employee available: user_id=%d, salon_id=%d", userID, req.SalonID)
			handlers.RespondConflict(w, msgNoEmployee)

		case errors.Is(err, createBooking.ErrServiceNotFound):
			h.logger.Warn("POST /bookings - Service not found: salon_id=%d, service_id=%d", req.SalonID, req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createBooking.ErrEmployeeNotFound):
			h.logger.Warn("POST /bookings - Employee not found: salon_id=%d", req.SalonID)
			handlers.RespondNotFound(w, msgEmployeeNotFound)

		case errors.Is(err, createBooking.ErrEmployeeNotEligible):
			h.logger.Warn("POST /bookings - Employee not eligible: service_id=%d", req.ServiceID)
			handlers.RespondUnprocessable(w, msgEmployeeNotEligible)

		case errors.Is(err, createBooking.ErrStartInPast):
			h.logger.Warn("POST /bookings - Start in past: user_id=%d", userID)
			handlers.RespondBadRequest(w, msgStartInPast)

		case errors.Is(err, createBooking.ErrTooLateToBook):
			h.logger.Warn("POST /bookings - Too late to book: user_id=%d, salon_id=%d", userID, req.SalonID)
			handlers.RespondBadRequest(w, msgTooLateToBook)

		case errors.Is(err, createBooking.ErrDateTooFarInFuture):
			h.logger.Warn("POST /bookings - Date too far in future: user_id=%d, salon_id=%d", userID, req.SalonID)
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid data: %v", err)
			handlers.RespondBadRequest(w, msgInvalidData)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: user_id=%d, salon_id=%d, error=%v",
				userID, req.SalonID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, kind=%s, employee_id=%d, user_id=%d",
		result.ID, result.Kind, result.EmployeeID, userID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
