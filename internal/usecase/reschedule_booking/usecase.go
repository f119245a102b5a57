package reschedule_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	bookingRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/availability"
	"github.com/m04kA/SMC-AvailabilityService/pkg/metrics"
	"github.com/m04kA/SMC-AvailabilityService/pkg/txmanager"
)

// UseCase use case для переноса бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	availability AvailabilityService
	settings     SettingsProvider
	txManager    TransactionManager
	metrics      MetricsRecorder
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	availability AvailabilityService,
	settings SettingsProvider,
	txManager TransactionManager,
	metrics MetricsRecorder,
	logger Logger,
) *UseCase {
	if metrics == nil {
		metrics = noopMetrics{}
	}
	return &UseCase{
		bookingRepo:  bookingRepo,
		availability: availability,
		settings:     settings,
		txManager:    txManager,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute переносит бронирование на новый интервал (и, опционально, к другому сотруднику).
// Само бронирование не мешает своему переносу: оно исключается из проверки пересечений.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RescheduleBooking: %s booking id=%d to %s by user=%d",
		req.Kind, req.BookingID, req.StartAt.Format(time.RFC3339), req.UserID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RescheduleBooking: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	// 2. Получаем бронирование
	booking, err := uc.bookingRepo.GetByID(ctx, req.Kind, req.BookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Warn("RescheduleBooking: booking id=%d not found", req.BookingID)
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("RescheduleBooking: failed to get booking id=%d: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
	}

	// 3. Проверяем статус
	if !booking.CanBeRescheduled() {
		uc.logger.Warn("RescheduleBooking: booking id=%d has status %s", booking.ID, booking.Status)
		return nil, ErrNotReschedulable
	}

	// 4. Длительность услуги
	service, err := uc.availability.GetService(ctx, booking.SalonID, booking.ServiceID)
	if err != nil {
		return nil, uc.mapAvailabilityError("get service", err)
	}

	// 5. Новый сотрудник должен оказывать услугу
	targetEmployee := booking.EmployeeID
	if req.EmployeeID != nil && *req.EmployeeID != booking.EmployeeID {
		if err := uc.availability.EnsureEligible(ctx, booking.SalonID, booking.ServiceID, *req.EmployeeID); err != nil {
			return nil, uc.mapAvailabilityError("check eligibility", err)
		}
		targetEmployee = *req.EmployeeID
	}

	// 6. Настройки салона и проверка времени
	settings, err := uc.settings.Resolve(ctx, booking.SalonID)
	if err != nil {
		uc.logger.Error("RescheduleBooking: failed to resolve settings for salon=%d: %v", booking.SalonID, err)
		return nil, fmt.Errorf("%w: failed to resolve settings: %v", ErrInternal, err)
	}
	loc, err := settings.Location()
	if err != nil {
		uc.logger.Error("RescheduleBooking: salon=%d has invalid timezone %q: %v", booking.SalonID, settings.Timezone, err)
		return nil, fmt.Errorf("%w: invalid salon timezone: %v", ErrInternal, err)
	}
	if err := validateTiming(booking.Kind, req.StartAt, now, settings, loc); err != nil {
		uc.logger.Warn("RescheduleBooking: timing validation failed: %v", err)
		return nil, err
	}

	previous := *booking
	moved := *booking
	moved.EmployeeID = targetEmployee
	moved.StartAt = req.StartAt
	moved.EndAt = req.StartAt.Add(service.Duration())

	// 7. Проверка и обновление под блокировкой целевого сотрудника
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		if err := uc.bookingRepo.LockEmployee(txCtx, targetEmployee); err != nil {
			return err
		}

		ref := booking.Ref()
		ok, err := uc.availability.IsSlotAvailable(txCtx, &availability.SlotCheckRequest{
			EmployeeID:      targetEmployee,
			StartAt:         moved.StartAt,
			DurationMinutes: service.DurationMinutes,
			Exclude:         &ref,
		})
		if err != nil {
			return err
		}
		if !ok {
			uc.metrics.IncBookingConflict(metrics.ConflictRecheck)
			return ErrSlotNotAvailable
		}

		return uc.bookingRepo.Reschedule(txCtx, &previous, &moved)
	})
	if err != nil {
		return nil, uc.mapCommitError(err)
	}

	// 8. Вытесняем из кэша и старый, и новый интервал
	uc.availability.InvalidateBookings(ctx, &previous, &moved)

	uc.logger.Info("RescheduleBooking: booking id=%d moved to employee=%d at %s",
		moved.ID, moved.EmployeeID, moved.StartAt.Format(time.RFC3339))

	return &Response{
		Booking:            &moved,
		PreviousEmployeeID: previous.EmployeeID,
		PreviousStartAt:    previous.StartAt,
		PreviousEndAt:      previous.EndAt,
	}, nil
}

func (uc *UseCase) mapCommitError(err error) error {
	switch {
	case errors.Is(err, ErrSlotNotAvailable):
		uc.logger.Warn("RescheduleBooking: slot is not available")
		return ErrSlotNotAvailable
	case errors.Is(err, bookingRepo.ErrOverlap):
		uc.metrics.IncBookingConflict(metrics.ConflictExclusion)
		uc.logger.Warn("RescheduleBooking: rejected by exclusion constraint: %v", err)
		return ErrSlotNotAvailable
	case errors.Is(err, txmanager.ErrSerializationFailure):
		uc.metrics.IncBookingConflict(metrics.ConflictSerialization)
		uc.logger.Warn("RescheduleBooking: serialization failure: %v", err)
		return ErrSlotNotAvailable
	case errors.Is(err, bookingRepo.ErrStaleBooking):
		uc.logger.Warn("RescheduleBooking: booking changed concurrently: %v", err)
		return fmt.Errorf("%w: booking changed concurrently", ErrNotReschedulable)
	default:
		return uc.mapAvailabilityError("commit", err)
	}
}

func (uc *UseCase) mapAvailabilityError(op string, err error) error {
	switch {
	case errors.Is(err, availability.ErrEmployeeNotFound):
		uc.logger.Warn("RescheduleBooking: %s: %v", op, err)
		return ErrEmployeeNotFound
	case errors.Is(err, availability.ErrEmployeeNotEligible):
		uc.logger.Warn("RescheduleBooking: %s: %v", op, err)
		return ErrEmployeeNotEligible
	case errors.Is(err, availability.ErrInvalidInput):
		uc.logger.Warn("RescheduleBooking: %s: %v", op, err)
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	default:
		uc.logger.Error("RescheduleBooking: %s failed: %v", op, err)
		return fmt.Errorf("%w: %s: %v", ErrInternal, op, err)
	}
}
