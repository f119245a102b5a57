package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/availability"
	"github.com/m04kA/SMC-AvailabilityService/pkg/metrics"
	"github.com/m04kA/SMC-AvailabilityService/pkg/txmanager"
)

// UseCase use case для создания бронирования
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

// Execute выполняет use case создания бронирования.
// Финальная проверка интервала и вставка выполняются в сериализуемой транзакции
// под блокировкой сотрудника, поэтому две конкурентные записи на пересекающиеся
// интервалы не могут быть зафиксированы обе.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: kind=%s, user=%d, salon=%d, service=%d, employee=%v, start=%s",
		req.Kind, req.UserID, req.SalonID, req.ServiceID, optionalID(req.EmployeeID), req.StartAt.Format(time.RFC3339))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем услугу (длительность)
	service, err := uc.availability.GetService(ctx, req.SalonID, req.ServiceID)
	if err != nil {
		return nil, uc.mapAvailabilityError("get service", err)
	}

	// 4. Настройки салона и проверка времени записи
	settings, err := uc.settings.Resolve(ctx, req.SalonID)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to resolve settings for salon=%d: %v", req.SalonID, err)
		return nil, fmt.Errorf("%w: failed to resolve settings: %v", ErrInternal, err)
	}
	loc, err := settings.Location()
	if err != nil {
		uc.logger.Error("CreateBooking: salon=%d has invalid timezone %q: %v", req.SalonID, settings.Timezone, err)
		return nil, fmt.Errorf("%w: invalid salon timezone: %v", ErrInternal, err)
	}
	if err := validateTiming(req.Kind, req.StartAt, now, settings, loc); err != nil {
		uc.logger.Warn("CreateBooking: timing validation failed: %v", err)
		return nil, err
	}

	// 5. Сотрудник: указанный или первый свободный
	employeeID, autoAssigned, err := uc.resolveEmployee(ctx, req)
	if err != nil {
		return nil, err
	}

	status := initialStatus(req.Kind)
	if req.Status != nil {
		status = *req.Status
	}

	booking := &domain.Booking{
		Kind:       req.Kind,
		SalonID:    req.SalonID,
		EmployeeID: employeeID,
		ServiceID:  req.ServiceID,
		UserID:     req.UserID,
		StartAt:    req.StartAt,
		EndAt:      req.StartAt.Add(service.Duration()),
		Status:     status,
		Notes:      req.Notes,
	}

	// Переменная для хранения результата
	var result *domain.Booking

	// 6. Выполняем финальную проверку и запись в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 6.1. Блокируем сотрудника: конкурентные записи к нему ждут здесь
		if err := uc.bookingRepo.LockEmployee(txCtx, employeeID); err != nil {
			return err
		}

		// 6.2. Повторная авторитетная проверка под блокировкой
		ok, err := uc.availability.IsSlotAvailable(txCtx, &availability.SlotCheckRequest{
			EmployeeID:      employeeID,
			StartAt:         booking.StartAt,
			DurationMinutes: service.DurationMinutes,
		})
		if err != nil {
			return err
		}
		if !ok {
			uc.metrics.IncBookingConflict(metrics.ConflictRecheck)
			return ErrSlotNotAvailable
		}

		// 6.3. Сохраняем бронирование
		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			return err
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, uc.mapCommitError(err)
	}

	// 7. Вытесняем из кэша затронутые пары (сотрудник, дата)
	uc.availability.InvalidateBookings(ctx, result)

	uc.logger.Info("CreateBooking: successfully created %s booking id=%d for employee=%d",
		result.Kind, result.ID, result.EmployeeID)

	return newResponse(result, autoAssigned), nil
}

// resolveEmployee проверяет указанного сотрудника или подбирает первого свободного
func (uc *UseCase) resolveEmployee(ctx context.Context, req *Request) (int64, bool, error) {
	if req.EmployeeID != nil {
		if err := uc.availability.EnsureEligible(ctx, req.SalonID, req.ServiceID, *req.EmployeeID); err != nil {
			return 0, false, uc.mapAvailabilityError("check eligibility", err)
		}
		return *req.EmployeeID, false, nil
	}

	id, err := uc.availability.FindAvailableEmployee(ctx, &availability.FindEmployeeRequest{
		SalonID:   req.SalonID,
		ServiceID: req.ServiceID,
		StartAt:   req.StartAt,
	})
	if err != nil {
		return 0, false, uc.mapAvailabilityError("find employee", err)
	}
	if id == nil {
		uc.logger.Warn("CreateBooking: no employee available for service=%d at %s",
			req.ServiceID, req.StartAt.Format(time.RFC3339))
		return 0, false, ErrNoEmployeeAvailable
	}

	uc.logger.Info("CreateBooking: auto-assigned employee=%d", *id)
	return *id, true, nil
}

// mapCommitError переводит ошибки транзакции в ошибки use case.
// Нарушение ограничения исключения и сбой сериализации - это проигранная гонка за интервал.
func (uc *UseCase) mapCommitError(err error) error {
	switch {
	case errors.Is(err, ErrSlotNotAvailable):
		uc.logger.Warn("CreateBooking: slot is no longer available")
		return ErrSlotNotAvailable
	case errors.Is(err, bookingRepo.ErrOverlap):
		uc.metrics.IncBookingConflict(metrics.ConflictExclusion)
		uc.logger.Warn("CreateBooking: rejected by exclusion constraint: %v", err)
		return ErrSlotNotAvailable
	case errors.Is(err, txmanager.ErrSerializationFailure):
		uc.metrics.IncBookingConflict(metrics.ConflictSerialization)
		uc.logger.Warn("CreateBooking: serialization failure: %v", err)
		return ErrSlotNotAvailable
	default:
		return uc.mapAvailabilityError("commit", err)
	}
}

func (uc *UseCase) mapAvailabilityError(op string, err error) error {
	switch {
	case errors.Is(err, availability.ErrServiceNotFound):
		uc.logger.Warn("CreateBooking: %s: %v", op, err)
		return ErrServiceNotFound
	case errors.Is(err, availability.ErrEmployeeNotFound):
		uc.logger.Warn("CreateBooking: %s: %v", op, err)
		return ErrEmployeeNotFound
	case errors.Is(err, availability.ErrEmployeeNotEligible):
		uc.logger.Warn("CreateBooking: %s: %v", op, err)
		return ErrEmployeeNotEligible
	case errors.Is(err, availability.ErrInvalidInput):
		uc.logger.Warn("CreateBooking: %s: %v", op, err)
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	default:
		uc.logger.Error("CreateBooking: %s failed: %v", op, err)
		return fmt.Errorf("%w: %s: %v", ErrInternal, op, err)
	}
}

func optionalID(id *int64) string {
	if id == nil {
		return "auto"
	}
	return fmt.Sprintf("%d", *id)
}
