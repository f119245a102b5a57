package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/booking"
	employeeRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/employee"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/bookings/models"
)

// Service сервис для чтения бронирований и смены их статуса
type Service struct {
	bookingRepo  BookingRepository
	employeeRepo EmployeeRepository
	settings     SettingsProvider
	slots        SlotsInvalidator
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	employeeRepo EmployeeRepository,
	settings SettingsProvider,
	slots SlotsInvalidator,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		employeeRepo: employeeRepo,
		settings:     settings,
		slots:        slots,
		logger:       logger,
	}
}

// GetByID получает бронирование по виду и ID
func (s *Service) GetByID(ctx context.Context, ref domain.BookingRef) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching %s booking id=%d", ref.Kind, ref.ID)

	booking, err := s.getBooking(ctx, "GetByID", ref)
	if err != nil {
		return nil, err
	}

	return models.FromDomainBooking(booking), nil
}

// ListEmployeeDay возвращает бронирования сотрудника обоих видов за календарный день салона
func (s *Service) ListEmployeeDay(ctx context.Context, req *models.EmployeeDayRequest) (*models.BookingListResponse, error) {
	s.logger.Info("ListEmployeeDay: employee=%d, date=%s, includeCancelled=%t",
		req.EmployeeID, req.Date.Format(domain.DateFormat), req.IncludeCancelled)

	if req.EmployeeID <= 0 {
		return nil, fmt.Errorf("%w: employeeID must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	// 1. Сотрудник и таймзона его салона
	employee, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		if errors.Is(err, employeeRepo.ErrEmployeeNotFound) {
			s.logger.Warn("ListEmployeeDay: employee id=%d not found", req.EmployeeID)
			return nil, ErrEmployeeNotFound
		}
		s.logger.Error("ListEmployeeDay: failed to get employee id=%d: %v", req.EmployeeID, err)
		return nil, fmt.Errorf("%w: ListEmployeeDay - repository error: %v", ErrInternal, err)
	}

	settings, err := s.settings.Resolve(ctx, employee.SalonID)
	if err != nil {
		s.logger.Error("ListEmployeeDay: failed to resolve settings for salon=%d: %v", employee.SalonID, err)
		return nil, fmt.Errorf("%w: failed to resolve settings: %v", ErrInternal, err)
	}
	loc, err := settings.Location()
	if err != nil {
		s.logger.Error("ListEmployeeDay: salon=%d has invalid timezone %q", employee.SalonID, settings.Timezone)
		return nil, fmt.Errorf("%w: invalid salon timezone: %v", ErrInternal, err)
	}

	// 2. Границы дня в таймзоне салона
	from := time.Date(req.Date.Year(), req.Date.Month(), req.Date.Day(), 0, 0, 0, 0, loc)

	bookings, err := s.bookingRepo.ListByEmployee(ctx, domain.EmployeeBookingsFilter{
		EmployeeID:       req.EmployeeID,
		From:             from,
		To:               from.AddDate(0, 0, 1),
		IncludeCancelled: req.IncludeCancelled,
	})
	if err != nil {
		s.logger.Error("ListEmployeeDay: repository error for employee=%d: %v", req.EmployeeID, err)
		return nil, fmt.Errorf("%w: ListEmployeeDay - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListEmployeeDay: found %d bookings for employee=%d", len(bookings), req.EmployeeID)
	return models.FromDomainBookingList(bookings), nil
}

// Cancel отменяет бронирование и освобождает его интервал
func (s *Service) Cancel(ctx context.Context, ref domain.BookingRef, req *models.CancelBookingRequest) (*models.BookingResponse, error) {
	s.logger.Info("Cancel: cancelling %s booking id=%d by user=%d", ref.Kind, ref.ID, req.UserID)

	if req.CancellationReason != nil && len(*req.CancellationReason) > domain.MaxCancellationReasonLength {
		return nil, fmt.Errorf("%w: cancellationReason must not exceed %d characters",
			ErrInvalidInput, domain.MaxCancellationReasonLength)
	}

	booking, err := s.getBooking(ctx, "Cancel", ref)
	if err != nil {
		return nil, err
	}

	// Проверяем, можно ли отменить бронирование
	if !booking.Status.CanTransitionTo(domain.StatusCancelled) {
		s.logger.Warn("Cancel: booking id=%d cannot be cancelled, status=%s", ref.ID, booking.Status)
		return nil, ErrCannotCancel
	}

	if err := s.setStatus(ctx, "Cancel", booking, domain.StatusCancelled, req.CancellationReason, ErrCannotCancel); err != nil {
		return nil, err
	}

	booking.CancellationReason = req.CancellationReason
	s.logger.Info("Cancel: successfully cancelled booking id=%d", ref.ID)
	return models.FromDomainBooking(booking), nil
}

// UpdateStatus переводит бронирование по жизненному циклу
// REQUESTED -> CONFIRMED|COMPLETED|CANCELLED, CONFIRMED -> COMPLETED|CANCELLED
func (s *Service) UpdateStatus(ctx context.Context, ref domain.BookingRef, req *models.UpdateStatusRequest) (*models.BookingResponse, error) {
	s.logger.Info("UpdateStatus: updating %s booking id=%d to status=%s by user=%d",
		ref.Kind, ref.ID, req.Status, req.UserID)

	// Валидируем и конвертируем статус
	newStatus, err := domain.ParseBookingStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for booking id=%d", req.Status, ref.ID)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	booking, err := s.getBooking(ctx, "UpdateStatus", ref)
	if err != nil {
		return nil, err
	}

	if !booking.Status.CanTransitionTo(newStatus) {
		s.logger.Warn("UpdateStatus: transition %s -> %s is not allowed for booking id=%d",
			booking.Status, newStatus, ref.ID)
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, booking.Status, newStatus)
	}

	if err := s.setStatus(ctx, "UpdateStatus", booking, newStatus, nil, ErrInvalidTransition); err != nil {
		return nil, err
	}

	s.logger.Info("UpdateStatus: successfully updated booking id=%d to status=%s", ref.ID, newStatus)
	return models.FromDomainBooking(booking), nil
}

// Вспомогательные методы

func (s *Service) getBooking(ctx context.Context, op string, ref domain.BookingRef) (*domain.Booking, error) {
	if ref.ID <= 0 {
		return nil, fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}
	if _, err := domain.ParseBookingKind(string(ref.Kind)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	booking, err := s.bookingRepo.GetByID(ctx, ref.Kind, ref.ID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%d not found", op, ref.ID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", op, ref.ID, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return booking, nil
}

// setStatus сохраняет статус; если бронирование перестало занимать интервал, вытесняет кэш.
// Обновление условное по прочитанному статусу: проигравший конкурентный запрос получает staleErr.
func (s *Service) setStatus(
	ctx context.Context,
	op string,
	booking *domain.Booking,
	status domain.BookingStatus,
	reason *string,
	staleErr error,
) error {
	if err := s.bookingRepo.UpdateStatus(ctx, booking.Ref(), booking.Status, status, reason); err != nil {
		if errors.Is(err, bookingRepo.ErrStaleBooking) {
			s.logger.Warn("%s: booking id=%d changed concurrently, expected status=%s", op, booking.ID, booking.Status)
			return fmt.Errorf("%w: booking status changed concurrently", staleErr)
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", op, booking.ID, err)
		return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	wasActive := booking.IsActive()
	booking.Status = status
	if wasActive != booking.IsActive() {
		s.slots.InvalidateBookings(ctx, booking)
	}
	return nil
}
