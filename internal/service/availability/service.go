package availability

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	catalogRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/catalog"
	employeeRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/employee"
)

// Service движок доступности: списки слотов, ближайший слот, автоподбор сотрудника
// и авторитетная проверка интервала перед записью
type Service struct {
	catalogRepo  CatalogRepository
	employeeRepo EmployeeRepository
	holidayRepo  HolidayRepository
	settings     SettingsProvider
	ledger       BookingLedger
	cache        SlotsCache
	metrics      MetricsRecorder
	cfg          Config
	timeProvider TimeProvider
	logger       Logger

	// invalidations растёт при каждой инвалидации; список, посчитанный до неё, не сохраняется в кэш
	invalidationMu sync.RWMutex
	invalidations  uint64
}

// NewService создает новый экземпляр сервиса доступности
func NewService(
	catalogRepo CatalogRepository,
	employeeRepo EmployeeRepository,
	holidayRepo HolidayRepository,
	settings SettingsProvider,
	ledger BookingLedger,
	cache SlotsCache,
	metrics MetricsRecorder,
	cfg Config,
	logger Logger,
) *Service {
	if cfg.HorizonDays <= 0 {
		cfg.HorizonDays = domain.DefaultHorizonDays
	}
	if metrics == nil {
		metrics = noopMetrics{}
	}
	return &Service{
		catalogRepo:  catalogRepo,
		employeeRepo: employeeRepo,
		holidayRepo:  holidayRepo,
		settings:     settings,
		ledger:       ledger,
		cache:        cache,
		metrics:      metrics,
		cfg:          cfg,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// ListSlots возвращает свободные времена начала на дату по возрастанию.
// Без сотрудника - объединение по всем подходящим сотрудникам без указания, кто свободен.
func (s *Service) ListSlots(ctx context.Context, req *ListSlotsRequest) ([]time.Time, error) {
	s.logger.Info("ListSlots: salon=%d, service=%d, employee=%v, date=%s",
		req.SalonID, req.ServiceID, formatOptionalID(req.EmployeeID), req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateListSlotsRequest(req); err != nil {
		s.logger.Warn("ListSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Услуга, салон и (если указан) сотрудник
	q, err := s.resolveQuery(ctx, req.SalonID, req.ServiceID, req.EmployeeID)
	if err != nil {
		return nil, err
	}

	// 3. Дата в таймзоне салона
	date := time.Date(req.Date.Year(), req.Date.Month(), req.Date.Day(), 0, 0, 0, 0, q.salon.loc)

	slots, err := s.slotsForDay(ctx, q, date)
	if err != nil {
		return nil, err
	}

	s.logger.Info("ListSlots: found %d slots for service=%d on %s", len(slots), req.ServiceID, date.Format(domain.DateFormat))
	return slots, nil
}

// NearestSlot ищет первый слот не раньше preferredAt в пределах горизонта.
// Возвращает nil, если горизонт исчерпан.
func (s *Service) NearestSlot(ctx context.Context, req *NearestSlotRequest) (*time.Time, error) {
	// 1. Валидация входных данных
	if err := validateNearestSlotRequest(req); err != nil {
		s.logger.Warn("NearestSlot: validation failed: %v", err)
		return nil, err
	}

	preferred := s.timeProvider.Now()
	if req.PreferredAt != nil {
		preferred = *req.PreferredAt
	}

	s.logger.Info("NearestSlot: salon=%d, service=%d, employee=%v, from=%s",
		req.SalonID, req.ServiceID, formatOptionalID(req.EmployeeID), preferred.Format(time.RFC3339))

	// 2. Услуга, салон и (если указан) сотрудник
	q, err := s.resolveQuery(ctx, req.SalonID, req.ServiceID, req.EmployeeID)
	if err != nil {
		return nil, err
	}

	// 3. Перебираем дни от даты preferredAt в таймзоне салона
	firstDay := domain.DayStart(preferred, q.salon.loc)
	for i := 0; i < s.cfg.HorizonDays; i++ {
		day := firstDay.AddDate(0, 0, i)

		slots, err := s.slotsForDay(ctx, q, day)
		if err != nil {
			return nil, err
		}

		for _, slot := range slots {
			// В первый день отбрасываем слоты раньше preferredAt
			if i == 0 && slot.Before(preferred) {
				continue
			}
			found := slot
			s.logger.Info("NearestSlot: found %s for service=%d", found.Format(time.RFC3339), req.ServiceID)
			return &found, nil
		}
	}

	s.logger.Info("NearestSlot: no slot within %d days for service=%d", s.cfg.HorizonDays, req.ServiceID)
	return nil, nil
}

// FindAvailableEmployee возвращает первого по возрастанию ID подходящего сотрудника,
// у которого интервал свободен. nil - никто не свободен.
func (s *Service) FindAvailableEmployee(ctx context.Context, req *FindEmployeeRequest) (*int64, error) {
	s.logger.Info("FindAvailableEmployee: salon=%d, service=%d, start=%s",
		req.SalonID, req.ServiceID, req.StartAt.Format(time.RFC3339))

	// 1. Валидация входных данных
	if err := validateFindEmployeeRequest(req); err != nil {
		s.logger.Warn("FindAvailableEmployee: validation failed: %v", err)
		return nil, err
	}

	// 2. Услуга и длительность
	service, err := s.GetService(ctx, req.SalonID, req.ServiceID)
	if err != nil {
		return nil, err
	}
	duration := service.DurationMinutes
	if req.DurationMinutes != nil {
		duration = *req.DurationMinutes
	}

	// 3. Настройки салона
	salon, err := s.loadSalon(ctx, req.SalonID)
	if err != nil {
		return nil, err
	}

	// 4. Подходящие сотрудники в детерминированном порядке
	employees, err := s.eligibleEmployees(ctx, req.SalonID, req.ServiceID)
	if err != nil {
		return nil, err
	}

	for _, employee := range employees {
		ok, err := s.slotFits(ctx, employee, salon, req.StartAt, duration, nil)
		if err != nil {
			return nil, err
		}
		if ok {
			s.logger.Info("FindAvailableEmployee: assigned employee=%d", employee.ID)
			id := employee.ID
			return &id, nil
		}
	}

	s.logger.Info("FindAvailableEmployee: no free employee among %d for service=%d", len(employees), req.ServiceID)
	return nil, nil
}

// IsSlotAvailable авторитетная проверка без кэша: окно, перерыв, праздник и журнал бронирований.
// Единственная проверка, которой можно доверять в момент записи.
func (s *Service) IsSlotAvailable(ctx context.Context, req *SlotCheckRequest) (bool, error) {
	// 1. Валидация входных данных
	if err := validateSlotCheckRequest(req); err != nil {
		s.logger.Warn("IsSlotAvailable: validation failed: %v", err)
		return false, err
	}

	// 2. Сотрудник (салон берём из него)
	employee, err := s.getEmployee(ctx, req.EmployeeID)
	if err != nil {
		return false, err
	}
	if !employee.IsActive {
		s.logger.Info("IsSlotAvailable: employee=%d is inactive", employee.ID)
		return false, nil
	}

	// 3. Настройки салона
	salon, err := s.loadSalon(ctx, employee.SalonID)
	if err != nil {
		return false, err
	}

	ok, err := s.slotFits(ctx, employee, salon, req.StartAt, req.DurationMinutes, req.Exclude)
	if err != nil {
		return false, err
	}

	s.logger.Info("IsSlotAvailable: employee=%d, start=%s, duration=%d -> %t",
		req.EmployeeID, req.StartAt.Format(time.RFC3339), req.DurationMinutes, ok)
	return ok, nil
}

// EnsureEligible проверяет, что услуга и сотрудник принадлежат салону и сотрудник её оказывает
func (s *Service) EnsureEligible(ctx context.Context, salonID, serviceID, employeeID int64) error {
	if _, err := s.GetService(ctx, salonID, serviceID); err != nil {
		return err
	}
	_, err := s.eligibleEmployee(ctx, salonID, serviceID, employeeID)
	return err
}

// GetService получает услугу салона
func (s *Service) GetService(ctx context.Context, salonID, serviceID int64) (*domain.Service, error) {
	service, err := s.catalogRepo.GetServiceByID(ctx, serviceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			s.logger.Warn("GetService: service id=%d not found", serviceID)
			return nil, ErrServiceNotFound
		}
		s.logger.Error("GetService: failed to get service id=%d: %v", serviceID, err)
		return nil, storageError("failed to get service", err)
	}
	if service.SalonID != salonID {
		s.logger.Warn("GetService: service id=%d belongs to salon=%d, not %d", serviceID, service.SalonID, salonID)
		return nil, ErrServiceNotFound
	}
	if service.DurationMinutes <= 0 {
		s.logger.Error("GetService: service id=%d has non-positive duration %d", serviceID, service.DurationMinutes)
		return nil, fmt.Errorf("%w: service has invalid duration", ErrInternal)
	}
	return service, nil
}

// slotQuery разрешённые параметры запроса слотов
type slotQuery struct {
	salonID  int64
	service  *domain.Service
	employee *domain.Employee // nil = любой подходящий
	salon    *salonContext
}

func (s *Service) resolveQuery(ctx context.Context, salonID, serviceID int64, employeeID *int64) (*slotQuery, error) {
	service, err := s.GetService(ctx, salonID, serviceID)
	if err != nil {
		return nil, err
	}

	q := &slotQuery{salonID: salonID, service: service}
	if employeeID != nil {
		q.employee, err = s.eligibleEmployee(ctx, salonID, serviceID, *employeeID)
		if err != nil {
			return nil, err
		}
	}

	q.salon, err = s.loadSalon(ctx, salonID)
	if err != nil {
		return nil, err
	}
	return q, nil
}

// slotsForDay слоты на один день (date - полночь в таймзоне салона), через кэш
func (s *Service) slotsForDay(ctx context.Context, q *slotQuery, date time.Time) ([]time.Time, error) {
	key := s.cacheKey(q, date)
	if cached, ok := s.cachedSlots(ctx, key); ok {
		return inLocation(cached, q.salon.loc), nil
	}
	generation := s.invalidationGeneration()

	employees := []*domain.Employee{q.employee}
	if q.employee == nil {
		var err error
		employees, err = s.eligibleEmployees(ctx, q.salonID, q.service.ID)
		if err != nil {
			return nil, err
		}
	}

	result := make([]time.Time, 0)
	if closure := q.salon.calendar.IsClosed(date); closure.Closed {
		s.logger.Info("slotsForDay: salon=%d closed on %s (%s)", q.salonID, date.Format(domain.DateFormat), closure.Name)
	} else {
		perEmployee := make([][]time.Time, 0, len(employees))
		for _, employee := range employees {
			slots, err := s.employeeSlots(ctx, employee, q.service.DurationMinutes, date)
			if err != nil {
				return nil, err
			}
			perEmployee = append(perEmployee, slots)
		}
		result = mergeSlots(perEmployee...)
	}

	deps := make([]domain.EmployeeDate, 0, len(employees))
	for _, employee := range employees {
		deps = append(deps, domain.EmployeeDate{EmployeeID: employee.ID, Date: date.Format(domain.DateFormat)})
	}
	s.storeSlots(ctx, key, result, deps, generation)

	return result, nil
}

// employeeSlots свободные слоты одного сотрудника на день: генерация + один запрос к журналу
func (s *Service) employeeSlots(ctx context.Context, employee *domain.Employee, duration int, date time.Time) ([]time.Time, error) {
	window, err := s.window(ctx, employee.ID, date.Weekday())
	if err != nil {
		return nil, err
	}
	if window == nil {
		return nil, nil
	}

	candidates := GenerateSlots(*window, duration, s.cfg.SlotGranularityMinutes)
	if len(candidates) == 0 {
		return nil, nil
	}

	dayStart := atMinute(date, window.Hours.From)
	dayEnd := atMinute(date, window.Hours.To)
	entries, err := s.ledger.ActiveOverlapping(ctx, employee.ID, dayStart, dayEnd, nil)
	if err != nil {
		s.logger.Error("employeeSlots: failed to read ledger for employee=%d: %v", employee.ID, err)
		return nil, storageError("failed to read bookings", err)
	}

	free := make([]time.Time, 0, len(candidates))
	length := time.Duration(duration) * time.Minute
	for _, minute := range candidates {
		start := atMinute(date, minute)
		if isFree(entries, start, start.Add(length)) {
			free = append(free, start)
		}
	}
	return free, nil
}

// slotFits проверка одного интервала для сотрудника
func (s *Service) slotFits(
	ctx context.Context,
	employee *domain.Employee,
	salon *salonContext,
	start time.Time,
	duration int,
	exclude *domain.BookingRef,
) (bool, error) {
	local := start.In(salon.loc)

	if closure := salon.calendar.IsClosed(local); closure.Closed {
		return false, nil
	}

	window, err := s.window(ctx, employee.ID, local.Weekday())
	if err != nil {
		return false, err
	}
	if window == nil {
		return false, nil
	}

	startMinute := local.Hour()*60 + local.Minute()
	if !window.Contains(domain.MinuteRange{From: startMinute, To: startMinute + duration}) {
		return false, nil
	}

	end := start.Add(time.Duration(duration) * time.Minute)
	entries, err := s.ledger.ActiveOverlapping(ctx, employee.ID, start, end, exclude)
	if err != nil {
		s.logger.Error("slotFits: failed to read ledger for employee=%d: %v", employee.ID, err)
		return false, storageError("failed to read bookings", err)
	}

	return isFree(entries, start, end), nil
}

func (s *Service) getEmployee(ctx context.Context, employeeID int64) (*domain.Employee, error) {
	employee, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, employeeRepo.ErrEmployeeNotFound) {
			s.logger.Warn("getEmployee: employee id=%d not found", employeeID)
			return nil, ErrEmployeeNotFound
		}
		s.logger.Error("getEmployee: failed to get employee id=%d: %v", employeeID, err)
		return nil, storageError("failed to get employee", err)
	}
	return employee, nil
}

func (s *Service) eligibleEmployee(ctx context.Context, salonID, serviceID, employeeID int64) (*domain.Employee, error) {
	employee, err := s.getEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if employee.SalonID != salonID {
		s.logger.Warn("eligibleEmployee: employee id=%d belongs to salon=%d, not %d", employeeID, employee.SalonID, salonID)
		return nil, ErrEmployeeNotFound
	}
	if !employee.IsActive {
		s.logger.Warn("eligibleEmployee: employee id=%d is inactive", employeeID)
		return nil, ErrEmployeeNotEligible
	}

	ok, err := s.employeeRepo.IsEligible(ctx, employeeID, serviceID)
	if err != nil {
		s.logger.Error("eligibleEmployee: failed to check eligibility employee=%d service=%d: %v", employeeID, serviceID, err)
		return nil, storageError("failed to check eligibility", err)
	}
	if !ok {
		s.logger.Warn("eligibleEmployee: employee id=%d does not provide service=%d", employeeID, serviceID)
		return nil, ErrEmployeeNotEligible
	}
	return employee, nil
}

// eligibleEmployees активные сотрудники салона для услуги по возрастанию ID
func (s *Service) eligibleEmployees(ctx context.Context, salonID, serviceID int64) ([]*domain.Employee, error) {
	all, err := s.employeeRepo.ListEligibleForService(ctx, serviceID)
	if err != nil {
		s.logger.Error("eligibleEmployees: failed to list employees for service=%d: %v", serviceID, err)
		return nil, storageError("failed to list employees", err)
	}

	employees := make([]*domain.Employee, 0, len(all))
	for _, e := range all {
		if e.SalonID == salonID && e.IsActive {
			employees = append(employees, e)
		}
	}
	return employees, nil
}

func inLocation(slots []time.Time, loc *time.Location) []time.Time {
	out := make([]time.Time, len(slots))
	for i, slot := range slots {
		out[i] = slot.In(loc)
	}
	return out
}

func formatOptionalID(id *int64) string {
	if id == nil {
		return "any"
	}
	return fmt.Sprintf("%d", *id)
}
