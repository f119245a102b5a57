package availability

import (
	"context"
	"io"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	slotsCache "github.com/m04kA/SMC-AvailabilityService/internal/infra/cache/slots"
	catalogRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/catalog"
	employeeRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/employee"
	"github.com/m04kA/SMC-AvailabilityService/pkg/logger"
	"github.com/m04kA/SMC-AvailabilityService/pkg/ptr"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

type fakeCatalog struct {
	services map[int64]*domain.Service
	err      error
}

func (f *fakeCatalog) GetServiceByID(_ context.Context, id int64) (*domain.Service, error) {
	if f.err != nil {
		return nil, f.err
	}
	s, ok := f.services[id]
	if !ok {
		return nil, catalogRepo.ErrServiceNotFound
	}
	return s, nil
}

type fakeEmployees struct {
	employees map[int64]*domain.Employee
	eligible  map[int64][]int64 // serviceID -> ID сотрудников
	schedules map[int64]map[time.Weekday]*domain.ScheduleEntry
}

func (f *fakeEmployees) GetByID(_ context.Context, id int64) (*domain.Employee, error) {
	e, ok := f.employees[id]
	if !ok {
		return nil, employeeRepo.ErrEmployeeNotFound
	}
	return e, nil
}

func (f *fakeEmployees) ListEligibleForService(_ context.Context, serviceID int64) ([]*domain.Employee, error) {
	ids := append([]int64(nil), f.eligible[serviceID]...)
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make([]*domain.Employee, 0, len(ids))
	for _, id := range ids {
		if e := f.employees[id]; e != nil && e.IsActive {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeEmployees) IsEligible(_ context.Context, employeeID, serviceID int64) (bool, error) {
	for _, id := range f.eligible[serviceID] {
		if id == employeeID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeEmployees) GetScheduleEntry(_ context.Context, employeeID int64, weekday time.Weekday) (*domain.ScheduleEntry, error) {
	entry, ok := f.schedules[employeeID][weekday]
	if !ok {
		return nil, employeeRepo.ErrScheduleNotFound
	}
	return entry, nil
}

func (f *fakeEmployees) setSchedule(employeeID int64, weekday time.Weekday, start, end string, brk ...string) {
	if f.schedules[employeeID] == nil {
		f.schedules[employeeID] = make(map[time.Weekday]*domain.ScheduleEntry)
	}
	entry := &domain.ScheduleEntry{
		EmployeeID: employeeID,
		Weekday:    weekday,
		Start:      ptr.Ptr(types.TimeString(start)),
		End:        ptr.Ptr(types.TimeString(end)),
	}
	if len(brk) == 2 {
		entry.BreakStart = ptr.Ptr(types.TimeString(brk[0]))
		entry.BreakEnd = ptr.Ptr(types.TimeString(brk[1]))
	}
	f.schedules[employeeID][weekday] = entry
}

type fakeHolidays struct {
	holidays []domain.Holiday
}

func (f *fakeHolidays) ListBySalonAndKind(_ context.Context, salonID int64, kind domain.HolidayKind) ([]domain.Holiday, error) {
	out := make([]domain.Holiday, 0)
	for _, h := range f.holidays {
		if h.SalonID == salonID && h.Kind == kind {
			out = append(out, h)
		}
	}
	return out, nil
}

type fakeSettings struct {
	settings map[int64]*domain.SalonSettings
}

func (f *fakeSettings) Resolve(_ context.Context, salonID int64) (*domain.SalonSettings, error) {
	if s, ok := f.settings[salonID]; ok {
		return s, nil
	}
	return domain.DefaultSalonSettings(salonID, "UTC", domain.DefaultMinBookingNoticeMinutes), nil
}

type fakeLedger struct {
	mu       sync.Mutex
	bookings []*domain.Booking
	calls    int
	err      error
	// afterRead вызывается один раз после первого чтения, уже без блокировки
	afterRead func()
}

func (f *fakeLedger) ActiveOverlapping(_ context.Context, employeeID int64, from, to time.Time, exclude *domain.BookingRef) ([]domain.LedgerEntry, error) {
	out, err := f.read(employeeID, from, to, exclude)

	f.mu.Lock()
	hook := f.afterRead
	f.afterRead = nil
	f.mu.Unlock()
	if hook != nil {
		hook()
	}
	return out, err
}

func (f *fakeLedger) read(employeeID int64, from, to time.Time, exclude *domain.BookingRef) ([]domain.LedgerEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls++
	if f.err != nil {
		return nil, f.err
	}

	out := make([]domain.LedgerEntry, 0)
	for _, b := range f.bookings {
		if b.EmployeeID != employeeID || !b.IsActive() {
			continue
		}
		if exclude != nil && b.Ref() == *exclude {
			continue
		}
		if b.StartAt.Before(to) && b.EndAt.After(from) {
			out = append(out, domain.LedgerEntry{ID: b.ID, Kind: b.Kind, StartAt: b.StartAt, EndAt: b.EndAt})
		}
	}
	return out, nil
}

func (f *fakeLedger) add(b *domain.Booking) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.bookings = append(f.bookings, b)
}

func (f *fakeLedger) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

const (
	salonID   int64 = 1
	serviceID int64 = 10
	emp1      int64 = 1
	emp2      int64 = 2
)

// понедельник 2025-03-03
var monday = time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC)

type fixture struct {
	svc       *Service
	catalog   *fakeCatalog
	employees *fakeEmployees
	holidays  *fakeHolidays
	settings  *fakeSettings
	ledger    *fakeLedger
	cache     *slotsCache.MemoryCache
}

// newFixture: салон 1 соблюдает "standard" праздники (1 января), услуга 10 длится 30 минут,
// сотрудники 1 и 2 работают в понедельник 09:00-18:00 с перерывом 12:00-13:00.
func newFixture(t *testing.T) *fixture {
	t.Helper()

	standard := domain.HolidayKindStandard
	f := &fixture{
		catalog: &fakeCatalog{services: map[int64]*domain.Service{
			serviceID: {ID: serviceID, SalonID: salonID, Name: "Haircut", DurationMinutes: 30},
			20:        {ID: 20, SalonID: 2, Name: "Other salon", DurationMinutes: 30},
		}},
		employees: &fakeEmployees{
			employees: map[int64]*domain.Employee{
				emp1: {ID: emp1, SalonID: salonID, Name: "Anna", IsActive: true},
				emp2: {ID: emp2, SalonID: salonID, Name: "Boris", IsActive: true},
				3:    {ID: 3, SalonID: salonID, Name: "Vera", IsActive: false},
				4:    {ID: 4, SalonID: 2, Name: "Elsewhere", IsActive: true},
				5:    {ID: 5, SalonID: salonID, Name: "Colorist", IsActive: true},
			},
			eligible:  map[int64][]int64{serviceID: {emp2, emp1, 3}},
			schedules: map[int64]map[time.Weekday]*domain.ScheduleEntry{},
		},
		holidays: &fakeHolidays{holidays: []domain.Holiday{
			{ID: 1, SalonID: salonID, Month: time.January, Day: 1, Kind: domain.HolidayKindStandard, Name: "New Year"},
			{ID: 2, SalonID: salonID, Month: time.March, Day: 3, Kind: domain.HolidayKindCustom, Name: "Salon anniversary"},
		}},
		settings: &fakeSettings{settings: map[int64]*domain.SalonSettings{
			salonID: {SalonID: salonID, HolidayPolicy: &standard, Timezone: "UTC"},
		}},
		ledger: &fakeLedger{},
		cache:  slotsCache.NewMemoryCache(5 * time.Minute),
	}

	for _, id := range []int64{emp1, emp2, 3} {
		f.employees.setSchedule(id, time.Monday, "09:00", "18:00", "12:00", "13:00")
		f.employees.setSchedule(id, time.Wednesday, "09:00", "18:00", "12:00", "13:00")
	}

	f.svc = NewService(
		f.catalog,
		f.employees,
		f.holidays,
		f.settings,
		f.ledger,
		f.cache,
		nil,
		Config{SlotGranularityMinutes: 30, HorizonDays: 30},
		logger.NewWithWriter(io.Discard, "error"),
	)
	return f
}

func at(day time.Time, hour, minute int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, day.Location())
}

func booking(id, employeeID int64, start time.Time, minutes int, status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{
		ID:         id,
		Kind:       domain.BookingKindClient,
		SalonID:    salonID,
		EmployeeID: employeeID,
		ServiceID:  serviceID,
		StartAt:    start,
		EndAt:      start.Add(time.Duration(minutes) * time.Minute),
		Status:     status,
	}
}

func clock(times []time.Time) []string {
	out := make([]string, len(times))
	for i, t := range times {
		out[i] = t.Format("15:04")
	}
	return out
}
