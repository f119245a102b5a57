package reschedule_booking

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/availability"
	"github.com/m04kA/SMC-AvailabilityService/pkg/logger"
	"github.com/m04kA/SMC-AvailabilityService/pkg/ptr"
)

type fakeRepo struct {
	mu          sync.Mutex
	bookings    map[domain.BookingRef]*domain.Booking
	locked      []int64
	rescheduled []*domain.Booking
	updateErr   error
	// concurrent вызывается под блокировкой перед условным обновлением
	concurrent func(bookings map[domain.BookingRef]*domain.Booking)
}

func (r *fakeRepo) GetByID(_ context.Context, kind domain.BookingKind, id int64) (*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[domain.BookingRef{ID: id, Kind: kind}]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	cp := *b
	return &cp, nil
}

func (r *fakeRepo) Reschedule(_ context.Context, previous, b *domain.Booking) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.concurrent != nil {
		r.concurrent(r.bookings)
	}
	stored, ok := r.bookings[b.Ref()]
	if !ok || stored.Status != previous.Status || stored.EmployeeID != previous.EmployeeID || !stored.StartAt.Equal(previous.StartAt) {
		return bookingRepo.ErrStaleBooking
	}
	cp := *b
	r.bookings[b.Ref()] = &cp
	r.rescheduled = append(r.rescheduled, &cp)
	return nil
}

func (r *fakeRepo) LockEmployee(_ context.Context, employeeID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.locked = append(r.locked, employeeID)
	return nil
}

// fakeAvailability проверяет пересечения прямо по журналу fakeRepo
type fakeAvailability struct {
	repo        *fakeRepo
	eligible    map[int64]bool
	invalidated []*domain.Booking
}

func (f *fakeAvailability) GetService(_ context.Context, salonID, serviceID int64) (*domain.Service, error) {
	return &domain.Service{ID: serviceID, SalonID: salonID, DurationMinutes: 60}, nil
}

func (f *fakeAvailability) EnsureEligible(_ context.Context, _, _ int64, employeeID int64) error {
	if !f.eligible[employeeID] {
		return availability.ErrEmployeeNotEligible
	}
	return nil
}

func (f *fakeAvailability) IsSlotAvailable(_ context.Context, req *availability.SlotCheckRequest) (bool, error) {
	f.repo.mu.Lock()
	defer f.repo.mu.Unlock()

	end := req.StartAt.Add(time.Duration(req.DurationMinutes) * time.Minute)
	for ref, b := range f.repo.bookings {
		if req.Exclude != nil && ref == *req.Exclude {
			continue
		}
		if b.EmployeeID == req.EmployeeID && b.IsActive() && availability.Overlaps(req.StartAt, end, b.StartAt, b.EndAt) {
			return false, nil
		}
	}
	return true, nil
}

func (f *fakeAvailability) InvalidateBookings(_ context.Context, bookings ...*domain.Booking) {
	f.invalidated = append(f.invalidated, bookings...)
}

type passthroughTx struct{}

func (passthroughTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeSettings struct{}

func (fakeSettings) Resolve(_ context.Context, salonID int64) (*domain.SalonSettings, error) {
	return &domain.SalonSettings{SalonID: salonID, Timezone: "UTC", MinBookingNoticeMinutes: 60}, nil
}

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

var (
	now    = time.Date(2025, time.March, 3, 8, 0, 0, 0, time.UTC)
	day    = time.Date(2025, time.March, 4, 0, 0, 0, 0, time.UTC)
	client = domain.BookingRef{ID: 1, Kind: domain.BookingKindClient}
)

func at(hour, minute int) time.Time {
	return day.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
}

func newTestUseCase(t *testing.T) (*UseCase, *fakeRepo, *fakeAvailability) {
	t.Helper()

	repo := &fakeRepo{bookings: map[domain.BookingRef]*domain.Booking{
		client: {
			ID: 1, Kind: domain.BookingKindClient, SalonID: 1, EmployeeID: 1, ServiceID: 10, UserID: 100,
			StartAt: at(10, 0), EndAt: at(11, 0), Status: domain.StatusConfirmed,
		},
		{ID: 1, Kind: domain.BookingKindStaff}: {
			ID: 1, Kind: domain.BookingKindStaff, SalonID: 1, EmployeeID: 1, ServiceID: 10, UserID: 200,
			StartAt: at(14, 0), EndAt: at(15, 0), Status: domain.StatusConfirmed,
		},
		{ID: 2, Kind: domain.BookingKindClient}: {
			ID: 2, Kind: domain.BookingKindClient, SalonID: 1, EmployeeID: 1, ServiceID: 10, UserID: 101,
			StartAt: at(16, 0), EndAt: at(17, 0), Status: domain.StatusCancelled,
		},
	}}
	avail := &fakeAvailability{repo: repo, eligible: map[int64]bool{1: true, 2: true}}

	uc := NewUseCase(repo, avail, fakeSettings{}, passthroughTx{}, nil, logger.NewWithWriter(io.Discard, "error"))
	uc.timeProvider = fixedClock{now}
	return uc, repo, avail
}

func TestExecute_OverlappingOwnInterval(t *testing.T) {
	uc, repo, avail := newTestUseCase(t)

	resp, err := uc.Execute(context.Background(), &Request{
		UserID: 100, Kind: domain.BookingKindClient, BookingID: 1, StartAt: at(10, 30),
	})

	require.NoError(t, err)
	assert.Equal(t, at(10, 30), resp.Booking.StartAt)
	assert.Equal(t, at(11, 30), resp.Booking.EndAt)
	assert.Equal(t, at(10, 0), resp.PreviousStartAt)
	assert.Equal(t, []int64{1}, repo.locked)

	require.Len(t, avail.invalidated, 2)
	assert.Equal(t, at(10, 0), avail.invalidated[0].StartAt)
	assert.Equal(t, at(10, 30), avail.invalidated[1].StartAt)
}

func TestExecute_ToAnotherEmployee(t *testing.T) {
	uc, repo, _ := newTestUseCase(t)

	resp, err := uc.Execute(context.Background(), &Request{
		UserID: 100, Kind: domain.BookingKindClient, BookingID: 1, StartAt: at(14, 0), EmployeeID: ptr.Ptr(int64(2)),
	})

	require.NoError(t, err)
	assert.Equal(t, int64(2), resp.Booking.EmployeeID)
	assert.Equal(t, int64(1), resp.PreviousEmployeeID)
	assert.Equal(t, []int64{2}, repo.locked)
}

func TestExecute_OntoAnotherBooking(t *testing.T) {
	uc, repo, avail := newTestUseCase(t)

	_, err := uc.Execute(context.Background(), &Request{
		UserID: 100, Kind: domain.BookingKindClient, BookingID: 1, StartAt: at(13, 30),
	})

	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.Empty(t, repo.rescheduled)
	assert.Empty(t, avail.invalidated)
}

func TestExecute_OntoCancelledBooking(t *testing.T) {
	uc, _, _ := newTestUseCase(t)

	_, err := uc.Execute(context.Background(), &Request{
		UserID: 100, Kind: domain.BookingKindClient, BookingID: 1, StartAt: at(16, 0),
	})

	assert.NoError(t, err)
}

func TestExecute_Errors(t *testing.T) {
	tests := []struct {
		name    string
		req     *Request
		setup   func(repo *fakeRepo)
		wantErr error
	}{
		{
			name:    "unknown booking",
			req:     &Request{UserID: 100, Kind: domain.BookingKindClient, BookingID: 99, StartAt: at(12, 0)},
			wantErr: ErrBookingNotFound,
		},
		{
			name:    "cancelled booking",
			req:     &Request{UserID: 100, Kind: domain.BookingKindClient, BookingID: 2, StartAt: at(12, 0)},
			wantErr: ErrNotReschedulable,
		},
		{
			name:    "not eligible employee",
			req:     &Request{UserID: 100, Kind: domain.BookingKindClient, BookingID: 1, StartAt: at(12, 0), EmployeeID: ptr.Ptr(int64(3))},
			wantErr: ErrEmployeeNotEligible,
		},
		{
			name:    "client inside notice",
			req:     &Request{UserID: 100, Kind: domain.BookingKindClient, BookingID: 1, StartAt: now.Add(30 * time.Minute)},
			wantErr: ErrTooLateToBook,
		},
		{
			name:    "staff into the past",
			req:     &Request{UserID: 200, Kind: domain.BookingKindStaff, BookingID: 1, StartAt: now.Add(-time.Hour)},
			wantErr: ErrStartInPast,
		},
		{
			name:    "unknown kind",
			req:     &Request{UserID: 100, Kind: "walk-in", BookingID: 1, StartAt: at(12, 0)},
			wantErr: ErrInvalidInput,
		},
		{
			name: "exclusion constraint",
			req:  &Request{UserID: 100, Kind: domain.BookingKindClient, BookingID: 1, StartAt: at(12, 0)},
			setup: func(repo *fakeRepo) {
				repo.updateErr = bookingRepo.ErrOverlap
			},
			wantErr: ErrSlotNotAvailable,
		},
		{
			name: "cancelled after read",
			req:  &Request{UserID: 100, Kind: domain.BookingKindClient, BookingID: 1, StartAt: at(12, 0)},
			setup: func(repo *fakeRepo) {
				repo.concurrent = func(bookings map[domain.BookingRef]*domain.Booking) {
					bookings[client].Status = domain.StatusCancelled
				}
			},
			wantErr: ErrNotReschedulable,
		},
		{
			name: "moved by another request after read",
			req:  &Request{UserID: 100, Kind: domain.BookingKindClient, BookingID: 1, StartAt: at(12, 0)},
			setup: func(repo *fakeRepo) {
				repo.concurrent = func(bookings map[domain.BookingRef]*domain.Booking) {
					bookings[client].StartAt = at(9, 0)
				}
			},
			wantErr: ErrNotReschedulable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, repo, _ := newTestUseCase(t)
			if tt.setup != nil {
				tt.setup(repo)
			}

			_, err := uc.Execute(context.Background(), tt.req)

			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestExecute_StaffMayMoveInsideNotice(t *testing.T) {
	uc, _, _ := newTestUseCase(t)

	_, err := uc.Execute(context.Background(), &Request{
		UserID: 200, Kind: domain.BookingKindStaff, BookingID: 1, StartAt: now.Add(30 * time.Minute),
	})

	assert.NoError(t, err)
}

func TestExecute_CompletedDuringRescheduleIsNotMoved(t *testing.T) {
	uc, repo, avail := newTestUseCase(t)
	repo.concurrent = func(bookings map[domain.BookingRef]*domain.Booking) {
		bookings[client].Status = domain.StatusCompleted
	}

	_, err := uc.Execute(context.Background(), &Request{
		UserID: 100, Kind: domain.BookingKindClient, BookingID: 1, StartAt: at(12, 0),
	})

	assert.ErrorIs(t, err, ErrNotReschedulable)
	assert.Equal(t, domain.StatusCompleted, repo.bookings[client].Status)
	assert.Equal(t, at(10, 0), repo.bookings[client].StartAt)
	assert.Empty(t, repo.rescheduled)
	assert.Empty(t, avail.invalidated)
}
