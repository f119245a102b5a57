package domain

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrUnknownBookingKind unknown booking kind value
	ErrUnknownBookingKind = errors.New("domain: unknown booking kind")

	// ErrUnknownBookingStatus unknown booking status value
	ErrUnknownBookingStatus = errors.New("domain: unknown booking status")
)

// BookingKind tells which ledger table a booking lives in
type BookingKind string

const (
	BookingKindClient BookingKind = "client"
	BookingKindStaff  BookingKind = "staff"
)

// BookingKinds all kinds, in ledger query order
var BookingKinds = []BookingKind{BookingKindClient, BookingKindStaff}

// ParseBookingKind validates a raw kind value
func ParseBookingKind(s string) (BookingKind, error) {
	switch k := BookingKind(s); k {
	case BookingKindClient, BookingKindStaff:
		return k, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownBookingKind, s)
	}
}

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusRequested BookingStatus = "REQUESTED"
	StatusConfirmed BookingStatus = "CONFIRMED"
	StatusCancelled BookingStatus = "CANCELLED"
	StatusCompleted BookingStatus = "COMPLETED"
)

// ParseBookingStatus validates a raw status value
func ParseBookingStatus(s string) (BookingStatus, error) {
	switch st := BookingStatus(s); st {
	case StatusRequested, StatusConfirmed, StatusCancelled, StatusCompleted:
		return st, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownBookingStatus, s)
	}
}

// IsActive returns true if the booking blocks its interval
func (s BookingStatus) IsActive() bool {
	return s != StatusCancelled
}

// IsTerminal returns true for statuses with no outgoing transitions
func (s BookingStatus) IsTerminal() bool {
	return s == StatusCancelled || s == StatusCompleted
}

// IsInitial returns true for statuses a booking may be created in
func (s BookingStatus) IsInitial() bool {
	return s == StatusRequested || s == StatusConfirmed
}

// CanTransitionTo reports whether the lifecycle allows s -> next
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	switch s {
	case StatusRequested:
		return next == StatusConfirmed || next == StatusCompleted || next == StatusCancelled
	case StatusConfirmed:
		return next == StatusCompleted || next == StatusCancelled
	default:
		return false
	}
}

// Booking is one entry of either ledger table.
// The interval is half-open: [StartAt, EndAt).
type Booking struct {
	ID         int64
	Kind       BookingKind
	SalonID    int64
	EmployeeID int64
	ServiceID  int64
	UserID     int64 // client for client bookings, author for staff bookings
	StartAt    time.Time
	EndAt      time.Time
	Status     BookingStatus
	Notes      *string

	CancellationReason *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Ref identifies the booking across both tables
func (b *Booking) Ref() BookingRef {
	return BookingRef{ID: b.ID, Kind: b.Kind}
}

// IsActive returns true if the booking blocks its interval
func (b *Booking) IsActive() bool {
	return b.Status.IsActive()
}

// CanBeRescheduled only bookings that have not happened or been dropped can move
func (b *Booking) CanBeRescheduled() bool {
	return b.Status == StatusRequested || b.Status == StatusConfirmed
}

// AffectedDates returns the (employee, local date) pairs the booking spans in loc
func (b *Booking) AffectedDates(loc *time.Location) []EmployeeDate {
	return SpannedDates(b.EmployeeID, b.StartAt, b.EndAt, loc)
}

// BookingRef identifies a booking across both ledger tables
type BookingRef struct {
	ID   int64
	Kind BookingKind
}

// LedgerEntry is the minimal view of an active booking used for conflict checks
type LedgerEntry struct {
	ID      int64
	Kind    BookingKind
	StartAt time.Time
	EndAt   time.Time
}

// EmployeeBookingsFilter фильтр для выборки бронирований сотрудника
type EmployeeBookingsFilter struct {
	EmployeeID       int64
	From             time.Time
	To               time.Time
	IncludeCancelled bool
}
