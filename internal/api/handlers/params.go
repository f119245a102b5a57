package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// PathID положительный int64 из переменной пути
func PathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	if err != nil {
		return 0, err
	}
	if id <= 0 {
		return 0, fmt.Errorf("%s must be positive", name)
	}
	return id, nil
}

// QueryOptionalID положительный int64 из query; пусто = nil
func QueryOptionalID(r *http.Request, name string) (*int64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, err
	}
	if id <= 0 {
		return nil, fmt.Errorf("%s must be positive", name)
	}
	return &id, nil
}

// QueryOptionalInt int из query; пусто = nil
func QueryOptionalInt(r *http.Request, name string) (*int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// QueryOptionalTime момент времени RFC 3339 из query; пусто = nil
func QueryOptionalTime(r *http.Request, name string) (*time.Time, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// ParseDate календарная дата YYYY-MM-DD
func ParseDate(raw string) (time.Time, error) {
	return time.Parse(domain.DateFormat, raw)
}

// PathBookingRef вид и ID бронирования из /bookings/{kind}/{bookingId}
func PathBookingRef(r *http.Request) (domain.BookingRef, error) {
	kind, err := domain.ParseBookingKind(mux.Vars(r)["kind"])
	if err != nil {
		return domain.BookingRef{}, err
	}
	id, err := PathID(r, "bookingId")
	if err != nil {
		return domain.BookingRef{}, err
	}
	return domain.BookingRef{ID: id, Kind: kind}, nil
}
