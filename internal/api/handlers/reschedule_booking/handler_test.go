package reschedule_booking

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/middleware"
	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	rescheduleBooking "github.com/m04kA/SMC-AvailabilityService/internal/usecase/reschedule_booking"
	"github.com/m04kA/SMC-AvailabilityService/pkg/logger"
)

type fakeUseCase struct {
	got *rescheduleBooking.Request
	err error
}

func (f *fakeUseCase) Execute(_ context.Context, req *rescheduleBooking.Request) (*rescheduleBooking.Response, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	prev := time.Date(2025, 3, 3, 9, 0, 0, 0, time.UTC)
	return &rescheduleBooking.Response{
		Booking: &domain.Booking{
			ID: req.BookingID, Kind: req.Kind, EmployeeID: 2,
			StartAt: req.StartAt, EndAt: req.StartAt.Add(30 * time.Minute), Status: domain.StatusConfirmed,
		},
		PreviousEmployeeID: 1,
		PreviousStartAt:    prev,
		PreviousEndAt:      prev.Add(30 * time.Minute),
	}, nil
}

func serve(uc *fakeUseCase, body string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.Use(middleware.Auth)
	r.HandleFunc("/bookings/{kind}/{bookingId}/reschedule", NewHandler(uc, logger.Nop()).Handle)

	req := httptest.NewRequest(http.MethodPatch, "/bookings/client/8/reschedule", strings.NewReader(body))
	req.Header.Set(middleware.UserIDHeader, "5")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandle(t *testing.T) {
	uc := &fakeUseCase{}
	rec := serve(uc, `{"startAt":"2025-03-03T11:00:00Z","employeeId":2}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(8), uc.got.BookingID)
	assert.Equal(t, domain.BookingKindClient, uc.got.Kind)
	assert.Equal(t, int64(5), uc.got.UserID)

	var resp RescheduleBookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(2), resp.Booking.EmployeeID)
	assert.Equal(t, int64(1), resp.Previous.EmployeeID)
	assert.Equal(t, 30, resp.Booking.DurationMinutes)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		err    error
		status int
	}{
		{name: "broken body", body: `{"startAt":"soon"}`, status: http.StatusBadRequest},
		{name: "not found", body: `{"startAt":"2025-03-03T11:00:00Z"}`, err: rescheduleBooking.ErrBookingNotFound, status: http.StatusNotFound},
		{name: "cancelled booking", body: `{"startAt":"2025-03-03T11:00:00Z"}`, err: rescheduleBooking.ErrNotReschedulable, status: http.StatusConflict},
		{name: "slot taken", body: `{"startAt":"2025-03-03T11:00:00Z"}`, err: rescheduleBooking.ErrSlotNotAvailable, status: http.StatusConflict},
		{name: "not eligible", body: `{"startAt":"2025-03-03T11:00:00Z","employeeId":5}`, err: rescheduleBooking.ErrEmployeeNotEligible, status: http.StatusUnprocessableEntity},
		{name: "past", body: `{"startAt":"2020-03-03T11:00:00Z"}`, err: rescheduleBooking.ErrStartInPast, status: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(&fakeUseCase{err: tt.err}, tt.body)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
