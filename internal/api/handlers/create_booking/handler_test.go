package create_booking

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/middleware"
	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	createBooking "github.com/m04kA/SMC-AvailabilityService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-AvailabilityService/pkg/logger"
)

type fakeUseCase struct {
	got *createBooking.Request
	err error
}

func (f *fakeUseCase) Execute(_ context.Context, req *createBooking.Request) (*createBooking.Response, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	employeeID := int64(1)
	if req.EmployeeID != nil {
		employeeID = *req.EmployeeID
	}
	return &createBooking.Response{
		ID:              77,
		Kind:            req.Kind,
		SalonID:         req.SalonID,
		EmployeeID:      employeeID,
		ServiceID:       req.ServiceID,
		UserID:          req.UserID,
		StartAt:         req.StartAt,
		EndAt:           req.StartAt.Add(30 * time.Minute),
		DurationMinutes: 30,
		Status:          domain.StatusRequested,
		AutoAssigned:    req.EmployeeID == nil,
	}, nil
}

func post(uc *fakeUseCase, body string, withUser bool) *httptest.ResponseRecorder {
	h := http.Handler(http.HandlerFunc(NewHandler(uc, logger.Nop()).Handle))
	if withUser {
		h = middleware.Auth(h)
	}

	r := httptest.NewRequest(http.MethodPost, "/bookings", strings.NewReader(body))
	r.Header.Set(middleware.UserIDHeader, "100")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, r)
	return rec
}

func TestHandle_Created(t *testing.T) {
	uc := &fakeUseCase{}
	rec := post(uc, `{"kind":"client","salonId":1,"serviceId":10,"startAt":"2025-03-03T10:00:00Z"}`, true)

	require.Equal(t, http.StatusCreated, rec.Code)
	var resp BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(77), resp.ID)
	assert.True(t, resp.AutoAssigned)

	assert.Equal(t, int64(100), uc.got.UserID)
	assert.Equal(t, domain.BookingKindClient, uc.got.Kind)
	assert.Nil(t, uc.got.Status)
}

func TestHandle_StaffWithStatus(t *testing.T) {
	uc := &fakeUseCase{}
	rec := post(uc, `{"kind":"staff","salonId":1,"serviceId":10,"employeeId":2,"startAt":"2025-03-03T10:00:00Z","status":"REQUESTED"}`, true)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, uc.got.Status)
	assert.Equal(t, domain.StatusRequested, *uc.got.Status)
	assert.Equal(t, int64(2), *uc.got.EmployeeID)
}

func TestHandle_Errors(t *testing.T) {
	valid := `{"kind":"client","salonId":1,"serviceId":10,"startAt":"2025-03-03T10:00:00Z"}`

	tests := []struct {
		name     string
		body     string
		err      error
		withUser bool
		status   int
	}{
		{name: "no user", body: valid, status: http.StatusUnauthorized},
		{name: "broken json", body: `{`, withUser: true, status: http.StatusBadRequest},
		{name: "unknown kind", body: `{"kind":"vip","salonId":1,"serviceId":10,"startAt":"2025-03-03T10:00:00Z"}`, withUser: true, status: http.StatusBadRequest},
		{name: "unknown status", body: `{"kind":"client","salonId":1,"serviceId":10,"startAt":"2025-03-03T10:00:00Z","status":"DONE"}`, withUser: true, status: http.StatusBadRequest},
		{name: "slot taken", body: valid, err: createBooking.ErrSlotNotAvailable, withUser: true, status: http.StatusConflict},
		{name: "nobody free", body: valid, err: createBooking.ErrNoEmployeeAvailable, withUser: true, status: http.StatusConflict},
		{name: "service not found", body: valid, err: createBooking.ErrServiceNotFound, withUser: true, status: http.StatusNotFound},
		{name: "not eligible", body: valid, err: createBooking.ErrEmployeeNotEligible, withUser: true, status: http.StatusUnprocessableEntity},
		{name: "too late", body: valid, err: createBooking.ErrTooLateToBook, withUser: true, status: http.StatusBadRequest},
		{name: "internal", body: valid, err: createBooking.ErrInternal, withUser: true, status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := post(&fakeUseCase{err: tt.err}, tt.body, tt.withUser)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
