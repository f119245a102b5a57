package cancel_booking

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/middleware"
	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/bookings"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/bookings/models"
	"github.com/m04kA/SMC-AvailabilityService/pkg/logger"
)

type fakeService struct {
	ref domain.BookingRef
	req *models.CancelBookingRequest
	err error
}

func (f *fakeService) Cancel(_ context.Context, ref domain.BookingRef, req *models.CancelBookingRequest) (*models.BookingResponse, error) {
	f.ref, f.req = ref, req
	if f.err != nil {
		return nil, f.err
	}
	return &models.BookingResponse{ID: ref.ID, Kind: string(ref.Kind), Status: "CANCELLED"}, nil
}

func serve(svc *fakeService, target, body string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.Use(middleware.Auth)
	r.HandleFunc("/bookings/{kind}/{bookingId}/cancel", NewHandler(svc, logger.Nop()).Handle)

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(http.MethodPatch, target, nil)
	} else {
		req = httptest.NewRequest(http.MethodPatch, target, strings.NewReader(body))
	}
	req.Header.Set(middleware.UserIDHeader, "5")

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandle(t *testing.T) {
	svc := &fakeService{}
	rec := serve(svc, "/bookings/staff/3/cancel", `{"cancellationReason":"sick"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.BookingRef{ID: 3, Kind: domain.BookingKindStaff}, svc.ref)
	assert.Equal(t, int64(5), svc.req.UserID)
	require.NotNil(t, svc.req.CancellationReason)
	assert.Equal(t, "sick", *svc.req.CancellationReason)
}

func TestHandle_EmptyBody(t *testing.T) {
	svc := &fakeService{}
	rec := serve(svc, "/bookings/client/3/cancel", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, svc.req.CancellationReason)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name   string
		target string
		err    error
		status int
	}{
		{name: "bad kind", target: "/bookings/other/3/cancel", status: http.StatusBadRequest},
		{name: "not found", target: "/bookings/client/3/cancel", err: bookings.ErrBookingNotFound, status: http.StatusNotFound},
		{name: "already cancelled", target: "/bookings/client/3/cancel", err: bookings.ErrCannotCancel, status: http.StatusConflict},
		{name: "reason too long", target: "/bookings/client/3/cancel", err: bookings.ErrInvalidInput, status: http.StatusBadRequest},
		{name: "internal", target: "/bookings/client/3/cancel", err: bookings.ErrInternal, status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(&fakeService{err: tt.err}, tt.target, "")
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
