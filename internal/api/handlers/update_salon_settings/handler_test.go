package update_salon_settings

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/middleware"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/settings"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/settings/models"
	"github.com/m04kA/SMC-AvailabilityService/pkg/logger"
)

type fakeService struct {
	got *models.UpdateSettingsRequest
	err error
}

func (f *fakeService) Update(_ context.Context, req *models.UpdateSettingsRequest) (*models.SettingsResponse, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.SettingsResponse{SalonID: req.SalonID, Timezone: req.Timezone, HolidayPolicy: req.HolidayPolicy}, nil
}

func serve(svc *fakeService, body string, userHeader string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.Use(middleware.Auth)
	r.HandleFunc("/salons/{salonId}/settings", NewHandler(svc, logger.Nop()).Handle)

	req := httptest.NewRequest(http.MethodPut, "/salons/4/settings", strings.NewReader(body))
	if userHeader != "" {
		req.Header.Set(middleware.UserIDHeader, userHeader)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandle(t *testing.T) {
	svc := &fakeService{}
	rec := serve(svc, `{"holidayPolicy":"custom","timezone":"Europe/Moscow","advanceBookingDays":30,"minBookingNoticeMinutes":60}`, "9")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(4), svc.got.SalonID)
	assert.Equal(t, int64(9), svc.got.UserID)
	require.NotNil(t, svc.got.HolidayPolicy)
	assert.Equal(t, "custom", *svc.got.HolidayPolicy)
}

func TestHandle_Errors(t *testing.T) {
	assert.Equal(t, http.StatusUnauthorized, serve(&fakeService{}, `{}`, "").Code)
	assert.Equal(t, http.StatusBadRequest, serve(&fakeService{}, `{"unknown":1}`, "9").Code)

	invalid := &fakeService{err: fmt.Errorf("%w: unknown timezone", settings.ErrInvalidInput)}
	assert.Equal(t, http.StatusBadRequest, serve(invalid, `{"timezone":"Mars/Base"}`, "9").Code)

	broken := &fakeService{err: settings.ErrInternal}
	assert.Equal(t, http.StatusInternalServerError, serve(broken, `{"timezone":"UTC"}`, "9").Code)
}
