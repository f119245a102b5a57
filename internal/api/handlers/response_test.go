package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

func TestRespondError(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondConflict(rec, "занято")

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"error":"занято"}`, rec.Body.String())
}

func TestRespondJSON_NilPayload(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondJSON(rec, http.StatusNoContent, nil)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestDecodeJSON(t *testing.T) {
	var dst struct {
		Name string `json:"name"`
	}

	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"x"}`))
	require.NoError(t, DecodeJSON(r, &dst))
	assert.Equal(t, "x", dst.Name)

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"x","extra":1}`))
	assert.Error(t, DecodeJSON(r, &dst))

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{`))
	assert.Error(t, DecodeJSON(r, &dst))
}

func TestPathBookingRef(t *testing.T) {
	tests := []struct {
		kind    string
		id      string
		want    domain.BookingRef
		wantErr bool
	}{
		{kind: "client", id: "5", want: domain.BookingRef{ID: 5, Kind: domain.BookingKindClient}},
		{kind: "staff", id: "7", want: domain.BookingRef{ID: 7, Kind: domain.BookingKindStaff}},
		{kind: "walk-in", id: "7", wantErr: true},
		{kind: "client", id: "abc", wantErr: true},
		{kind: "client", id: "0", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.kind+"/"+tt.id, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r = mux.SetURLVars(r, map[string]string{"kind": tt.kind, "bookingId": tt.id})

			ref, err := PathBookingRef(r)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, ref)
		})
	}
}

func TestQueryOptionalParams(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/?employeeId=3&durationMinutes=45&startAt=2025-03-03T10:00:00Z", nil)

	id, err := QueryOptionalID(r, "employeeId")
	require.NoError(t, err)
	require.NotNil(t, id)
	assert.Equal(t, int64(3), *id)

	d, err := QueryOptionalInt(r, "durationMinutes")
	require.NoError(t, err)
	assert.Equal(t, 45, *d)

	ts, err := QueryOptionalTime(r, "startAt")
	require.NoError(t, err)
	assert.Equal(t, 10, ts.Hour())

	missing, err := QueryOptionalID(r, "excludeId")
	require.NoError(t, err)
	assert.Nil(t, missing)

	r = httptest.NewRequest(http.MethodGet, "/?employeeId=-1&startAt=tomorrow", nil)
	_, err = QueryOptionalID(r, "employeeId")
	assert.Error(t, err)
	_, err = QueryOptionalTime(r, "startAt")
	assert.Error(t, err)
}
