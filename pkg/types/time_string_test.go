package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    TimeString
		wantErr bool
	}{
		{name: "hh:mm", input: "09:30", want: "09:30"},
		{name: "postgres time", input: "18:00:00", want: "18:00"},
		{name: "single digit hour", input: "9:30", want: "09:30"},
		{name: "garbage", input: "nine", wantErr: true},
		{name: "end of day", input: "24:00", want: "24:00"},
		{name: "postgres end of day", input: "24:00:00", want: "24:00"},
		{name: "past end of day", input: "24:01", wantErr: true},
		{name: "out of range", input: "25:00", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewTimeStringFromString(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTimeString)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeString_Minutes(t *testing.T) {
	m, err := TimeString("13:45").Minutes()
	require.NoError(t, err)
	assert.Equal(t, 13*60+45, m)

	m, err = TimeString("24:00").Minutes()
	require.NoError(t, err)
	assert.Equal(t, 24*60, m)

	_, err = TimeString("bad").Minutes()
	assert.Error(t, err)
}

func TestNewTimeStringFromMinutes(t *testing.T) {
	ts, err := NewTimeStringFromMinutes(9*60 + 5)
	require.NoError(t, err)
	assert.Equal(t, TimeString("09:05"), ts)

	ts, err = NewTimeStringFromMinutes(24 * 60)
	require.NoError(t, err)
	assert.Equal(t, TimeString("24:00"), ts)

	_, err = NewTimeStringFromMinutes(24*60 + 1)
	assert.ErrorIs(t, err, ErrInvalidTimeString)

	_, err = NewTimeStringFromMinutes(-1)
	assert.ErrorIs(t, err, ErrInvalidTimeString)
}

func TestTimeString_On(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*3600)
	date := time.Date(2025, time.March, 3, 0, 0, 0, 0, loc)

	got, err := TimeString("10:30").On(date)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, time.March, 3, 10, 30, 0, 0, loc), got)

	got, err = TimeString("24:00").On(date)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, time.March, 4, 0, 0, 0, 0, loc), got)
}

func TestTimeString_ScanValue(t *testing.T) {
	var ts TimeString
	require.NoError(t, ts.Scan([]byte("08:15:00")))
	assert.Equal(t, TimeString("08:15"), ts)

	require.NoError(t, ts.Scan("24:00:00"))
	assert.Equal(t, TimeString("24:00"), ts)

	require.NoError(t, ts.Scan(nil))
	assert.Equal(t, TimeString(""), ts)

	assert.Error(t, ts.Scan(42))

	v, err := TimeString("08:15").Value()
	require.NoError(t, err)
	assert.Equal(t, "08:15", v)

	v, err = TimeString("").Value()
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestTimeString_Before(t *testing.T) {
	assert.True(t, TimeString("09:00").Before("10:00"))
	assert.False(t, TimeString("12:00").Before("12:00"))
}
