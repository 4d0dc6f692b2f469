package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		in      string
		wantErr bool
	}{
		{in: "09:00"},
		{in: "23:59"},
		{in: "00:00"},
		{in: "9:00", wantErr: true},
		{in: "09:5", wantErr: true},
		{in: "24:00", wantErr: true},
		{in: "12:60", wantErr: true},
		{in: "12-30", wantErr: true},
		{in: "", wantErr: true},
		{in: "10:00:00", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			ts, err := NewTimeStringFromString(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidTimeString)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.in, ts.String())
		})
	}
}

func TestTimeString_Arithmetic(t *testing.T) {
	ts := MustTimeString("13:30")
	assert.Equal(t, 810, ts.Minutes())

	later, err := ts.AddMinutes(45)
	require.NoError(t, err)
	assert.Equal(t, TimeString("14:15"), later)
	assert.True(t, ts.IsBefore(later))
	assert.True(t, later.IsAfter(ts))
	assert.False(t, ts.IsBefore(ts))

	_, err = MustTimeString("23:30").AddMinutes(30)
	assert.ErrorIs(t, err, ErrTimeOverflow)

	fromMinutes, err := NewTimeStringFromMinutes(545)
	require.NoError(t, err)
	assert.Equal(t, TimeString("09:05"), fromMinutes)
}

func TestTimeString_On(t *testing.T) {
	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.Local)
	got := MustTimeString("10:15").On(date)
	assert.Equal(t, time.Date(2026, 3, 2, 10, 15, 0, 0, time.Local), got)
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString
	require.NoError(t, ts.Scan([]byte("10:30:00")))
	assert.Equal(t, TimeString("10:30"), ts)

	require.NoError(t, ts.Scan("08:15"))
	assert.Equal(t, TimeString("08:15"), ts)

	require.NoError(t, ts.Scan(time.Date(0, 1, 1, 17, 45, 0, 0, time.UTC)))
	assert.Equal(t, TimeString("17:45"), ts)

	assert.Error(t, ts.Scan(42))
}
