package calendar

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

// 2026-10-15 четверг, 10:00
var testNow = time.Date(2026, time.October, 15, 10, 0, 0, 0, time.Local)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func newTestCalendar(mutate func(*domain.Schedule)) *Calendar {
	s := domain.DefaultSchedule()
	if mutate != nil {
		mutate(&s)
	}
	return New(s, fixedClock{now: testNow})
}

func TestAvailableSlots_BreakBoundaries(t *testing.T) {
	cal := newTestCalendar(nil)
	monday := date(2026, time.October, 19)

	slots := cal.AvailableSlots(monday, 60)

	assert.Contains(t, slots, types.TimeString("09:00"))
	assert.Contains(t, slots, types.TimeString("12:30"), "ends exactly at break start")
	assert.Contains(t, slots, types.TimeString("14:00"), "starts exactly at break end")
	assert.NotContains(t, slots, types.TimeString("12:45"))
	assert.NotContains(t, slots, types.TimeString("13:00"))
	assert.NotContains(t, slots, types.TimeString("13:15"))
	assert.NotContains(t, slots, types.TimeString("13:30"))

	assert.Equal(t, types.TimeString("19:00"), slots[len(slots)-1])
	for i := 1; i < len(slots); i++ {
		assert.True(t, slots[i-1].IsBefore(slots[i]), "slots must be ascending")
	}
}

func TestAvailableSlots_InactiveBreak(t *testing.T) {
	cal := newTestCalendar(func(s *domain.Schedule) { s.Break.Active = false })

	slots := cal.AvailableSlots(date(2026, time.October, 19), 60)

	assert.Contains(t, slots, types.TimeString("13:00"))
	assert.Contains(t, slots, types.TimeString("13:15"))
}

func TestAvailableSlots_ClosedDay(t *testing.T) {
	cal := newTestCalendar(nil)
	sunday := date(2026, time.October, 18)

	isOpen, openTime := cal.IsOpen(sunday)
	assert.False(t, isOpen)
	assert.Nil(t, openTime)
	assert.Nil(t, cal.ClosingTime(sunday))
	assert.Empty(t, cal.AvailableSlots(sunday, 30))
}

func TestAvailableSlots_DurationLongerThanDay(t *testing.T) {
	cal := newTestCalendar(nil)
	saturday := date(2026, time.October, 17)

	isOpen, _ := cal.IsOpen(saturday)
	require.True(t, isOpen)
	assert.Empty(t, cal.AvailableSlots(saturday, 10*60))
}

func TestAvailableSlots_Idempotent(t *testing.T) {
	cal := newTestCalendar(nil)
	monday := date(2026, time.October, 19)

	assert.Equal(t, cal.AvailableSlots(monday, 45), cal.AvailableSlots(monday, 45))
}

func TestClosingTime(t *testing.T) {
	cal := newTestCalendar(nil)

	closing := cal.ClosingTime(date(2026, time.October, 17))
	require.NotNil(t, closing)
	assert.Equal(t, types.TimeString("18:00"), *closing)
}

func TestValidateSlot(t *testing.T) {
	cal := newTestCalendar(nil)

	tests := []struct {
		name     string
		date     time.Time
		start    types.TimeString
		duration int
		reason   domain.FailureReason
		ok       bool
	}{
		{
			name:     "today within lead time",
			date:     date(2026, time.October, 15),
			start:    "11:00",
			duration: 60,
			reason:   domain.ReasonLeadTimeTooShort,
		},
		{
			name:     "today after lead time",
			date:     date(2026, time.October, 15),
			start:    "12:00",
			duration: 60,
			ok:       true,
		},
		{
			name:     "yesterday",
			date:     date(2026, time.October, 14),
			start:    "12:00",
			duration: 60,
			reason:   domain.ReasonLeadTimeTooShort,
		},
		{
			name:     "tomorrow same clock time",
			date:     date(2026, time.October, 16),
			start:    "11:00",
			duration: 60,
			ok:       true,
		},
		{
			name:     "last day of horizon",
			date:     date(2026, time.November, 14),
			start:    "10:00",
			duration: 60,
			ok:       true,
		},
		{
			name:     "beyond horizon",
			date:     date(2026, time.November, 16),
			start:    "10:00",
			duration: 60,
			reason:   domain.ReasonHorizonExceeded,
		},
		{
			name:     "closed day",
			date:     date(2026, time.October, 18),
			start:    "10:00",
			duration: 60,
			reason:   domain.ReasonSlotClosedOrUnavailable,
		},
		{
			name:     "off grid time",
			date:     date(2026, time.October, 19),
			start:    "10:07",
			duration: 60,
			reason:   domain.ReasonSlotClosedOrUnavailable,
		},
		{
			name:     "overlaps break",
			date:     date(2026, time.October, 19),
			start:    "13:00",
			duration: 60,
			reason:   domain.ReasonSlotClosedOrUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := cal.ValidateSlot(tt.date, tt.start, tt.duration)
			if tt.ok {
				assert.NoError(t, err)
				return
			}

			failure, ok := domain.AsBookingFailure(err)
			require.True(t, ok, "expected booking failure, got %v", err)
			assert.Equal(t, tt.reason, failure.Reason)
		})
	}
}

func TestValidateSlot_LeadTimeCheckedFirst(t *testing.T) {
	// Сегодня воскресенье: причина должна быть lead time, а не закрытый день
	sunday := time.Date(2026, time.October, 18, 10, 0, 0, 0, time.Local)
	cal := New(domain.DefaultSchedule(), fixedClock{now: sunday})

	err := cal.ValidateSlot(date(2026, time.October, 18), "10:30", 60)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrLeadTimeTooShort))
}

func TestValidateSlot_UnlimitedHorizon(t *testing.T) {
	cal := newTestCalendar(func(s *domain.Schedule) { s.Policy.MaxHorizonDays = 0 })

	err := cal.ValidateSlot(date(2027, time.October, 18), "10:00", 60)
	assert.NoError(t, err)
}

func TestValidateSlot_HorizonLimit(t *testing.T) {
	cal := newTestCalendar(nil)

	err := cal.ValidateSlot(date(2026, time.December, 1), "10:00", 60)
	failure, ok := domain.AsBookingFailure(err)
	require.True(t, ok)
	assert.Equal(t, domain.DefaultMaxHorizonDays, failure.Limit)
}

func TestOpenDates(t *testing.T) {
	cal := newTestCalendar(nil)

	dates := cal.OpenDates(testNow, 7)
	require.Len(t, dates, 7)

	assert.Equal(t, date(2026, time.October, 15), dates[0].Date)
	for _, d := range dates {
		assert.Equal(t, d.Weekday != time.Sunday, d.IsOpen, d.Date.Format(domain.DateFormat))
	}
	assert.Empty(t, cal.OpenDates(testNow, 0))
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2026-10-19")
	require.NoError(t, err)
	assert.Equal(t, time.Monday, d.Weekday())

	for _, bad := range []string{"", "2026-1-19", "19.10.2026", "2026-02-30", "2026-10-19T10:00"} {
		_, err := ParseDate(bad)
		assert.ErrorIs(t, err, domain.ErrValidation, bad)
	}
}

func TestParseTime(t *testing.T) {
	ts, err := ParseTime("09:30")
	require.NoError(t, err)
	assert.Equal(t, 570, ts.Minutes())

	for _, bad := range []string{"9:30", "24:00", "09:60", "0930"} {
		_, err := ParseTime(bad)
		assert.ErrorIs(t, err, domain.ErrValidation, bad)
	}
}
