package calendar

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// ParseDate строго парсит дату YYYY-MM-DD в локальной зоне
func ParseDate(s string) (time.Time, error) {
	if len(s) != len(domain.DateFormat) {
		return time.Time{}, domain.NewValidationError("invalid date %q, expected YYYY-MM-DD", s)
	}
	date, err := time.ParseInLocation(domain.DateFormat, s, time.Local)
	if err != nil {
		return time.Time{}, domain.NewValidationError("invalid date %q, expected YYYY-MM-DD", s)
	}
	return date, nil
}

// ParseTime строго парсит время HH:MM
func ParseTime(s string) (types.TimeString, error) {
	ts, err := types.NewTimeStringFromString(s)
	if err != nil {
		return "", domain.NewValidationError("invalid time %q, expected HH:MM", s)
	}
	return ts, nil
}

// DateOf отбрасывает время суток, сохраняя часовой пояс
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
