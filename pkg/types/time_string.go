package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"time"
)

// TimeString время суток с точностью до минуты в формате HH:MM
type TimeString string

const (
	timeLayout = "15:04"

	// MinutesPerDay количество минут в сутках
	MinutesPerDay = 24 * 60
)

var (
	// ErrInvalidTimeString возвращается при некорректном формате времени
	ErrInvalidTimeString = errors.New("invalid time string format")

	// ErrTimeOverflow возвращается, когда результат выходит за пределы суток
	ErrTimeOverflow = errors.New("time string out of day range")
)

// NewTimeString создает TimeString из time.Time (секунды отбрасываются)
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(timeLayout))
}

// NewTimeStringFromString парсит строку HH:MM со строгой проверкой формата
func NewTimeStringFromString(s string) (TimeString, error) {
	ts := TimeString(s)
	if err := ts.Validate(); err != nil {
		return "", err
	}
	return ts, nil
}

// NewTimeStringFromMinutes создает TimeString из количества минут от полуночи
func NewTimeStringFromMinutes(minutes int) (TimeString, error) {
	if minutes < 0 || minutes >= MinutesPerDay {
		return "", fmt.Errorf("%w: %d minutes", ErrTimeOverflow, minutes)
	}
	return TimeString(fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)), nil
}

// MustTimeString паникует при некорректном формате, используется для констант и тестов
func MustTimeString(s string) TimeString {
	ts, err := NewTimeStringFromString(s)
	if err != nil {
		panic(err)
	}
	return ts
}

// Validate проверяет формат HH:MM (ровно две цифры часов и минут)
func (t TimeString) Validate() error {
	if len(t) != len(timeLayout) {
		return fmt.Errorf("%w: %q", ErrInvalidTimeString, string(t))
	}
	if _, err := time.Parse(timeLayout, string(t)); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidTimeString, string(t))
	}
	return nil
}

// IsZero возвращает true, если время не задано
func (t TimeString) IsZero() bool {
	return t == ""
}

// String возвращает строковое представление
func (t TimeString) String() string {
	return string(t)
}

// Minutes возвращает количество минут от полуночи, -1 для некорректного значения
func (t TimeString) Minutes() int {
	parsed, err := time.Parse(timeLayout, string(t))
	if err != nil {
		return -1
	}
	return parsed.Hour()*60 + parsed.Minute()
}

// AddMinutes возвращает время, сдвинутое на n минут
func (t TimeString) AddMinutes(n int) (TimeString, error) {
	if err := t.Validate(); err != nil {
		return "", err
	}
	return NewTimeStringFromMinutes(t.Minutes() + n)
}

// IsBefore возвращает true, если t строго раньше other
func (t TimeString) IsBefore(other TimeString) bool {
	return t.Minutes() < other.Minutes()
}

// IsAfter возвращает true, если t строго позже other
func (t TimeString) IsAfter(other TimeString) bool {
	return t.Minutes() > other.Minutes()
}

// On возвращает момент времени t в указанную дату (в часовом поясе даты)
func (t TimeString) On(date time.Time) time.Time {
	y, m, d := date.Date()
	minutes := t.Minutes()
	return time.Date(y, m, d, minutes/60, minutes%60, 0, 0, date.Location())
}

// Scan реализует sql.Scanner
// PostgreSQL возвращает колонку TIME в формате HH:MM:SS
func (t *TimeString) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*t = ""
		return nil
	case time.Time:
		*t = NewTimeString(v)
		return nil
	case []byte:
		return t.scanString(string(v))
	case string:
		return t.scanString(v)
	default:
		return fmt.Errorf("%w: unsupported scan type %T", ErrInvalidTimeString, src)
	}
}

func (t *TimeString) scanString(s string) error {
	if len(s) > len(timeLayout) {
		s = s[:len(timeLayout)]
	}
	ts, err := NewTimeStringFromString(s)
	if err != nil {
		return err
	}
	*t = ts
	return nil
}

// Value реализует driver.Valuer
func (t TimeString) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	return string(t), nil
}
