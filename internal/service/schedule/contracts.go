package schedule

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// Calendar интерфейс календаря салона
type Calendar interface {
	Schedule() domain.Schedule
	Today() time.Time
	OpenDates(from time.Time, days int) []domain.OpenDate
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
