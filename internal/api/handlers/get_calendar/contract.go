package get_calendar

import (
	"context"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

type ScheduleService interface {
	OpenDates(ctx context.Context, days int) ([]domain.OpenDate, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
