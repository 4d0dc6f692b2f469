package get_schedule

import (
	"context"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

type ScheduleService interface {
	Get(ctx context.Context) domain.Schedule
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
