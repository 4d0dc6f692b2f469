package get_statistics

import (
	"context"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

type AppointmentService interface {
	Statistics(ctx context.Context) (*domain.Statistics, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
