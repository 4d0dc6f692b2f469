package complete_appointment

import (
	"context"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

type AppointmentService interface {
	Complete(ctx context.Context, id int64, details domain.AppointmentDetails) (*domain.Appointment, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
