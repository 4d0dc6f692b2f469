package get_availability

import (
	"context"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	getAvailability "github.com/m04kA/SMC-SalonBooking/internal/usecase/get_availability"
)

type GetAvailabilityUseCase interface {
	Execute(ctx context.Context, req *getAvailability.Request) (*domain.Availability, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
