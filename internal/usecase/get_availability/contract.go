package get_availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/conflict"
	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	ListOn(ctx context.Context, date time.Time) ([]*domain.Appointment, error)
	DurationResolver(ctx context.Context) conflict.DurationFunc
}

// ServiceCatalog интерфейс каталога услуг
type ServiceCatalog interface {
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
}

// StaffCatalog интерфейс каталога сотрудников
type StaffCatalog interface {
	ListActive(ctx context.Context) ([]*domain.Staff, error)
}

// Calendar интерфейс календаря салона
type Calendar interface {
	IsOpen(date time.Time) (bool, *types.TimeString)
	AvailableSlots(date time.Time, durationMinutes int) []types.TimeString
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
