package book_appointment

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error)
	ListOn(ctx context.Context, date time.Time) ([]*domain.Appointment, error)
	HasConflict(ctx context.Context, date time.Time, start types.TimeString, durationMinutes int, staffID *int64, resource *string) (bool, error)
	LockDate(ctx context.Context, date time.Time) error
}

// ServiceCatalog интерфейс каталога услуг
type ServiceCatalog interface {
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
}

// StaffCatalog интерфейс каталога сотрудников
type StaffCatalog interface {
	GetByID(ctx context.Context, id int64) (*domain.Staff, error)
}

// Calendar интерфейс календаря салона
type Calendar interface {
	ValidateSlot(date time.Time, startTime types.TimeString, durationMinutes int) error
	Policy() domain.BookingPolicy
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// DateLocker блокировка записи на дату внутри процесса
type DateLocker interface {
	Lock(key string) (unlock func())
}

// BookingRecorder учет исходов бронирования (метрики)
type BookingRecorder interface {
	ObserveBooking(outcome string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
