package bookings

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	Get(ctx context.Context, id int64) (*domain.Appointment, error)
	ListAll(ctx context.Context) ([]*domain.Appointment, error)
	ListByDate(ctx context.Context, date string) ([]*domain.Appointment, error)
	ListByStaff(ctx context.Context, staffID int64, date *string) ([]*domain.Appointment, error)
	SetState(ctx context.Context, id int64, state string) (bool, error)
	UpdateDetails(ctx context.Context, id int64, details domain.AppointmentDetails) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// ServiceCatalog интерфейс каталога услуг
type ServiceCatalog interface {
	ListAll(ctx context.Context) ([]*domain.Service, error)
}

// StaffCatalog интерфейс каталога сотрудников
type StaffCatalog interface {
	ListActive(ctx context.Context) ([]*domain.Staff, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// DateLocker блокировка изменений записей на дату внутри процесса
type DateLocker interface {
	Lock(key string) (unlock func())
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
