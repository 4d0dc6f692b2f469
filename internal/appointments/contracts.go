package appointments

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// Store хранилище записей (PostgreSQL или память)
type Store interface {
	Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error)
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	List(ctx context.Context, filter domain.AppointmentFilter) ([]*domain.Appointment, error)
	UpdateState(ctx context.Context, id int64, state domain.AppointmentState) error
	UpdateDetails(ctx context.Context, id int64, details domain.AppointmentDetails) error
	Delete(ctx context.Context, id int64) error
	LockDate(ctx context.Context, date time.Time) error
}

// ServiceCatalog каталог услуг
// GetByID возвращает domain.ErrUnknownService, если услуги нет
type ServiceCatalog interface {
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
	ListAll(ctx context.Context) ([]*domain.Service, error)
}

// StaffCatalog каталог сотрудников
// GetByID возвращает domain.ErrUnknownStaff, если сотрудника нет
type StaffCatalog interface {
	GetByID(ctx context.Context, id int64) (*domain.Staff, error)
	ListActive(ctx context.Context) ([]*domain.Staff, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}
