// Package appointments keeps appointment records consistent with the service
// and staff catalogs on top of a pluggable store.
package appointments

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/calendar"
	"github.com/m04kA/SMC-SalonBooking/internal/conflict"
	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	appointmentStore "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// Repository репозиторий записей с проверкой ссылок на каталоги
type Repository struct {
	store    Store
	services ServiceCatalog
	staff    StaffCatalog
	clock    TimeProvider
}

// NewRepository создает репозиторий; clock == nil означает системное время
func NewRepository(store Store, services ServiceCatalog, staff StaffCatalog, clock TimeProvider) *Repository {
	if clock == nil {
		clock = &calendar.RealTimeProvider{}
	}
	return &Repository{
		store:    store,
		services: services,
		staff:    staff,
		clock:    clock,
	}
}

// Create сохраняет новую запись
// ID назначается хранилищем, CreatedAt - один раз из часов репозитория
func (r *Repository) Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	if appt == nil {
		return nil, domain.NewValidationError("appointment is required")
	}

	name := strings.TrimSpace(appt.ClientName)
	if name == "" {
		return nil, domain.NewValidationError("client name is required")
	}
	if len(name) > domain.MaxClientNameLength {
		return nil, domain.NewValidationError("client name must be at most %d characters", domain.MaxClientNameLength)
	}
	if err := appt.StartTime.Validate(); err != nil {
		return nil, domain.NewValidationError("start time: %v", err)
	}

	if _, err := r.services.GetByID(ctx, appt.ServiceID); err != nil {
		return nil, r.catalogError(err, "service", appt.ServiceID)
	}
	if appt.StaffID != nil {
		if _, err := r.staff.GetByID(ctx, *appt.StaffID); err != nil {
			return nil, r.catalogError(err, "staff", *appt.StaffID)
		}
	}

	toStore := appt.Clone()
	toStore.ClientName = name
	toStore.ID = 0
	toStore.Date = calendar.DateOf(appt.Date)
	toStore.CreatedAt = r.clock.Now()
	if toStore.State == "" {
		toStore.State = domain.StatePending
	}
	if toStore.PaymentState == "" {
		toStore.PaymentState = domain.PaymentPending
	}

	created, err := r.store.Create(ctx, toStore)
	if err != nil {
		return nil, fmt.Errorf("%w: Create: %v", domain.ErrStorage, err)
	}
	return created, nil
}

// Get возвращает запись или domain.ErrAppointmentNotFound
func (r *Repository) Get(ctx context.Context, id int64) (*domain.Appointment, error) {
	appt, err := r.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentStore.ErrAppointmentNotFound) {
			return nil, domain.ErrAppointmentNotFound
		}
		return nil, fmt.Errorf("%w: Get: %v", domain.ErrStorage, err)
	}
	return appt, nil
}

// ListAll возвращает все записи
func (r *Repository) ListAll(ctx context.Context) ([]*domain.Appointment, error) {
	return r.list(ctx, domain.AppointmentFilter{})
}

// ListByDate возвращает записи на дату YYYY-MM-DD
func (r *Repository) ListByDate(ctx context.Context, date string) ([]*domain.Appointment, error) {
	parsed, err := calendar.ParseDate(date)
	if err != nil {
		return nil, err
	}
	return r.ListOn(ctx, parsed)
}

// ListOn возвращает записи на уже разобранную дату
// Внутри транзакции PostgreSQL строки даты блокируются
func (r *Repository) ListOn(ctx context.Context, date time.Time) ([]*domain.Appointment, error) {
	day := calendar.DateOf(date)
	return r.list(ctx, domain.AppointmentFilter{Date: &day})
}

// ListByStaff возвращает записи сотрудника, опционально на дату
func (r *Repository) ListByStaff(ctx context.Context, staffID int64, date *string) ([]*domain.Appointment, error) {
	if _, err := r.staff.GetByID(ctx, staffID); err != nil {
		return nil, r.catalogError(err, "staff", staffID)
	}

	filter := domain.AppointmentFilter{StaffID: &staffID}
	if date != nil {
		parsed, err := calendar.ParseDate(*date)
		if err != nil {
			return nil, err
		}
		filter.Date = &parsed
	}
	return r.list(ctx, filter)
}

// SetState меняет состояние без проверки допустимости перехода
// Возвращает false, если запись не найдена
func (r *Repository) SetState(ctx context.Context, id int64, state string) (bool, error) {
	parsed, err := domain.ParseAppointmentState(state)
	if err != nil {
		return false, err
	}

	if err := r.store.UpdateState(ctx, id, parsed); err != nil {
		return r.notFoundOrStorage(err, "SetState")
	}
	return true, nil
}

// UpdateDetails сохраняет данные визита; возвращает false, если запись не найдена
func (r *Repository) UpdateDetails(ctx context.Context, id int64, details domain.AppointmentDetails) (bool, error) {
	if err := details.Validate(); err != nil {
		return false, err
	}

	if err := r.store.UpdateDetails(ctx, id, details); err != nil {
		return r.notFoundOrStorage(err, "UpdateDetails")
	}
	return true, nil
}

// Delete удаляет запись; возвращает false, если записи не было
func (r *Repository) Delete(ctx context.Context, id int64) (bool, error) {
	if err := r.store.Delete(ctx, id); err != nil {
		return r.notFoundOrStorage(err, "Delete")
	}
	return true, nil
}

// LockDate сериализует запись на дату между экземплярами сервиса (только в транзакции PostgreSQL)
func (r *Repository) LockDate(ctx context.Context, date time.Time) error {
	if err := r.store.LockDate(ctx, calendar.DateOf(date)); err != nil {
		return fmt.Errorf("%w: LockDate: %v", domain.ErrStorage, err)
	}
	return nil
}

// HasConflict проверяет пересечение с записями того же сотрудника или ресурса на дату
// Длительность существующей записи берется из ее услуги
func (r *Repository) HasConflict(
	ctx context.Context,
	date time.Time,
	start types.TimeString,
	durationMinutes int,
	staffID *int64,
	resource *string,
) (bool, error) {
	if err := start.Validate(); err != nil {
		return false, domain.NewValidationError("start time: %v", err)
	}

	existing, err := r.ListOn(ctx, date)
	if err != nil {
		return false, err
	}

	candidate := conflict.Candidate{
		StartMinutes:    start.Minutes(),
		DurationMinutes: durationMinutes,
		StaffID:         staffID,
		Resource:        resource,
	}
	return conflict.HasConflict(candidate, existing, r.DurationResolver(ctx))
}

// DurationResolver возвращает функцию длительности записи по ее услуге
// Для услуги, удаленной из каталога, берется длительность по умолчанию.
// Недоступность каталога возвращается как ErrStorage, успешные результаты кэшируются
func (r *Repository) DurationResolver(ctx context.Context) conflict.DurationFunc {
	cache := make(map[int64]int)
	return func(a *domain.Appointment) (int, error) {
		if d, ok := cache[a.ServiceID]; ok {
			return d, nil
		}
		duration := domain.DefaultDurationMinutes
		svc, err := r.services.GetByID(ctx, a.ServiceID)
		switch {
		case err == nil:
			if svc.DurationMinutes > 0 {
				duration = svc.DurationMinutes
			}
		case errors.Is(err, domain.ErrReference):
			// длительность по умолчанию
		default:
			return 0, r.catalogError(err, "service", a.ServiceID)
		}
		cache[a.ServiceID] = duration
		return duration, nil
	}
}

func (r *Repository) list(ctx context.Context, filter domain.AppointmentFilter) ([]*domain.Appointment, error) {
	appts, err := r.store.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%w: List: %v", domain.ErrStorage, err)
	}
	return appts, nil
}

func (r *Repository) notFoundOrStorage(err error, op string) (bool, error) {
	if errors.Is(err, appointmentStore.ErrAppointmentNotFound) {
		return false, nil
	}
	return false, fmt.Errorf("%w: %s: %v", domain.ErrStorage, op, err)
}

// catalogError пропускает ссылочные ошибки каталога, остальное считает ошибкой хранилища
func (r *Repository) catalogError(err error, kind string, id int64) error {
	if errors.Is(err, domain.ErrReference) {
		return fmt.Errorf("%w (%s id=%d)", err, kind, id)
	}
	return fmt.Errorf("%w: %s catalog: %v", domain.ErrStorage, kind, err)
}
