package bookings

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-SalonBooking/internal/calendar"
	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// Service сервис управления записями: смена состояния, выборки, статистика
type Service struct {
	appointmentRepo AppointmentRepository
	services        ServiceCatalog
	staff           StaffCatalog
	txManager       TransactionManager
	dateLocker      DateLocker
	clock           TimeProvider
	logger          Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	appointmentRepo AppointmentRepository,
	services ServiceCatalog,
	staff StaffCatalog,
	txManager TransactionManager,
	dateLocker DateLocker,
	clock TimeProvider,
	logger Logger,
) *Service {
	if clock == nil {
		clock = &calendar.RealTimeProvider{}
	}
	return &Service{
		appointmentRepo: appointmentRepo,
		services:        services,
		staff:           staff,
		txManager:       txManager,
		dateLocker:      dateLocker,
		clock:           clock,
		logger:          logger,
	}
}

// Get получает запись по ID
func (s *Service) Get(ctx context.Context, id int64) (*domain.Appointment, error) {
	appt, err := s.appointmentRepo.Get(ctx, id)
	if err != nil {
		s.logger.Warn("Get: appointment id=%d: %v", id, err)
		return nil, err
	}
	return appt, nil
}

// Query возвращает записи с необязательными фильтрами по дате (YYYY-MM-DD) и сотруднику
func (s *Service) Query(ctx context.Context, date *string, staffID *int64) ([]*domain.Appointment, error) {
	s.logger.Info("Query: date=%v, staff=%v", strValue(date), int64Value(staffID))

	var (
		appts []*domain.Appointment
		err   error
	)
	switch {
	case staffID != nil:
		appts, err = s.appointmentRepo.ListByStaff(ctx, *staffID, date)
	case date != nil:
		appts, err = s.appointmentRepo.ListByDate(ctx, *date)
	default:
		appts, err = s.appointmentRepo.ListAll(ctx)
	}
	if err != nil {
		s.logger.Warn("Query: failed: %v", err)
		return nil, err
	}

	s.logger.Info("Query: found %d appointments", len(appts))
	return appts, nil
}

// Confirm подтверждает запись
func (s *Service) Confirm(ctx context.Context, id int64) (*domain.Appointment, error) {
	return s.transition(ctx, "Confirm", id, domain.StateConfirmed, nil)
}

// Cancel отменяет запись; отмененная запись освобождает время и место в дневном лимите
func (s *Service) Cancel(ctx context.Context, id int64) (*domain.Appointment, error) {
	return s.transition(ctx, "Cancel", id, domain.StateCancelled, nil)
}

// Complete завершает визит и сохраняет итоговую цену, оплату, заметки и фактическую длительность
func (s *Service) Complete(ctx context.Context, id int64, details domain.AppointmentDetails) (*domain.Appointment, error) {
	if err := details.Validate(); err != nil {
		s.logger.Warn("Complete: invalid details for appointment id=%d: %v", id, err)
		return nil, err
	}
	return s.transition(ctx, "Complete", id, domain.StateCompleted, &details)
}

// Delete удаляет запись
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.logger.Info("Delete: deleting appointment id=%d", id)

	deleted, err := s.appointmentRepo.Delete(ctx, id)
	if err != nil {
		s.logger.Error("Delete: repository error for appointment id=%d: %v", id, err)
		return err
	}
	if !deleted {
		s.logger.Warn("Delete: appointment id=%d not found", id)
		return domain.ErrAppointmentNotFound
	}

	s.logger.Info("Delete: appointment id=%d deleted", id)
	return nil
}

// Statistics агрегирует записи, каталог услуг и активных сотрудников
func (s *Service) Statistics(ctx context.Context) (*domain.Statistics, error) {
	appts, err := s.appointmentRepo.ListAll(ctx)
	if err != nil {
		s.logger.Error("Statistics: failed to list appointments: %v", err)
		return nil, err
	}

	services, err := s.services.ListAll(ctx)
	if err != nil {
		s.logger.Error("Statistics: failed to list services: %v", err)
		return nil, fmt.Errorf("%w: service catalog: %v", domain.ErrStorage, err)
	}

	staff, err := s.staff.ListActive(ctx)
	if err != nil {
		s.logger.Error("Statistics: failed to list staff: %v", err)
		return nil, fmt.Errorf("%w: staff catalog: %v", domain.ErrStorage, err)
	}

	stats := aggregate(appts, calendar.DateOf(s.clock.Now()))
	stats.ActiveStaffCount = len(staff)
	stats.ServicesCount = len(services)

	return stats, nil
}

// transition меняет состояние записи с проверкой перехода
// Переход и проверка выполняются под блокировкой даты записи
func (s *Service) transition(
	ctx context.Context,
	op string,
	id int64,
	next domain.AppointmentState,
	details *domain.AppointmentDetails,
) (*domain.Appointment, error) {
	s.logger.Info("%s: appointment id=%d -> %s", op, id, next)

	current, err := s.appointmentRepo.Get(ctx, id)
	if err != nil {
		s.logger.Warn("%s: appointment id=%d: %v", op, id, err)
		return nil, err
	}

	unlock := s.dateLocker.Lock(current.DateKey())
	defer unlock()

	var result *domain.Appointment
	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		// Перечитываем под блокировкой
		appt, err := s.appointmentRepo.Get(txCtx, id)
		if err != nil {
			return err
		}

		if !appt.State.CanTransitionTo(next) {
			s.logger.Warn("%s: appointment id=%d cannot move from %s to %s", op, id, appt.State, next)
			return fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, appt.State, next)
		}

		found, err := s.appointmentRepo.SetState(txCtx, id, string(next))
		if err != nil {
			return err
		}
		if !found {
			return domain.ErrAppointmentNotFound
		}

		if details != nil {
			if _, err := s.appointmentRepo.UpdateDetails(txCtx, id, *details); err != nil {
				return err
			}
		}

		result, err = s.appointmentRepo.Get(txCtx, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("%s: appointment id=%d is now %s", op, id, result.State)
	return result, nil
}

func strValue(s *string) interface{} {
	if s == nil {
		return "-"
	}
	return *s
}

func int64Value(v *int64) interface{} {
	if v == nil {
		return "-"
	}
	return *v
}
