package book_appointment

import (
	"context"
	"errors"
	"strings"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// UseCase use case для записи клиента на услугу
type UseCase struct {
	appointmentRepo AppointmentRepository
	services        ServiceCatalog
	staff           StaffCatalog
	calendar        Calendar
	txManager       TransactionManager
	dateLocker      DateLocker
	recorder        BookingRecorder
	recliningTag    string
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
// recorder может быть nil
func NewUseCase(
	appointmentRepo AppointmentRepository,
	services ServiceCatalog,
	staff StaffCatalog,
	calendar Calendar,
	txManager TransactionManager,
	dateLocker DateLocker,
	recorder BookingRecorder,
	recliningTag string,
	logger Logger,
) *UseCase {
	if recliningTag == "" {
		recliningTag = domain.DefaultRecliningStationTag
	}
	return &UseCase{
		appointmentRepo: appointmentRepo,
		services:        services,
		staff:           staff,
		calendar:        calendar,
		txManager:       txManager,
		dateLocker:      dateLocker,
		recorder:        recorder,
		recliningTag:    recliningTag,
		logger:          logger,
	}
}

// Execute выполняет запись
// Шаги 2-5 выполняются под блокировкой даты в сериализуемой транзакции,
// при любом отказе ничего не сохраняется
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*domain.Appointment, error) {
	result, err := uc.execute(ctx, req)
	uc.observe(err)
	return result, err
}

func (uc *UseCase) execute(ctx context.Context, req *Request) (*domain.Appointment, error) {
	// 0. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("BookAppointment: validation failed: %v", err)
		return nil, err
	}

	dateKey := req.Date.Format(domain.DateFormat)
	uc.logger.Info("BookAppointment: client=%q, date=%s, time=%s, service=%d, staff=%v",
		req.ClientName, dateKey, req.StartTime, req.ServiceID, staffLabel(req.StaffID))

	// 1. Получаем услугу
	service, err := uc.services.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, domain.ErrReference) {
			uc.logger.Warn("BookAppointment: service id=%d not found", req.ServiceID)
			return nil, err
		}
		uc.logger.Error("BookAppointment: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, errors.Join(domain.ErrStorage, err)
	}

	unlock := uc.dateLocker.Lock(dateKey)
	defer unlock()

	var result *domain.Appointment

	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		if err := uc.appointmentRepo.LockDate(txCtx, req.Date); err != nil {
			uc.logger.Error("BookAppointment: failed to lock date %s: %v", dateKey, err)
			return err
		}

		// 2. Календарь: заблаговременность, горизонт, рабочее время
		if err := uc.calendar.ValidateSlot(req.Date, req.StartTime, service.DurationMinutes); err != nil {
			uc.logger.Warn("BookAppointment: slot rejected: %v", err)
			return err
		}

		// 3. Сотрудник и пересечения
		var resource *string
		if req.StaffID != nil {
			staff, err := uc.staff.GetByID(txCtx, *req.StaffID)
			if err != nil {
				if errors.Is(err, domain.ErrReference) {
					uc.logger.Warn("BookAppointment: staff id=%d not found", *req.StaffID)
					return err
				}
				uc.logger.Error("BookAppointment: failed to get staff id=%d: %v", *req.StaffID, err)
				return errors.Join(domain.ErrStorage, err)
			}

			if !staff.IsQualifiedFor(service.ID) {
				uc.logger.Warn("BookAppointment: staff id=%d is not qualified for service id=%d", staff.ID, service.ID)
				return domain.NewBookingFailure(domain.ReasonStaffNotQualified, 0,
					"%s does not perform %s", staff.Name, service.Name)
			}

			resource = domain.EffectiveResource(service, staff, uc.recliningTag)

			conflict, err := uc.appointmentRepo.HasConflict(txCtx, req.Date, req.StartTime, service.DurationMinutes, req.StaffID, resource)
			if err != nil {
				uc.logger.Error("BookAppointment: conflict check failed: %v", err)
				return err
			}
			if conflict {
				uc.logger.Warn("BookAppointment: slot %s %s is taken for staff id=%d", dateKey, req.StartTime, staff.ID)
				return domain.NewBookingFailure(domain.ReasonSlotTaken, 0,
					"%s at %s is already booked", dateKey, req.StartTime)
			}
		}

		// 4. Дневной лимит
		policy := uc.calendar.Policy()
		if policy.HasDailyCapacity() {
			existing, err := uc.appointmentRepo.ListOn(txCtx, req.Date)
			if err != nil {
				uc.logger.Error("BookAppointment: failed to list appointments on %s: %v", dateKey, err)
				return err
			}
			count := countActive(existing)
			if count >= policy.MaxAppointmentsPerDay {
				uc.logger.Warn("BookAppointment: daily capacity reached on %s, %d/%d",
					dateKey, count, policy.MaxAppointmentsPerDay)
				return domain.NewBookingFailure(domain.ReasonDailyCapacityExceeded, policy.MaxAppointmentsPerDay,
					"%s already has %d appointments", dateKey, count)
			}
		}

		// 5. Сохраняем запись
		created, err := uc.appointmentRepo.Create(txCtx, &domain.Appointment{
			ClientName:   strings.TrimSpace(req.ClientName),
			Phone:        req.Phone,
			Email:        req.Email,
			Date:         req.Date,
			StartTime:    req.StartTime,
			ServiceID:    service.ID,
			StaffID:      req.StaffID,
			Resource:     resource,
			State:        domain.StatePending,
			Notes:        req.Notes,
			PaymentState: domain.PaymentPending,
		})
		if err != nil {
			uc.logger.Error("BookAppointment: failed to create appointment: %v", err)
			return err
		}

		result = created
		return nil
	})
	if err != nil {
		if !isDomainError(err) {
			err = errors.Join(domain.ErrStorage, err)
		}
		return nil, err
	}

	uc.logger.Info("BookAppointment: created appointment id=%d", result.ID)
	return result, nil
}

func (uc *UseCase) observe(err error) {
	if uc.recorder == nil {
		return
	}
	uc.recorder.ObserveBooking(outcome(err))
}

// outcome метка исхода для метрик
func outcome(err error) string {
	if err == nil {
		return OutcomeBooked
	}
	if failure, ok := domain.AsBookingFailure(err); ok {
		return string(failure.Reason)
	}
	switch {
	case errors.Is(err, domain.ErrValidation):
		return OutcomeValidation
	case errors.Is(err, domain.ErrReference):
		return OutcomeReference
	default:
		return OutcomeError
	}
}

// isDomainError true для ошибок, которые уже классифицированы
// Ошибки commit/begin транзакции приходят без классификации
func isDomainError(err error) bool {
	if _, ok := domain.AsBookingFailure(err); ok {
		return true
	}
	return errors.Is(err, domain.ErrValidation) ||
		errors.Is(err, domain.ErrReference) ||
		errors.Is(err, domain.ErrStorage)
}

func staffLabel(staffID *int64) interface{} {
	if staffID == nil {
		return "any"
	}
	return *staffID
}
