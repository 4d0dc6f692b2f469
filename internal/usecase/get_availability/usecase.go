package get_availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonBooking/internal/conflict"
	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// UseCase use case для получения доступности услуги на дату
type UseCase struct {
	appointmentRepo AppointmentRepository
	services        ServiceCatalog
	staff           StaffCatalog
	calendar        Calendar
	recliningTag    string
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	services ServiceCatalog,
	staff StaffCatalog,
	calendar Calendar,
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
		recliningTag:    recliningTag,
		logger:          logger,
	}
}

// Execute возвращает признак работы, слоты календаря и сотрудников,
// у которых есть хотя бы один свободный слот
// Чтение выполняется без блокировок
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*domain.Availability, error) {
	if req == nil || req.Date.IsZero() {
		return nil, domain.NewValidationError("date is required")
	}
	dateKey := req.Date.Format(domain.DateFormat)
	uc.logger.Info("GetAvailability: date=%s, service=%d", dateKey, req.ServiceID)

	// 1. Получаем услугу
	service, err := uc.services.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, domain.ErrReference) {
			uc.logger.Warn("GetAvailability: service id=%d not found", req.ServiceID)
			return nil, err
		}
		uc.logger.Error("GetAvailability: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: service catalog: %v", domain.ErrStorage, err)
	}

	result := &domain.Availability{
		Date:            req.Date,
		ServiceID:       service.ID,
		ServiceName:     service.Name,
		DurationMinutes: service.DurationMinutes,
		Slots:           []types.TimeString{},
		EligibleStaff:   []domain.StaffRef{},
	}

	// 2. Рабочий день
	isOpen, _ := uc.calendar.IsOpen(req.Date)
	result.Open = isOpen
	if !isOpen {
		uc.logger.Info("GetAvailability: closed on %s", dateKey)
		return result, nil
	}

	// 3. Слоты календаря
	result.Slots = uc.calendar.AvailableSlots(req.Date, service.DurationMinutes)
	if !result.HasSlots() {
		uc.logger.Info("GetAvailability: no slots on %s for %d minutes", dateKey, service.DurationMinutes)
		return result, nil
	}

	// 4. Записи на дату и квалифицированные сотрудники
	existing, err := uc.appointmentRepo.ListOn(ctx, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to list appointments on %s: %v", dateKey, err)
		return nil, err
	}

	staff, err := uc.staff.ListActive(ctx)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to list staff: %v", err)
		return nil, fmt.Errorf("%w: staff catalog: %v", domain.ErrStorage, err)
	}

	durationOf := uc.appointmentRepo.DurationResolver(ctx)
	for _, member := range staff {
		if !member.IsQualifiedFor(service.ID) {
			continue
		}
		free, err := hasFreeSlot(service, member, result.Slots, existing, durationOf, uc.recliningTag)
		if err != nil {
			uc.logger.Error("GetAvailability: failed to check staff id=%d on %s: %v", member.ID, dateKey, err)
			return nil, err
		}
		if free {
			result.EligibleStaff = append(result.EligibleStaff, member.Ref())
		}
	}

	uc.logger.Info("GetAvailability: %d slots, %d eligible staff on %s",
		len(result.Slots), len(result.EligibleStaff), dateKey)
	return result, nil
}

// hasFreeSlot проверяет, что у сотрудника есть хотя бы один слот без пересечений
func hasFreeSlot(
	service *domain.Service,
	member *domain.Staff,
	slots []types.TimeString,
	existing []*domain.Appointment,
	durationOf conflict.DurationFunc,
	recliningTag string,
) (bool, error) {
	staffID := member.ID
	resource := domain.EffectiveResource(service, member, recliningTag)

	for _, slot := range slots {
		candidate := conflict.Candidate{
			StartMinutes:    slot.Minutes(),
			DurationMinutes: service.DurationMinutes,
			StaffID:         &staffID,
			Resource:        resource,
		}
		busy, err := conflict.HasConflict(candidate, existing, durationOf)
		if err != nil {
			return false, err
		}
		if !busy {
			return true, nil
		}
	}
	return false, nil
}
