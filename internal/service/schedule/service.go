package schedule

import (
	"context"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// DefaultDays количество дней в календаре по умолчанию
const DefaultDays = 14

// Service сервис чтения расписания салона
type Service struct {
	calendar Calendar
	logger   Logger
}

// NewService создает новый экземпляр сервиса расписания
func NewService(calendar Calendar, logger Logger) *Service {
	return &Service{
		calendar: calendar,
		logger:   logger,
	}
}

// Get возвращает недельный шаблон, перерыв и политику бронирования
func (s *Service) Get(_ context.Context) domain.Schedule {
	return s.calendar.Schedule()
}

// OpenDates возвращает ближайшие days дней начиная с сегодняшнего с признаком работы
// days = 0 означает DefaultDays
func (s *Service) OpenDates(_ context.Context, days int) ([]domain.OpenDate, error) {
	if days == 0 {
		days = DefaultDays
	}
	if days < 0 || days > domain.MaxOpenDatesDays {
		s.logger.Warn("OpenDates: invalid days=%d", days)
		return nil, domain.NewValidationError("days must be between 1 and %d", domain.MaxOpenDatesDays)
	}

	dates := s.calendar.OpenDates(s.calendar.Today(), days)
	s.logger.Info("OpenDates: returned %d days", len(dates))
	return dates, nil
}
