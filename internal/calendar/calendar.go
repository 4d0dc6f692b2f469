// Package calendar answers opening-hours and booking-policy questions over
// a weekly schedule. Every method is a pure function of the schedule and
// the injected clock, so a Calendar is safe for concurrent use.
package calendar

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

// Calendar расписание салона и политика бронирования
type Calendar struct {
	schedule domain.Schedule
	clock    TimeProvider
}

// New создает календарь; clock == nil означает системное время
func New(schedule domain.Schedule, clock TimeProvider) *Calendar {
	if clock == nil {
		clock = &RealTimeProvider{}
	}
	return &Calendar{
		schedule: schedule,
		clock:    clock,
	}
}

// Schedule возвращает копию недельного шаблона
func (c *Calendar) Schedule() domain.Schedule {
	return c.schedule
}

// Policy возвращает политику бронирования
func (c *Calendar) Policy() domain.BookingPolicy {
	return c.schedule.Policy
}

// Now текущее время календаря
func (c *Calendar) Now() time.Time {
	return c.clock.Now()
}

// Today текущая дата календаря (00:00 в локальной зоне часов)
func (c *Calendar) Today() time.Time {
	return DateOf(c.clock.Now())
}

// IsOpen возвращает признак работы в дату и время открытия
func (c *Calendar) IsOpen(date time.Time) (bool, *types.TimeString) {
	day := c.schedule.Day(date.Weekday())
	if !day.IsOpen {
		return false, nil
	}
	open := day.OpenTime
	return true, &open
}

// ClosingTime возвращает время закрытия или nil, если салон закрыт
func (c *Calendar) ClosingTime(date time.Time) *types.TimeString {
	day := c.schedule.Day(date.Weekday())
	if !day.IsOpen {
		return nil
	}
	closing := day.CloseTime
	return &closing
}

// AvailableSlots возвращает возможные начала записи длительностью durationMinutes
// Слоты идут с шагом SlotIntervalMinutes от открытия; слот исключается, если
// [start, start+duration) пересекается с перерывом или заканчивается после закрытия.
// Открытый день без единого слота - допустимый результат.
func (c *Calendar) AvailableSlots(date time.Time, durationMinutes int) []types.TimeString {
	slots := make([]types.TimeString, 0)

	isOpen, openTime := c.IsOpen(date)
	if !isOpen || durationMinutes <= 0 {
		return slots
	}
	closeTime := c.ClosingTime(date)

	step := c.schedule.Policy.SlotIntervalMinutes
	if step <= 0 {
		step = domain.DefaultSlotIntervalMinutes
	}

	openMin := openTime.Minutes()
	closeMin := closeTime.Minutes()

	brk := c.schedule.Break
	breakStart, breakEnd := brk.Start.Minutes(), brk.End.Minutes()

	for start := openMin; start+durationMinutes <= closeMin; start += step {
		end := start + durationMinutes

		// Полуоткрытые интервалы: касание границы перерыва не считается пересечением
		if brk.Active && start < breakEnd && breakStart < end {
			continue
		}

		slot, err := types.NewTimeStringFromMinutes(start)
		if err != nil {
			break
		}
		slots = append(slots, slot)
	}

	return slots
}

// ValidateSlot проверяет запрос по порядку: заблаговременность, горизонт, доступность слота
// Возвращает *domain.BookingFailure первой нарушенной проверки
func (c *Calendar) ValidateSlot(date time.Time, startTime types.TimeString, durationMinutes int) error {
	now := c.clock.Now()
	policy := c.schedule.Policy

	// 1. Заблаговременность
	if err := validateLeadTime(date, startTime, now, policy.MinLeadTimeHours); err != nil {
		return err
	}

	// 2. Горизонт бронирования
	if err := validateHorizon(date, now, policy); err != nil {
		return err
	}

	// 3. Рабочий день и слот из списка доступных
	if isOpen, _ := c.IsOpen(date); !isOpen {
		return domain.NewBookingFailure(domain.ReasonSlotClosedOrUnavailable, 0,
			"closed on %s", date.Format(domain.DateFormat))
	}

	for _, slot := range c.AvailableSlots(date, durationMinutes) {
		if slot == startTime {
			return nil
		}
	}

	return domain.NewBookingFailure(domain.ReasonSlotClosedOrUnavailable, 0,
		"%s is not a bookable slot on %s for %d minutes", startTime, date.Format(domain.DateFormat), durationMinutes)
}

// OpenDates возвращает days дат начиная с from с признаком работы
func (c *Calendar) OpenDates(from time.Time, days int) []domain.OpenDate {
	if days <= 0 {
		return []domain.OpenDate{}
	}

	start := DateOf(from)
	result := make([]domain.OpenDate, 0, days)
	for i := 0; i < days; i++ {
		date := start.AddDate(0, 0, i)
		isOpen, _ := c.IsOpen(date)
		result = append(result, domain.OpenDate{
			Date:    date,
			Weekday: date.Weekday(),
			IsOpen:  isOpen,
		})
	}
	return result
}
