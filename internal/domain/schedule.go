package domain

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// DaySchedule часы работы в конкретный день недели
type DaySchedule struct {
	IsOpen    bool
	OpenTime  types.TimeString
	CloseTime types.TimeString
}

// BreakInterval ежедневный перерыв, исключаемый из бронирования
type BreakInterval struct {
	Active bool
	Start  types.TimeString
	End    types.TimeString
}

// BookingPolicy ограничения бронирования
type BookingPolicy struct {
	SlotIntervalMinutes   int // шаг между возможными началами записей
	MinLeadTimeHours      int // минимальная заблаговременность для записи на сегодня
	MaxHorizonDays        int // 0 = без ограничений
	MaxAppointmentsPerDay int // 0 = без ограничений
}

// HasHorizonLimit возвращает true, если дальность записи ограничена
func (p BookingPolicy) HasHorizonLimit() bool {
	return p.MaxHorizonDays > 0
}

// HasDailyCapacity возвращает true, если число записей в день ограничено
func (p BookingPolicy) HasDailyCapacity() bool {
	return p.MaxAppointmentsPerDay > 0
}

// Schedule недельный шаблон работы салона
// Days индексируется числовым time.Weekday (0 = воскресенье), а не названием дня
type Schedule struct {
	Days   [7]DaySchedule
	Break  BreakInterval
	Policy BookingPolicy
}

// Day возвращает расписание на день недели
func (s *Schedule) Day(weekday time.Weekday) DaySchedule {
	if weekday < time.Sunday || weekday > time.Saturday {
		return DaySchedule{}
	}
	return s.Days[weekday]
}

// Validate проверяет согласованность шаблона
func (s *Schedule) Validate() error {
	for wd, day := range s.Days {
		if !day.IsOpen {
			continue
		}
		if err := day.OpenTime.Validate(); err != nil {
			return NewValidationError("%s: open time: %v", time.Weekday(wd), err)
		}
		if err := day.CloseTime.Validate(); err != nil {
			return NewValidationError("%s: close time: %v", time.Weekday(wd), err)
		}
		if !day.OpenTime.IsBefore(day.CloseTime) {
			return NewValidationError("%s: open time %s must be before close time %s",
				time.Weekday(wd), day.OpenTime, day.CloseTime)
		}
	}

	if s.Break.Active {
		if err := s.Break.Start.Validate(); err != nil {
			return NewValidationError("break start: %v", err)
		}
		if err := s.Break.End.Validate(); err != nil {
			return NewValidationError("break end: %v", err)
		}
		if !s.Break.Start.IsBefore(s.Break.End) {
			return NewValidationError("break start %s must be before break end %s", s.Break.Start, s.Break.End)
		}
	}

	if s.Policy.SlotIntervalMinutes < MinSlotIntervalMinutes || s.Policy.SlotIntervalMinutes > MaxSlotIntervalMinutes {
		return NewValidationError("slot interval must be between %d and %d minutes",
			MinSlotIntervalMinutes, MaxSlotIntervalMinutes)
	}
	if s.Policy.MinLeadTimeHours < 0 {
		return NewValidationError("lead time must not be negative")
	}
	if s.Policy.MaxHorizonDays < 0 || s.Policy.MaxHorizonDays > MaxHorizonDays {
		return NewValidationError("horizon must be between 0 and %d days", MaxHorizonDays)
	}
	if s.Policy.MaxAppointmentsPerDay < 0 {
		return NewValidationError("daily capacity must not be negative")
	}
	return nil
}

// DefaultSchedule шаблон по умолчанию: пн-пт 09:00-20:00, сб 09:00-18:00, вс выходной,
// перерыв 13:30-14:00
func DefaultSchedule() Schedule {
	weekday := DaySchedule{IsOpen: true, OpenTime: "09:00", CloseTime: "20:00"}

	s := Schedule{
		Break: BreakInterval{Active: true, Start: "13:30", End: "14:00"},
		Policy: BookingPolicy{
			SlotIntervalMinutes:   DefaultSlotIntervalMinutes,
			MinLeadTimeHours:      DefaultMinLeadTimeHours,
			MaxHorizonDays:        DefaultMaxHorizonDays,
			MaxAppointmentsPerDay: DefaultMaxAppointmentsPerDay,
		},
	}
	for _, wd := range []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday} {
		s.Days[wd] = weekday
	}
	s.Days[time.Saturday] = DaySchedule{IsOpen: true, OpenTime: "09:00", CloseTime: "18:00"}
	return s
}

// OpenDate дата с признаком работы салона
type OpenDate struct {
	Date    time.Time
	Weekday time.Weekday
	IsOpen  bool
}
