package calendar

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// validateLeadTime проверяет минимальную заблаговременность
// Для сегодняшней даты начало должно быть не раньше now + leadHours;
// прошедшие даты отклоняются той же причиной
func validateLeadTime(date time.Time, startTime types.TimeString, now time.Time, leadHours int) *domain.BookingFailure {
	if isDateInPast(date, now) {
		return domain.NewBookingFailure(domain.ReasonLeadTimeTooShort, leadHours,
			"%s is in the past", date.Format(domain.DateFormat))
	}

	if !isSameDay(date, now) {
		return nil
	}

	if startTime.On(now).Sub(now) < time.Duration(leadHours)*time.Hour {
		return domain.NewBookingFailure(domain.ReasonLeadTimeTooShort, leadHours,
			"at least %d hours of notice required", leadHours)
	}
	return nil
}

// validateHorizon проверяет, что дата не дальше горизонта политики от сегодняшнего дня
func validateHorizon(date time.Time, now time.Time, policy domain.BookingPolicy) *domain.BookingFailure {
	if !policy.HasHorizonLimit() {
		return nil
	}

	maxDays := policy.MaxHorizonDays
	maxDate := dayOnly(now).AddDate(0, 0, maxDays)
	if dayOnly(date).After(maxDate) {
		return domain.NewBookingFailure(domain.ReasonHorizonExceeded, maxDays,
			"can only book %d days in advance", maxDays)
	}
	return nil
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// isDateInPast проверяет, что дата раньше сегодняшнего дня
func isDateInPast(date, now time.Time) bool {
	return dayOnly(date).Before(dayOnly(now))
}

// dayOnly календарная дата без учета часового пояса для сравнения дней
func dayOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
