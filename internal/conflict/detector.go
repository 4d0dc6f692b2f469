// Package conflict detects time overlaps between a candidate appointment and
// the appointments already booked on the same date.
package conflict

import (
	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// Candidate проверяемая запись
type Candidate struct {
	StartMinutes    int
	DurationMinutes int
	StaffID         *int64
	Resource        *string
}

// DurationFunc возвращает длительность существующей записи в минутах
type DurationFunc func(a *domain.Appointment) (int, error)

// Overlaps проверяет пересечение полуоткрытых интервалов [aStart, aEnd) и [bStart, bEnd)
func Overlaps(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && bStart < aEnd
}

// HasConflict возвращает true, если кандидат пересекается по времени с записью
// того же сотрудника или того же ресурса. Отмененные записи не учитываются.
// existing должен содержать записи одной даты с кандидатом.
// Ошибка durationOf прерывает проверку и возвращается вызывающему.
func HasConflict(candidate Candidate, existing []*domain.Appointment, durationOf DurationFunc) (bool, error) {
	if candidate.StaffID == nil && candidate.Resource == nil {
		return false, nil
	}

	start := candidate.StartMinutes
	end := start + candidate.DurationMinutes

	for _, appt := range existing {
		if appt == nil || !appt.IsActive() {
			continue
		}

		sameStaff := candidate.StaffID != nil && appt.HasStaff(*candidate.StaffID)
		sameResource := candidate.Resource != nil && appt.UsesResource(*candidate.Resource)
		if !sameStaff && !sameResource {
			continue
		}

		apptStart := appt.StartTime.Minutes()
		if apptStart < 0 {
			continue
		}
		duration, err := durationOf(appt)
		if err != nil {
			return false, err
		}

		if Overlaps(start, end, apptStart, apptStart+duration) {
			return true, nil
		}
	}

	return false, nil
}
