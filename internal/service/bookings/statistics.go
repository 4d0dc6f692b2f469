package bookings

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// aggregate считает записи по состояниям и услугам
// FutureCount - активные записи на сегодня и позже
func aggregate(appts []*domain.Appointment, today time.Time) *domain.Statistics {
	stats := &domain.Statistics{
		TotalCount:      len(appts),
		CountsByState:   make(map[domain.AppointmentState]int, len(domain.AllStates)),
		CountsByService: make(map[int64]int),
	}
	for _, state := range domain.AllStates {
		stats.CountsByState[state] = 0
	}

	todayKey := today.Format(domain.DateFormat)
	for _, a := range appts {
		stats.CountsByState[a.State]++
		stats.CountsByService[a.ServiceID]++

		if a.IsActive() && a.DateKey() >= todayKey {
			stats.FutureCount++
		}
	}

	return stats
}
