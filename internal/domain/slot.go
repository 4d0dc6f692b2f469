package domain

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// Availability доступность услуги на дату
type Availability struct {
	Date            time.Time
	ServiceID       int64
	ServiceName     string
	DurationMinutes int
	Open            bool
	Slots           []types.TimeString
	EligibleStaff   []StaffRef
}

// HasSlots возвращает true, если есть хотя бы один слот
func (a *Availability) HasSlots() bool {
	return len(a.Slots) > 0
}

// Statistics агрегированная статистика по записям
type Statistics struct {
	TotalCount       int
	FutureCount      int
	CountsByState    map[AppointmentState]int
	CountsByService  map[int64]int
	ActiveStaffCount int
	ServicesCount    int
}
