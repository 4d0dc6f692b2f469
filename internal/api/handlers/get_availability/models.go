package get_availability

import "github.com/m04kA/SMC-SalonBooking/internal/domain"

// StaffResponse сотрудник, у которого есть свободное время
type StaffResponse struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	ServiceIDs []int64 `json:"serviceIds"`
	Color      string  `json:"color"`
}

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	Date            string          `json:"date"`
	ServiceID       int64           `json:"serviceId"`
	ServiceName     string          `json:"serviceName"`
	DurationMinutes int             `json:"durationMinutes"`
	Open            bool            `json:"open"`
	Slots           []string        `json:"slots"`
	EligibleStaff   []StaffResponse `json:"eligibleStaff"`
}

func fromDomain(a *domain.Availability) *AvailabilityResponse {
	resp := &AvailabilityResponse{
		Date:            a.Date.Format(domain.DateFormat),
		ServiceID:       a.ServiceID,
		ServiceName:     a.ServiceName,
		DurationMinutes: a.DurationMinutes,
		Open:            a.Open,
		Slots:           make([]string, 0, len(a.Slots)),
		EligibleStaff:   make([]StaffResponse, 0, len(a.EligibleStaff)),
	}
	for _, slot := range a.Slots {
		resp.Slots = append(resp.Slots, slot.String())
	}
	for _, s := range a.EligibleStaff {
		resp.EligibleStaff = append(resp.EligibleStaff, StaffResponse{
			ID:         s.ID,
			Name:       s.Name,
			ServiceIDs: s.ServiceIDs,
			Color:      s.Color,
		})
	}
	return resp
}
