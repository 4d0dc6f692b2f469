package get_schedule

import (
	"strings"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// DayResponse часы работы дня недели; для выходного open/close пустые
type DayResponse struct {
	Weekday   int    `json:"weekday"` // 0 = воскресенье
	Name      string `json:"name"`
	IsOpen    bool   `json:"isOpen"`
	OpenTime  string `json:"openTime,omitempty"`
	CloseTime string `json:"closeTime,omitempty"`
}

type BreakResponse struct {
	Active bool   `json:"active"`
	Start  string `json:"start,omitempty"`
	End    string `json:"end,omitempty"`
}

type PolicyResponse struct {
	SlotIntervalMinutes   int `json:"slotIntervalMinutes"`
	MinLeadTimeHours      int `json:"minLeadTimeHours"`
	MaxHorizonDays        int `json:"maxHorizonDays"`
	MaxAppointmentsPerDay int `json:"maxAppointmentsPerDay"`
}

// ScheduleResponse HTTP response model
type ScheduleResponse struct {
	Days   []DayResponse  `json:"days"`
	Break  BreakResponse  `json:"break"`
	Policy PolicyResponse `json:"policy"`
}

func fromDomain(s domain.Schedule) *ScheduleResponse {
	resp := &ScheduleResponse{
		Days: make([]DayResponse, 0, len(s.Days)),
		Policy: PolicyResponse{
			SlotIntervalMinutes:   s.Policy.SlotIntervalMinutes,
			MinLeadTimeHours:      s.Policy.MinLeadTimeHours,
			MaxHorizonDays:        s.Policy.MaxHorizonDays,
			MaxAppointmentsPerDay: s.Policy.MaxAppointmentsPerDay,
		},
	}
	for wd, day := range s.Days {
		d := DayResponse{
			Weekday: wd,
			Name:    strings.ToLower(time.Weekday(wd).String()),
			IsOpen:  day.IsOpen,
		}
		if day.IsOpen {
			d.OpenTime = day.OpenTime.String()
			d.CloseTime = day.CloseTime.String()
		}
		resp.Days = append(resp.Days, d)
	}
	if s.Break.Active {
		resp.Break = BreakResponse{Active: true, Start: s.Break.Start.String(), End: s.Break.End.String()}
	}
	return resp
}
