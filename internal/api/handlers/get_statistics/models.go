package get_statistics

import (
	"strconv"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// StatisticsResponse HTTP response model
type StatisticsResponse struct {
	TotalCount       int            `json:"totalCount"`
	FutureCount      int            `json:"futureCount"`
	CountsByState    map[string]int `json:"countsByState"`
	CountsByService  map[string]int `json:"countsByService"` // ключ - ID услуги
	ActiveStaffCount int            `json:"activeStaffCount"`
	ServicesCount    int            `json:"servicesCount"`
}

func fromDomain(s *domain.Statistics) *StatisticsResponse {
	resp := &StatisticsResponse{
		TotalCount:       s.TotalCount,
		FutureCount:      s.FutureCount,
		CountsByState:    make(map[string]int, len(s.CountsByState)),
		CountsByService:  make(map[string]int, len(s.CountsByService)),
		ActiveStaffCount: s.ActiveStaffCount,
		ServicesCount:    s.ServicesCount,
	}
	for state, n := range s.CountsByState {
		resp.CountsByState[string(state)] = n
	}
	for id, n := range s.CountsByService {
		resp.CountsByService[strconv.FormatInt(id, 10)] = n
	}
	return resp
}
