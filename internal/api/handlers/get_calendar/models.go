package get_calendar

import (
	"strings"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// DateResponse дата календаря с признаком работы салона
type DateResponse struct {
	Date    string `json:"date"`
	Weekday string `json:"weekday"`
	IsOpen  bool   `json:"isOpen"`
}

func fromDomain(dates []domain.OpenDate) []DateResponse {
	result := make([]DateResponse, 0, len(dates))
	for _, d := range dates {
		result = append(result, DateResponse{
			Date:    d.Date.Format(domain.DateFormat),
			Weekday: strings.ToLower(d.Weekday.String()),
			IsOpen:  d.IsOpen,
		})
	}
	return result
}
