package book_appointment

import (
	"strings"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// validateRequest проверяет входные данные до обращения к каталогам
func validateRequest(req *Request) error {
	if req == nil {
		return domain.NewValidationError("request is required")
	}

	name := strings.TrimSpace(req.ClientName)
	if name == "" {
		return domain.NewValidationError("client name is required")
	}
	if len(name) > domain.MaxClientNameLength {
		return domain.NewValidationError("client name must be at most %d characters", domain.MaxClientNameLength)
	}

	if req.Date.IsZero() {
		return domain.NewValidationError("date is required")
	}
	if err := req.StartTime.Validate(); err != nil {
		return domain.NewValidationError("start time: %v", err)
	}

	if req.ServiceID < 1 {
		return domain.NewValidationError("service id must be positive")
	}
	if req.StaffID != nil && *req.StaffID < 1 {
		return domain.NewValidationError("staff id must be positive")
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return domain.NewValidationError("notes must be at most %d characters", domain.MaxNotesLength)
	}

	return nil
}

// countActive считает записи, занимающие место в дневном лимите
func countActive(appts []*domain.Appointment) int {
	count := 0
	for _, a := range appts {
		if a.IsActive() {
			count++
		}
	}
	return count
}
