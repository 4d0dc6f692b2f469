package catalogservice

import "github.com/m04kA/SMC-SalonBooking/internal/domain"

// Service модель услуги из CatalogService
type Service struct {
	ID                       int64   `json:"id"`
	Name                     string  `json:"name"`
	DurationMinutes          int     `json:"duration_minutes"`
	BasePrice                float64 `json:"base_price"`
	Category                 string  `json:"category"`
	RequiresRecliningStation bool    `json:"requires_reclining_station"`
	EligibleStaffIDs         []int64 `json:"eligible_staff_ids"`
	Description              string  `json:"description"`
}

// Staff модель сотрудника из CatalogService
type Staff struct {
	ID                int64    `json:"id"`
	Name              string   `json:"name"`
	Active            bool     `json:"active"`
	ServiceIDs        []int64  `json:"service_ids"`
	PreferredResource string   `json:"preferred_resource"`
	Resources         []string `json:"resources"`
	Color             string   `json:"color"`
}

// ErrorResponse модель ошибки от CatalogService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (s *Service) toDomain() *domain.Service {
	return &domain.Service{
		ID:                       s.ID,
		Name:                     s.Name,
		DurationMinutes:          s.DurationMinutes,
		BasePrice:                s.BasePrice,
		Category:                 s.Category,
		RequiresRecliningStation: s.RequiresRecliningStation,
		EligibleStaffIDs:         s.EligibleStaffIDs,
		Description:              s.Description,
	}
}

func (s *Staff) toDomain() *domain.Staff {
	return &domain.Staff{
		ID:                s.ID,
		Name:              s.Name,
		Active:            s.Active,
		ServiceIDs:        s.ServiceIDs,
		PreferredResource: s.PreferredResource,
		Resources:         s.Resources,
		Color:             s.Color,
	}
}
