package domain

// Service услуга из каталога
type Service struct {
	ID                       int64
	Name                     string
	DurationMinutes          int
	BasePrice                float64
	Category                 string
	RequiresRecliningStation bool
	EligibleStaffIDs         []int64
	Description              string
}

// Validate проверяет инварианты услуги при загрузке каталога
func (s *Service) Validate() error {
	if s.ID < 1 {
		return NewValidationError("service id must be positive, got %d", s.ID)
	}
	if s.Name == "" {
		return NewValidationError("service id=%d: name is required", s.ID)
	}
	if s.DurationMinutes <= 0 {
		return NewValidationError("service id=%d: duration must be positive", s.ID)
	}
	if s.BasePrice < 0 {
		return NewValidationError("service id=%d: price must not be negative", s.ID)
	}
	return nil
}

// Staff сотрудник салона
type Staff struct {
	ID                int64
	Name              string
	Active            bool
	ServiceIDs        []int64 // услуги, которые сотрудник умеет выполнять
	PreferredResource string
	Resources         []string
	Color             string
}

// IsQualifiedFor возвращает true, если сотрудник выполняет услугу
func (s *Staff) IsQualifiedFor(serviceID int64) bool {
	for _, id := range s.ServiceIDs {
		if id == serviceID {
			return true
		}
	}
	return false
}

// StaffRef краткая информация о сотруднике для ответов о доступности
type StaffRef struct {
	ID         int64
	Name       string
	ServiceIDs []int64
	Color      string
}

// Ref возвращает краткую информацию о сотруднике
func (s *Staff) Ref() StaffRef {
	color := s.Color
	if color == "" {
		color = DefaultStaffColor
	}
	return StaffRef{
		ID:         s.ID,
		Name:       s.Name,
		ServiceIDs: append([]int64(nil), s.ServiceIDs...),
		Color:      color,
	}
}

// EffectiveResource ресурс, занимаемый записью: кресло с откидной спинкой, если его
// требует услуга, иначе предпочтительный ресурс сотрудника (staff может быть nil)
func EffectiveResource(service *Service, staff *Staff, recliningTag string) *string {
	if service.RequiresRecliningStation {
		tag := recliningTag
		return &tag
	}
	if staff != nil && staff.PreferredResource != "" {
		tag := staff.PreferredResource
		return &tag
	}
	return nil
}
