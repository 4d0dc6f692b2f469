// Package catalog serves the service and staff catalogs from a TOML file
// loaded once at startup. The catalogs are read-only afterwards.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/BurntSushi/toml"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

var (
	// ErrInvalidCatalog возвращается при некорректном содержимом каталога
	ErrInvalidCatalog = errors.New("catalog: invalid catalog")

	// ErrReadFile возвращается при ошибке чтения файла каталога
	ErrReadFile = errors.New("catalog: failed to read file")
)

// File формат TOML-файла каталога
type File struct {
	Services []ServiceEntry `toml:"services"`
	Staff    []StaffEntry   `toml:"staff"`
}

// ServiceEntry услуга в файле каталога
type ServiceEntry struct {
	ID                       int64   `toml:"id"`
	Name                     string  `toml:"name"`
	DurationMinutes          int     `toml:"duration_minutes"`
	BasePrice                float64 `toml:"base_price"`
	Category                 string  `toml:"category"`
	RequiresRecliningStation bool    `toml:"requires_reclining_station"`
	EligibleStaffIDs         []int64 `toml:"eligible_staff_ids"`
	Description              string  `toml:"description"`
}

// StaffEntry сотрудник в файле каталога
type StaffEntry struct {
	ID                int64    `toml:"id"`
	Name              string   `toml:"name"`
	Active            bool     `toml:"active"`
	ServiceIDs        []int64  `toml:"service_ids"`
	PreferredResource string   `toml:"preferred_resource"`
	Resources         []string `toml:"resources"`
	Color             string   `toml:"color"`
}

// Catalog каталоги услуг и сотрудников в памяти
type Catalog struct {
	services map[int64]domain.Service
	staff    map[int64]domain.Staff
}

// LoadFile загружает каталог из TOML-файла
func LoadFile(path string) (*Catalog, error) {
	var f File
	if _, err := toml.DecodeFile(path, &f); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrReadFile, path, err)
	}
	return FromFile(f)
}

// FromFile строит каталог из разобранного файла
func FromFile(f File) (*Catalog, error) {
	services := make([]domain.Service, 0, len(f.Services))
	for _, s := range f.Services {
		services = append(services, domain.Service{
			ID:                       s.ID,
			Name:                     s.Name,
			DurationMinutes:          s.DurationMinutes,
			BasePrice:                s.BasePrice,
			Category:                 s.Category,
			RequiresRecliningStation: s.RequiresRecliningStation,
			EligibleStaffIDs:         s.EligibleStaffIDs,
			Description:              s.Description,
		})
	}

	staff := make([]domain.Staff, 0, len(f.Staff))
	for _, s := range f.Staff {
		staff = append(staff, domain.Staff{
			ID:                s.ID,
			Name:              s.Name,
			Active:            s.Active,
			ServiceIDs:        s.ServiceIDs,
			PreferredResource: s.PreferredResource,
			Resources:         s.Resources,
			Color:             s.Color,
		})
	}

	return New(services, staff)
}

// New проверяет уникальность ID и ссылки сотрудников на услуги
func New(services []domain.Service, staff []domain.Staff) (*Catalog, error) {
	c := &Catalog{
		services: make(map[int64]domain.Service, len(services)),
		staff:    make(map[int64]domain.Staff, len(staff)),
	}

	for _, s := range services {
		if err := s.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
		}
		if _, dup := c.services[s.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate service id=%d", ErrInvalidCatalog, s.ID)
		}
		c.services[s.ID] = s
	}

	for _, s := range staff {
		if s.ID < 1 {
			return nil, fmt.Errorf("%w: staff id must be positive, got %d", ErrInvalidCatalog, s.ID)
		}
		if s.Name == "" {
			return nil, fmt.Errorf("%w: staff id=%d: name is required", ErrInvalidCatalog, s.ID)
		}
		if _, dup := c.staff[s.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate staff id=%d", ErrInvalidCatalog, s.ID)
		}
		for _, serviceID := range s.ServiceIDs {
			if _, ok := c.services[serviceID]; !ok {
				return nil, fmt.Errorf("%w: staff id=%d references unknown service id=%d", ErrInvalidCatalog, s.ID, serviceID)
			}
		}
		c.staff[s.ID] = s
	}

	return c, nil
}

// Services возвращает каталог услуг
func (c *Catalog) Services() *ServiceCatalog {
	return &ServiceCatalog{catalog: c}
}

// Staff возвращает каталог сотрудников
func (c *Catalog) Staff() *StaffCatalog {
	return &StaffCatalog{catalog: c}
}

// ServiceCatalog услуги каталога
type ServiceCatalog struct {
	catalog *Catalog
}

func (s *ServiceCatalog) GetByID(_ context.Context, id int64) (*domain.Service, error) {
	svc, ok := s.catalog.services[id]
	if !ok {
		return nil, domain.ErrUnknownService
	}
	svc.EligibleStaffIDs = append([]int64(nil), svc.EligibleStaffIDs...)
	return &svc, nil
}

// ListAll возвращает все услуги, отсортированные по ID
func (s *ServiceCatalog) ListAll(_ context.Context) ([]*domain.Service, error) {
	result := make([]*domain.Service, 0, len(s.catalog.services))
	for _, svc := range s.catalog.services {
		svc := svc
		svc.EligibleStaffIDs = append([]int64(nil), svc.EligibleStaffIDs...)
		result = append(result, &svc)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// StaffCatalog сотрудники каталога
type StaffCatalog struct {
	catalog *Catalog
}

func (s *StaffCatalog) GetByID(_ context.Context, id int64) (*domain.Staff, error) {
	member, ok := s.catalog.staff[id]
	if !ok {
		return nil, domain.ErrUnknownStaff
	}
	return cloneStaff(member), nil
}

// ListActive возвращает активных сотрудников, отсортированных по ID
func (s *StaffCatalog) ListActive(_ context.Context) ([]*domain.Staff, error) {
	result := make([]*domain.Staff, 0, len(s.catalog.staff))
	for _, member := range s.catalog.staff {
		if !member.Active {
			continue
		}
		result = append(result, cloneStaff(member))
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func cloneStaff(member domain.Staff) *domain.Staff {
	member.ServiceIDs = append([]int64(nil), member.ServiceIDs...)
	member.Resources = append([]string(nil), member.Resources...)
	return &member
}
