// Package catalogservice is an HTTP client for a remote service and staff
// catalog, used instead of the local TOML catalog when configured.
package catalogservice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// errNotFound внутренний маркер 404, заменяется на ссылочную ошибку домена
var errNotFound = errors.New("catalogservice client: not found")

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент для работы с CatalogService
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента CatalogService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// Services возвращает каталог услуг поверх клиента
func (c *Client) Services() *ServiceCatalog {
	return &ServiceCatalog{client: c}
}

// Staff возвращает каталог сотрудников поверх клиента
func (c *Client) Staff() *StaffCatalog {
	return &StaffCatalog{client: c}
}

// GetService получает услугу по ID
func (c *Client) GetService(ctx context.Context, id int64) (*Service, error) {
	var svc Service
	err := c.get(ctx, fmt.Sprintf("%s/internal/services/%d", c.baseURL, id), &svc)
	if errors.Is(err, errNotFound) {
		return nil, domain.ErrUnknownService
	}
	if err != nil {
		c.log.Error("CatalogService: failed to get service id=%d: %v", id, err)
		return nil, err
	}
	return &svc, nil
}

// ListServices получает все услуги
func (c *Client) ListServices(ctx context.Context) ([]Service, error) {
	var services []Service
	if err := c.get(ctx, c.baseURL+"/internal/services", &services); err != nil {
		c.log.Error("CatalogService: failed to list services: %v", err)
		return nil, err
	}
	return services, nil
}

// GetStaff получает сотрудника по ID
func (c *Client) GetStaff(ctx context.Context, id int64) (*Staff, error) {
	var member Staff
	err := c.get(ctx, fmt.Sprintf("%s/internal/staff/%d", c.baseURL, id), &member)
	if errors.Is(err, errNotFound) {
		return nil, domain.ErrUnknownStaff
	}
	if err != nil {
		c.log.Error("CatalogService: failed to get staff id=%d: %v", id, err)
		return nil, err
	}
	return &member, nil
}

// ListActiveStaff получает активных сотрудников
func (c *Client) ListActiveStaff(ctx context.Context) ([]Staff, error) {
	var staff []Staff
	if err := c.get(ctx, c.baseURL+"/internal/staff?active=true", &staff); err != nil {
		c.log.Error("CatalogService: failed to list staff: %v", err)
		return nil, err
	}
	return staff, nil
}

func (c *Client) get(ctx context.Context, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusNotFound:
		return errNotFound
	default:
		body, _ := io.ReadAll(resp.Body)
		var errResp ErrorResponse
		if json.Unmarshal(body, &errResp) == nil && errResp.Message != "" {
			return fmt.Errorf("%w: status %d: %s", ErrInvalidResponse, resp.StatusCode, errResp.Message)
		}
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}
	return nil
}

// ServiceCatalog каталог услуг CatalogService
type ServiceCatalog struct {
	client *Client
}

func (s *ServiceCatalog) GetByID(ctx context.Context, id int64) (*domain.Service, error) {
	svc, err := s.client.GetService(ctx, id)
	if err != nil {
		return nil, err
	}
	return svc.toDomain(), nil
}

func (s *ServiceCatalog) ListAll(ctx context.Context) ([]*domain.Service, error) {
	services, err := s.client.ListServices(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]*domain.Service, 0, len(services))
	for i := range services {
		result = append(result, services[i].toDomain())
	}
	return result, nil
}

// StaffCatalog каталог сотрудников CatalogService
type StaffCatalog struct {
	client *Client
}

func (s *StaffCatalog) GetByID(ctx context.Context, id int64) (*domain.Staff, error) {
	member, err := s.client.GetStaff(ctx, id)
	if err != nil {
		return nil, err
	}
	return member.toDomain(), nil
}

// ListActive возвращает только активных сотрудников, даже если сервис вернул лишних
func (s *StaffCatalog) ListActive(ctx context.Context) ([]*domain.Staff, error) {
	staff, err := s.client.ListActiveStaff(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]*domain.Staff, 0, len(staff))
	for i := range staff {
		if staff[i].Active {
			result = append(result, staff[i].toDomain())
		}
	}
	return result, nil
}
