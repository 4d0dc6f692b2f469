package appointment

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// MemoryRepository хранилище записей в памяти процесса
// ID выдаются монотонно и не переиспользуются после удаления
type MemoryRepository struct {
	mu     sync.RWMutex
	nextID int64
	items  map[int64]*domain.Appointment
}

// NewMemoryRepository создает пустое хранилище
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		nextID: 1,
		items:  make(map[int64]*domain.Appointment),
	}
}

func (r *MemoryRepository) Create(_ context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := appt.Clone()
	stored.ID = r.nextID
	r.nextID++
	r.items[stored.ID] = stored

	return stored.Clone(), nil
}

func (r *MemoryRepository) GetByID(_ context.Context, id int64) (*domain.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	appt, ok := r.items[id]
	if !ok {
		return nil, ErrAppointmentNotFound
	}
	return appt.Clone(), nil
}

func (r *MemoryRepository) List(_ context.Context, filter domain.AppointmentFilter) ([]*domain.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var dateKey string
	if filter.Date != nil {
		dateKey = filter.Date.Format(domain.DateFormat)
	}

	result := make([]*domain.Appointment, 0)
	for _, appt := range r.items {
		if filter.Date != nil && appt.DateKey() != dateKey {
			continue
		}
		if filter.StaffID != nil && !appt.HasStaff(*filter.StaffID) {
			continue
		}
		result = append(result, appt.Clone())
	}

	sort.Slice(result, func(i, j int) bool {
		a, b := result[i], result[j]
		if ak, bk := a.DateKey(), b.DateKey(); ak != bk {
			return ak < bk
		}
		if am, bm := a.StartTime.Minutes(), b.StartTime.Minutes(); am != bm {
			return am < bm
		}
		return a.ID < b.ID
	})

	return result, nil
}

func (r *MemoryRepository) UpdateState(_ context.Context, id int64, state domain.AppointmentState) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	appt, ok := r.items[id]
	if !ok {
		return ErrAppointmentNotFound
	}
	appt.State = state
	return nil
}

func (r *MemoryRepository) UpdateDetails(_ context.Context, id int64, details domain.AppointmentDetails) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	appt, ok := r.items[id]
	if !ok {
		return ErrAppointmentNotFound
	}

	if details.FinalPrice != nil {
		v := *details.FinalPrice
		appt.FinalPrice = &v
	}
	if details.Notes != nil {
		v := *details.Notes
		appt.Notes = &v
	}
	if details.PaymentState != nil {
		appt.PaymentState = *details.PaymentState
	}
	if details.ActualDurationMinutes != nil {
		v := *details.ActualDurationMinutes
		appt.ActualDurationMinutes = &v
	}
	return nil
}

func (r *MemoryRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return ErrAppointmentNotFound
	}
	delete(r.items, id)
	return nil
}

// LockDate ничего не делает: запись в памяти сериализуется блокировкой по дате в сервисе
func (r *MemoryRepository) LockDate(_ context.Context, _ time.Time) error {
	return nil
}
