package domain

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// AppointmentState состояние жизненного цикла записи
type AppointmentState string

const (
	StatePending   AppointmentState = "pending"
	StateConfirmed AppointmentState = "confirmed"
	StateCompleted AppointmentState = "completed"
	StateCancelled AppointmentState = "cancelled"
)

// AllStates все допустимые состояния в порядке жизненного цикла
var AllStates = []AppointmentState{
	StatePending,
	StateConfirmed,
	StateCompleted,
	StateCancelled,
}

// ParseAppointmentState конвертирует строку в AppointmentState с валидацией
func ParseAppointmentState(s string) (AppointmentState, error) {
	for _, state := range AllStates {
		if string(state) == s {
			return state, nil
		}
	}
	return "", NewValidationError("invalid appointment state %q", s)
}

// IsTerminal возвращает true для completed и cancelled
func (s AppointmentState) IsTerminal() bool {
	return s == StateCompleted || s == StateCancelled
}

// CanTransitionTo проверяет переход состояния для сервиса записей
// pending и confirmed могут перейти в любое состояние, терминальные состояния не меняются
func (s AppointmentState) CanTransitionTo(next AppointmentState) bool {
	if s.IsTerminal() {
		return false
	}
	if s == StateConfirmed && next == StatePending {
		return false
	}
	return true
}

// PaymentState состояние оплаты
type PaymentState string

const (
	PaymentPending PaymentState = "pending"
	PaymentPaid    PaymentState = "paid"
	PaymentPartial PaymentState = "partial"
)

// ParsePaymentState конвертирует строку в PaymentState с валидацией
func ParsePaymentState(s string) (PaymentState, error) {
	switch PaymentState(s) {
	case PaymentPending, PaymentPaid, PaymentPartial:
		return PaymentState(s), nil
	default:
		return "", NewValidationError("invalid payment state %q", s)
	}
}

// Appointment запись клиента на услугу
type Appointment struct {
	ID         int64
	ClientName string
	Phone      *string
	Email      *string

	Date      time.Time // только дата, время 00:00 в локальной зоне
	StartTime types.TimeString
	ServiceID int64
	StaffID   *int64
	Resource  *string

	State     AppointmentState
	CreatedAt time.Time

	// Заполняется персоналом после визита
	FinalPrice            *float64
	Notes                 *string
	PaymentState          PaymentState
	ActualDurationMinutes *int
}

// IsActive возвращает true, если запись занимает время (не отменена)
func (a *Appointment) IsActive() bool {
	return a.State != StateCancelled
}

// DateKey дата записи в формате YYYY-MM-DD
func (a *Appointment) DateKey() string {
	return a.Date.Format(DateFormat)
}

// HasStaff возвращает true, если запись назначена на сотрудника
func (a *Appointment) HasStaff(staffID int64) bool {
	return a.StaffID != nil && *a.StaffID == staffID
}

// UsesResource возвращает true, если запись занимает ресурс
func (a *Appointment) UsesResource(resource string) bool {
	return a.Resource != nil && *a.Resource == resource
}

// Clone возвращает глубокую копию записи
func (a *Appointment) Clone() *Appointment {
	if a == nil {
		return nil
	}
	c := *a
	c.Phone = cloneString(a.Phone)
	c.Email = cloneString(a.Email)
	c.Resource = cloneString(a.Resource)
	c.Notes = cloneString(a.Notes)
	if a.StaffID != nil {
		v := *a.StaffID
		c.StaffID = &v
	}
	if a.FinalPrice != nil {
		v := *a.FinalPrice
		c.FinalPrice = &v
	}
	if a.ActualDurationMinutes != nil {
		v := *a.ActualDurationMinutes
		c.ActualDurationMinutes = &v
	}
	return &c
}

// AppointmentDetails данные, заполняемые персоналом после визита
// nil-поля не изменяются
type AppointmentDetails struct {
	FinalPrice            *float64
	Notes                 *string
	PaymentState          *PaymentState
	ActualDurationMinutes *int
}

// AppointmentFilter фильтр выборки записей
type AppointmentFilter struct {
	Date    *time.Time // конкретная дата (опционально)
	StaffID *int64     // сотрудник (опционально)
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

// Validate проверяет данные визита
func (d AppointmentDetails) Validate() error {
	if d.FinalPrice != nil && *d.FinalPrice < 0 {
		return NewValidationError("final price must not be negative")
	}
	if d.ActualDurationMinutes != nil && *d.ActualDurationMinutes <= 0 {
		return NewValidationError("actual duration must be positive")
	}
	if d.Notes != nil && len(*d.Notes) > MaxNotesLength {
		return NewValidationError("notes must be at most %d characters", MaxNotesLength)
	}
	return nil
}
