package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation некорректные входные данные (формат даты/времени, состояние, имя клиента)
	ErrValidation = errors.New("validation error")

	// ErrReference ссылка на несуществующую услугу или сотрудника
	ErrReference = errors.New("reference error")

	// ErrStorage ошибка хранилища, запись не зафиксирована
	ErrStorage = errors.New("storage error")

	// ErrUnknownService услуга не найдена в каталоге
	ErrUnknownService = fmt.Errorf("%w: unknown service", ErrReference)

	// ErrUnknownStaff сотрудник не найден в каталоге
	ErrUnknownStaff = fmt.Errorf("%w: unknown staff", ErrReference)

	// ErrAppointmentNotFound запись не найдена
	ErrAppointmentNotFound = errors.New("appointment not found")

	// ErrInvalidTransition переход из терминального состояния
	ErrInvalidTransition = errors.New("invalid appointment state transition")
)

// NewValidationError создает ошибку валидации с описанием
func NewValidationError(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// FailureReason причина отказа в бронировании
type FailureReason string

const (
	ReasonLeadTimeTooShort        FailureReason = "lead_time_too_short"
	ReasonHorizonExceeded         FailureReason = "horizon_exceeded"
	ReasonSlotClosedOrUnavailable FailureReason = "slot_closed_or_unavailable"
	ReasonStaffNotQualified       FailureReason = "staff_not_qualified"
	ReasonSlotTaken               FailureReason = "slot_taken"
	ReasonDailyCapacityExceeded   FailureReason = "daily_capacity_exceeded"
)

var (
	ErrLeadTimeTooShort        = errors.New("booking: lead time too short")
	ErrHorizonExceeded         = errors.New("booking: horizon exceeded")
	ErrSlotClosedOrUnavailable = errors.New("booking: slot closed or unavailable")
	ErrStaffNotQualified       = errors.New("booking: staff not qualified")
	ErrSlotTaken               = errors.New("booking: slot taken")
	ErrDailyCapacityExceeded   = errors.New("booking: daily capacity exceeded")
)

var reasonErrors = map[FailureReason]error{
	ReasonLeadTimeTooShort:        ErrLeadTimeTooShort,
	ReasonHorizonExceeded:         ErrHorizonExceeded,
	ReasonSlotClosedOrUnavailable: ErrSlotClosedOrUnavailable,
	ReasonStaffNotQualified:       ErrStaffNotQualified,
	ReasonSlotTaken:               ErrSlotTaken,
	ReasonDailyCapacityExceeded:   ErrDailyCapacityExceeded,
}

// BookingFailure отказ одного из шагов бронирования
// Limit содержит порог нарушенного ограничения (часы, дни, записи), если он есть
type BookingFailure struct {
	Reason FailureReason
	Limit  int
	Detail string
}

// NewBookingFailure создает отказ с порогом ограничения
func NewBookingFailure(reason FailureReason, limit int, format string, args ...interface{}) *BookingFailure {
	return &BookingFailure{
		Reason: reason,
		Limit:  limit,
		Detail: fmt.Sprintf(format, args...),
	}
}

func (f *BookingFailure) Error() string {
	if f.Detail == "" {
		return reasonErrors[f.Reason].Error()
	}
	return fmt.Sprintf("%v: %s", reasonErrors[f.Reason], f.Detail)
}

// Unwrap позволяет сравнивать отказ с ErrSlotTaken и т.п. через errors.Is
func (f *BookingFailure) Unwrap() error {
	return reasonErrors[f.Reason]
}

// AsBookingFailure извлекает BookingFailure из цепочки ошибок
func AsBookingFailure(err error) (*BookingFailure, bool) {
	var f *BookingFailure
	if errors.As(err, &f) {
		return f, true
	}
	return nil, false
}
