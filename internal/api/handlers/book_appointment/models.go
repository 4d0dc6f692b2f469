package book_appointment

import (
	"fmt"

	"github.com/m04kA/SMC-SalonBooking/internal/calendar"
	bookAppointment "github.com/m04kA/SMC-SalonBooking/internal/usecase/book_appointment"
)

// BookAppointmentRequest HTTP request model
type BookAppointmentRequest struct {
	ClientName string  `json:"clientName"`
	Phone      *string `json:"phone,omitempty"`
	Email      *string `json:"email,omitempty"`
	Date       string  `json:"date"`      // "2025-10-15"
	StartTime  string  `json:"startTime"` // "10:00"
	ServiceID  int64   `json:"serviceId"`
	StaffID    *int64  `json:"staffId,omitempty"`
	Notes      *string `json:"notes,omitempty"`
}

type fieldError struct {
	field string
	err   error
}

func (e *fieldError) Error() string {
	return fmt.Sprintf("%s: %v", e.field, e.err)
}

func (e *fieldError) Unwrap() error {
	return e.err
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case (с парсингом даты и времени)
func (r *BookAppointmentRequest) ToUseCaseRequest() (*bookAppointment.Request, error) {
	date, err := calendar.ParseDate(r.Date)
	if err != nil {
		return nil, &fieldError{field: "date", err: err}
	}

	startTime, err := calendar.ParseTime(r.StartTime)
	if err != nil {
		return nil, &fieldError{field: "startTime", err: err}
	}

	return &bookAppointment.Request{
		ClientName: r.ClientName,
		Phone:      r.Phone,
		Email:      r.Email,
		Date:       date,
		StartTime:  startTime,
		ServiceID:  r.ServiceID,
		StaffID:    r.StaffID,
		Notes:      r.Notes,
	}, nil
}
