package handlers

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// AppointmentResponse HTTP модель записи
type AppointmentResponse struct {
	ID                    int64    `json:"id"`
	ClientName            string   `json:"clientName"`
	Phone                 *string  `json:"phone,omitempty"`
	Email                 *string  `json:"email,omitempty"`
	Date                  string   `json:"date"`      // "2025-10-15"
	StartTime             string   `json:"startTime"` // "10:00"
	ServiceID             int64    `json:"serviceId"`
	StaffID               *int64   `json:"staffId,omitempty"`
	Resource              *string  `json:"resource,omitempty"`
	State                 string   `json:"state"`
	CreatedAt             string   `json:"createdAt"`
	FinalPrice            *float64 `json:"finalPrice,omitempty"`
	Notes                 *string  `json:"notes,omitempty"`
	PaymentState          string   `json:"paymentState"`
	ActualDurationMinutes *int     `json:"actualDurationMinutes,omitempty"`
}

// FromAppointment конвертирует доменную запись в HTTP модель
func FromAppointment(a *domain.Appointment) *AppointmentResponse {
	return &AppointmentResponse{
		ID:                    a.ID,
		ClientName:            a.ClientName,
		Phone:                 a.Phone,
		Email:                 a.Email,
		Date:                  a.DateKey(),
		StartTime:             a.StartTime.String(),
		ServiceID:             a.ServiceID,
		StaffID:               a.StaffID,
		Resource:              a.Resource,
		State:                 string(a.State),
		CreatedAt:             a.CreatedAt.Format(time.RFC3339),
		FinalPrice:            a.FinalPrice,
		Notes:                 a.Notes,
		PaymentState:          string(a.PaymentState),
		ActualDurationMinutes: a.ActualDurationMinutes,
	}
}

// FromAppointments конвертирует список записей, пустой список сериализуется как []
func FromAppointments(list []*domain.Appointment) []*AppointmentResponse {
	result := make([]*AppointmentResponse, 0, len(list))
	for _, a := range list {
		result = append(result, FromAppointment(a))
	}
	return result
}
