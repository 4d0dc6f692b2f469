package complete_appointment

import "github.com/m04kA/SMC-SalonBooking/internal/domain"

// CompleteAppointmentRequest данные визита, все поля необязательны
type CompleteAppointmentRequest struct {
	FinalPrice            *float64 `json:"finalPrice,omitempty"`
	Notes                 *string  `json:"notes,omitempty"`
	PaymentState          *string  `json:"paymentState,omitempty"` // pending | paid | partial
	ActualDurationMinutes *int     `json:"actualDurationMinutes,omitempty"`
}

// ToDetails конвертирует запрос в доменную модель
func (r *CompleteAppointmentRequest) ToDetails() (domain.AppointmentDetails, error) {
	details := domain.AppointmentDetails{
		FinalPrice:            r.FinalPrice,
		Notes:                 r.Notes,
		ActualDurationMinutes: r.ActualDurationMinutes,
	}
	if r.PaymentState != nil {
		state, err := domain.ParsePaymentState(*r.PaymentState)
		if err != nil {
			return details, err
		}
		details.PaymentState = &state
	}
	return details, details.Validate()
}
