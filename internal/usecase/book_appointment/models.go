package book_appointment

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// Request модель запроса на запись
type Request struct {
	ClientName string           // Имя клиента
	Phone      *string          // Телефон (опционально)
	Email      *string          // Email (опционально)
	Date       time.Time        // Дата записи (без времени)
	StartTime  types.TimeString // Время начала, например "10:00"
	ServiceID  int64            // ID услуги
	StaffID    *int64           // ID сотрудника (опционально)
	Notes      *string          // Заметки (опционально)
}

// Исходы бронирования для метрик
const (
	OutcomeBooked     = "booked"
	OutcomeValidation = "validation_error"
	OutcomeReference  = "reference_error"
	OutcomeError      = "error"
)
