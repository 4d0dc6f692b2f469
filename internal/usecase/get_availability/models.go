package get_availability

import "time"

// Request модель запроса доступности услуги на дату
type Request struct {
	Date      time.Time // Дата (без времени)
	ServiceID int64     // ID услуги
}
