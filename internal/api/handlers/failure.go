package handlers

import (
	"net/http"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

var failureMessages = map[domain.FailureReason]string{
	domain.ReasonLeadTimeTooShort:        "слишком поздно для записи на это время",
	domain.ReasonHorizonExceeded:         "дата записи слишком далеко в будущем",
	domain.ReasonSlotClosedOrUnavailable: "салон закрыт или время недоступно",
	domain.ReasonStaffNotQualified:       "сотрудник не выполняет эту услугу",
	domain.ReasonSlotTaken:               "выбранное время уже занято",
	domain.ReasonDailyCapacityExceeded:   "на эту дату больше нет мест",
}

// FailureStatus код ответа для отказа в бронировании
// Занятость (слот, лимит дня) отдается как 409, нарушение правил как 422
func FailureStatus(reason domain.FailureReason) int {
	switch reason {
	case domain.ReasonSlotTaken, domain.ReasonDailyCapacityExceeded:
		return http.StatusConflict
	default:
		return http.StatusUnprocessableEntity
	}
}

// RespondBookingFailure отправляет отказ в бронировании с причиной и порогом
func RespondBookingFailure(w http.ResponseWriter, failure *domain.BookingFailure) {
	status := FailureStatus(failure.Reason)
	resp := ErrorResponse{
		Code:    status,
		Message: failureMessages[failure.Reason],
		Reason:  string(failure.Reason),
	}
	if failure.Limit > 0 {
		limit := failure.Limit
		resp.Limit = &limit
	}
	RespondJSON(w, status, resp)
}
