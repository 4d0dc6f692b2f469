package get_availability

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/calendar"
	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	getAvailability "github.com/m04kA/SMC-SalonBooking/internal/usecase/get_availability"
)

const (
	msgMissingServiceID = "ID услуги обязателен"
	msgInvalidServiceID = "некорректный ID услуги"
	msgMissingDate      = "дата обязательна"
	msgInvalidDate      = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgServiceNotFound  = "услуга не найдена"
)

type Handler struct {
	useCase GetAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/availability
// Query params: serviceId (required), date (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	serviceIDStr := r.URL.Query().Get("serviceId")
	if serviceIDStr == "" {
		h.logger.Warn("GET /availability - Missing service ID")
		handlers.RespondBadRequest(w, msgMissingServiceID)
		return
	}
	serviceID, err := strconv.ParseInt(serviceIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /availability - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /availability - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}
	date, err := calendar.ParseDate(dateStr)
	if err != nil {
		h.logger.Warn("GET /availability - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailability.Request{
		Date:      date,
		ServiceID: serviceID,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrReference):
			h.logger.Warn("GET /availability - Service not found: service_id=%d", serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, domain.ErrValidation):
			h.logger.Warn("GET /availability - Validation failed: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)

		default:
			h.logger.Error("GET /availability - Failed to get availability: service_id=%d, date=%s, error=%v",
				serviceID, dateStr, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /availability - Availability retrieved: service_id=%d, date=%s, slots=%d",
		serviceID, dateStr, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, fromDomain(result))
}
