package get_calendar

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

const msgInvalidDays = "некорректное количество дней"

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/calendar
// Query params: days (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	days := 0
	if raw := r.URL.Query().Get("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			h.logger.Warn("GET /calendar - Invalid days: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDays)
			return
		}
		days = n
	}

	dates, err := h.service.OpenDates(r.Context(), days)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			h.logger.Warn("GET /calendar - Validation failed: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDays)
			return
		}
		h.logger.Error("GET /calendar - Failed to build calendar: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /calendar - Calendar retrieved: days=%d", len(dates))
	handlers.RespondJSON(w, http.StatusOK, fromDomain(dates))
}
