package list_appointments

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

const (
	msgInvalidStaffID = "некорректный ID сотрудника"
	msgInvalidDate    = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgStaffNotFound  = "сотрудник не найден"
)

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/appointments
// Query params: date (optional, YYYY-MM-DD), staffId (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	staffID, err := handlers.QueryInt64(r, "staffId")
	if err != nil {
		h.logger.Warn("GET /appointments - Invalid staff ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStaffID)
		return
	}
	date := handlers.QueryString(r, "date")

	list, err := h.service.Query(r.Context(), date, staffID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrValidation):
			h.logger.Warn("GET /appointments - Invalid date: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, domain.ErrReference):
			h.logger.Warn("GET /appointments - Staff not found: staff_id=%v", staffID)
			handlers.RespondNotFound(w, msgStaffNotFound)

		default:
			h.logger.Error("GET /appointments - Failed to list appointments: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /appointments - Appointments retrieved: count=%d", len(list))
	handlers.RespondJSON(w, http.StatusOK, handlers.FromAppointments(list))
}
