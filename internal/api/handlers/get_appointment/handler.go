package get_appointment

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

const (
	msgInvalidAppointmentID = "некорректный ID записи"
	msgNotFound             = "запись не найдена"
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

// Handle GET /api/v1/appointments/{appointmentId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathID(r, "appointmentId")
	if err != nil {
		h.logger.Warn("GET /appointments/{id} - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	appt, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrAppointmentNotFound) {
			h.logger.Warn("GET /appointments/{id} - Appointment not found: id=%d", id)
			handlers.RespondNotFound(w, msgNotFound)
			return
		}
		h.logger.Error("GET /appointments/{id} - Failed to get appointment: id=%d, error=%v", id, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /appointments/{id} - Appointment retrieved: id=%d", id)
	handlers.RespondJSON(w, http.StatusOK, handlers.FromAppointment(appt))
}
