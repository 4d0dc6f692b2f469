package confirm_appointment

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

const (
	msgInvalidAppointmentID = "некорректный ID записи"
	msgNotFound             = "запись не найдена"
	msgInvalidTransition    = "запись не может быть подтверждена"
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

// Handle PATCH /api/v1/appointments/{appointmentId}/confirm
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathID(r, "appointmentId")
	if err != nil {
		h.logger.Warn("PATCH /appointments/{id}/confirm - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	appt, err := h.service.Confirm(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrAppointmentNotFound):
			h.logger.Warn("PATCH /appointments/{id}/confirm - Appointment not found: id=%d", id)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, domain.ErrInvalidTransition):
			h.logger.Warn("PATCH /appointments/{id}/confirm - Invalid transition: id=%d, error=%v", id, err)
			handlers.RespondConflict(w, msgInvalidTransition)

		default:
			h.logger.Error("PATCH /appointments/{id}/confirm - Failed: id=%d, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /appointments/{id}/confirm - Appointment updated: id=%d, state=%s", id, appt.State)
	handlers.RespondJSON(w, http.StatusOK, handlers.FromAppointment(appt))
}
