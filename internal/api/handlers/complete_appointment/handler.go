package complete_appointment

import (
	"errors"
	"io"
	"net/http"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

const (
	msgInvalidAppointmentID = "некорректный ID записи"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidDetails       = "некорректные данные визита"
	msgNotFound             = "запись не найдена"
	msgCannotComplete       = "запись не может быть завершена"
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

// Handle PATCH /api/v1/appointments/{appointmentId}/complete
// Тело запроса необязательно
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathID(r, "appointmentId")
	if err != nil {
		h.logger.Warn("PATCH /appointments/{id}/complete - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	var req CompleteAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Warn("PATCH /appointments/{id}/complete - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	details, err := req.ToDetails()
	if err != nil {
		h.logger.Warn("PATCH /appointments/{id}/complete - Invalid details: id=%d, error=%v", id, err)
		handlers.RespondBadRequest(w, msgInvalidDetails)
		return
	}

	appt, err := h.service.Complete(r.Context(), id, details)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrAppointmentNotFound):
			h.logger.Warn("PATCH /appointments/{id}/complete - Appointment not found: id=%d", id)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, domain.ErrInvalidTransition):
			h.logger.Warn("PATCH /appointments/{id}/complete - Invalid transition: id=%d", id)
			handlers.RespondConflict(w, msgCannotComplete)

		case errors.Is(err, domain.ErrValidation):
			h.logger.Warn("PATCH /appointments/{id}/complete - Validation failed: id=%d, error=%v", id, err)
			handlers.RespondBadRequest(w, msgInvalidDetails)

		default:
			h.logger.Error("PATCH /appointments/{id}/complete - Failed: id=%d, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /appointments/{id}/complete - Appointment completed: id=%d", id)
	handlers.RespondJSON(w, http.StatusOK, handlers.FromAppointment(appt))
}
