package book_appointment

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты записи, ожидается YYYY-MM-DD"
	msgInvalidTime        = "некорректный формат времени начала, ожидается HH:MM"
	msgInvalidRequest     = "некорректные данные записи"
	msgServiceNotFound    = "услуга не найдена"
	msgStaffNotFound      = "сотрудник не найден"
)

type Handler struct {
	useCase BookAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase BookAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req BookAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /appointments - Failed to parse request: %v", err)
		var fe *fieldError
		if errors.As(err, &fe) && fe.field == "startTime" {
			handlers.RespondBadRequest(w, msgInvalidTime)
		} else {
			handlers.RespondBadRequest(w, msgInvalidDate)
		}
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		if failure, ok := domain.AsBookingFailure(err); ok {
			h.logger.Warn("POST /appointments - Booking rejected: reason=%s, date=%s, time=%s",
				failure.Reason, req.Date, req.StartTime)
			handlers.RespondBookingFailure(w, failure)
			return
		}

		switch {
		case errors.Is(err, domain.ErrValidation):
			h.logger.Warn("POST /appointments - Validation failed: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequest)

		case errors.Is(err, domain.ErrUnknownService):
			h.logger.Warn("POST /appointments - Service not found: service_id=%d", req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, domain.ErrUnknownStaff):
			h.logger.Warn("POST /appointments - Staff not found: staff_id=%v", req.StaffID)
			handlers.RespondNotFound(w, msgStaffNotFound)

		default:
			h.logger.Error("POST /appointments - Failed to book appointment: date=%s, time=%s, error=%v",
				req.Date, req.StartTime, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments - Appointment booked: id=%d, date=%s, time=%s",
		result.ID, result.DateKey(), result.StartTime)
	handlers.RespondJSON(w, http.StatusCreated, handlers.FromAppointment(result))
}
