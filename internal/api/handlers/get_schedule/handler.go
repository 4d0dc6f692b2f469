package get_schedule

import (
	"net/http"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
)

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

// Handle GET /api/v1/schedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	schedule := h.service.Get(r.Context())
	h.logger.Info("GET /schedule - Schedule retrieved")
	handlers.RespondJSON(w, http.StatusOK, fromDomain(schedule))
}
