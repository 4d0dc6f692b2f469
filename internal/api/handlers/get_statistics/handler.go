package get_statistics

import (
	"net/http"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
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

// Handle GET /api/v1/statistics
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Statistics(r.Context())
	if err != nil {
		h.logger.Error("GET /statistics - Failed to collect statistics: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /statistics - Statistics retrieved: total=%d", stats.TotalCount)
	handlers.RespondJSON(w, http.StatusOK, fromDomain(stats))
}
