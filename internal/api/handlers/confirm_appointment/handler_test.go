package confirm_appointment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
)

type fakeService struct {
	err error
}

func (f *fakeService) Confirm(_ context.Context, id int64) (*domain.Appointment, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Appointment{ID: id, StartTime: "10:00", State: domain.AppointmentState("confirmed")}, nil
}

func serve(svc AppointmentService, url string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/appointments/{appointmentId}/confirm", NewHandler(svc, logger.Nop()).Handle).Methods(http.MethodPatch)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, url, nil))
	return rec
}

func TestHandle_OK(t *testing.T) {
	rec := serve(&fakeService{}, "/appointments/4/confirm")
	require.Equal(t, http.StatusOK, rec.Code)

	var body handlers.AppointmentResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, int64(4), body.ID)
	assert.Equal(t, "confirmed", body.State)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name   string
		url    string
		err    error
		status int
	}{
		{name: "bad id", url: "/appointments/x/confirm", status: http.StatusBadRequest},
		{name: "not found", url: "/appointments/4/confirm", err: domain.ErrAppointmentNotFound, status: http.StatusNotFound},
		{name: "terminal state", url: "/appointments/4/confirm", err: domain.ErrInvalidTransition, status: http.StatusConflict},
		{name: "storage", url: "/appointments/4/confirm", err: domain.ErrStorage, status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, serve(&fakeService{err: tt.err}, tt.url).Code)
		})
	}
}
