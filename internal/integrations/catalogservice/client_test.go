package catalogservice

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	writeJSON := func(w http.ResponseWriter, status int, v interface{}) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(v)
	}

	r := mux.NewRouter()
	r.HandleFunc("/internal/services/{id}", func(w http.ResponseWriter, r *http.Request) {
		switch mux.Vars(r)["id"] {
		case "1":
			writeJSON(w, http.StatusOK, Service{ID: 1, Name: "Haircut", DurationMinutes: 45, BasePrice: 25})
		case "500":
			writeJSON(w, http.StatusInternalServerError, ErrorResponse{Code: 500, Message: "database is down"})
		default:
			writeJSON(w, http.StatusNotFound, ErrorResponse{Code: 404, Message: "not found"})
		}
	})
	r.HandleFunc("/internal/services", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []Service{
			{ID: 1, Name: "Haircut", DurationMinutes: 45},
			{ID: 2, Name: "Hair wash", DurationMinutes: 30, RequiresRecliningStation: true},
		})
	})
	r.HandleFunc("/internal/staff/{id}", func(w http.ResponseWriter, r *http.Request) {
		if mux.Vars(r)["id"] == "1" {
			writeJSON(w, http.StatusOK, Staff{ID: 1, Name: "Lucia", Active: true, ServiceIDs: []int64{1, 2}})
			return
		}
		writeJSON(w, http.StatusNotFound, ErrorResponse{Code: 404, Message: "not found"})
	})
	r.HandleFunc("/internal/staff", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "true", r.URL.Query().Get("active"))
		writeJSON(w, http.StatusOK, []Staff{
			{ID: 1, Name: "Lucia", Active: true},
			{ID: 2, Name: "Rosa", Active: false},
		})
	})
	r.HandleFunc("/broken/internal/services", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("{not json"))
	})

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func TestServiceCatalog(t *testing.T) {
	srv := newTestServer(t)
	services := NewClient(srv.URL, time.Second, logger.Nop()).Services()
	ctx := context.Background()

	svc, err := services.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Haircut", svc.Name)
	assert.Equal(t, 45, svc.DurationMinutes)

	_, err = services.GetByID(ctx, 2)
	assert.ErrorIs(t, err, domain.ErrUnknownService)

	_, err = services.GetByID(ctx, 500)
	assert.ErrorIs(t, err, ErrInvalidResponse)
	assert.NotErrorIs(t, err, domain.ErrReference)
	assert.Contains(t, err.Error(), "database is down")

	all, err := services.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.True(t, all[1].RequiresRecliningStation)
}

func TestStaffCatalog(t *testing.T) {
	srv := newTestServer(t)
	staff := NewClient(srv.URL, time.Second, logger.Nop()).Staff()
	ctx := context.Background()

	member, err := staff.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2}, member.ServiceIDs)

	_, err = staff.GetByID(ctx, 9)
	assert.ErrorIs(t, err, domain.ErrUnknownStaff)

	active, err := staff.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "Lucia", active[0].Name)
}

func TestClient_InvalidBody(t *testing.T) {
	srv := newTestServer(t)
	client := NewClient(srv.URL+"/broken", time.Second, logger.Nop())

	_, err := client.ListServices(context.Background())
	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestClient_Unreachable(t *testing.T) {
	srv := newTestServer(t)
	url := srv.URL
	srv.Close()

	_, err := NewClient(url, time.Second, logger.Nop()).GetService(context.Background(), 1)
	assert.ErrorIs(t, err, ErrInternal)
}
