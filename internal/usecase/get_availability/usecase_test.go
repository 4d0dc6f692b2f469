package get_availability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/appointments"
	"github.com/m04kA/SMC-SalonBooking/internal/calendar"
	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/infra/catalog"
	appointmentStore "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
	"github.com/m04kA/SMC-SalonBooking/pkg/ptr"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

var (
	testNow = time.Date(2026, time.October, 15, 10, 0, 0, 0, time.Local)
	monday  = time.Date(2026, time.October, 19, 0, 0, 0, 0, time.Local)
	sunday  = time.Date(2026, time.October, 18, 0, 0, 0, 0, time.Local)
)

func newTestUseCase(t *testing.T, mutate func(*domain.Schedule)) (*UseCase, *appointments.Repository) {
	t.Helper()

	c, err := catalog.New(
		[]domain.Service{
			{ID: 1, Name: "Haircut", DurationMinutes: 60},
			{ID: 2, Name: "Hair wash", DurationMinutes: 30, RequiresRecliningStation: true},
		},
		[]domain.Staff{
			{ID: 1, Name: "Lucia", Active: true, ServiceIDs: []int64{1, 2}, Color: "#FF6B6B"},
			{ID: 2, Name: "Marta", Active: true, ServiceIDs: []int64{1}},
			{ID: 3, Name: "Rosa", Active: false, ServiceIDs: []int64{1, 2}},
			{ID: 4, Name: "Sara", Active: true, ServiceIDs: []int64{2}},
		},
	)
	require.NoError(t, err)

	schedule := domain.DefaultSchedule()
	if mutate != nil {
		mutate(&schedule)
	}

	clock := fixedClock{now: testNow}
	repo := appointments.NewRepository(appointmentStore.NewMemoryRepository(), c.Services(), c.Staff(), clock)
	uc := NewUseCase(repo, c.Services(), c.Staff(), calendar.New(schedule, clock), "", logger.Nop())
	return uc, repo
}

func staffIDs(refs []domain.StaffRef) []int64 {
	ids := make([]int64, 0, len(refs))
	for _, r := range refs {
		ids = append(ids, r.ID)
	}
	return ids
}

func TestExecute_OpenDay(t *testing.T) {
	uc, _ := newTestUseCase(t, nil)

	result, err := uc.Execute(context.Background(), &Request{Date: monday, ServiceID: 1})
	require.NoError(t, err)

	assert.True(t, result.Open)
	assert.Equal(t, "Haircut", result.ServiceName)
	assert.Contains(t, result.Slots, types.TimeString("09:00"))
	assert.NotContains(t, result.Slots, types.TimeString("13:00"))
	assert.Equal(t, []int64{1, 2}, staffIDs(result.EligibleStaff))
	assert.Equal(t, "#FF6B6B", result.EligibleStaff[0].Color)
	assert.Equal(t, domain.DefaultStaffColor, result.EligibleStaff[1].Color)
}

func TestExecute_ClosedDay(t *testing.T) {
	uc, _ := newTestUseCase(t, nil)

	result, err := uc.Execute(context.Background(), &Request{Date: sunday, ServiceID: 1})
	require.NoError(t, err)

	assert.False(t, result.Open)
	assert.Empty(t, result.Slots)
	assert.Empty(t, result.EligibleStaff)
}

func TestExecute_FullyBookedStaffIsNotEligible(t *testing.T) {
	// Короткий день: единственный слот 09:00-10:00
	uc, repo := newTestUseCase(t, func(s *domain.Schedule) {
		s.Days[time.Monday] = domain.DaySchedule{IsOpen: true, OpenTime: "09:00", CloseTime: "10:00"}
	})
	ctx := context.Background()

	_, err := repo.Create(ctx, &domain.Appointment{
		ClientName: "Ana",
		Date:       monday,
		StartTime:  "09:00",
		ServiceID:  1,
		StaffID:    ptr.Ptr(int64(1)),
	})
	require.NoError(t, err)

	result, err := uc.Execute(ctx, &Request{Date: monday, ServiceID: 1})
	require.NoError(t, err)

	assert.Equal(t, []types.TimeString{"09:00"}, result.Slots)
	assert.Equal(t, []int64{2}, staffIDs(result.EligibleStaff))
}

func TestExecute_SharedRecliningStation(t *testing.T) {
	uc, repo := newTestUseCase(t, func(s *domain.Schedule) {
		s.Days[time.Monday] = domain.DaySchedule{IsOpen: true, OpenTime: "09:00", CloseTime: "09:30"}
	})
	ctx := context.Background()

	_, err := repo.Create(ctx, &domain.Appointment{
		ClientName: "Ana",
		Date:       monday,
		StartTime:  "09:00",
		ServiceID:  2,
		StaffID:    ptr.Ptr(int64(1)),
		Resource:   ptr.Ptr(domain.DefaultRecliningStationTag),
	})
	require.NoError(t, err)

	// Sara свободна, но кресло занято
	result, err := uc.Execute(ctx, &Request{Date: monday, ServiceID: 2})
	require.NoError(t, err)
	assert.Empty(t, result.EligibleStaff)
}

func TestExecute_UnknownService(t *testing.T) {
	uc, _ := newTestUseCase(t, nil)

	_, err := uc.Execute(context.Background(), &Request{Date: monday, ServiceID: 42})
	assert.ErrorIs(t, err, domain.ErrUnknownService)

	_, err = uc.Execute(context.Background(), &Request{ServiceID: 1})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

type unavailableServices struct {
	appointments.ServiceCatalog
}

func (unavailableServices) GetByID(context.Context, int64) (*domain.Service, error) {
	return nil, errors.New("catalog unavailable")
}

func TestExecute_CatalogUnavailableForExistingAppointment(t *testing.T) {
	c, err := catalog.New(
		[]domain.Service{{ID: 1, Name: "Haircut", DurationMinutes: 60}},
		[]domain.Staff{{ID: 1, Name: "Lucia", Active: true, ServiceIDs: []int64{1}}},
	)
	require.NoError(t, err)

	ctx := context.Background()
	clock := fixedClock{now: testNow}
	store := appointmentStore.NewMemoryRepository()

	healthy := appointments.NewRepository(store, c.Services(), c.Staff(), clock)
	_, err = healthy.Create(ctx, &domain.Appointment{
		ClientName: "Ana",
		Date:       monday,
		StartTime:  "09:00",
		ServiceID:  1,
		StaffID:    ptr.Ptr(int64(1)),
	})
	require.NoError(t, err)

	broken := appointments.NewRepository(store, unavailableServices{c.Services()}, c.Staff(), clock)
	uc := NewUseCase(broken, c.Services(), c.Staff(), calendar.New(domain.DefaultSchedule(), clock), "", logger.Nop())

	_, err = uc.Execute(ctx, &Request{Date: monday, ServiceID: 1})
	assert.ErrorIs(t, err, domain.ErrStorage)
}
