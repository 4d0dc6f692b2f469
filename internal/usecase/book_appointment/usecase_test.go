package book_appointment

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/appointments"
	"github.com/m04kA/SMC-SalonBooking/internal/calendar"
	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/infra/catalog"
	appointmentStore "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-SalonBooking/pkg/keymutex"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
	"github.com/m04kA/SMC-SalonBooking/pkg/ptr"
	"github.com/m04kA/SMC-SalonBooking/pkg/txmanager"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

type recorder struct {
	mu       sync.Mutex
	outcomes []string
}

func (r *recorder) ObserveBooking(outcome string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outcomes = append(r.outcomes, outcome)
}

// 2026-10-15 четверг, 10:00
var (
	testNow  = time.Date(2026, time.October, 15, 10, 0, 0, 0, time.Local)
	today    = time.Date(2026, time.October, 15, 0, 0, 0, 0, time.Local)
	tomorrow = time.Date(2026, time.October, 16, 0, 0, 0, 0, time.Local)
	monday   = time.Date(2026, time.October, 19, 0, 0, 0, 0, time.Local)
)

const (
	haircutID   int64 = 1 // 60 минут
	fringeID    int64 = 2 // 30 минут
	hairWashID  int64 = 3 // 30 минут, кресло с откидной спинкой
	coloringID  int64 = 4 // 90 минут, только S2
	staffS1     int64 = 1
	staffS2     int64 = 2
	staffS3     int64 = 3
	inactiveS4  int64 = 4
	recliningRT       = "reclining_station"
)

type fixture struct {
	uc       *UseCase
	repo     *appointments.Repository
	recorder *recorder
}

func newFixture(t *testing.T, mutate func(*domain.Schedule)) *fixture {
	t.Helper()

	c, err := catalog.New(
		[]domain.Service{
			{ID: haircutID, Name: "Haircut", DurationMinutes: 60, BasePrice: 25},
			{ID: fringeID, Name: "Fringe trim", DurationMinutes: 30, BasePrice: 10},
			{ID: hairWashID, Name: "Hair wash", DurationMinutes: 30, BasePrice: 8, RequiresRecliningStation: true},
			{ID: coloringID, Name: "Coloring", DurationMinutes: 90, BasePrice: 60},
		},
		[]domain.Staff{
			{ID: staffS1, Name: "Lucia", Active: true, ServiceIDs: []int64{haircutID, fringeID, hairWashID}},
			{ID: staffS2, Name: "Marta", Active: true, ServiceIDs: []int64{haircutID, hairWashID, coloringID}},
			{ID: staffS3, Name: "Sara", Active: true, ServiceIDs: []int64{haircutID}, PreferredResource: "chair_3"},
			{ID: inactiveS4, Name: "Rosa", Active: false, ServiceIDs: []int64{haircutID}},
		},
	)
	require.NoError(t, err)

	schedule := domain.DefaultSchedule()
	if mutate != nil {
		mutate(&schedule)
	}

	clock := fixedClock{now: testNow}
	repo := appointments.NewRepository(appointmentStore.NewMemoryRepository(), c.Services(), c.Staff(), clock)
	rec := &recorder{}

	uc := NewUseCase(
		repo,
		c.Services(),
		c.Staff(),
		calendar.New(schedule, clock),
		txmanager.NoopManager{},
		&keymutex.KeyMutex{},
		rec,
		recliningRT,
		logger.Nop(),
	)

	return &fixture{uc: uc, repo: repo, recorder: rec}
}

func request(date time.Time, start string, serviceID int64, staffID *int64) *Request {
	return &Request{
		ClientName: "Ana",
		Phone:      ptr.Ptr("+34 600 111 222"),
		Date:       date,
		StartTime:  types.MustTimeString(start),
		ServiceID:  serviceID,
		StaffID:    staffID,
	}
}

func requireFailure(t *testing.T, err error, reason domain.FailureReason) *domain.BookingFailure {
	t.Helper()
	failure, ok := domain.AsBookingFailure(err)
	require.True(t, ok, "expected booking failure %s, got %v", reason, err)
	assert.Equal(t, reason, failure.Reason)
	return failure
}

func TestExecute_StaffDoubleBooking(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	first, err := f.uc.Execute(ctx, request(monday, "10:00", haircutID, ptr.Ptr(staffS1)))
	require.NoError(t, err)
	assert.Equal(t, "Ana", first.ClientName)
	assert.Equal(t, domain.StatePending, first.State)
	assert.Equal(t, testNow, first.CreatedAt)

	_, err = f.uc.Execute(ctx, request(monday, "10:30", fringeID, ptr.Ptr(staffS1)))
	requireFailure(t, err, domain.ReasonSlotTaken)
	assert.ErrorIs(t, err, domain.ErrSlotTaken)

	second, err := f.uc.Execute(ctx, request(monday, "10:00", haircutID, ptr.Ptr(staffS2)))
	require.NoError(t, err)
	assert.Greater(t, second.ID, first.ID)

	// Касание интервалов допустимо
	_, err = f.uc.Execute(ctx, request(monday, "11:00", fringeID, ptr.Ptr(staffS1)))
	require.NoError(t, err)

	assert.Equal(t, []string{"booked", "slot_taken", "booked", "booked"}, f.recorder.outcomes)
}

func TestExecute_LeadTime(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	_, err := f.uc.Execute(ctx, request(today, "11:00", haircutID, nil))
	failure := requireFailure(t, err, domain.ReasonLeadTimeTooShort)
	assert.Equal(t, domain.DefaultMinLeadTimeHours, failure.Limit)

	_, err = f.uc.Execute(ctx, request(tomorrow, "11:00", haircutID, nil))
	require.NoError(t, err)
}

func TestExecute_CalendarFailures(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	sunday := time.Date(2026, time.October, 18, 0, 0, 0, 0, time.Local)
	_, err := f.uc.Execute(ctx, request(sunday, "10:00", haircutID, nil))
	requireFailure(t, err, domain.ReasonSlotClosedOrUnavailable)

	_, err = f.uc.Execute(ctx, request(monday, "13:00", haircutID, nil))
	requireFailure(t, err, domain.ReasonSlotClosedOrUnavailable)

	farAway := time.Date(2026, time.December, 14, 0, 0, 0, 0, time.Local)
	_, err = f.uc.Execute(ctx, request(farAway, "10:00", haircutID, nil))
	requireFailure(t, err, domain.ReasonHorizonExceeded)

	all, err := f.repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestExecute_StaffChecks(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	_, err := f.uc.Execute(ctx, request(monday, "10:00", coloringID, ptr.Ptr(staffS1)))
	requireFailure(t, err, domain.ReasonStaffNotQualified)

	_, err = f.uc.Execute(ctx, request(monday, "10:00", haircutID, ptr.Ptr(int64(99))))
	assert.ErrorIs(t, err, domain.ErrUnknownStaff)

	_, err = f.uc.Execute(ctx, request(monday, "10:00", int64(99), ptr.Ptr(staffS1)))
	assert.ErrorIs(t, err, domain.ErrUnknownService)

	assert.Equal(t, []string{"staff_not_qualified", "reference_error", "reference_error"}, f.recorder.outcomes)
}

func TestExecute_RecliningStationIsShared(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	washed, err := f.uc.Execute(ctx, request(monday, "10:00", hairWashID, ptr.Ptr(staffS1)))
	require.NoError(t, err)
	require.NotNil(t, washed.Resource)
	assert.Equal(t, recliningRT, *washed.Resource)

	// Другой сотрудник, но то же кресло
	_, err = f.uc.Execute(ctx, request(monday, "10:15", hairWashID, ptr.Ptr(staffS2)))
	requireFailure(t, err, domain.ReasonSlotTaken)

	_, err = f.uc.Execute(ctx, request(monday, "10:30", hairWashID, ptr.Ptr(staffS2)))
	require.NoError(t, err)
}

func TestExecute_PreferredResource(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	created, err := f.uc.Execute(ctx, request(monday, "10:00", haircutID, ptr.Ptr(staffS3)))
	require.NoError(t, err)
	require.NotNil(t, created.Resource)
	assert.Equal(t, "chair_3", *created.Resource)

	withoutStaff, err := f.uc.Execute(ctx, request(monday, "10:00", haircutID, nil))
	require.NoError(t, err)
	assert.Nil(t, withoutStaff.Resource)
	assert.Nil(t, withoutStaff.StaffID)
}

func TestExecute_DailyCapacity(t *testing.T) {
	f := newFixture(t, func(s *domain.Schedule) { s.Policy.MaxAppointmentsPerDay = 2 })
	ctx := context.Background()

	first, err := f.uc.Execute(ctx, request(monday, "09:00", haircutID, nil))
	require.NoError(t, err)
	_, err = f.uc.Execute(ctx, request(monday, "15:00", haircutID, nil))
	require.NoError(t, err)

	_, err = f.uc.Execute(ctx, request(monday, "17:00", haircutID, ptr.Ptr(staffS2)))
	failure := requireFailure(t, err, domain.ReasonDailyCapacityExceeded)
	assert.Equal(t, 2, failure.Limit)

	// Другая дата не затронута
	_, err = f.uc.Execute(ctx, request(monday.AddDate(0, 0, 1), "17:00", haircutID, nil))
	require.NoError(t, err)

	// Отмененная запись освобождает место
	_, err = f.repo.SetState(ctx, first.ID, string(domain.StateCancelled))
	require.NoError(t, err)

	_, err = f.uc.Execute(ctx, request(monday, "17:00", haircutID, nil))
	require.NoError(t, err)
}

func TestExecute_Validation(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	noName := request(monday, "10:00", haircutID, nil)
	noName.ClientName = "  "
	_, err := f.uc.Execute(ctx, noName)
	assert.ErrorIs(t, err, domain.ErrValidation)

	badTime := request(monday, "10:00", haircutID, nil)
	badTime.StartTime = "9:00"
	_, err = f.uc.Execute(ctx, badTime)
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = f.uc.Execute(ctx, nil)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestExecute_ConcurrentBookingsOfSameSlot(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	const workers = 20
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		taken     int
	)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.uc.Execute(ctx, request(monday, "10:00", haircutID, ptr.Ptr(staffS1)))

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case errors.Is(err, domain.ErrSlotTaken):
				taken++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
	assert.Equal(t, workers-1, taken)

	list, err := f.repo.ListOn(ctx, monday)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

type failingTx struct{}

func (failingTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := fn(ctx); err != nil {
		return err
	}
	return errors.New("txmanager: commit: could not serialize access")
}

func TestExecute_CommitFailureIsStorageError(t *testing.T) {
	f := newFixture(t, nil)
	f.uc.txManager = failingTx{}

	_, err := f.uc.Execute(context.Background(), request(monday, "10:00", haircutID, nil))
	assert.ErrorIs(t, err, domain.ErrStorage)
	assert.Equal(t, []string{"error"}, f.recorder.outcomes)
}
