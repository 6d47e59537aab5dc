package create_reservation

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StudyRoomsService/internal/domain"
	"github.com/m04kA/SMC-StudyRoomsService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-StudyRoomsService/internal/service/reservations"
	"github.com/m04kA/SMC-StudyRoomsService/pkg/clock"
	"github.com/m04kA/SMC-StudyRoomsService/pkg/logger"
	"github.com/m04kA/SMC-StudyRoomsService/pkg/types"
)

const studentID int64 = 1

var (
	// вторник, 09:15
	now      = time.Date(2026, 3, 10, 9, 15, 0, 0, time.UTC)
	today    = domain.NewDate(2026, 3, 10)
	tomorrow = domain.NewDate(2026, 3, 11)
)

type fakeHolidays map[string]bool

func (h fakeHolidays) IsHoliday(_ context.Context, date time.Time) bool {
	return h[date.Format(domain.DateFormat)]
}

type fakeNotifier struct {
	mu      sync.Mutex
	created []int64
}

func (n *fakeNotifier) ReservationCreated(r *domain.Reservation) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.created = append(n.created, r.ID)
}

type fakeMetrics struct {
	mu       sync.Mutex
	created  int
	rejected map[string]int
}

func (m *fakeMetrics) IncReservationCreated() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.created++
}

func (m *fakeMetrics) IncReservationRejected(rule string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.rejected == nil {
		m.rejected = make(map[string]int)
	}
	m.rejected[rule]++
}

type fixture struct {
	store    *memory.Store
	uc       *UseCase
	notifier *fakeNotifier
	metrics  *fakeMetrics
	space    *domain.Space
	fullDay  *domain.Space
}

func newFixture(t *testing.T, policy domain.BookingPolicy, holidays fakeHolidays) *fixture {
	t.Helper()
	ctx := context.Background()

	store := memory.NewStore()
	space, err := store.Spaces().Create(ctx, &domain.Space{
		Name: "Reading Room", Capacity: 2, OpenTime: "08:00", CloseTime: "20:00",
	})
	require.NoError(t, err)
	fullDay, err := store.Spaces().Create(ctx, &domain.Space{
		Name: "24h Lounge", Capacity: 1, FullDay: true,
	})
	require.NoError(t, err)
	store.Users().Add(domain.User{ID: studentID, Username: "dimitra", Role: domain.RoleStudent})

	notifier := &fakeNotifier{}
	metrics := &fakeMetrics{}
	uc := NewUseCase(
		store.Reservations(), store.Spaces(), store.Users(), holidays,
		notifier, metrics, store, clock.Fixed{T: now}, policy, logger.Nop(),
	)

	return &fixture{store: store, uc: uc, notifier: notifier, metrics: metrics, space: space, fullDay: fullDay}
}

func (f *fixture) request(userID, spaceID int64, date time.Time, start, end string) *Request {
	return &Request{
		UserID: userID, SpaceID: spaceID, Date: date,
		StartTime: types.TimeString(start), EndTime: types.TimeString(end),
	}
}

func (f *fixture) seed(t *testing.T, userID, spaceID int64, date time.Time, start, end string, status domain.ReservationStatus) {
	t.Helper()
	_, err := f.store.Reservations().Create(context.Background(), &domain.Reservation{
		SpaceID: spaceID, UserID: userID, Date: date,
		StartTime: types.TimeString(start), EndTime: types.TimeString(end), Status: status,
	})
	require.NoError(t, err)
}

func requireRule(t *testing.T, err error, code domain.RuleCode) {
	t.Helper()
	require.Error(t, err)
	rv, ok := domain.AsRuleViolation(err)
	require.True(t, ok, "expected rule violation, got %v", err)
	assert.Equal(t, code, rv.Code)
}

func TestUseCase_Execute_Success(t *testing.T) {
	f := newFixture(t, domain.DefaultBookingPolicy(), nil)

	resp, err := f.uc.Execute(context.Background(), f.request(studentID, f.space.ID, tomorrow, "10:00", "12:00"))
	require.NoError(t, err)
	assert.NotZero(t, resp.ID)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
	assert.Equal(t, 120, resp.DurationMinutes)
	assert.Equal(t, []int64{resp.ID}, f.notifier.created)
	assert.Equal(t, 1, f.metrics.created)

	stored, err := f.store.Reservations().GetByID(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, stored.Status)
	assert.Equal(t, tomorrow, stored.Date)
}

func TestUseCase_Execute_PendingInitialStatus(t *testing.T) {
	policy := domain.DefaultBookingPolicy()
	policy.InitialStatus = domain.StatusPending
	f := newFixture(t, policy, nil)

	resp, err := f.uc.Execute(context.Background(), f.request(studentID, f.space.ID, tomorrow, "10:00", "11:00"))
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusPending), resp.Status)
}

func TestUseCase_Execute_Rules(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown space", func(t *testing.T) {
		f := newFixture(t, domain.DefaultBookingPolicy(), nil)
		_, err := f.uc.Execute(ctx, f.request(studentID, 404, tomorrow, "10:00", "11:00"))
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("invalid input", func(t *testing.T) {
		f := newFixture(t, domain.DefaultBookingPolicy(), nil)
		_, err := f.uc.Execute(ctx, f.request(studentID, f.space.ID, tomorrow, "10:61", "11:00"))
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("penalized user, penalty ends today", func(t *testing.T) {
		f := newFixture(t, domain.DefaultBookingPolicy(), nil)
		until := today
		require.NoError(t, f.store.Users().UpdatePenalty(ctx, studentID, &until))

		_, err := f.uc.Execute(ctx, f.request(studentID, f.space.ID, tomorrow, "10:00", "11:00"))
		requireRule(t, err, domain.RuleUserPenalized)
		assert.Contains(t, err.Error(), "2026-03-10")
	})

	t.Run("expired penalty is ignored", func(t *testing.T) {
		f := newFixture(t, domain.DefaultBookingPolicy(), nil)
		until := domain.AddDays(today, -1)
		require.NoError(t, f.store.Users().UpdatePenalty(ctx, studentID, &until))

		_, err := f.uc.Execute(ctx, f.request(studentID, f.space.ID, tomorrow, "10:00", "11:00"))
		require.NoError(t, err)
	})

	t.Run("past date", func(t *testing.T) {
		f := newFixture(t, domain.DefaultBookingPolicy(), nil)
		_, err := f.uc.Execute(ctx, f.request(studentID, f.space.ID, domain.AddDays(today, -1), "10:00", "11:00"))
		requireRule(t, err, domain.RuleInPast)
	})

	t.Run("start already passed today", func(t *testing.T) {
		f := newFixture(t, domain.DefaultBookingPolicy(), nil)
		_, err := f.uc.Execute(ctx, f.request(studentID, f.space.ID, today, "09:00", "10:00"))
		requireRule(t, err, domain.RuleInPast)
		assert.Contains(t, err.Error(), "already passed")
	})

	t.Run("later today is allowed", func(t *testing.T) {
		f := newFixture(t, domain.DefaultBookingPolicy(), nil)
		_, err := f.uc.Execute(ctx, f.request(studentID, f.space.ID, today, "09:30", "10:00"))
		require.NoError(t, err)
	})

	t.Run("holiday", func(t *testing.T) {
		f := newFixture(t, domain.DefaultBookingPolicy(), fakeHolidays{"2026-03-11": true})
		_, err := f.uc.Execute(ctx, f.request(studentID, f.space.ID, tomorrow, "10:00", "11:00"))
		requireRule(t, err, domain.RuleHoliday)
		assert.Equal(t, 1, f.metrics.rejected[string(domain.RuleHoliday)])
	})

	t.Run("closed by staff marker", func(t *testing.T) {
		f := newFixture(t, domain.DefaultBookingPolicy(), nil)
		require.NoError(t, f.store.Do(ctx, func(txCtx context.Context) error {
			return f.store.Reservations().CreateClosure(txCtx, f.space.ID, tomorrow)
		}))

		_, err := f.uc.Execute(ctx, f.request(studentID, f.space.ID, tomorrow, "10:00", "11:00"))
		requireRule(t, err, domain.RuleSpaceClosedByStaff)
	})

	t.Run("closed by staff cancellation", func(t *testing.T) {
		f := newFixture(t, domain.DefaultBookingPolicy(), nil)
		f.seed(t, 7, f.space.ID, tomorrow, "15:00", "16:00", domain.StatusCancelledByStaff)

		_, err := f.uc.Execute(ctx, f.request(studentID, f.space.ID, tomorrow, "10:00", "11:00"))
		requireRule(t, err, domain.RuleSpaceClosedByStaff)
	})

	t.Run("daily quota counts active reservations in any space", func(t *testing.T) {
		f := newFixture(t, domain.DefaultBookingPolicy(), nil)
		f.seed(t, studentID, f.space.ID, tomorrow, "08:00", "09:00", domain.StatusConfirmed)
		f.seed(t, studentID, f.space.ID, tomorrow, "13:00", "14:00", domain.StatusPending)
		f.seed(t, studentID, f.fullDay.ID, tomorrow, "22:00", "23:00", domain.StatusConfirmed)
		f.seed(t, studentID, f.space.ID, tomorrow, "15:00", "16:00", domain.StatusCancelled)

		_, err := f.uc.Execute(ctx, f.request(studentID, f.space.ID, tomorrow, "17:00", "18:00"))
		requireRule(t, err, domain.RuleDailyQuotaExceeded)
		assert.Contains(t, err.Error(), "(3)")
	})

	t.Run("time order", func(t *testing.T) {
		f := newFixture(t, domain.DefaultBookingPolicy(), nil)
		_, err := f.uc.Execute(ctx, f.request(studentID, f.space.ID, tomorrow, "11:00", "11:00"))
		requireRule(t, err, domain.RuleInvalidTimeOrder)
	})

	t.Run("outside opening hours", func(t *testing.T) {
		f := newFixture(t, domain.DefaultBookingPolicy(), nil)
		_, err := f.uc.Execute(ctx, f.request(studentID, f.space.ID, tomorrow, "19:30", "20:30"))
		requireRule(t, err, domain.RuleOutsideOpeningHours)
	})

	t.Run("full day space skips opening hours", func(t *testing.T) {
		f := newFixture(t, domain.DefaultBookingPolicy(), nil)
		_, err := f.uc.Execute(ctx, f.request(studentID, f.fullDay.ID, tomorrow, "23:00", "24:00"))
		require.NoError(t, err)
	})

	t.Run("duration limit", func(t *testing.T) {
		f := newFixture(t, domain.DefaultBookingPolicy(), nil)
		_, err := f.uc.Execute(ctx, f.request(studentID, f.space.ID, tomorrow, "10:00", "12:30"))
		requireRule(t, err, domain.RuleDurationExceeded)
		assert.Contains(t, err.Error(), "2 hours")
	})

	t.Run("capacity", func(t *testing.T) {
		f := newFixture(t, domain.DefaultBookingPolicy(), nil)
		f.seed(t, 7, f.space.ID, tomorrow, "09:00", "11:00", domain.StatusConfirmed)
		f.seed(t, 8, f.space.ID, tomorrow, "10:30", "12:00", domain.StatusPending)

		_, err := f.uc.Execute(ctx, f.request(studentID, f.space.ID, tomorrow, "10:00", "11:00"))
		requireRule(t, err, domain.RuleCapacityExceeded)
		assert.Empty(t, f.notifier.created)
	})

	t.Run("touching intervals do not overlap", func(t *testing.T) {
		f := newFixture(t, domain.DefaultBookingPolicy(), nil)
		f.seed(t, 7, f.space.ID, tomorrow, "09:00", "10:00", domain.StatusConfirmed)
		f.seed(t, 8, f.space.ID, tomorrow, "11:00", "12:00", domain.StatusConfirmed)
		f.seed(t, 9, f.space.ID, tomorrow, "10:00", "11:00", domain.StatusNoShow)

		_, err := f.uc.Execute(ctx, f.request(studentID, f.space.ID, tomorrow, "10:00", "11:00"))
		require.NoError(t, err)
	})
}

func TestUseCase_Execute_RuleOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("penalty before past", func(t *testing.T) {
		f := newFixture(t, domain.DefaultBookingPolicy(), fakeHolidays{"2026-03-09": true})
		until := tomorrow
		require.NoError(t, f.store.Users().UpdatePenalty(ctx, studentID, &until))

		_, err := f.uc.Execute(ctx, f.request(studentID, f.space.ID, domain.AddDays(today, -1), "10:00", "09:00"))
		requireRule(t, err, domain.RuleUserPenalized)
	})

	t.Run("quota before time order and hours", func(t *testing.T) {
		policy := domain.DefaultBookingPolicy()
		policy.MaxReservationsPerDay = 1
		f := newFixture(t, policy, nil)
		f.seed(t, studentID, f.space.ID, tomorrow, "08:00", "09:00", domain.StatusConfirmed)

		_, err := f.uc.Execute(ctx, f.request(studentID, f.space.ID, tomorrow, "22:00", "21:00"))
		requireRule(t, err, domain.RuleDailyQuotaExceeded)
	})

	t.Run("hours before duration", func(t *testing.T) {
		f := newFixture(t, domain.DefaultBookingPolicy(), nil)
		_, err := f.uc.Execute(ctx, f.request(studentID, f.space.ID, tomorrow, "06:00", "11:00"))
		requireRule(t, err, domain.RuleOutsideOpeningHours)
	})
}

func TestUseCase_Execute_ConcurrentCapacity(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, domain.DefaultBookingPolicy(), nil)

	const attempts = 10
	for i := 0; i < attempts; i++ {
		f.store.Users().Add(domain.User{ID: int64(100 + i), Username: fmt.Sprintf("user%d", i), Role: domain.RoleStudent})
	}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		admitted int
		rejected int
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(userID int64) {
			defer wg.Done()
			_, err := f.uc.Execute(ctx, f.request(userID, f.space.ID, tomorrow, "14:00", "15:00"))
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				admitted++
			} else if domain.IsRule(err, domain.RuleCapacityExceeded) {
				rejected++
			}
		}(int64(100 + i))
	}
	wg.Wait()

	assert.Equal(t, f.space.Capacity, admitted)
	assert.Equal(t, attempts-f.space.Capacity, rejected)
}

func TestUseCase_Execute_ConcurrentQuota(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, domain.DefaultBookingPolicy(), nil)

	starts := []string{"08:00", "09:00", "10:00", "11:00", "12:00", "13:00"}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		admitted int
	)
	for _, start := range starts {
		wg.Add(1)
		go func(start string) {
			defer wg.Done()
			end, err := types.TimeString(start).AddMinutes(60)
			if err != nil {
				return
			}
			if _, err := f.uc.Execute(ctx, f.request(studentID, f.space.ID, tomorrow, start, end.String())); err == nil {
				mu.Lock()
				admitted++
				mu.Unlock()
			}
		}(start)
	}
	wg.Wait()

	assert.Equal(t, domain.DefaultMaxReservationsPerDay, admitted)
}

func TestUseCase_Execute_SingleSeatBoundaries(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, domain.DefaultBookingPolicy(), nil)

	booth, err := f.store.Spaces().Create(ctx, &domain.Space{
		Name: "Single Booth", Capacity: 1, OpenTime: "08:00", CloseTime: "20:00",
	})
	require.NoError(t, err)
	f.store.Users().Add(domain.User{ID: 2, Username: "giorgos", Role: domain.RoleStudent})
	f.store.Users().Add(domain.User{ID: 3, Username: "sofia", Role: domain.RoleStudent})

	first, err := f.uc.Execute(ctx, f.request(studentID, booth.ID, tomorrow, "10:00", "11:00"))
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusConfirmed), first.Status)

	_, err = f.uc.Execute(ctx, f.request(2, booth.ID, tomorrow, "10:30", "11:30"))
	requireRule(t, err, domain.RuleCapacityExceeded)

	_, err = f.uc.Execute(ctx, f.request(3, booth.ID, tomorrow, "11:00", "12:00"))
	require.NoError(t, err)
}

type nopCancelNotifier struct{}

func (nopCancelNotifier) ReservationConfirmed(*domain.Reservation) {}

func (nopCancelNotifier) ReservationCancelled(*domain.Reservation, bool) {}

func TestUseCase_Execute_AfterStaffClosure(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, domain.DefaultBookingPolicy(), nil)
	f.store.Users().Add(domain.User{ID: 2, Username: "giorgos", Role: domain.RoleStudent})

	booked, err := f.uc.Execute(ctx, f.request(2, f.space.ID, tomorrow, "09:00", "10:00"))
	require.NoError(t, err)

	staff := reservations.NewService(
		f.store.Reservations(), f.store.Spaces(), f.store.Users(), f.store,
		nopCancelNotifier{}, nil, clock.Fixed{T: now}, domain.DefaultPenaltyDays, logger.Nop(),
	)
	closed, err := staff.StaffCloseSpaceForDay(ctx, f.space.ID, tomorrow)
	require.NoError(t, err)
	assert.Equal(t, 1, closed.CancelledCount)

	stored, err := f.store.Reservations().GetByID(ctx, booked.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelledByStaff, stored.Status)

	_, err = f.uc.Execute(ctx, f.request(studentID, f.space.ID, tomorrow, "14:00", "15:00"))
	requireRule(t, err, domain.RuleSpaceClosedByStaff)

	// другие дни не затронуты
	_, err = f.uc.Execute(ctx, f.request(studentID, f.space.ID, domain.AddDays(tomorrow, 1), "14:00", "15:00"))
	require.NoError(t, err)
}
