package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/Salon-BookingService/internal/domain"
	configRepo "github.com/m04kA/Salon-BookingService/internal/infra/storage/config"
	"github.com/m04kA/Salon-BookingService/internal/integrations/salonservice"
	"github.com/m04kA/Salon-BookingService/internal/schedule"
	"github.com/m04kA/Salon-BookingService/pkg/ptr"
)

type mockBookingRepo struct {
	getBySalonWithFilter func(ctx context.Context, filter domain.SalonBookingsFilter) ([]*domain.Booking, error)
}

func (m *mockBookingRepo) GetBySalonWithFilter(ctx context.Context, filter domain.SalonBookingsFilter) ([]*domain.Booking, error) {
	return m.getBySalonWithFilter(ctx, filter)
}

type mockConfigRepo struct {
	getConfigWithHierarchy func(ctx context.Context, salonID int64, serviceID *int64) (*domain.SalonSlotsConfig, error)
}

func (m *mockConfigRepo) GetConfigWithHierarchy(ctx context.Context, salonID int64, serviceID *int64) (*domain.SalonSlotsConfig, error) {
	return m.getConfigWithHierarchy(ctx, salonID, serviceID)
}

type mockSalonClient struct {
	getSalon   func(ctx context.Context, salonID int64) (*salonservice.Salon, error)
	getService func(ctx context.Context, salonID, serviceID int64) (*salonservice.Service, error)
}

func (m *mockSalonClient) GetSalon(ctx context.Context, salonID int64) (*salonservice.Salon, error) {
	return m.getSalon(ctx, salonID)
}

func (m *mockSalonClient) GetService(ctx context.Context, salonID, serviceID int64) (*salonservice.Service, error) {
	return m.getService(ctx, salonID, serviceID)
}

type fixedTime struct {
	now time.Time
}

func (f fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

// Monday 2025-06-02 10:05 is "now" in most tests below
var testNow = time.Date(2025, 6, 2, 10, 5, 0, 0, time.UTC)

func openEveryDay(open, close string) salonservice.WorkingHours {
	day := salonservice.DaySchedule{IsOpen: true, OpenTime: &open, CloseTime: &close}
	return salonservice.WorkingHours{
		Monday: day, Tuesday: day, Wednesday: day,
		Thursday: day, Friday: day, Saturday: day, Sunday: day,
	}
}

func testSalon(hours salonservice.WorkingHours) *salonservice.Salon {
	return &salonservice.Salon{
		ID:           1,
		Name:         "Barbershop",
		OwnerUserID:  500,
		WorkingHours: hours,
	}
}

func testService() *salonservice.Service {
	return &salonservice.Service{
		ID:              10,
		SalonID:         1,
		Name:            "Haircut",
		DurationMinutes: 30,
		Price:           ptr.Ptr(1500.0),
	}
}

func newTestUseCase(
	bookings *mockBookingRepo,
	configs *mockConfigRepo,
	salons *mockSalonClient,
	now time.Time,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookings,
		configRepo:   configs,
		salonClient:  salons,
		engine:       schedule.NewEngine(),
		timeProvider: fixedTime{now: now},
		logger:       nopLogger{},
	}
}

func noBookings() *mockBookingRepo {
	return &mockBookingRepo{
		getBySalonWithFilter: func(ctx context.Context, filter domain.SalonBookingsFilter) ([]*domain.Booking, error) {
			return nil, nil
		},
	}
}

func configNotFound() *mockConfigRepo {
	return &mockConfigRepo{
		getConfigWithHierarchy: func(ctx context.Context, salonID int64, serviceID *int64) (*domain.SalonSlotsConfig, error) {
			return nil, configRepo.ErrConfigNotFound
		},
	}
}

func salonWith(hours salonservice.WorkingHours) *mockSalonClient {
	return &mockSalonClient{
		getSalon: func(ctx context.Context, salonID int64) (*salonservice.Salon, error) {
			return testSalon(hours), nil
		},
		getService: func(ctx context.Context, salonID, serviceID int64) (*salonservice.Service, error) {
			return testService(), nil
		},
	}
}

func futureRequest() *Request {
	return &Request{
		UserID:    100,
		SalonID:   1,
		ServiceID: 10,
		Date:      time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
	}
}

func TestExecute_DefaultConfigFallback(t *testing.T) {
	// Config repository has nothing for the salon: defaults apply
	// (30-minute grid, single seat)
	uc := newTestUseCase(noBookings(), configNotFound(), salonWith(openEveryDay("09:00", "10:00")), testNow)

	resp, err := uc.Execute(context.Background(), futureRequest())
	require.NoError(t, err)

	assert.Equal(t, domain.DefaultSeatCount, resp.SeatCount)
	require.Len(t, resp.Slots, 2)
	assert.Equal(t, "09:00", string(resp.Slots[0].StartTime))
	assert.Equal(t, "09:30", string(resp.Slots[1].StartTime))
	assert.Equal(t, 30, resp.Slots[0].DurationMinutes)
	assert.Equal(t, 1, resp.Slots[0].AvailableSeats)
}

func TestExecute_ClosedDayReturnsEmptySlots(t *testing.T) {
	hours := openEveryDay("09:00", "18:00")
	hours.Tuesday = salonservice.DaySchedule{IsOpen: false}
	uc := newTestUseCase(noBookings(), configNotFound(), salonWith(hours), testNow)

	// 2025-06-10 is a Tuesday
	resp, err := uc.Execute(context.Background(), futureRequest())
	require.NoError(t, err)

	assert.Empty(t, resp.Slots)
	assert.Equal(t, domain.DefaultSeatCount, resp.SeatCount)
}

func TestExecute_DateValidation(t *testing.T) {
	uc := newTestUseCase(noBookings(), configNotFound(), salonWith(openEveryDay("09:00", "18:00")), testNow)

	req := futureRequest()
	req.Date = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecute_AdvanceBookingLimit(t *testing.T) {
	configs := &mockConfigRepo{
		getConfigWithHierarchy: func(ctx context.Context, salonID int64, serviceID *int64) (*domain.SalonSlotsConfig, error) {
			return &domain.SalonSlotsConfig{
				ID:                  1,
				SalonID:             salonID,
				SlotIntervalMinutes: 30,
				SeatCount:           1,
				AdvanceBookingDays:  7,
			}, nil
		},
	}
	uc := newTestUseCase(noBookings(), configs, salonWith(openEveryDay("09:00", "18:00")), testNow)

	// 2025-06-09 is exactly 7 days ahead of "now" and still allowed
	req := futureRequest()
	req.Date = time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC)
	_, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	// 2025-06-10 is one day past the limit
	req.Date = time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	_, err = uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrDateTooFarInFuture)
}

func TestExecute_NoticeShiftsReference(t *testing.T) {
	configs := &mockConfigRepo{
		getConfigWithHierarchy: func(ctx context.Context, salonID int64, serviceID *int64) (*domain.SalonSlotsConfig, error) {
			return &domain.SalonSlotsConfig{
				ID:                      1,
				SalonID:                 salonID,
				SlotIntervalMinutes:     30,
				SeatCount:               1,
				MinBookingNoticeMinutes: 60,
			}, nil
		},
	}
	uc := newTestUseCase(noBookings(), configs, salonWith(openEveryDay("09:00", "18:00")), testNow)

	// Booking for today: now is 10:05, notice 60 minutes, so the reference
	// is 11:05 and the first offered slot is 11:30
	req := futureRequest()
	req.Date = testNow
	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	require.NotEmpty(t, resp.Slots)
	assert.Equal(t, "11:30", string(resp.Slots[0].StartTime))
}

func TestExecute_ReferencePastMidnight(t *testing.T) {
	configs := &mockConfigRepo{
		getConfigWithHierarchy: func(ctx context.Context, salonID int64, serviceID *int64) (*domain.SalonSlotsConfig, error) {
			return &domain.SalonSlotsConfig{
				ID:                      1,
				SalonID:                 salonID,
				SlotIntervalMinutes:     30,
				SeatCount:               1,
				MinBookingNoticeMinutes: 120,
			}, nil
		},
	}
	lateNow := time.Date(2025, 6, 2, 23, 0, 0, 0, time.UTC)
	uc := newTestUseCase(noBookings(), configs, salonWith(openEveryDay("09:00", "18:00")), lateNow)

	// 23:00 + 120 minutes of notice crosses midnight: today has no slots left
	req := futureRequest()
	req.Date = lateNow
	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_ExistingBookingsReduceAvailability(t *testing.T) {
	bookings := &mockBookingRepo{
		getBySalonWithFilter: func(ctx context.Context, filter domain.SalonBookingsFilter) ([]*domain.Booking, error) {
			assert.False(t, filter.IncludeInactive)
			return []*domain.Booking{
				{
					ID:              1,
					UserID:          200,
					SalonID:         1,
					ServiceID:       10,
					SeatIndex:       0,
					StartTime:       "09:00",
					DurationMinutes: 30,
					Status:          domain.StatusConfirmed,
				},
			}, nil
		},
	}
	uc := newTestUseCase(bookings, configNotFound(), salonWith(openEveryDay("09:00", "10:00")), testNow)

	resp, err := uc.Execute(context.Background(), futureRequest())
	require.NoError(t, err)

	require.Len(t, resp.Slots, 1)
	assert.Equal(t, "09:30", string(resp.Slots[0].StartTime))
}

func TestExecute_SalonAndServiceNotFound(t *testing.T) {
	salons := &mockSalonClient{
		getSalon: func(ctx context.Context, salonID int64) (*salonservice.Salon, error) {
			return nil, salonservice.ErrSalonNotFound
		},
	}
	uc := newTestUseCase(noBookings(), configNotFound(), salons, testNow)
	_, err := uc.Execute(context.Background(), futureRequest())
	assert.ErrorIs(t, err, ErrSalonNotFound)

	salons = &mockSalonClient{
		getSalon: func(ctx context.Context, salonID int64) (*salonservice.Salon, error) {
			return testSalon(openEveryDay("09:00", "18:00")), nil
		},
		getService: func(ctx context.Context, salonID, serviceID int64) (*salonservice.Service, error) {
			return nil, salonservice.ErrServiceNotFound
		},
	}
	uc = newTestUseCase(noBookings(), configNotFound(), salons, testNow)
	_, err = uc.Execute(context.Background(), futureRequest())
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_InvalidInput(t *testing.T) {
	uc := newTestUseCase(noBookings(), configNotFound(), salonWith(openEveryDay("09:00", "18:00")), testNow)

	tests := []struct {
		name   string
		mutate func(r *Request)
	}{
		{"zero salon id", func(r *Request) { r.SalonID = 0 }},
		{"zero service id", func(r *Request) { r.ServiceID = 0 }},
		{"zero date", func(r *Request) { r.Date = time.Time{} }},
		{"negative limit", func(r *Request) { r.Limit = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := futureRequest()
			tt.mutate(req)
			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestExecute_LimitCapsSlots(t *testing.T) {
	uc := newTestUseCase(noBookings(), configNotFound(), salonWith(openEveryDay("09:00", "18:00")), testNow)

	req := futureRequest()
	req.Limit = 3
	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Len(t, resp.Slots, 3)
}
