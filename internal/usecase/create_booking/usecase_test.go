package create_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/Salon-BookingService/internal/domain"
	configRepo "github.com/m04kA/Salon-BookingService/internal/infra/storage/config"
	"github.com/m04kA/Salon-BookingService/internal/integrations/salonservice"
	"github.com/m04kA/Salon-BookingService/pkg/ptr"
)

type mockBookingRepo struct {
	create               func(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	getBySalonWithFilter func(ctx context.Context, filter domain.SalonBookingsFilter) ([]*domain.Booking, error)
}

func (m *mockBookingRepo) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	return m.create(ctx, booking)
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

// passthroughTxManager runs the callback without a real transaction
type passthroughTxManager struct{}

func (passthroughTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
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

func salonWith(hours salonservice.WorkingHours) *mockSalonClient {
	return &mockSalonClient{
		getSalon: func(ctx context.Context, salonID int64) (*salonservice.Salon, error) {
			return &salonservice.Salon{
				ID:           1,
				Name:         "Barbershop",
				OwnerUserID:  500,
				WorkingHours: hours,
			}, nil
		},
		getService: func(ctx context.Context, salonID, serviceID int64) (*salonservice.Service, error) {
			return &salonservice.Service{
				ID:              10,
				SalonID:         1,
				Name:            "Haircut",
				DurationMinutes: 30,
				Price:           ptr.Ptr(1500.0),
			}, nil
		},
	}
}

func configWith(cfg *domain.SalonSlotsConfig) *mockConfigRepo {
	return &mockConfigRepo{
		getConfigWithHierarchy: func(ctx context.Context, salonID int64, serviceID *int64) (*domain.SalonSlotsConfig, error) {
			if cfg == nil {
				return nil, configRepo.ErrConfigNotFound
			}
			return cfg, nil
		},
	}
}

// persistingRepo echoes inserted bookings back with a DB-assigned ID
func persistingRepo(existing []*domain.Booking) *mockBookingRepo {
	return &mockBookingRepo{
		getBySalonWithFilter: func(ctx context.Context, filter domain.SalonBookingsFilter) ([]*domain.Booking, error) {
			return existing, nil
		},
		create: func(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
			stored := *booking
			stored.ID = 42
			stored.CreatedAt = testNow
			stored.UpdatedAt = testNow
			return &stored, nil
		},
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
		txManager:    passthroughTxManager{},
		timeProvider: fixedTime{now: now},
		logger:       nopLogger{},
	}
}

func validRequest() *Request {
	return &Request{
		UserID:    100,
		SalonID:   1,
		ServiceID: 10,
		Date:      time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
		StartTime: "10:00",
	}
}

func TestExecute_CreatesBooking(t *testing.T) {
	uc := newTestUseCase(persistingRepo(nil), configWith(nil), salonWith(openEveryDay("09:00", "18:00")), testNow)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(42), resp.ID)
	assert.Equal(t, int64(100), resp.UserID)
	assert.Equal(t, 0, resp.SeatIndex)
	assert.Equal(t, "10:00", string(resp.StartTime))
	assert.Equal(t, 30, resp.DurationMinutes)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
	assert.Equal(t, "Haircut", resp.ServiceName)
	assert.Equal(t, 1500.0, resp.ServicePrice)
}

func TestExecute_NoSeatAvailable(t *testing.T) {
	existing := []*domain.Booking{
		{
			ID:              1,
			UserID:          200,
			SalonID:         1,
			ServiceID:       10,
			SeatIndex:       0,
			StartTime:       "10:00",
			DurationMinutes: 30,
			Status:          domain.StatusConfirmed,
		},
	}
	uc := newTestUseCase(persistingRepo(existing), configWith(nil), salonWith(openEveryDay("09:00", "18:00")), testNow)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrNoSeatAvailable)
}

func TestExecute_CancelledBookingDoesNotBlock(t *testing.T) {
	existing := []*domain.Booking{
		{
			ID:              1,
			UserID:          200,
			SalonID:         1,
			ServiceID:       10,
			SeatIndex:       0,
			StartTime:       "10:00",
			DurationMinutes: 30,
			Status:          domain.StatusCancelledByUser,
		},
	}
	uc := newTestUseCase(persistingRepo(existing), configWith(nil), salonWith(openEveryDay("09:00", "18:00")), testNow)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, 0, resp.SeatIndex)
}

func TestExecute_PreferredSeat(t *testing.T) {
	cfg := &domain.SalonSlotsConfig{
		ID:                  1,
		SalonID:             1,
		SlotIntervalMinutes: 30,
		SeatCount:           2,
	}
	existing := []*domain.Booking{
		{
			ID:              1,
			UserID:          200,
			SalonID:         1,
			ServiceID:       10,
			SeatIndex:       1,
			StartTime:       "10:00",
			DurationMinutes: 30,
			Status:          domain.StatusConfirmed,
		},
	}

	// Occupied seat requested explicitly
	uc := newTestUseCase(persistingRepo(existing), configWith(cfg), salonWith(openEveryDay("09:00", "18:00")), testNow)
	req := validRequest()
	req.PreferredSeat = ptr.Ptr(1)
	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrSeatUnavailable)

	// Free seat requested explicitly
	req.PreferredSeat = ptr.Ptr(0)
	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 0, resp.SeatIndex)

	// Seat index beyond seat_count
	req.PreferredSeat = ptr.Ptr(2)
	_, err = uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidSeat)
}

func TestExecute_OffGridStartRejected(t *testing.T) {
	uc := newTestUseCase(persistingRepo(nil), configWith(nil), salonWith(openEveryDay("09:00", "18:00")), testNow)

	req := validRequest()
	req.StartTime = "10:10"
	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidTimeSlot)

	req.StartTime = "17:45" // would end after closing
	_, err = uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidTimeSlot)
}

func TestExecute_SalonClosed(t *testing.T) {
	hours := openEveryDay("09:00", "18:00")
	hours.Tuesday = salonservice.DaySchedule{IsOpen: false}
	uc := newTestUseCase(persistingRepo(nil), configWith(nil), salonWith(hours), testNow)

	// 2025-06-10 is a Tuesday
	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSalonClosed)
}

func TestExecute_TooLateToBook(t *testing.T) {
	cfg := &domain.SalonSlotsConfig{
		ID:                      1,
		SalonID:                 1,
		SlotIntervalMinutes:     30,
		SeatCount:               1,
		MinBookingNoticeMinutes: 60,
	}
	uc := newTestUseCase(persistingRepo(nil), configWith(cfg), salonWith(openEveryDay("09:00", "18:00")), testNow)

	// Booking for today at 10:30: now is 10:05, notice is 60 minutes
	req := validRequest()
	req.Date = testNow
	req.StartTime = "10:30"
	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrTooLateToBook)

	// 11:30 respects the notice
	req.StartTime = "11:30"
	_, err = uc.Execute(context.Background(), req)
	require.NoError(t, err)
}

func TestExecute_DateValidation(t *testing.T) {
	cfg := &domain.SalonSlotsConfig{
		ID:                  1,
		SalonID:             1,
		SlotIntervalMinutes: 30,
		SeatCount:           1,
		AdvanceBookingDays:  5,
	}
	uc := newTestUseCase(persistingRepo(nil), configWith(cfg), salonWith(openEveryDay("09:00", "18:00")), testNow)

	req := validRequest()
	req.Date = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidDate)

	req.Date = time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	_, err = uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrDateTooFarInFuture)
}

func TestExecute_SalonAndServiceNotFound(t *testing.T) {
	salons := &mockSalonClient{
		getSalon: func(ctx context.Context, salonID int64) (*salonservice.Salon, error) {
			return nil, salonservice.ErrSalonNotFound
		},
	}
	uc := newTestUseCase(persistingRepo(nil), configWith(nil), salons, testNow)
	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSalonNotFound)

	salons = salonWith(openEveryDay("09:00", "18:00"))
	salons.getService = func(ctx context.Context, salonID, serviceID int64) (*salonservice.Service, error) {
		return nil, salonservice.ErrServiceNotFound
	}
	uc = newTestUseCase(persistingRepo(nil), configWith(nil), salons, testNow)
	_, err = uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_InvalidInput(t *testing.T) {
	uc := newTestUseCase(persistingRepo(nil), configWith(nil), salonWith(openEveryDay("09:00", "18:00")), testNow)

	longNotes := string(make([]byte, domain.MaxNotesLength+1))

	tests := []struct {
		name   string
		mutate func(r *Request)
	}{
		{"zero user id", func(r *Request) { r.UserID = 0 }},
		{"zero salon id", func(r *Request) { r.SalonID = 0 }},
		{"zero service id", func(r *Request) { r.ServiceID = 0 }},
		{"zero date", func(r *Request) { r.Date = time.Time{} }},
		{"empty start time", func(r *Request) { r.StartTime = "" }},
		{"malformed start time", func(r *Request) { r.StartTime = "25:99" }},
		{"negative preferred seat", func(r *Request) { r.PreferredSeat = ptr.Ptr(-1) }},
		{"notes too long", func(r *Request) { r.Notes = &longNotes }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)
			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
