package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/Salon-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/Salon-BookingService/internal/infra/storage/booking"
	"github.com/m04kA/Salon-BookingService/internal/integrations/salonservice"
	"github.com/m04kA/Salon-BookingService/internal/service/bookings/models"
	"github.com/m04kA/Salon-BookingService/pkg/ptr"
)

type mockBookingRepo struct {
	getByID              func(ctx context.Context, id int64) (*domain.Booking, error)
	getByUserID          func(ctx context.Context, userID int64, status *domain.BookingStatus) ([]*domain.Booking, error)
	getBySalonWithFilter func(ctx context.Context, filter domain.SalonBookingsFilter) ([]*domain.Booking, error)
	updateStatus         func(ctx context.Context, id int64, status domain.BookingStatus) error
	cancel               func(ctx context.Context, id int64, status domain.BookingStatus, reason string) error
}

func (m *mockBookingRepo) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	return m.getByID(ctx, id)
}

func (m *mockBookingRepo) GetByUserID(ctx context.Context, userID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	return m.getByUserID(ctx, userID, status)
}

func (m *mockBookingRepo) GetBySalonWithFilter(ctx context.Context, filter domain.SalonBookingsFilter) ([]*domain.Booking, error) {
	return m.getBySalonWithFilter(ctx, filter)
}

func (m *mockBookingRepo) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	return m.updateStatus(ctx, id, status)
}

func (m *mockBookingRepo) Cancel(ctx context.Context, id int64, status domain.BookingStatus, reason string) error {
	return m.cancel(ctx, id, status, reason)
}

type mockSalonClient struct {
	getSalon func(ctx context.Context, salonID int64) (*salonservice.Salon, error)
}

func (m *mockSalonClient) GetSalon(ctx context.Context, salonID int64) (*salonservice.Salon, error) {
	return m.getSalon(ctx, salonID)
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

const (
	clientID = int64(100)
	ownerID  = int64(500)
	otherID  = int64(999)
)

func testBooking() *domain.Booking {
	return &domain.Booking{
		ID:              1,
		UserID:          clientID,
		SalonID:         1,
		ServiceID:       10,
		SeatIndex:       0,
		BookingDate:     time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
		StartTime:       "10:00",
		DurationMinutes: 30,
		Status:          domain.StatusConfirmed,
		ServiceName:     "Haircut",
		ServicePrice:    1500,
	}
}

func salonOwnedBy(owner int64) *mockSalonClient {
	return &mockSalonClient{
		getSalon: func(ctx context.Context, salonID int64) (*salonservice.Salon, error) {
			return &salonservice.Salon{ID: salonID, Name: "Barbershop", OwnerUserID: owner}, nil
		},
	}
}

func repoWithBooking(b *domain.Booking) *mockBookingRepo {
	return &mockBookingRepo{
		getByID: func(ctx context.Context, id int64) (*domain.Booking, error) {
			if b == nil || b.ID != id {
				return nil, bookingRepo.ErrBookingNotFound
			}
			return b, nil
		},
	}
}

func TestGetByID_AccessControl(t *testing.T) {
	svc := NewService(repoWithBooking(testBooking()), salonOwnedBy(ownerID), nopLogger{})

	// Booking owner sees their booking
	resp, err := svc.GetByID(context.Background(), 1, clientID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "10:00", string(resp.StartTime))

	// Salon owner sees any booking of the salon
	_, err = svc.GetByID(context.Background(), 1, ownerID)
	require.NoError(t, err)

	// Anyone else is rejected
	_, err = svc.GetByID(context.Background(), 1, otherID)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetByID_NotFound(t *testing.T) {
	svc := NewService(repoWithBooking(nil), salonOwnedBy(ownerID), nopLogger{})

	_, err := svc.GetByID(context.Background(), 1, clientID)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestGetUserBookings_StatusFilter(t *testing.T) {
	var gotStatus *domain.BookingStatus
	repo := &mockBookingRepo{
		getByUserID: func(ctx context.Context, userID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
			gotStatus = status
			return []*domain.Booking{testBooking()}, nil
		},
	}
	svc := NewService(repo, salonOwnedBy(ownerID), nopLogger{})

	resp, err := svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{
		UserID: clientID,
		Status: ptr.Ptr("confirmed"),
	})
	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 1)
	require.NotNil(t, gotStatus)
	assert.Equal(t, domain.StatusConfirmed, *gotStatus)

	// Unknown status is rejected before hitting the repository
	_, err = svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{
		UserID: clientID,
		Status: ptr.Ptr("unknown"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetSalonBookings_OwnerOnly(t *testing.T) {
	repo := &mockBookingRepo{
		getBySalonWithFilter: func(ctx context.Context, filter domain.SalonBookingsFilter) ([]*domain.Booking, error) {
			assert.Equal(t, int64(1), filter.SalonID)
			return []*domain.Booking{testBooking()}, nil
		},
	}
	svc := NewService(repo, salonOwnedBy(ownerID), nopLogger{})

	resp, err := svc.GetSalonBookings(context.Background(), &models.GetSalonBookingsRequest{
		UserID:  ownerID,
		SalonID: 1,
	})
	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 1)

	_, err = svc.GetSalonBookings(context.Background(), &models.GetSalonBookingsRequest{
		UserID:  clientID,
		SalonID: 1,
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestCancel_ByBookingOwner(t *testing.T) {
	booking := testBooking()
	repo := repoWithBooking(booking)

	var gotStatus domain.BookingStatus
	var gotReason string
	repo.cancel = func(ctx context.Context, id int64, status domain.BookingStatus, reason string) error {
		gotStatus = status
		gotReason = reason
		return nil
	}
	svc := NewService(repo, salonOwnedBy(ownerID), nopLogger{})

	err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{
		UserID:             clientID,
		CancellationReason: "plans changed",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelledByUser, gotStatus)
	assert.Equal(t, "plans changed", gotReason)
}

func TestCancel_BySalonOwner(t *testing.T) {
	repo := repoWithBooking(testBooking())

	var gotStatus domain.BookingStatus
	repo.cancel = func(ctx context.Context, id int64, status domain.BookingStatus, reason string) error {
		gotStatus = status
		return nil
	}
	svc := NewService(repo, salonOwnedBy(ownerID), nopLogger{})

	err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{UserID: ownerID})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelledBySalon, gotStatus)
}

func TestCancel_Denied(t *testing.T) {
	svc := NewService(repoWithBooking(testBooking()), salonOwnedBy(ownerID), nopLogger{})

	err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{UserID: otherID})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestCancel_OnlyConfirmedBookings(t *testing.T) {
	tests := []struct {
		name   string
		status domain.BookingStatus
	}{
		{"completed", domain.StatusCompleted},
		{"cancelled by user", domain.StatusCancelledByUser},
		{"cancelled by salon", domain.StatusCancelledBySalon},
		{"no show", domain.StatusNoShow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			booking := testBooking()
			booking.Status = tt.status
			svc := NewService(repoWithBooking(booking), salonOwnedBy(ownerID), nopLogger{})

			err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{UserID: clientID})
			assert.ErrorIs(t, err, ErrCannotCancel)
		})
	}
}

func TestUpdateStatus_OwnerOnly(t *testing.T) {
	repo := repoWithBooking(testBooking())

	var gotStatus domain.BookingStatus
	repo.updateStatus = func(ctx context.Context, id int64, status domain.BookingStatus) error {
		gotStatus = status
		return nil
	}
	svc := NewService(repo, salonOwnedBy(ownerID), nopLogger{})

	err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{
		UserID: ownerID,
		Status: "completed",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, gotStatus)

	// The booking's own client cannot complete it
	err = svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{
		UserID: clientID,
		Status: "completed",
	})
	assert.ErrorIs(t, err, ErrAccessDenied)

	// Garbage status is rejected
	err = svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{
		UserID: ownerID,
		Status: "finished",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
