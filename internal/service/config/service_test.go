package config

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/Salon-BookingService/internal/domain"
	configRepo "github.com/m04kA/Salon-BookingService/internal/infra/storage/config"
	"github.com/m04kA/Salon-BookingService/internal/integrations/salonservice"
	"github.com/m04kA/Salon-BookingService/internal/service/config/models"
	"github.com/m04kA/Salon-BookingService/pkg/ptr"
)

type mockConfigRepo struct {
	getBySalonAndService   func(ctx context.Context, salonID int64, serviceID *int64) (*domain.SalonSlotsConfig, error)
	getConfigWithHierarchy func(ctx context.Context, salonID int64, serviceID *int64) (*domain.SalonSlotsConfig, error)
	getAllBySalon          func(ctx context.Context, salonID int64) ([]*domain.SalonSlotsConfig, error)
	upsert                 func(ctx context.Context, config *domain.SalonSlotsConfig) (*domain.SalonSlotsConfig, error)
	delete                 func(ctx context.Context, id int64) error
}

func (m *mockConfigRepo) GetBySalonAndService(ctx context.Context, salonID int64, serviceID *int64) (*domain.SalonSlotsConfig, error) {
	return m.getBySalonAndService(ctx, salonID, serviceID)
}

func (m *mockConfigRepo) GetConfigWithHierarchy(ctx context.Context, salonID int64, serviceID *int64) (*domain.SalonSlotsConfig, error) {
	return m.getConfigWithHierarchy(ctx, salonID, serviceID)
}

func (m *mockConfigRepo) GetAllBySalon(ctx context.Context, salonID int64) ([]*domain.SalonSlotsConfig, error) {
	return m.getAllBySalon(ctx, salonID)
}

func (m *mockConfigRepo) Upsert(ctx context.Context, config *domain.SalonSlotsConfig) (*domain.SalonSlotsConfig, error) {
	return m.upsert(ctx, config)
}

func (m *mockConfigRepo) Delete(ctx context.Context, id int64) error {
	return m.delete(ctx, id)
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

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

const ownerID = int64(500)

func salonOwnedBy(owner int64) *mockSalonClient {
	return &mockSalonClient{
		getSalon: func(ctx context.Context, salonID int64) (*salonservice.Salon, error) {
			return &salonservice.Salon{ID: salonID, Name: "Barbershop", OwnerUserID: owner}, nil
		},
		getService: func(ctx context.Context, salonID, serviceID int64) (*salonservice.Service, error) {
			return &salonservice.Service{ID: serviceID, SalonID: salonID, Name: "Haircut", DurationMinutes: 30}, nil
		},
	}
}

func validUpsertRequest() *models.UpsertConfigRequest {
	return &models.UpsertConfigRequest{
		UserID:                  ownerID,
		SalonID:                 1,
		SlotIntervalMinutes:     15,
		SeatCount:               3,
		AdvanceBookingDays:      14,
		MinBookingNoticeMinutes: 60,
	}
}

func TestUpsert_OwnerOnly(t *testing.T) {
	repo := &mockConfigRepo{
		upsert: func(ctx context.Context, config *domain.SalonSlotsConfig) (*domain.SalonSlotsConfig, error) {
			stored := *config
			stored.ID = 7
			return &stored, nil
		},
	}
	svc := NewService(repo, salonOwnedBy(ownerID), nopLogger{})

	resp, err := svc.Upsert(context.Background(), validUpsertRequest())
	require.NoError(t, err)
	assert.Equal(t, int64(7), resp.ID)
	assert.Equal(t, 15, resp.SlotIntervalMinutes)
	assert.Equal(t, 3, resp.SeatCount)

	req := validUpsertRequest()
	req.UserID = 999
	_, err = svc.Upsert(context.Background(), req)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestUpsert_ServiceMustExist(t *testing.T) {
	salons := salonOwnedBy(ownerID)
	salons.getService = func(ctx context.Context, salonID, serviceID int64) (*salonservice.Service, error) {
		return nil, salonservice.ErrServiceNotFound
	}
	svc := NewService(&mockConfigRepo{}, salons, nopLogger{})

	req := validUpsertRequest()
	req.ServiceID = ptr.Ptr(int64(10))
	_, err := svc.Upsert(context.Background(), req)
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestUpsert_ValidatesBounds(t *testing.T) {
	svc := NewService(&mockConfigRepo{}, salonOwnedBy(ownerID), nopLogger{})

	tests := []struct {
		name   string
		mutate func(r *models.UpsertConfigRequest)
	}{
		{"interval too small", func(r *models.UpsertConfigRequest) { r.SlotIntervalMinutes = domain.MinSlotIntervalMinutes - 1 }},
		{"interval too large", func(r *models.UpsertConfigRequest) { r.SlotIntervalMinutes = domain.MaxSlotIntervalMinutes + 1 }},
		{"zero seats", func(r *models.UpsertConfigRequest) { r.SeatCount = 0 }},
		{"too many seats", func(r *models.UpsertConfigRequest) { r.SeatCount = domain.MaxSeatCount + 1 }},
		{"negative advance days", func(r *models.UpsertConfigRequest) { r.AdvanceBookingDays = -1 }},
		{"advance days over limit", func(r *models.UpsertConfigRequest) { r.AdvanceBookingDays = domain.MaxAdvanceBookingDays + 1 }},
		{"negative notice", func(r *models.UpsertConfigRequest) { r.MinBookingNoticeMinutes = -1 }},
		{"notice over limit", func(r *models.UpsertConfigRequest) { r.MinBookingNoticeMinutes = domain.MaxBookingNoticeMinutes + 1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validUpsertRequest()
			tt.mutate(req)
			_, err := svc.Upsert(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestGetWithHierarchy_ReturnsDefaultsWhenMissing(t *testing.T) {
	repo := &mockConfigRepo{
		getConfigWithHierarchy: func(ctx context.Context, salonID int64, serviceID *int64) (*domain.SalonSlotsConfig, error) {
			return nil, configRepo.ErrConfigNotFound
		},
	}
	svc := NewService(repo, salonOwnedBy(ownerID), nopLogger{})

	resp, err := svc.GetWithHierarchy(context.Background(), &models.GetConfigRequest{SalonID: 1})
	require.NoError(t, err)

	assert.Equal(t, int64(0), resp.ID)
	assert.Equal(t, int64(1), resp.SalonID)
	assert.Equal(t, domain.DefaultSlotIntervalMinutes, resp.SlotIntervalMinutes)
	assert.Equal(t, domain.DefaultSeatCount, resp.SeatCount)
	assert.Equal(t, domain.DefaultAdvanceBookingDays, resp.AdvanceBookingDays)
	assert.Equal(t, domain.DefaultMinBookingNoticeMinutes, resp.MinBookingNoticeMinutes)
}

func TestGetWithHierarchy_ServiceLevelWins(t *testing.T) {
	repo := &mockConfigRepo{
		getConfigWithHierarchy: func(ctx context.Context, salonID int64, serviceID *int64) (*domain.SalonSlotsConfig, error) {
			require.NotNil(t, serviceID)
			return &domain.SalonSlotsConfig{
				ID:                  3,
				SalonID:             salonID,
				ServiceID:           serviceID,
				SlotIntervalMinutes: 20,
				SeatCount:           2,
			}, nil
		},
	}
	svc := NewService(repo, salonOwnedBy(ownerID), nopLogger{})

	resp, err := svc.GetWithHierarchy(context.Background(), &models.GetConfigRequest{
		SalonID:   1,
		ServiceID: ptr.Ptr(int64(10)),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3), resp.ID)
	assert.Equal(t, 20, resp.SlotIntervalMinutes)
}

func TestGetAllBySalon_OwnerOnly(t *testing.T) {
	repo := &mockConfigRepo{
		getAllBySalon: func(ctx context.Context, salonID int64) ([]*domain.SalonSlotsConfig, error) {
			return []*domain.SalonSlotsConfig{
				{ID: 1, SalonID: salonID, SlotIntervalMinutes: 30, SeatCount: 2},
				{ID: 2, SalonID: salonID, ServiceID: ptr.Ptr(int64(10)), SlotIntervalMinutes: 60, SeatCount: 1},
			}, nil
		},
	}
	svc := NewService(repo, salonOwnedBy(ownerID), nopLogger{})

	resp, err := svc.GetAllBySalon(context.Background(), 1, ownerID)
	require.NoError(t, err)
	assert.Len(t, resp.Configs, 2)

	_, err = svc.GetAllBySalon(context.Background(), 1, 999)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestDeleteByKey(t *testing.T) {
	var deletedID int64
	repo := &mockConfigRepo{
		getBySalonAndService: func(ctx context.Context, salonID int64, serviceID *int64) (*domain.SalonSlotsConfig, error) {
			if serviceID != nil {
				return nil, configRepo.ErrConfigNotFound
			}
			return &domain.SalonSlotsConfig{ID: 5, SalonID: salonID, SlotIntervalMinutes: 30, SeatCount: 1}, nil
		},
		delete: func(ctx context.Context, id int64) error {
			deletedID = id
			return nil
		},
	}
	svc := NewService(repo, salonOwnedBy(ownerID), nopLogger{})

	err := svc.DeleteByKey(context.Background(), &models.DeleteConfigRequest{UserID: ownerID, SalonID: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(5), deletedID)

	// Missing key
	err = svc.DeleteByKey(context.Background(), &models.DeleteConfigRequest{
		UserID:    ownerID,
		SalonID:   1,
		ServiceID: ptr.Ptr(int64(10)),
	})
	assert.ErrorIs(t, err, ErrConfigNotFound)

	// Not the owner
	err = svc.DeleteByKey(context.Background(), &models.DeleteConfigRequest{UserID: 999, SalonID: 1})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestDeleteByKey_SalonNotFound(t *testing.T) {
	salons := &mockSalonClient{
		getSalon: func(ctx context.Context, salonID int64) (*salonservice.Salon, error) {
			return nil, salonservice.ErrSalonNotFound
		},
	}
	svc := NewService(&mockConfigRepo{}, salons, nopLogger{})

	err := svc.DeleteByKey(context.Background(), &models.DeleteConfigRequest{UserID: ownerID, SalonID: 1})
	assert.ErrorIs(t, err, ErrSalonNotFound)
}
