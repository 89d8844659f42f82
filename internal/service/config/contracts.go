package config

import (
	"context"

	"github.com/m04kA/Salon-BookingService/internal/domain"
	"github.com/m04kA/Salon-BookingService/internal/integrations/salonservice"
)

// ConfigRepository интерфейс репозитория конфигурации слотов
type ConfigRepository interface {
	GetBySalonAndService(ctx context.Context, salonID int64, serviceID *int64) (*domain.SalonSlotsConfig, error)
	GetConfigWithHierarchy(ctx context.Context, salonID int64, serviceID *int64) (*domain.SalonSlotsConfig, error)
	GetAllBySalon(ctx context.Context, salonID int64) ([]*domain.SalonSlotsConfig, error)
	Upsert(ctx context.Context, config *domain.SalonSlotsConfig) (*domain.SalonSlotsConfig, error)
	Delete(ctx context.Context, id int64) error
}

// SalonServiceClient интерфейс клиента для SalonService
type SalonServiceClient interface {
	GetSalon(ctx context.Context, salonID int64) (*salonservice.Salon, error)
	GetService(ctx context.Context, salonID, serviceID int64) (*salonservice.Service, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
