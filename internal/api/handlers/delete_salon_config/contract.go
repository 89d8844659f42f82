package delete_salon_config

import (
	"context"

	"github.com/m04kA/Salon-BookingService/internal/service/config/models"
)

type ConfigService interface {
	DeleteByKey(ctx context.Context, req *models.DeleteConfigRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
