package get_salon_config

import (
	"strconv"

	"github.com/m04kA/Salon-BookingService/internal/service/config/models"
)

// ToServiceRequest формирует запрос к сервису из URL и query параметров
func ToServiceRequest(salonID int64, serviceIDStr string) (*models.GetConfigRequest, error) {
	req := &models.GetConfigRequest{
		SalonID:   salonID,
		ServiceID: nil, // nil означает поиск конфигурации всего салона
	}

	// Парсим serviceId если указан
	if serviceIDStr != "" {
		serviceID, err := strconv.ParseInt(serviceIDStr, 10, 64)
		if err != nil {
			return nil, err
		}
		req.ServiceID = &serviceID
	}

	return req, nil
}
