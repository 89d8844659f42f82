package schedule

import "github.com/m04kA/Salon-BookingService/pkg/types"

// Service неизменяемая запись каталога услуг
type Service struct {
	ID              int64
	Name            string
	DurationMinutes int
	Price           float64
}

// DayConfig конфигурация салона на один рабочий день
type DayConfig struct {
	OpenTime            types.TimeString
	CloseTime           types.TimeString
	SlotIntervalMinutes int
	SeatCount           int
}

// Catalog read-only доступ к услугам и конфигурации салона.
// Загружается один раз на сессию планирования и не мутируется.
type Catalog interface {
	// GetService возвращает услугу по ID или ErrServiceNotFound
	GetService(serviceID int64) (*Service, error)

	// Config возвращает конфигурацию салона на день
	Config() DayConfig
}

// StaticCatalog реализация Catalog поверх загруженного набора услуг.
// Используется сервисом (данные приходят из SalonService и конфигурации слотов)
// и тестами.
type StaticCatalog struct {
	services map[int64]*Service
	config   DayConfig
}

// NewStaticCatalog создает каталог из набора услуг и конфигурации дня
func NewStaticCatalog(services []*Service, config DayConfig) *StaticCatalog {
	byID := make(map[int64]*Service, len(services))
	for _, svc := range services {
		byID[svc.ID] = svc
	}
	return &StaticCatalog{services: byID, config: config}
}

// GetService возвращает услугу по ID или ErrServiceNotFound
func (c *StaticCatalog) GetService(serviceID int64) (*Service, error) {
	svc, ok := c.services[serviceID]
	if !ok {
		return nil, ErrServiceNotFound
	}
	return svc, nil
}

// Config возвращает конфигурацию салона на день
func (c *StaticCatalog) Config() DayConfig {
	return c.config
}
