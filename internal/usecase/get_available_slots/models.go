package get_available_slots

import (
	"time"

	"github.com/m04kA/Salon-BookingService/pkg/types"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	UserID    int64     // ID пользователя (для логирования, не влияет на результат)
	SalonID   int64     // ID салона
	ServiceID int64     // ID услуги
	Date      time.Time // Дата для получения слотов (без времени)
	Limit     int       // Максимум слотов в ответе (0 - без ограничения)
}

// Response модель ответа со списком доступных слотов
type Response struct {
	Date      time.Time // Дата, на которую запрашивались слоты
	SalonID   int64     // ID салона
	ServiceID int64     // ID услуги
	SeatCount int       // Количество кресел салона
	Slots     []Slot    // Список доступных слотов, по возрастанию времени
}

// Slot модель доступного временного слота
type Slot struct {
	StartTime       types.TimeString // Время начала слота (например, "10:15")
	DurationMinutes int              // Длительность услуги в минутах
	AvailableSeats  int              // Количество свободных кресел
	TotalSeats      int              // Общее количество кресел
}
