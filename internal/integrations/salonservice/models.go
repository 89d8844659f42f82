package salonservice

// Salon модель салона из SalonService
type Salon struct {
	ID           int64        `json:"id"`
	Name         string       `json:"name"`
	OwnerUserID  int64        `json:"owner_user_id"`
	Address      string       `json:"address"`
	WorkingHours WorkingHours `json:"working_hours"`
}

// WorkingHours расписание работы салона по дням недели
type WorkingHours struct {
	Monday    DaySchedule `json:"monday"`
	Tuesday   DaySchedule `json:"tuesday"`
	Wednesday DaySchedule `json:"wednesday"`
	Thursday  DaySchedule `json:"thursday"`
	Friday    DaySchedule `json:"friday"`
	Saturday  DaySchedule `json:"saturday"`
	Sunday    DaySchedule `json:"sunday"`
}

// DaySchedule расписание работы салона на один день недели
type DaySchedule struct {
	IsOpen    bool    `json:"is_open"`
	OpenTime  *string `json:"open_time,omitempty"`  // "10:00"
	CloseTime *string `json:"close_time,omitempty"` // "19:00"
}

// Service модель услуги из каталога SalonService
type Service struct {
	ID              int64    `json:"id"`
	SalonID         int64    `json:"salon_id"`
	Name            string   `json:"name"`
	DurationMinutes int      `json:"duration_minutes"`
	Price           *float64 `json:"price,omitempty"`
}

// ErrorResponse модель ошибки от SalonService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
