package domain

import "time"

// SalonSlotsConfig represents the scheduling configuration for a salon.
// Supports two levels of configuration:
// 1. Service-specific (salon_id, service_id)
// 2. Salon-wide (salon_id, NULL)
type SalonSlotsConfig struct {
	ID                      int64
	SalonID                 int64
	ServiceID               *int64 // NULL = config for all services of the salon
	SlotIntervalMinutes     int    // шаг сетки слотов
	SeatCount               int    // количество взаимозаменяемых кресел
	AdvanceBookingDays      int    // 0 = unlimited
	MinBookingNoticeMinutes int
	CreatedAt               time.Time
	UpdatedAt               time.Time
}

// IsSalonWide returns true if this is a salon-wide configuration (not service-specific)
func (c *SalonSlotsConfig) IsSalonWide() bool {
	return c.ServiceID == nil
}

// IsServiceSpecific returns true if this configuration is for a specific service
func (c *SalonSlotsConfig) IsServiceSpecific() bool {
	return c.ServiceID != nil
}

// HasAdvanceBookingLimit returns true if there's a limit on how far in advance bookings can be made
func (c *SalonSlotsConfig) HasAdvanceBookingLimit() bool {
	return c.AdvanceBookingDays > 0
}

// HasMultipleSeats returns true if the salon serves more than one client at a time
func (c *SalonSlotsConfig) HasMultipleSeats() bool {
	return c.SeatCount > 1
}
