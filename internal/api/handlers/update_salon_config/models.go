package update_salon_config

import (
	"github.com/m04kA/Salon-BookingService/internal/service/config/models"
)

// UpdateSalonConfigRequest HTTP request model
type UpdateSalonConfigRequest struct {
	ServiceID               *int64 `json:"serviceId,omitempty"`
	SlotIntervalMinutes     int    `json:"slotIntervalMinutes"`
	SeatCount               int    `json:"seatCount"`
	AdvanceBookingDays      int    `json:"advanceBookingDays"`
	MinBookingNoticeMinutes int    `json:"minBookingNoticeMinutes"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *UpdateSalonConfigRequest) ToServiceRequest(salonID, userID int64) *models.UpsertConfigRequest {
	return &models.UpsertConfigRequest{
		UserID:                  userID,
		SalonID:                 salonID,
		ServiceID:               r.ServiceID,
		SlotIntervalMinutes:     r.SlotIntervalMinutes,
		SeatCount:               r.SeatCount,
		AdvanceBookingDays:      r.AdvanceBookingDays,
		MinBookingNoticeMinutes: r.MinBookingNoticeMinutes,
	}
}
