package models

import (
	"time"

	"github.com/m04kA/Salon-BookingService/internal/domain"
)

// Request модели

// UpsertConfigRequest запрос на создание или обновление конфигурации слотов
type UpsertConfigRequest struct {
	UserID                  int64  `json:"userId"`
	SalonID                 int64  `json:"salonId"`
	ServiceID               *int64 `json:"serviceId,omitempty"`     // NULL = для всех услуг салона
	SlotIntervalMinutes     int    `json:"slotIntervalMinutes"`     // 15, 30, 60, etc.
	SeatCount               int    `json:"seatCount"`               // Количество кресел
	AdvanceBookingDays      int    `json:"advanceBookingDays"`      // 0 = без ограничений
	MinBookingNoticeMinutes int    `json:"minBookingNoticeMinutes"` // Минимальное время до бронирования
}

// GetConfigRequest запрос на получение конфигурации (для иерархического поиска)
type GetConfigRequest struct {
	SalonID   int64  `json:"salonId"`
	ServiceID *int64 `json:"serviceId,omitempty"` // nil означает любая услуга
}

// DeleteConfigRequest запрос на удаление конфигурации
type DeleteConfigRequest struct {
	UserID    int64  `json:"userId"`
	SalonID   int64  `json:"salonId"`
	ServiceID *int64 `json:"serviceId,omitempty"`
}

// Response модели

// ConfigResponse ответ с данными конфигурации слотов
type ConfigResponse struct {
	ID                      int64     `json:"id"`
	SalonID                 int64     `json:"salonId"`
	ServiceID               *int64    `json:"serviceId,omitempty"`
	SlotIntervalMinutes     int       `json:"slotIntervalMinutes"`
	SeatCount               int       `json:"seatCount"`
	AdvanceBookingDays      int       `json:"advanceBookingDays"`
	MinBookingNoticeMinutes int       `json:"minBookingNoticeMinutes"`
	CreatedAt               time.Time `json:"createdAt"`
	UpdatedAt               time.Time `json:"updatedAt"`
}

// ConfigListResponse ответ со списком конфигураций
type ConfigListResponse struct {
	Configs []ConfigResponse `json:"configs"`
}

// Методы конвертации

// FromDomainConfig конвертирует domain модель в DTO
func FromDomainConfig(c *domain.SalonSlotsConfig) *ConfigResponse {
	if c == nil {
		return nil
	}

	return &ConfigResponse{
		ID:                      c.ID,
		SalonID:                 c.SalonID,
		ServiceID:               c.ServiceID,
		SlotIntervalMinutes:     c.SlotIntervalMinutes,
		SeatCount:               c.SeatCount,
		AdvanceBookingDays:      c.AdvanceBookingDays,
		MinBookingNoticeMinutes: c.MinBookingNoticeMinutes,
		CreatedAt:               c.CreatedAt,
		UpdatedAt:               c.UpdatedAt,
	}
}

// FromDomainConfigList конвертирует список domain моделей в DTO
func FromDomainConfigList(configs []*domain.SalonSlotsConfig) *ConfigListResponse {
	if configs == nil {
		return &ConfigListResponse{
			Configs: []ConfigResponse{},
		}
	}

	resp := &ConfigListResponse{
		Configs: make([]ConfigResponse, len(configs)),
	}

	for i, config := range configs {
		if configResp := FromDomainConfig(config); configResp != nil {
			resp.Configs[i] = *configResp
		}
	}

	return resp
}

// ToDomainConfig конвертирует UpsertConfigRequest в domain модель
func (r *UpsertConfigRequest) ToDomainConfig() *domain.SalonSlotsConfig {
	return &domain.SalonSlotsConfig{
		SalonID:                 r.SalonID,
		ServiceID:               r.ServiceID,
		SlotIntervalMinutes:     r.SlotIntervalMinutes,
		SeatCount:               r.SeatCount,
		AdvanceBookingDays:      r.AdvanceBookingDays,
		MinBookingNoticeMinutes: r.MinBookingNoticeMinutes,
	}
}
