package config

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/Salon-BookingService/internal/domain"
	configRepo "github.com/m04kA/Salon-BookingService/internal/infra/storage/config"
	salonClient "github.com/m04kA/Salon-BookingService/internal/integrations/salonservice"
	"github.com/m04kA/Salon-BookingService/internal/service/config/models"
)

// Service сервис для работы с конфигурацией слотов
type Service struct {
	configRepo  ConfigRepository
	salonClient SalonServiceClient
	logger      Logger
}

// NewService создает новый экземпляр сервиса конфигурации
func NewService(
	configRepo ConfigRepository,
	salonClient SalonServiceClient,
	logger Logger,
) *Service {
	return &Service{
		configRepo:  configRepo,
		salonClient: salonClient,
		logger:      logger,
	}
}

// Upsert создает или обновляет конфигурацию слотов для салона (и, опционально,
// конкретной услуги). Доступно только владельцу салона.
func (s *Service) Upsert(ctx context.Context, req *models.UpsertConfigRequest) (*models.ConfigResponse, error) {
	s.logger.Info("Upsert: upserting config for salon=%d, service=%v by user=%d",
		req.SalonID, req.ServiceID, req.UserID)

	// 1. Валидируем входные данные
	if err := s.validateConfigData(req.SlotIntervalMinutes, req.SeatCount,
		req.AdvanceBookingDays, req.MinBookingNoticeMinutes); err != nil {
		s.logger.Warn("Upsert: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем салон для проверки прав доступа
	salon, err := s.salonClient.GetSalon(ctx, req.SalonID)
	if err != nil {
		if errors.Is(err, salonClient.ErrSalonNotFound) {
			s.logger.Warn("Upsert: salon id=%d not found", req.SalonID)
			return nil, ErrSalonNotFound
		}
		s.logger.Error("Upsert: failed to get salon id=%d: %v", req.SalonID, err)
		return nil, fmt.Errorf("%w: failed to get salon: %v", ErrInternal, err)
	}

	// 3. Проверяем права доступа (только владелец салона)
	if salon.OwnerUserID != req.UserID {
		s.logger.Warn("Upsert: user=%d is not the owner of salon=%d", req.UserID, req.SalonID)
		return nil, ErrAccessDenied
	}

	// 4. Если указан serviceID, проверяем его существование в салоне
	if req.ServiceID != nil {
		if _, err := s.salonClient.GetService(ctx, req.SalonID, *req.ServiceID); err != nil {
			if errors.Is(err, salonClient.ErrServiceNotFound) {
				s.logger.Warn("Upsert: service id=%d not found in salon=%d", *req.ServiceID, req.SalonID)
				return nil, ErrServiceNotFound
			}
			s.logger.Error("Upsert: failed to get service id=%d: %v", *req.ServiceID, err)
			return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
		}
	}

	// 5. Создаем или обновляем конфигурацию
	upserted, err := s.configRepo.Upsert(ctx, req.ToDomainConfig())
	if err != nil {
		s.logger.Error("Upsert: repository error: %v", err)
		return nil, fmt.Errorf("%w: Upsert - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Upsert: successfully upserted config id=%d", upserted.ID)
	return models.FromDomainConfig(upserted), nil
}

// GetWithHierarchy получает конфигурацию с учетом иерархии приоритетов
// Публичный метод - используется для получения актуальной конфигурации при бронировании
// Приоритет: service > salon-wide; если ничего не найдено - дефолтная конфигурация
func (s *Service) GetWithHierarchy(ctx context.Context, req *models.GetConfigRequest) (*models.ConfigResponse, error) {
	s.logger.Info("GetWithHierarchy: fetching config for salon=%d, service=%v",
		req.SalonID, req.ServiceID)

	config, err := s.configRepo.GetConfigWithHierarchy(ctx, req.SalonID, req.ServiceID)
	if err != nil {
		if errors.Is(err, configRepo.ErrConfigNotFound) {
			s.logger.Info("GetWithHierarchy: no config found for salon=%d, returning defaults", req.SalonID)
			return models.FromDomainConfig(s.defaultConfig(req.SalonID)), nil
		}
		s.logger.Error("GetWithHierarchy: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetWithHierarchy - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetWithHierarchy: successfully fetched config id=%d (level: %s)",
		config.ID, s.getConfigLevel(config))
	return models.FromDomainConfig(config), nil
}

// GetAllBySalon получает все конфигурации салона
// Доступно только владельцу салона
func (s *Service) GetAllBySalon(ctx context.Context, salonID int64, userID int64) (*models.ConfigListResponse, error) {
	s.logger.Info("GetAllBySalon: fetching configs for salon=%d by user=%d", salonID, userID)

	// Получаем салон для проверки прав доступа
	salon, err := s.salonClient.GetSalon(ctx, salonID)
	if err != nil {
		if errors.Is(err, salonClient.ErrSalonNotFound) {
			s.logger.Warn("GetAllBySalon: salon id=%d not found", salonID)
			return nil, ErrSalonNotFound
		}
		s.logger.Error("GetAllBySalon: failed to get salon id=%d: %v", salonID, err)
		return nil, fmt.Errorf("%w: failed to get salon: %v", ErrInternal, err)
	}

	// Проверяем права доступа (только владелец салона)
	if salon.OwnerUserID != userID {
		s.logger.Warn("GetAllBySalon: user=%d is not the owner of salon=%d", userID, salonID)
		return nil, ErrAccessDenied
	}

	configs, err := s.configRepo.GetAllBySalon(ctx, salonID)
	if err != nil {
		s.logger.Error("GetAllBySalon: repository error for salon=%d: %v", salonID, err)
		return nil, fmt.Errorf("%w: GetAllBySalon - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetAllBySalon: successfully fetched %d configs for salon=%d", len(configs), salonID)
	return models.FromDomainConfigList(configs), nil
}

// DeleteByKey удаляет конфигурацию по ключу (salon_id, service_id)
// Доступно только владельцу салона
func (s *Service) DeleteByKey(ctx context.Context, req *models.DeleteConfigRequest) error {
	s.logger.Info("DeleteByKey: deleting config for salon=%d, service=%v by user=%d",
		req.SalonID, req.ServiceID, req.UserID)

	// 1. Получаем салон для проверки прав доступа
	salon, err := s.salonClient.GetSalon(ctx, req.SalonID)
	if err != nil {
		if errors.Is(err, salonClient.ErrSalonNotFound) {
			s.logger.Warn("DeleteByKey: salon id=%d not found", req.SalonID)
			return ErrSalonNotFound
		}
		s.logger.Error("DeleteByKey: failed to get salon id=%d: %v", req.SalonID, err)
		return fmt.Errorf("%w: failed to get salon: %v", ErrInternal, err)
	}

	// 2. Проверяем права доступа (только владелец салона)
	if salon.OwnerUserID != req.UserID {
		s.logger.Warn("DeleteByKey: user=%d is not the owner of salon=%d", req.UserID, req.SalonID)
		return ErrAccessDenied
	}

	// 3. Находим конфигурацию по ключу
	config, err := s.configRepo.GetBySalonAndService(ctx, req.SalonID, req.ServiceID)
	if err != nil {
		if errors.Is(err, configRepo.ErrConfigNotFound) {
			s.logger.Warn("DeleteByKey: config not found for salon=%d, service=%v",
				req.SalonID, req.ServiceID)
			return ErrConfigNotFound
		}
		s.logger.Error("DeleteByKey: repository error: %v", err)
		return fmt.Errorf("%w: DeleteByKey - repository error: %v", ErrInternal, err)
	}

	// 4. Удаляем конфигурацию
	if err := s.configRepo.Delete(ctx, config.ID); err != nil {
		if errors.Is(err, configRepo.ErrConfigNotFound) {
			s.logger.Warn("DeleteByKey: config id=%d not found during deletion", config.ID)
			return ErrConfigNotFound
		}
		s.logger.Error("DeleteByKey: repository error for config id=%d: %v", config.ID, err)
		return fmt.Errorf("%w: DeleteByKey - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteByKey: successfully deleted config id=%d", config.ID)
	return nil
}

// Вспомогательные методы

// validateConfigData валидирует параметры конфигурации
func (s *Service) validateConfigData(slotInterval, seatCount, advanceDays, minNotice int) error {
	// Проверяем slotIntervalMinutes
	if slotInterval < domain.MinSlotIntervalMinutes || slotInterval > domain.MaxSlotIntervalMinutes {
		return fmt.Errorf("%w: slotIntervalMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinSlotIntervalMinutes, domain.MaxSlotIntervalMinutes)
	}

	// Проверяем seatCount
	if seatCount < domain.MinSeatCount || seatCount > domain.MaxSeatCount {
		return fmt.Errorf("%w: seatCount must be between %d and %d",
			ErrInvalidInput, domain.MinSeatCount, domain.MaxSeatCount)
	}

	// Проверяем advanceBookingDays
	if advanceDays < domain.MinAdvanceBookingDays || advanceDays > domain.MaxAdvanceBookingDays {
		return fmt.Errorf("%w: advanceBookingDays must be between %d and %d",
			ErrInvalidInput, domain.MinAdvanceBookingDays, domain.MaxAdvanceBookingDays)
	}

	// Проверяем minBookingNoticeMinutes
	if minNotice < domain.MinBookingNoticeMinutes || minNotice > domain.MaxBookingNoticeMinutes {
		return fmt.Errorf("%w: minBookingNoticeMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinBookingNoticeMinutes, domain.MaxBookingNoticeMinutes)
	}

	return nil
}

// defaultConfig возвращает дефолтную конфигурацию для салона без настроек
func (s *Service) defaultConfig(salonID int64) *domain.SalonSlotsConfig {
	return &domain.SalonSlotsConfig{
		SalonID:                 salonID,
		SlotIntervalMinutes:     domain.DefaultSlotIntervalMinutes,
		SeatCount:               domain.DefaultSeatCount,
		AdvanceBookingDays:      domain.DefaultAdvanceBookingDays,
		MinBookingNoticeMinutes: domain.DefaultMinBookingNoticeMinutes,
	}
}

// getConfigLevel возвращает строковое представление уровня конфигурации для логирования
func (s *Service) getConfigLevel(config *domain.SalonSlotsConfig) string {
	if config.IsServiceSpecific() {
		return "service"
	}
	return "salon-wide"
}
