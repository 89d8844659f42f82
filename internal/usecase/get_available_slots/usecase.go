package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/Salon-BookingService/internal/domain"
	configRepo "github.com/m04kA/Salon-BookingService/internal/infra/storage/config"
	salonClient "github.com/m04kA/Salon-BookingService/internal/integrations/salonservice"
	"github.com/m04kA/Salon-BookingService/internal/schedule"
	"github.com/m04kA/Salon-BookingService/pkg/ptr"
)

// UseCase use case для получения доступных слотов для бронирования.
// Оркестрирует загрузку каталога (SalonService + конфигурация слотов),
// восстановление журнала занятости кресел из БД и чистый вычислитель
// доступности schedule.Engine.
type UseCase struct {
	bookingRepo  BookingRepository
	configRepo   ConfigRepository
	salonClient  SalonServiceClient
	engine       *schedule.Engine
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	configRepo ConfigRepository,
	salonClient SalonServiceClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		configRepo:   configRepo,
		salonClient:  salonClient,
		engine:       schedule.NewEngine(),
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения доступных слотов.
// Запрос не мутирует состояние: повторный вызов без промежуточных
// бронирований возвращает идентичный результат.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: user=%d, salon=%d, service=%d, date=%s",
		req.UserID, req.SalonID, req.ServiceID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем салон
	salon, err := uc.salonClient.GetSalon(ctx, req.SalonID)
	if err != nil {
		if errors.Is(err, salonClient.ErrSalonNotFound) {
			uc.logger.Warn("GetAvailableSlots: salon id=%d not found", req.SalonID)
			return nil, ErrSalonNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get salon id=%d: %v", req.SalonID, err)
		return nil, fmt.Errorf("%w: failed to get salon: %v", ErrInternal, err)
	}

	// 4. Получаем услугу
	service, err := uc.salonClient.GetService(ctx, req.SalonID, req.ServiceID)
	if err != nil {
		if errors.Is(err, salonClient.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailableSlots: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	// 5. Получаем конфигурацию слотов с учетом иерархии
	config, err := uc.configRepo.GetConfigWithHierarchy(ctx, req.SalonID, ptr.Ptr(req.ServiceID))
	if err != nil && !errors.Is(err, configRepo.ErrConfigNotFound) {
		uc.logger.Error("GetAvailableSlots: failed to get config: %v", err)
		return nil, fmt.Errorf("%w: failed to get config: %v", ErrInternal, err)
	}

	// Если конфигурация не найдена, используем дефолтные значения
	if config == nil {
		config = &domain.SalonSlotsConfig{
			SlotIntervalMinutes:     domain.DefaultSlotIntervalMinutes,
			SeatCount:               domain.DefaultSeatCount,
			AdvanceBookingDays:      domain.DefaultAdvanceBookingDays,
			MinBookingNoticeMinutes: domain.DefaultMinBookingNoticeMinutes,
		}
		uc.logger.Info("GetAvailableSlots: using default config for salon=%d, service=%d",
			req.SalonID, req.ServiceID)
	} else {
		uc.logger.Info("GetAvailableSlots: using config id=%d", config.ID)
	}

	// 6. Валидация даты с учетом конфигурации
	if err := validateDate(req.Date, now, config.AdvanceBookingDays); err != nil {
		uc.logger.Warn("GetAvailableSlots: date validation failed: %v", err)
		return nil, err
	}

	emptyResponse := &Response{
		Date:      req.Date,
		SalonID:   req.SalonID,
		ServiceID: req.ServiceID,
		SeatCount: config.SeatCount,
		Slots:     []Slot{},
	}

	// 7. Получаем рабочие часы на указанную дату
	workingHours := getWorkingHoursForDay(salon, req.Date)
	if !workingHours.IsOpen {
		uc.logger.Info("GetAvailableSlots: salon is closed on %s", req.Date.Format(domain.DateFormat))
		return emptyResponse, nil
	}

	dayConfig, err := buildDayConfig(workingHours, config)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to build day config: %v", err)
		return nil, fmt.Errorf("%w: failed to build day config: %v", ErrInternal, err)
	}

	// 8. Вычисляем опорное время (для сегодняшней даты - текущее время + notice)
	reference, ok := referenceTime(req.Date, now, config.MinBookingNoticeMinutes)
	if !ok {
		uc.logger.Info("GetAvailableSlots: reference time past midnight, no slots for %s",
			req.Date.Format(domain.DateFormat))
		return emptyResponse, nil
	}

	// 9. Получаем все активные бронирования на эту дату
	filter := domain.SalonBookingsFilter{
		SalonID:         req.SalonID,
		StartDate:       &req.Date,
		EndDate:         &req.Date,
		IncludeInactive: false, // Только активные бронирования
	}

	bookings, err := uc.bookingRepo.GetBySalonWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 10. Восстанавливаем журнал занятости кресел
	ledger, err := schedule.NewLedgerFromBookings(config.SeatCount, bookings)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to restore ledger: %v", err)
		return nil, fmt.Errorf("%w: failed to restore ledger: %v", ErrInternal, err)
	}

	// 11. Вычисляем доступные слоты
	catalog := schedule.NewStaticCatalog([]*schedule.Service{toScheduleService(service)}, dayConfig)
	availableSlots, err := uc.engine.ListAvailableSlots(catalog, ledger, req.ServiceID, reference, req.Limit)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to list slots: %v", err)
		return nil, fmt.Errorf("%w: failed to list slots: %v", ErrInternal, err)
	}

	slots := make([]Slot, len(availableSlots))
	for i, s := range availableSlots {
		slots[i] = Slot{
			StartTime:       s.StartTime,
			DurationMinutes: s.DurationMinutes,
			AvailableSeats:  s.AvailableSeats,
			TotalSeats:      s.TotalSeats,
		}
	}

	uc.logger.Info("GetAvailableSlots: %d available slots for salon=%d, service=%d, date=%s",
		len(slots), req.SalonID, req.ServiceID, req.Date.Format(domain.DateFormat))

	return &Response{
		Date:      req.Date,
		SalonID:   req.SalonID,
		ServiceID: req.ServiceID,
		SeatCount: config.SeatCount,
		Slots:     slots,
	}, nil
}
