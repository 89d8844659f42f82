package create_booking

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

// UseCase use case для создания бронирования.
// Единственный путь изменения журнала занятости: проверка доступности и
// вставка выполняются координатором schedule.Coordinator внутри
// сериализуемой транзакции с блокировкой строк дня (FOR UPDATE), поэтому
// два конкурентных запроса не могут занять одно кресло на одно время.
type UseCase struct {
	bookingRepo  BookingRepository
	configRepo   ConfigRepository
	salonClient  SalonServiceClient
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	configRepo ConfigRepository,
	salonClient SalonServiceClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		configRepo:   configRepo,
		salonClient:  salonClient,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: user=%d, salon=%d, service=%d, date=%s, time=%s",
		req.UserID, req.SalonID, req.ServiceID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем салон
	salon, err := uc.salonClient.GetSalon(ctx, req.SalonID)
	if err != nil {
		if errors.Is(err, salonClient.ErrSalonNotFound) {
			uc.logger.Warn("CreateBooking: salon id=%d not found", req.SalonID)
			return nil, ErrSalonNotFound
		}
		uc.logger.Error("CreateBooking: failed to get salon id=%d: %v", req.SalonID, err)
		return nil, fmt.Errorf("%w: failed to get salon: %v", ErrInternal, err)
	}

	// 4. Получаем услугу
	service, err := uc.salonClient.GetService(ctx, req.SalonID, req.ServiceID)
	if err != nil {
		if errors.Is(err, salonClient.ErrServiceNotFound) {
			uc.logger.Warn("CreateBooking: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateBooking: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	// Переменная для хранения результата
	var result *domain.Booking

	// 5. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 5.1. Получаем конфигурацию слотов с учетом иерархии
		config, err := uc.configRepo.GetConfigWithHierarchy(txCtx, req.SalonID, ptr.Ptr(req.ServiceID))
		if err != nil && !errors.Is(err, configRepo.ErrConfigNotFound) {
			uc.logger.Error("CreateBooking: failed to get config: %v", err)
			return fmt.Errorf("%w: failed to get config: %v", ErrInternal, err)
		}

		// Если конфигурация не найдена, используем дефолтные значения
		if config == nil {
			config = &domain.SalonSlotsConfig{
				SlotIntervalMinutes:     domain.DefaultSlotIntervalMinutes,
				SeatCount:               domain.DefaultSeatCount,
				AdvanceBookingDays:      domain.DefaultAdvanceBookingDays,
				MinBookingNoticeMinutes: domain.DefaultMinBookingNoticeMinutes,
			}
			uc.logger.Info("CreateBooking: using default config for salon=%d, service=%d",
				req.SalonID, req.ServiceID)
		} else {
			uc.logger.Info("CreateBooking: using config id=%d", config.ID)
		}

		// 5.2. Валидация даты с учетом конфигурации
		if err := validateDate(req.Date, now, config.AdvanceBookingDays); err != nil {
			uc.logger.Warn("CreateBooking: date validation failed: %v", err)
			return err
		}

		// 5.3. Получаем рабочие часы на указанную дату
		workingHours := getWorkingHoursForDay(salon, req.Date)
		if !workingHours.IsOpen {
			uc.logger.Warn("CreateBooking: salon is closed on %s", req.Date.Format(domain.DateFormat))
			return ErrSalonClosed
		}

		dayConfig, err := buildDayConfig(workingHours, config)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to build day config: %v", err)
			return fmt.Errorf("%w: failed to build day config: %v", ErrInternal, err)
		}

		// 5.4. Валидация времени бронирования (minBookingNoticeMinutes)
		if err := validateBookingTime(req.Date, req.StartTime, now, config.MinBookingNoticeMinutes); err != nil {
			uc.logger.Warn("CreateBooking: booking time validation failed: %v", err)
			return err
		}

		// 5.5. Получаем все активные бронирования на эту дату с блокировкой (FOR UPDATE)
		filter := domain.SalonBookingsFilter{
			SalonID:         req.SalonID,
			StartDate:       &req.Date,
			EndDate:         &req.Date,
			IncludeInactive: false, // Только активные бронирования
		}

		bookings, err := uc.bookingRepo.GetBySalonWithFilter(txCtx, filter)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}

		// 5.6. Восстанавливаем журнал занятости и подтверждаем бронирование
		// через координатор (повторная проверка слота + назначение кресла)
		ledger, err := schedule.NewLedgerFromBookings(config.SeatCount, bookings)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to restore ledger: %v", err)
			return fmt.Errorf("%w: failed to restore ledger: %v", ErrInternal, err)
		}

		catalog := schedule.NewStaticCatalog([]*schedule.Service{toScheduleService(service)}, dayConfig)
		coordinator := schedule.NewCoordinator(catalog, ledger)

		booking, err := coordinator.Confirm(schedule.ConfirmRequest{
			UserID:        req.UserID,
			SalonID:       req.SalonID,
			ServiceID:     req.ServiceID,
			Date:          req.Date,
			StartTime:     req.StartTime,
			PreferredSeat: req.PreferredSeat,
			Notes:         req.Notes,
		})
		if err != nil {
			return uc.mapConfirmError(err, req)
		}

		uc.logger.Info("CreateBooking: seat %d assigned for salon=%d at %s",
			booking.SeatIndex, req.SalonID, req.StartTime)

		// 5.7. Сохраняем бронирование (ID назначает последовательность БД)
		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d, seat=%d", result.ID, result.SeatIndex)

	// Конвертируем в response
	return &Response{
		ID:              result.ID,
		UserID:          result.UserID,
		SalonID:         result.SalonID,
		ServiceID:       result.ServiceID,
		SeatIndex:       result.SeatIndex,
		BookingDate:     result.BookingDate,
		StartTime:       result.StartTime,
		DurationMinutes: result.DurationMinutes,
		Status:          string(result.Status),
		ServiceName:     result.ServiceName,
		ServicePrice:    result.ServicePrice,
		Notes:           result.Notes,
		CreatedAt:       result.CreatedAt,
		UpdatedAt:       result.UpdatedAt,
	}, nil
}

// mapConfirmError транслирует ошибки координатора в ошибки usecase
func (uc *UseCase) mapConfirmError(err error, req *Request) error {
	switch {
	case errors.Is(err, schedule.ErrSeatUnavailable):
		uc.logger.Warn("CreateBooking: seat %v unavailable for salon=%d at %s",
			req.PreferredSeat, req.SalonID, req.StartTime)
		return ErrSeatUnavailable

	case errors.Is(err, schedule.ErrNoSeatAvailable):
		uc.logger.Warn("CreateBooking: no seat available for salon=%d at %s", req.SalonID, req.StartTime)
		return ErrNoSeatAvailable

	case errors.Is(err, schedule.ErrInvalidSlot):
		uc.logger.Warn("CreateBooking: invalid slot for salon=%d at %s: %v", req.SalonID, req.StartTime, err)
		return ErrInvalidTimeSlot

	case errors.Is(err, schedule.ErrInvalidSeatIndex):
		uc.logger.Warn("CreateBooking: invalid seat index %v for salon=%d", req.PreferredSeat, req.SalonID)
		return ErrInvalidSeat

	case errors.Is(err, schedule.ErrSeatConflict):
		// Защитная проверка журнала сработала - гонка прошла мимо
		// проверки доступности. Фиксация отменяется, клиент начинает заново.
		uc.logger.Error("CreateBooking: seat conflict at commit for salon=%d at %s: %v",
			req.SalonID, req.StartTime, err)
		return ErrSeatConflict

	case errors.Is(err, schedule.ErrServiceNotFound):
		return ErrServiceNotFound

	default:
		uc.logger.Error("CreateBooking: confirm failed for salon=%d: %v", req.SalonID, err)
		return fmt.Errorf("%w: confirm failed: %v", ErrInternal, err)
	}
}
