package schedule

import (
	"fmt"
	"sync"
	"time"

	"github.com/m04kA/Salon-BookingService/internal/domain"
	"github.com/m04kA/Salon-BookingService/pkg/types"
)

// ConfirmRequest запрос на подтверждение бронирования
type ConfirmRequest struct {
	UserID    int64
	SalonID   int64
	ServiceID int64
	Date      time.Time
	StartTime types.TimeString
	// PreferredSeat конкретное кресло, если клиент его выбрал.
	// nil - кресло назначает координатор (первое свободное).
	PreferredSeat *int
	Notes         *string
}

// Coordinator единственный компонент, мутирующий Ledger.
// Превращает выбранный слот в подтвержденное бронирование: повторно
// проверяет доступность в момент фиксации и назначает конкретное кресло.
//
// Проверка-затем-вставка сериализована собственным мьютексом координатора,
// поэтому единственный переход состояния (нет бронирования -> забронировано)
// линеаризуем и инвариант непересечения не нарушается при конкурентных вызовах.
type Coordinator struct {
	catalog Catalog
	ledger  *Ledger
	engine  *Engine

	mu     sync.Mutex
	nextID int64
}

// NewCoordinator создает координатор поверх каталога и журнала.
// Счетчик ID затравливается максимальным ID восстановленного журнала.
func NewCoordinator(catalog Catalog, ledger *Ledger) *Coordinator {
	return &Coordinator{
		catalog: catalog,
		ledger:  ledger,
		engine:  NewEngine(),
		nextID:  ledger.MaxID() + 1,
	}
}

// Confirm подтверждает бронирование слота.
//
// Повторно валидирует время начала (сетка и рабочие часы - защита от
// устаревшего состояния клиента), проверяет кресло и вставляет бронирование
// в журнал. Возвращает:
//   - ErrSeatUnavailable, если запрошенное кресло конфликтует;
//   - ErrNoSeatAvailable, если ни одно кресло не свободно;
//   - ErrSeatConflict, если защитная проверка Insert обнаружила гонку.
func (c *Coordinator) Confirm(req ConfirmRequest) (*domain.Booking, error) {
	service, err := c.catalog.GetService(req.ServiceID)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.engine.ValidateSlot(c.catalog, req.ServiceID, req.StartTime); err != nil {
		return nil, err
	}

	var seat int
	if req.PreferredSeat != nil {
		seat = *req.PreferredSeat
		cfg := c.catalog.Config()
		if seat < 0 || seat >= cfg.SeatCount {
			return nil, fmt.Errorf("%w: seat %d, seat_count %d", ErrInvalidSeatIndex, seat, cfg.SeatCount)
		}
		end, err := req.StartTime.AddMinutes(service.DurationMinutes)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidSlot, err)
		}
		if c.ledger.Conflicts(req.StartTime, end, seat) {
			return nil, fmt.Errorf("%w: seat %d at %s", ErrSeatUnavailable, seat, req.StartTime)
		}
	} else {
		seat, err = c.engine.FindAvailableSeat(c.catalog, c.ledger, req.ServiceID, req.StartTime)
		if err != nil {
			return nil, err
		}
	}

	booking := &domain.Booking{
		ID:              c.nextID,
		UserID:          req.UserID,
		SalonID:         req.SalonID,
		ServiceID:       req.ServiceID,
		SeatIndex:       seat,
		BookingDate:     req.Date,
		StartTime:       req.StartTime,
		DurationMinutes: service.DurationMinutes,
		Status:          domain.StatusConfirmed,
		ServiceName:     service.Name,
		ServicePrice:    service.Price,
		Notes:           req.Notes,
	}

	if err := c.ledger.Insert(booking); err != nil {
		return nil, err
	}

	c.nextID++
	return booking, nil
}

// Cancel удаляет бронирование из журнала.
// Гарантирует только контракт журнала; побочные эффекты отмены
// (уведомления, возвраты) - ответственность вызывающего.
func (c *Coordinator) Cancel(bookingID int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ledger.Remove(bookingID)
}
