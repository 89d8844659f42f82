package schedule

import (
	"fmt"

	"github.com/m04kA/Salon-BookingService/internal/domain"
	"github.com/m04kA/Salon-BookingService/pkg/types"
)

// Engine чистый вычислитель доступности слотов.
// Не имеет состояния и побочных эффектов: повторный вызов с теми же
// каталогом и журналом дает тот же результат.
type Engine struct{}

// NewEngine создает новый вычислитель доступности
func NewEngine() *Engine {
	return &Engine{}
}

// ListAvailableSlots возвращает упорядоченный список доступных времен начала
// для услуги serviceID относительно опорного времени reference.
//
// Первый кандидат - reference, округленное ВВЕРХ до следующей границы сетки
// slot_interval_minutes (отсчет границ от 00:00). Если reference попадает ровно
// на границу, берется СЛЕДУЮЩАЯ граница: слот "прямо сейчас" не предлагается.
// Далее кандидаты идут с шагом сетки, пока не набрано maxResults слотов или
// конец кандидата не выходит за время закрытия (окончание ровно в закрытие
// допустимо). Кандидаты раньше открытия пропускаются.
//
// Слот доступен, если хотя бы одно кресло в [0, seat_count) свободно.
// maxResults <= 0 означает "без ограничения".
func (e *Engine) ListAvailableSlots(
	catalog Catalog,
	ledger *Ledger,
	serviceID int64,
	reference types.TimeString,
	maxResults int,
) ([]domain.AvailableSlot, error) {
	service, err := catalog.GetService(serviceID)
	if err != nil {
		return nil, err
	}

	cfg := catalog.Config()
	interval := cfg.SlotIntervalMinutes
	if interval <= 0 {
		return nil, fmt.Errorf("%w: slot interval must be positive", ErrInvalidSlot)
	}

	slots := make([]domain.AvailableSlot, 0)

	// Следующая граница сетки строго после reference
	candidate := nextGridBoundary(reference.Minutes(), interval)

	for {
		if maxResults > 0 && len(slots) >= maxResults {
			break
		}

		// Кандидаты до открытия пропускаем, сетка при этом остается привязанной к 00:00
		if candidate < cfg.OpenTime.Minutes() {
			candidate += interval
			continue
		}

		candidateEnd := candidate + service.DurationMinutes
		// Строгое сравнение: окончание ровно во время закрытия допустимо
		if candidateEnd > cfg.CloseTime.Minutes() {
			break
		}

		start, err := types.FromMinutes(candidate)
		if err != nil {
			break
		}
		end, err := types.FromMinutes(candidateEnd)
		if err != nil {
			break
		}

		free := e.countFreeSeats(ledger, cfg, start, end)
		if free > 0 {
			slots = append(slots, domain.AvailableSlot{
				StartTime:       start,
				DurationMinutes: service.DurationMinutes,
				AvailableSeats:  free,
				TotalSeats:      cfg.SeatCount,
			})
		}

		candidate += interval
	}

	return slots, nil
}

// FindAvailableSeat возвращает индекс первого свободного кресла для услуги
// serviceID на время start. Кресла перебираются в порядке 0..seat_count-1 -
// детерминированная упаковка бронирований в младшие кресла.
// Если свободных кресел нет, возвращает ErrNoSeatAvailable.
func (e *Engine) FindAvailableSeat(
	catalog Catalog,
	ledger *Ledger,
	serviceID int64,
	start types.TimeString,
) (int, error) {
	service, err := catalog.GetService(serviceID)
	if err != nil {
		return 0, err
	}

	end, err := start.AddMinutes(service.DurationMinutes)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidSlot, err)
	}

	cfg := catalog.Config()
	for seat := 0; seat < cfg.SeatCount; seat++ {
		if !ledger.Conflicts(start, end, seat) {
			return seat, nil
		}
	}

	return 0, ErrNoSeatAvailable
}

// ValidateSlot проверяет, что время начала лежит на сетке слотов и интервал
// услуги помещается в рабочие часы. Защищает от устаревшего состояния клиента.
func (e *Engine) ValidateSlot(catalog Catalog, serviceID int64, start types.TimeString) error {
	service, err := catalog.GetService(serviceID)
	if err != nil {
		return err
	}

	cfg := catalog.Config()
	startMin := start.Minutes()

	if cfg.SlotIntervalMinutes <= 0 || startMin%cfg.SlotIntervalMinutes != 0 {
		return fmt.Errorf("%w: start %s is not aligned to %d-minute grid",
			ErrInvalidSlot, start, cfg.SlotIntervalMinutes)
	}

	if startMin < cfg.OpenTime.Minutes() {
		return fmt.Errorf("%w: start %s is before opening time %s", ErrInvalidSlot, start, cfg.OpenTime)
	}

	if startMin+service.DurationMinutes > cfg.CloseTime.Minutes() {
		return fmt.Errorf("%w: service would end after closing time %s", ErrInvalidSlot, cfg.CloseTime)
	}

	return nil
}

// countFreeSeats подсчитывает свободные кресла для интервала [start, end)
func (e *Engine) countFreeSeats(ledger *Ledger, cfg DayConfig, start, end types.TimeString) int {
	free := 0
	for seat := 0; seat < cfg.SeatCount; seat++ {
		if !ledger.Conflicts(start, end, seat) {
			free++
		}
	}
	return free
}

// nextGridBoundary возвращает первую границу сетки СТРОГО после reference.
// Для reference ровно на границе возвращается следующая граница.
func nextGridBoundary(referenceMinutes, interval int) int {
	return (referenceMinutes/interval + 1) * interval
}
