package schedule

import (
	"fmt"
	"sort"
	"sync"

	"github.com/m04kA/Salon-BookingService/internal/domain"
	"github.com/m04kA/Salon-BookingService/pkg/types"
)

// Ledger авторитетный журнал подтвержденных бронирований одного салоно-дня.
// Инвариант: для любых двух бронирований на одном кресле полуоткрытые
// интервалы [start, end) не пересекаются. Между креслами инвариантов нет.
//
// Все операции сериализованы мьютексом, поэтому Ledger можно безопасно
// использовать из нескольких горутин. В HTTP-пути сервиса журнал
// восстанавливается из строк БД внутри сериализуемой транзакции, и
// защитная проверка Insert остаётся последним рубежом против гонок.
type Ledger struct {
	mu        sync.Mutex
	seatCount int
	bookings  map[int64]*domain.Booking
}

// NewLedger создает пустой журнал на день для салона с seatCount креслами
func NewLedger(seatCount int) *Ledger {
	return &Ledger{
		seatCount: seatCount,
		bookings:  make(map[int64]*domain.Booking),
	}
}

// NewLedgerFromBookings восстанавливает журнал из сохраненных бронирований.
// Неактивные бронирования (отмененные, no-show) кресла не занимают и пропускаются.
// Возвращает ошибку, если сохраненные данные сами нарушают инвариант -
// такое состояние чинится руками, а не молча.
func NewLedgerFromBookings(seatCount int, bookings []*domain.Booking) (*Ledger, error) {
	l := NewLedger(seatCount)
	for _, b := range bookings {
		if !b.IsActive() {
			continue
		}
		if err := l.Insert(b); err != nil {
			return nil, fmt.Errorf("restore booking id=%d: %w", b.ID, err)
		}
	}
	return l, nil
}

// SeatCount возвращает количество кресел
func (l *Ledger) SeatCount() int {
	return l.seatCount
}

// Len возвращает количество бронирований в журнале
func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.bookings)
}

// Conflicts возвращает true, если на кресле seatIndex есть бронирование,
// пересекающееся с полуоткрытым интервалом [start, end).
// Тест пересечения со строгими неравенствами: existing.start < end AND existing.end > start.
// Бронирование, заканчивающееся ровно в start, конфликтом НЕ является.
func (l *Ledger) Conflicts(start, end types.TimeString, seatIndex int) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.conflictsLocked(start, end, seatIndex)
}

func (l *Ledger) conflictsLocked(start, end types.TimeString, seatIndex int) bool {
	for _, b := range l.bookings {
		if b.SeatIndex != seatIndex {
			continue
		}
		bookingEnd, err := b.EndTime()
		if err != nil {
			// Конец интервала не вычислим только для испорченной записи - пропускаем
			continue
		}
		if b.StartTime.IsBefore(end) && bookingEnd.IsAfter(start) {
			return true
		}
	}
	return false
}

// Insert добавляет бронирование в журнал.
// Вызывающий (Coordinator) обязан заранее проверить отсутствие конфликта;
// здесь проверка повторяется защитно и при нарушении инварианта
// возвращается ErrSeatConflict.
func (l *Ledger) Insert(booking *domain.Booking) error {
	if booking.SeatIndex < 0 || booking.SeatIndex >= l.seatCount {
		return fmt.Errorf("%w: seat %d, seat_count %d", ErrInvalidSeatIndex, booking.SeatIndex, l.seatCount)
	}

	end, err := booking.EndTime()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSlot, err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.conflictsLocked(booking.StartTime, end, booking.SeatIndex) {
		return fmt.Errorf("%w: seat %d at %s", ErrSeatConflict, booking.SeatIndex, booking.StartTime)
	}

	l.bookings[booking.ID] = booking
	return nil
}

// Remove удаляет бронирование из журнала.
// Возвращает ErrBookingNotFound, если бронирования нет.
func (l *Ledger) Remove(bookingID int64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.bookings[bookingID]; !ok {
		return fmt.Errorf("%w: id=%d", ErrBookingNotFound, bookingID)
	}
	delete(l.bookings, bookingID)
	return nil
}

// Get возвращает бронирование по ID или ErrBookingNotFound
func (l *Ledger) Get(bookingID int64) (*domain.Booking, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.bookings[bookingID]
	if !ok {
		return nil, fmt.Errorf("%w: id=%d", ErrBookingNotFound, bookingID)
	}
	return b, nil
}

// BookingsForSeat возвращает бронирования кресла, упорядоченные по времени начала.
// Используется для отображения и отладки, не для горячего пути.
func (l *Ledger) BookingsForSeat(seatIndex int) []*domain.Booking {
	l.mu.Lock()
	defer l.mu.Unlock()

	result := make([]*domain.Booking, 0)
	for _, b := range l.bookings {
		if b.SeatIndex == seatIndex {
			result = append(result, b)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].StartTime.IsBefore(result[j].StartTime)
	})
	return result
}

// MaxID возвращает максимальный ID бронирования в журнале (0 для пустого).
// Координатор использует его для затравки монотонного счетчика ID.
func (l *Ledger) MaxID() int64 {
	l.mu.Lock()
	defer l.mu.Unlock()

	var max int64
	for id := range l.bookings {
		if id > max {
			max = id
		}
	}
	return max
}
