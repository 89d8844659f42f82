package schedule

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена в каталоге
	ErrServiceNotFound = errors.New("schedule: service not found")

	// ErrBookingNotFound возвращается, когда бронирование не найдено в журнале
	ErrBookingNotFound = errors.New("schedule: booking not found")

	// ErrInvalidSeatIndex возвращается при индексе кресла вне диапазона [0, seat_count)
	ErrInvalidSeatIndex = errors.New("schedule: seat index out of range")

	// ErrSeatUnavailable возвращается, когда запрошенное кресло занято на это время
	ErrSeatUnavailable = errors.New("schedule: requested seat is unavailable")

	// ErrNoSeatAvailable возвращается, когда ни одно кресло не свободно на это время
	ErrNoSeatAvailable = errors.New("schedule: no seat available")

	// ErrInvalidSlot возвращается, когда время начала не лежит на сетке слотов
	// или интервал услуги не помещается в рабочие часы
	ErrInvalidSlot = errors.New("schedule: invalid time slot")

	// ErrSeatConflict возвращается защитной проверкой Ledger.Insert, если
	// вставка нарушила бы инвариант непересечения интервалов на кресле.
	// Означает, что проверка доступности и вставка не были сериализованы.
	ErrSeatConflict = errors.New("schedule: seat conflict, no-overlap invariant would be violated")
)
