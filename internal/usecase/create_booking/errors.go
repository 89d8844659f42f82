package create_booking

import "errors"

var (
	// ErrSalonNotFound возвращается, когда салон не найден
	ErrSalonNotFound = errors.New("create_booking: salon not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("create_booking: service not found")

	// ErrInvalidDate возвращается при некорректной дате бронирования
	ErrInvalidDate = errors.New("create_booking: invalid booking date")

	// ErrDateTooFarInFuture возвращается, когда дата превышает ограничение advanceBookingDays
	ErrDateTooFarInFuture = errors.New("create_booking: date is too far in the future")

	// ErrSalonClosed возвращается, когда салон закрыт в указанную дату
	ErrSalonClosed = errors.New("create_booking: salon is closed on this date")

	// ErrSeatUnavailable возвращается, когда запрошенное кресло занято на это время
	ErrSeatUnavailable = errors.New("create_booking: requested seat is unavailable")

	// ErrNoSeatAvailable возвращается, когда ни одно кресло не свободно на это время
	ErrNoSeatAvailable = errors.New("create_booking: no seat available for this slot")

	// ErrInvalidTimeSlot возвращается, когда время слота некорректно
	// (не на сетке slotInterval или вне рабочих часов)
	ErrInvalidTimeSlot = errors.New("create_booking: invalid time slot")

	// ErrInvalidSeat возвращается при индексе кресла вне диапазона [0, seat_count)
	ErrInvalidSeat = errors.New("create_booking: invalid seat index")

	// ErrTooLateToBook возвращается, когда попытка забронировать слот нарушает minBookingNoticeMinutes
	ErrTooLateToBook = errors.New("create_booking: too late to book this slot")

	// ErrSeatConflict возвращается, когда защитная проверка журнала обнаружила
	// конфликт, просочившийся мимо проверки доступности. Для клиента
	// неотличимо от ErrSeatUnavailable - "время занято, выберите другое".
	ErrSeatConflict = errors.New("create_booking: seat conflict detected at commit")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
