package get_available_slots

import (
	"fmt"
	"time"

	"github.com/m04kA/Salon-BookingService/internal/domain"
	"github.com/m04kA/Salon-BookingService/internal/integrations/salonservice"
	"github.com/m04kA/Salon-BookingService/internal/schedule"
	"github.com/m04kA/Salon-BookingService/pkg/types"
)

// buildDayConfig собирает конфигурацию дня для вычислителя доступности
// из расписания работы салона и конфигурации слотов
func buildDayConfig(workingHours salonservice.DaySchedule, cfg *domain.SalonSlotsConfig) (schedule.DayConfig, error) {
	if !workingHours.IsOpen || workingHours.OpenTime == nil || workingHours.CloseTime == nil {
		return schedule.DayConfig{}, fmt.Errorf("salon is closed")
	}

	openTime, err := types.NewTimeStringFromString(*workingHours.OpenTime)
	if err != nil {
		return schedule.DayConfig{}, err
	}

	closeTime, err := types.NewTimeStringFromString(*workingHours.CloseTime)
	if err != nil {
		return schedule.DayConfig{}, err
	}

	return schedule.DayConfig{
		OpenTime:            openTime,
		CloseTime:           closeTime,
		SlotIntervalMinutes: cfg.SlotIntervalMinutes,
		SeatCount:           cfg.SeatCount,
	}, nil
}

// referenceTime вычисляет опорное время для генерации слотов.
//
// Для будущих дат опорное время - начало суток: первый кандидат - первая
// граница сетки строго после 00:00. Для сегодняшней даты - текущее время,
// сдвинутое на minBookingNoticeMinutes: слот "прямо сейчас" не предлагается
// никогда, граница сетки, совпадающая с опорным временем, пропускается.
//
// Второй результат false означает, что опорное время вышло за пределы суток
// и на этот день слотов уже нет.
func referenceTime(requestDate, now time.Time, minBookingNoticeMinutes int) (types.TimeString, bool) {
	if !isSameDay(requestDate, now) {
		return types.TimeString("00:00"), true
	}

	current := types.NewTimeString(now)
	shifted, err := current.AddMinutes(minBookingNoticeMinutes)
	if err != nil {
		// Опорное время за полночь - сегодня бронировать уже нечего
		return "", false
	}
	return shifted, true
}

// getWorkingHoursForDay возвращает расписание работы салона на указанный день недели
func getWorkingHoursForDay(salon *salonservice.Salon, date time.Time) salonservice.DaySchedule {
	weekday := date.Weekday()

	switch weekday {
	case time.Monday:
		return salon.WorkingHours.Monday
	case time.Tuesday:
		return salon.WorkingHours.Tuesday
	case time.Wednesday:
		return salon.WorkingHours.Wednesday
	case time.Thursday:
		return salon.WorkingHours.Thursday
	case time.Friday:
		return salon.WorkingHours.Friday
	case time.Saturday:
		return salon.WorkingHours.Saturday
	case time.Sunday:
		return salon.WorkingHours.Sunday
	default:
		return salonservice.DaySchedule{IsOpen: false}
	}
}

// toScheduleService конвертирует услугу SalonService в запись каталога вычислителя
func toScheduleService(svc *salonservice.Service) *schedule.Service {
	price := 0.0
	if svc.Price != nil {
		price = *svc.Price
	}
	return &schedule.Service{
		ID:              svc.ID,
		Name:            svc.Name,
		DurationMinutes: svc.DurationMinutes,
		Price:           price,
	}
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	// Обнуляем время, чтобы сравнивать только даты
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
