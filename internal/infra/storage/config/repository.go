package config

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/Salon-BookingService/internal/domain"
	"github.com/m04kA/Salon-BookingService/pkg/dbmetrics"
	"github.com/m04kA/Salon-BookingService/pkg/psqlbuilder"
)

// DBExecutor интерфейс исполнителя запросов к БД
type DBExecutor = dbmetrics.DBExecutor

// configColumns полный список колонок таблицы salon_slots_config
var configColumns = []string{
	"id",
	"salon_id",
	"service_id",
	"slot_interval_minutes",
	"seat_count",
	"advance_booking_days",
	"min_booking_notice_minutes",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с конфигурацией слотов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория конфигурации слотов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetBySalonAndService получает конфигурацию для салона и услуги.
// serviceID == nil означает общесалонную конфигурацию.
func (r *Repository) GetBySalonAndService(ctx context.Context, salonID int64, serviceID *int64) (*domain.SalonSlotsConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(configColumns...).
		From("salon_slots_config").
		Where(squirrel.Eq{"salon_id": salonID})

	// Фильтрация по service_id (NULL или конкретное значение)
	if serviceID == nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"service_id": nil})
	} else {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"service_id": *serviceID})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetBySalonAndService - build select query: %v", ErrBuildQuery, err)
	}

	config, err := r.scanConfig(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrConfigNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetBySalonAndService - scan config: %v", ErrScanRow, err)
	}

	return config, nil
}

// GetConfigWithHierarchy получает конфигурацию с учетом иерархии приоритетов.
// Приоритет применения конфигурации:
// 1. Конфигурация для конкретной услуги (salon_id, service_id)
// 2. Общесалонная конфигурация (salon_id, NULL)
//
// Если конфигурация не найдена ни на одном уровне, возвращает ErrConfigNotFound
func (r *Repository) GetConfigWithHierarchy(ctx context.Context, salonID int64, serviceID *int64) (*domain.SalonSlotsConfig, error) {
	// 1. Пробуем получить конфигурацию для конкретной услуги (если услуга указана)
	if serviceID != nil {
		config, err := r.GetBySalonAndService(ctx, salonID, serviceID)
		if err == nil {
			return config, nil
		}
		if err != ErrConfigNotFound {
			return nil, fmt.Errorf("%w: GetConfigWithHierarchy - level 1 (service): %v", ErrExecQuery, err)
		}
	}

	// 2. Пробуем получить общесалонную конфигурацию
	config, err := r.GetBySalonAndService(ctx, salonID, nil)
	if err == nil {
		return config, nil
	}
	if err != ErrConfigNotFound {
		return nil, fmt.Errorf("%w: GetConfigWithHierarchy - level 2 (salon-wide): %v", ErrExecQuery, err)
	}

	// Если конфигурация не найдена ни на одном уровне
	return nil, ErrConfigNotFound
}

// GetAllBySalon получает все конфигурации салона (общесалонную и для услуг)
func (r *Repository) GetAllBySalon(ctx context.Context, salonID int64) ([]*domain.SalonSlotsConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(configColumns...).
		From("salon_slots_config").
		Where(squirrel.Eq{"salon_id": salonID}).
		OrderBy("service_id ASC NULLS FIRST"). // Общесалонная конфигурация первой
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetAllBySalon - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetAllBySalon - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	configs := make([]*domain.SalonSlotsConfig, 0)

	for rows.Next() {
		config, err := r.scanConfig(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetAllBySalon - scan row: %v", ErrScanRow, err)
		}
		configs = append(configs, config)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetAllBySalon - rows error: %v", ErrScanRow, err)
	}

	return configs, nil
}

// Upsert создает или обновляет конфигурацию для салона и услуги.
// Уникальность пары (salon_id, service_id) обеспечивается индексом в БД.
func (r *Repository) Upsert(ctx context.Context, config *domain.SalonSlotsConfig) (*domain.SalonSlotsConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("salon_slots_config").
		Columns(
			"salon_id",
			"service_id",
			"slot_interval_minutes",
			"seat_count",
			"advance_booking_days",
			"min_booking_notice_minutes",
		).
		Values(
			config.SalonID,
			config.ServiceID,
			config.SlotIntervalMinutes,
			config.SeatCount,
			config.AdvanceBookingDays,
			config.MinBookingNoticeMinutes,
		).
		Suffix(`ON CONFLICT (salon_id, COALESCE(service_id, 0)) DO UPDATE SET
			slot_interval_minutes = EXCLUDED.slot_interval_minutes,
			seat_count = EXCLUDED.seat_count,
			advance_booking_days = EXCLUDED.advance_booking_days,
			min_booking_notice_minutes = EXCLUDED.min_booking_notice_minutes,
			updated_at = NOW()
		RETURNING id, created_at, updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build upsert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&config.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute upsert: %v", ErrExecQuery, err)
	}

	config.CreatedAt = createdAt.Time
	config.UpdatedAt = updatedAt.Time

	return config, nil
}

// Delete удаляет конфигурацию по ID
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("salon_slots_config").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrConfigNotFound
	}

	return nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanConfig сканирует одну строку в конфигурацию
func (r *Repository) scanConfig(row rowScanner) (*domain.SalonSlotsConfig, error) {
	var config domain.SalonSlotsConfig
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&config.ID,
		&config.SalonID,
		&config.ServiceID,
		&config.SlotIntervalMinutes,
		&config.SeatCount,
		&config.AdvanceBookingDays,
		&config.MinBookingNoticeMinutes,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	config.CreatedAt = createdAt.Time
	config.UpdatedAt = updatedAt.Time

	return &config, nil
}
