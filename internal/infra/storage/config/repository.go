package config

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AvailabilityService/pkg/psqlbuilder"
)

const table = "business_slots_config"

var columns = []string{
	"id",
	"business_id",
	"professional_id",
	"step_minutes",
	"buffer_minutes",
	"lead_time_minutes",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с конфигурацией движка слотов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория конфигурации слотов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByBusinessAndProfessional получает конфигурацию ровно одного уровня:
// professionalID == nil - общая конфигурация бизнеса
func (r *Repository) GetByBusinessAndProfessional(ctx context.Context, businessID int64, professionalID *int64) (*domain.BusinessSlotsConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"business_id": businessID})

	if professionalID == nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"professional_id": nil})
	} else {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"professional_id": *professionalID})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBusinessAndProfessional - build select query: %v", ErrBuildQuery, err)
	}

	config, err := scanConfig(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrConfigNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBusinessAndProfessional - scan config: %v", ErrScanRow, err)
	}

	return config, nil
}

// GetConfigWithHierarchy получает конфигурацию с учетом приоритетов:
// 1. Конфигурация конкретного специалиста (businessID, professionalID)
// 2. Общая конфигурация бизнеса (businessID, NULL)
//
// Если не найдено ни на одном уровне, возвращает ErrConfigNotFound
func (r *Repository) GetConfigWithHierarchy(ctx context.Context, businessID int64, professionalID *int64) (*domain.BusinessSlotsConfig, error) {
	if professionalID != nil {
		config, err := r.GetByBusinessAndProfessional(ctx, businessID, professionalID)
		if err == nil {
			return config, nil
		}
		if !errors.Is(err, ErrConfigNotFound) {
			return nil, fmt.Errorf("%w: GetConfigWithHierarchy - level 1 (professional): %v", ErrExecQuery, err)
		}
	}

	config, err := r.GetByBusinessAndProfessional(ctx, businessID, nil)
	if err == nil {
		return config, nil
	}
	if !errors.Is(err, ErrConfigNotFound) {
		return nil, fmt.Errorf("%w: GetConfigWithHierarchy - level 2 (business): %v", ErrExecQuery, err)
	}

	return nil, ErrConfigNotFound
}

// Upsert создает или обновляет конфигурацию уровня (businessID, professionalID)
func (r *Repository) Upsert(ctx context.Context, config *domain.BusinessSlotsConfig) (*domain.BusinessSlotsConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"business_id",
			"professional_id",
			"step_minutes",
			"buffer_minutes",
			"lead_time_minutes",
		).
		Values(
			config.BusinessID,
			config.ProfessionalID,
			config.StepMinutes,
			config.BufferMinutes,
			config.LeadTimeMinutes,
		).
		// уникальный индекс по (business_id, COALESCE(professional_id, 0))
		Suffix(`ON CONFLICT (business_id, COALESCE(professional_id, 0)) DO UPDATE SET
			step_minutes = EXCLUDED.step_minutes,
			buffer_minutes = EXCLUDED.buffer_minutes,
			lead_time_minutes = EXCLUDED.lead_time_minutes,
			updated_at = NOW()
			RETURNING id, created_at, updated_at`).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&config.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}

	config.CreatedAt = createdAt.Time
	config.UpdatedAt = updatedAt.Time

	return config, nil
}

func scanConfig(row *sql.Row) (*domain.BusinessSlotsConfig, error) {
	var config domain.BusinessSlotsConfig
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&config.ID,
		&config.BusinessID,
		&config.ProfessionalID,
		&config.StepMinutes,
		&config.BufferMinutes,
		&config.LeadTimeMinutes,
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
