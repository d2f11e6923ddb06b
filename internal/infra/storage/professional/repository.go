package professional

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

const table = "professionals"

var columns = []string{
	"id",
	"business_id",
	"name",
	"is_active",
	"schedule",
	"exceptions",
	"created_at",
	"updated_at",
}

// Repository репозиторий специалистов. Расписание и исключения хранятся в JSONB.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория специалистов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает специалиста по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Professional, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	professional, err := scanProfessional(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProfessionalNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan professional: %v", ErrScanRow, err)
	}

	return professional, nil
}

// ListByBusiness получает всех специалистов бизнеса (включая неактивных) в порядке создания
func (r *Repository) ListByBusiness(ctx context.Context, businessID int64) ([]*domain.Professional, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"business_id": businessID}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByBusiness - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByBusiness - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	professionals := make([]*domain.Professional, 0)
	for rows.Next() {
		professional, err := scanProfessional(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByBusiness - scan row: %v", ErrScanRow, err)
		}
		professionals = append(professionals, professional)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByBusiness - rows error: %v", ErrScanRow, err)
	}

	return professionals, nil
}

// CountByBusiness возвращает количество специалистов бизнеса.
// Внутри транзакции строки блокируются, чтобы параллельное добавление ждало коммита.
func (r *Repository) CountByBusiness(ctx context.Context, businessID int64) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("id").
		From(table).
		Where(squirrel.Eq{"business_id": businessID})
	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := psqlbuilder.Select("COUNT(*)").
		FromSelect(selectBuilder, "p").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountByBusiness - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountByBusiness - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

// Create создает специалиста
func (r *Repository) Create(ctx context.Context, professional *domain.Professional) (*domain.Professional, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	schedule, err := marshalSchedule(professional.Schedule)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - schedule: %v", ErrMarshal, err)
	}
	exceptions, err := marshalExceptions(professional.Exceptions)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - exceptions: %v", ErrMarshal, err)
	}

	query, args, err := psqlbuilder.Insert(table).
		Columns("business_id", "name", "is_active", "schedule", "exceptions").
		Values(professional.BusinessID, professional.Name, professional.IsActive, schedule, exceptions).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&professional.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	professional.CreatedAt = createdAt.Time
	professional.UpdatedAt = updatedAt.Time

	return professional, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProfessional(row rowScanner) (*domain.Professional, error) {
	var professional domain.Professional
	var schedule, exceptions []byte
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&professional.ID,
		&professional.BusinessID,
		&professional.Name,
		&professional.IsActive,
		&schedule,
		&exceptions,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	professional.Schedule, err = unmarshalSchedule(schedule)
	if err != nil {
		return nil, fmt.Errorf("%w: schedule: %v", ErrMarshal, err)
	}
	professional.Exceptions, err = unmarshalExceptions(exceptions)
	if err != nil {
		return nil, fmt.Errorf("%w: exceptions: %v", ErrMarshal, err)
	}

	professional.CreatedAt = createdAt.Time
	professional.UpdatedAt = updatedAt.Time

	return &professional, nil
}
