package blocked

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AvailabilityService/pkg/psqlbuilder"
)

// Repository репозиторий ручных блокировок календаря специалиста
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория блокировок
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListByProfessionalAndDate получает блокировки специалиста на дату, отсортированные по началу
func (r *Repository) ListByProfessionalAndDate(ctx context.Context, professionalID int64, date time.Time) ([]*domain.BlockedRange, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"professional_id",
		"blocked_date",
		"start_time",
		"end_time",
		"reason",
		"created_at",
	).
		From("blocked_ranges").
		Where(squirrel.Eq{
			"professional_id": professionalID,
			"blocked_date":    date.Format(domain.DateFormat),
		}).
		OrderBy("start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByProfessionalAndDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByProfessionalAndDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	blocks := make([]*domain.BlockedRange, 0)
	for rows.Next() {
		var block domain.BlockedRange
		var createdAt sql.NullTime

		err := rows.Scan(
			&block.ID,
			&block.ProfessionalID,
			&block.Date,
			&block.StartTime,
			&block.EndTime,
			&block.Reason,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByProfessionalAndDate - scan row: %v", ErrScanRow, err)
		}

		block.CreatedAt = createdAt.Time
		blocks = append(blocks, &block)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByProfessionalAndDate - rows error: %v", ErrScanRow, err)
	}

	return blocks, nil
}
