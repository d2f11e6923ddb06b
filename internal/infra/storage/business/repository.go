package business

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AvailabilityService/pkg/psqlbuilder"
)

var columns = []string{
	"id",
	"owner_id",
	"name",
	"address",
	"category",
	"plan",
	"created_at",
	"updated_at",
}

// Repository репозиторий бизнесов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бизнесов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает бизнес по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Business, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From("businesses").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	business, err := scanBusiness(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBusinessNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan business: %v", ErrScanRow, err)
	}

	return business, nil
}

// SearchByAddress ищет бизнесы по подстроке адреса без учета регистра.
// Пустой query возвращает все бизнесы. category фильтрует точным совпадением.
func (r *Repository) SearchByAddress(ctx context.Context, query string, category *string) ([]*domain.Business, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From("businesses").
		OrderBy("id ASC")

	if q := strings.TrimSpace(query); q != "" {
		selectBuilder = selectBuilder.Where(squirrel.ILike{"address": "%" + escapeLike(q) + "%"})
	}
	if category != nil && *category != "" {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"category": *category})
	}

	sqlQuery, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: SearchByAddress - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: SearchByAddress - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	businesses := make([]*domain.Business, 0)
	for rows.Next() {
		business, err := scanBusiness(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: SearchByAddress - scan row: %v", ErrScanRow, err)
		}
		businesses = append(businesses, business)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: SearchByAddress - rows error: %v", ErrScanRow, err)
	}

	return businesses, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBusiness(row rowScanner) (*domain.Business, error) {
	var business domain.Business
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&business.ID,
		&business.OwnerID,
		&business.Name,
		&business.Address,
		&business.Category,
		&business.Plan,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	business.CreatedAt = createdAt.Time
	business.UpdatedAt = updatedAt.Time

	return &business, nil
}
