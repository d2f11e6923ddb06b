package booking

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

type recordingExecutor struct {
	query string
	args  []interface{}
	err   error
}

func (e *recordingExecutor) ExecContext(_ context.Context, query string, args ...interface{}) (sql.Result, error) {
	e.query = query
	e.args = args
	if e.err != nil {
		return nil, e.err
	}
	return driver.RowsAffected(2), nil
}

func (e *recordingExecutor) QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error) {
	return nil, errors.New("not supported")
}

func (e *recordingExecutor) QueryRowContext(context.Context, string, ...interface{}) *sql.Row {
	return nil
}

func TestCompleteFinished(t *testing.T) {
	exec := &recordingExecutor{}
	repo := NewRepository(exec)
	now := time.Date(2030, time.March, 4, 18, 30, 0, 0, time.UTC)

	count, err := repo.CompleteFinished(context.Background(), now)

	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
	assert.Contains(t, exec.query, "UPDATE bookings SET status = $1")
	assert.Contains(t, exec.query, "WHERE status = $2")
	assert.Contains(t, exec.query, "end_time <= $5")
	assert.NotContains(t, exec.query, "ANY")
	assert.Equal(t, []interface{}{
		domain.StatusCompleted,
		domain.StatusConfirmed,
		"2030-03-04",
		"2030-03-04",
		"18:30",
	}, exec.args)
}

func TestCompleteFinished_ExecError(t *testing.T) {
	repo := NewRepository(&recordingExecutor{err: errors.New("connection reset")})

	_, err := repo.CompleteFinished(context.Background(), time.Now())

	assert.ErrorIs(t, err, ErrExecQuery)
}
