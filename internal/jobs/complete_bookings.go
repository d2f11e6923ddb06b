package jobs

import (
	"context"
	"fmt"
)

// CompleteBookingsJobName имя задачи закрытия бронирований
const CompleteBookingsJobName = "complete_finished_bookings"

// CompleteFinishedBookings переводит подтвержденные бронирования,
// время окончания которых прошло, в статус completed
type CompleteFinishedBookings struct {
	repo         BookingCompleter
	timeProvider TimeProvider
	logger       Logger
}

// NewCompleteFinishedBookings создает задачу закрытия бронирований
func NewCompleteFinishedBookings(repo BookingCompleter, logger Logger) *CompleteFinishedBookings {
	return &CompleteFinishedBookings{
		repo:         repo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени (для тестов)
func (j *CompleteFinishedBookings) WithTimeProvider(tp TimeProvider) *CompleteFinishedBookings {
	j.timeProvider = tp
	return j
}

// Run выполняет задачу и возвращает количество закрытых бронирований
func (j *CompleteFinishedBookings) Run(ctx context.Context) (int64, error) {
	now := j.timeProvider.Now()

	count, err := j.repo.CompleteFinished(ctx, now)
	if err != nil {
		j.logger.Error("CompleteFinishedBookings: failed at %s: %v", now.Format("2006-01-02 15:04"), err)
		return 0, fmt.Errorf("%w: %s: %v", ErrJobFailed, CompleteBookingsJobName, err)
	}

	if count == 0 {
		j.logger.Debug("CompleteFinishedBookings: nothing to complete")
		return 0, nil
	}

	j.logger.Info("CompleteFinishedBookings: %d bookings marked as completed", count)
	return count, nil
}
