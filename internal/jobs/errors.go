package jobs

import "errors"

var (
	// ErrEmptyJobName возвращается при регистрации задачи без имени
	ErrEmptyJobName = errors.New("jobs: job name is required")

	// ErrInvalidSchedule возвращается при некорректном cron выражении
	ErrInvalidSchedule = errors.New("jobs: invalid cron expression")

	// ErrJobFailed возвращается при ошибке выполнения задачи
	ErrJobFailed = errors.New("jobs: job failed")
)
