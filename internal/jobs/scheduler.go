package jobs

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
)

// Scheduler планировщик фоновых задач поверх robfig/cron.
// Запуск одной задачи не пересекается с ее предыдущим запуском.
type Scheduler struct {
	cron   *cron.Cron
	logger Logger
}

// NewScheduler создает планировщик. Время расписания - в location.
func NewScheduler(location *time.Location, logger Logger) *Scheduler {
	if location == nil {
		location = time.UTC
	}

	return &Scheduler{
		cron: cron.New(
			cron.WithLocation(location),
			cron.WithChain(cron.Recover(cron.DefaultLogger), cron.SkipIfStillRunning(cron.DiscardLogger)),
		),
		logger: logger,
	}
}

// AddJob регистрирует задачу по cron выражению (5 полей или дескриптор вида @every 5m).
// Каждый запуск получает контекст с таймаутом timeout.
func (s *Scheduler) AddJob(name, spec string, timeout time.Duration, task func(ctx context.Context) error) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyJobName
	}

	_, err := s.cron.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		started := time.Now()
		if err := task(ctx); err != nil {
			s.logger.Error("Scheduler: job %s failed after %s: %v", name, time.Since(started), err)
			return
		}
		s.logger.Info("Scheduler: job %s finished in %s", name, time.Since(started))
	})
	if err != nil {
		return fmt.Errorf("%w: %s %q: %v", ErrInvalidSchedule, name, spec, err)
	}

	s.logger.Info("Scheduler: job %s registered, schedule=%q", name, spec)
	return nil
}

// Len возвращает количество зарегистрированных задач
func (s *Scheduler) Len() int {
	return len(s.cron.Entries())
}

// Start запускает планировщик в фоне
func (s *Scheduler) Start() {
	s.logger.Info("Scheduler: starting with %d jobs", s.Len())
	s.cron.Start()
}

// Stop останавливает планировщик и ждет завершения запущенных задач или отмены ctx
func (s *Scheduler) Stop(ctx context.Context) error {
	s.logger.Info("Scheduler: stopping")
	select {
	case <-s.cron.Stop().Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
