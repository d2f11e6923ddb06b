package discover_businesses

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/m04kA/SMC-AvailabilityService/internal/discovery"
	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	configRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/config"
	"github.com/m04kA/SMC-AvailabilityService/pkg/ptr"
)

const (
	levelBusiness     = "business"
	levelProfessional = "professional"
)

func isNotFound(err error) bool {
	return errors.Is(err, configRepo.ErrConfigNotFound)
}

// collectEntries загружает данные всех кандидатов параллельно.
// Каждая задача пишет только в свой индекс, поэтому блокировки не нужны.
// Ошибка загрузки бизнеса исключает бизнес, ошибка загрузки специалиста - специалиста.
func (uc *UseCase) collectEntries(ctx context.Context, candidates []*domain.Business, date *time.Time) ([]discovery.Entry, error) {
	slots := make([]*discovery.Entry, len(candidates))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(uc.opts.MaxConcurrency)

	for i, business := range candidates {
		i, business := i, business
		g.Go(func() error {
			entry, err := uc.fetchBusiness(gctx, business, date)
			if err != nil {
				uc.metrics.IncFetchFailure(levelBusiness)
				uc.logger.Warn("DiscoverBusinesses: business id=%d dropped: %v", business.ID, err)
				return nil
			}
			slots[i] = entry
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries := make([]discovery.Entry, 0, len(slots))
	for _, entry := range slots {
		if entry != nil {
			entries = append(entries, *entry)
		}
	}

	return entries, nil
}

// fetchBusiness загружает услуги и специалистов,
// затем параллельно конфигурацию, бронирования и блокировки каждого активного специалиста
func (uc *UseCase) fetchBusiness(ctx context.Context, business *domain.Business, date *time.Time) (*discovery.Entry, error) {
	var services []*domain.Service
	err := uc.withTimeout(ctx, func(ctx context.Context) (err error) {
		services, err = uc.serviceRepo.ListByBusiness(ctx, business.ID)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("services: %w", err)
	}

	entry := &discovery.Entry{Business: business, Services: services}
	if date == nil {
		return entry, nil
	}

	var professionals []*domain.Professional
	err = uc.withTimeout(ctx, func(ctx context.Context) (err error) {
		professionals, err = uc.professionalRepo.ListByBusiness(ctx, business.ID)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("professionals: %w", err)
	}

	entry.Config = domain.DefaultSlotEngineConfig()

	active := domain.ActiveProfessionals(professionals)
	if len(active) == 0 || len(domain.ActiveServices(services)) == 0 {
		entry.Professionals = active
		return entry, nil
	}

	type professionalData struct {
		config   domain.SlotEngineConfig
		bookings []*domain.Booking
		blocks   []*domain.BlockedRange
		ok       bool
	}
	data := make([]professionalData, len(active))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(uc.opts.MaxConcurrency)

	for i, p := range active {
		i, p := i, p
		g.Go(func() error {
			config, bookings, blocks, err := uc.fetchProfessional(gctx, business.ID, p.ID, *date)
			if err != nil {
				uc.metrics.IncFetchFailure(levelProfessional)
				uc.logger.Warn("DiscoverBusinesses: professional id=%d of business id=%d dropped: %v",
					p.ID, business.ID, err)
				return nil
			}
			data[i] = professionalData{config: config, bookings: bookings, blocks: blocks, ok: true}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	entry.Professionals = make([]*domain.Professional, 0, len(active))
	entry.Bookings = make(map[int64][]*domain.Booking, len(active))
	entry.Blocks = make(map[int64][]*domain.BlockedRange, len(active))
	entry.Configs = make(map[int64]domain.SlotEngineConfig, len(active))
	for i, p := range active {
		if !data[i].ok {
			continue
		}
		entry.Professionals = append(entry.Professionals, p)
		entry.Bookings[p.ID] = data[i].bookings
		entry.Blocks[p.ID] = data[i].blocks
		entry.Configs[p.ID] = data[i].config
	}

	return entry, nil
}

func (uc *UseCase) fetchProfessional(ctx context.Context, businessID, professionalID int64, date time.Time) (domain.SlotEngineConfig, []*domain.Booking, []*domain.BlockedRange, error) {
	var config domain.SlotEngineConfig
	err := uc.withTimeout(ctx, func(ctx context.Context) (err error) {
		config, err = uc.resolveConfig(ctx, businessID, professionalID)
		return err
	})
	if err != nil {
		return config, nil, nil, fmt.Errorf("config: %w", err)
	}

	var bookings []*domain.Booking
	status := domain.StatusConfirmed
	err = uc.withTimeout(ctx, func(ctx context.Context) (err error) {
		bookings, err = uc.bookingRepo.GetWithFilter(ctx, domain.BookingsFilter{
			BusinessID:     businessID,
			ProfessionalID: ptr.Ptr(professionalID),
			StartDate:      &date,
			EndDate:        &date,
			Status:         &status,
		})
		return err
	})
	if err != nil {
		return config, nil, nil, fmt.Errorf("bookings: %w", err)
	}

	var blocks []*domain.BlockedRange
	err = uc.withTimeout(ctx, func(ctx context.Context) (err error) {
		blocks, err = uc.blockedRepo.ListByProfessionalAndDate(ctx, professionalID, date)
		return err
	})
	if err != nil {
		return config, nil, nil, fmt.Errorf("blocked ranges: %w", err)
	}

	return config, domain.ConfirmedOnly(bookings), blocks, nil
}

func (uc *UseCase) withTimeout(ctx context.Context, fn func(ctx context.Context) error) error {
	ctx, cancel := context.WithTimeout(ctx, uc.opts.FetchTimeout)
	defer cancel()
	return fn(ctx)
}
