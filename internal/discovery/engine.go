// Package discovery ranks businesses by how much free time their professionals have.
//
// The engine is pure: all inputs are fetched by the caller, nothing is mutated
// and the clock is an explicit argument.
package discovery

import (
	"sort"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/availability"
	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// Entry bundles one business with everything needed to compute its slots for one date
type Entry struct {
	Business      *domain.Business
	Professionals []*domain.Professional
	Services      []*domain.Service
	Bookings      map[int64][]*domain.Booking      // professionalID -> confirmed same-date bookings
	Blocks        map[int64][]*domain.BlockedRange // professionalID -> same-date blocks
	Configs       map[int64]domain.SlotEngineConfig // professionalID -> effective config
	Config        domain.SlotEngineConfig           // used for professionals missing from Configs
}

// ConfigFor returns the effective slot config of one professional
func (e Entry) ConfigFor(professionalID int64) domain.SlotEngineConfig {
	if cfg, ok := e.Configs[professionalID]; ok {
		return cfg
	}
	return e.Config
}

// Query filters; Date == nil switches to listing mode
type Query struct {
	Date *time.Time
	Time *types.TimeString
}

// ProfessionalAvailability free slots of one professional
type ProfessionalAvailability struct {
	Professional *domain.Professional
	Slots        []domain.AvailableSlot
}

// DiscoveredBusiness one business in the result
type DiscoveredBusiness struct {
	Business         *domain.Business
	Services         []*domain.Service
	ReferenceService *domain.Service            // nil in listing mode
	Professionals    []ProfessionalAvailability // empty in listing mode
	TotalSlots       int
}

// FilterBusinessesByAvailability returns businesses that can take the shortest active service
// on q.Date (optionally at q.Time), most free slots first. Ties keep input order.
func FilterBusinessesByAvailability(entries []Entry, q Query, now time.Time) []DiscoveredBusiness {
	if q.Date == nil {
		return listing(entries)
	}

	result := make([]DiscoveredBusiness, 0, len(entries))
	for _, entry := range entries {
		discovered, ok := evaluate(entry, *q.Date, q.Time, now)
		if ok {
			result = append(result, discovered)
		}
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].TotalSlots > result[j].TotalSlots
	})

	return result
}

// EvaluateProfessional computes the slots of one professional for the reference duration,
// narrowed to the instant at when it is set
func EvaluateProfessional(
	p *domain.Professional,
	duration int,
	date time.Time,
	at *types.TimeString,
	bookings []*domain.Booking,
	blocks []*domain.BlockedRange,
	cfg domain.SlotEngineConfig,
	now time.Time,
) []domain.AvailableSlot {
	slots := availability.ComputeAvailableSlots(availability.Request{
		Date:            date,
		ServiceDuration: duration,
		Schedule:        p.Schedule,
		Exceptions:      p.Exceptions,
		Bookings:        bookings,
		Blocks:          blocks,
		Config:          cfg,
		Now:             now,
	})
	if at == nil {
		return slots
	}
	return slotsCovering(slots, *at)
}

// ReferenceService returns the active service with the shortest duration, first one on ties
func ReferenceService(services []*domain.Service) *domain.Service {
	var ref *domain.Service
	for _, s := range services {
		if s == nil || !s.IsActive {
			continue
		}
		if ref == nil || s.DurationMinutes < ref.DurationMinutes {
			ref = s
		}
	}
	return ref
}

func evaluate(entry Entry, date time.Time, at *types.TimeString, now time.Time) (DiscoveredBusiness, bool) {
	services := domain.ActiveServices(entry.Services)
	professionals := domain.ActiveProfessionals(entry.Professionals)
	if len(services) == 0 || len(professionals) == 0 {
		return DiscoveredBusiness{}, false
	}

	ref := ReferenceService(services)

	available := make([]ProfessionalAvailability, 0, len(professionals))
	total := 0
	for _, p := range professionals {
		slots := EvaluateProfessional(p, ref.DurationMinutes, date, at,
			entry.Bookings[p.ID], entry.Blocks[p.ID], entry.ConfigFor(p.ID), now)
		if len(slots) == 0 {
			continue
		}
		available = append(available, ProfessionalAvailability{Professional: p, Slots: slots})
		total += len(slots)
	}

	if len(available) == 0 {
		return DiscoveredBusiness{}, false
	}

	return DiscoveredBusiness{
		Business:         entry.Business,
		Services:         services,
		ReferenceService: ref,
		Professionals:    available,
		TotalSlots:       total,
	}, true
}

func listing(entries []Entry) []DiscoveredBusiness {
	result := make([]DiscoveredBusiness, 0, len(entries))
	for _, entry := range entries {
		result = append(result, DiscoveredBusiness{
			Business:      entry.Business,
			Services:      domain.ActiveServices(entry.Services),
			Professionals: []ProfessionalAvailability{},
		})
	}
	return result
}

// slotsCovering keeps slots in service at the instant: start <= at < end
func slotsCovering(slots []domain.AvailableSlot, at types.TimeString) []domain.AvailableSlot {
	result := make([]domain.AvailableSlot, 0, len(slots))
	for _, s := range slots {
		if s.CoversInstant(at) {
			result = append(result, s)
		}
	}
	return result
}
