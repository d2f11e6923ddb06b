package businesses

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

type businessEntry struct {
	ID        int64     `json:"id"`
	OwnerID   int64     `json:"owner_id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Category  string    `json:"category"`
	Plan      string    `json:"plan"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toEntries(list []*domain.Business) []businessEntry {
	entries := make([]businessEntry, 0, len(list))
	for _, b := range list {
		entries = append(entries, businessEntry{
			ID:        b.ID,
			OwnerID:   b.OwnerID,
			Name:      b.Name,
			Address:   b.Address,
			Category:  b.Category,
			Plan:      string(b.Plan),
			CreatedAt: b.CreatedAt,
			UpdatedAt: b.UpdatedAt,
		})
	}
	return entries
}

func fromEntries(entries []businessEntry) []*domain.Business {
	list := make([]*domain.Business, 0, len(entries))
	for _, e := range entries {
		list = append(list, &domain.Business{
			ID:        e.ID,
			OwnerID:   e.OwnerID,
			Name:      e.Name,
			Address:   e.Address,
			Category:  e.Category,
			Plan:      domain.BusinessPlan(e.Plan),
			CreatedAt: e.CreatedAt,
			UpdatedAt: e.UpdatedAt,
		})
	}
	return list
}
