package discover_businesses

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/discovery"
	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	discoverBusinesses "github.com/m04kA/SMC-AvailabilityService/internal/usecase/discover_businesses"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// DiscoveryResponse HTTP response model
type DiscoveryResponse struct {
	Mode       string             `json:"mode"`
	Date       *string            `json:"date,omitempty"`
	Time       *string            `json:"time,omitempty"`
	Businesses []BusinessResponse `json:"businesses"`
}

// BusinessResponse найденный бизнес
type BusinessResponse struct {
	ID                 int64                  `json:"id"`
	Name               string                 `json:"name"`
	Address            string                 `json:"address"`
	Category           string                 `json:"category"`
	Plan               string                 `json:"plan"`
	Services           []ServiceResponse      `json:"services"`
	ReferenceServiceID *int64                 `json:"referenceServiceId,omitempty"`
	TotalSlots         int                    `json:"totalSlots"`
	Professionals      []ProfessionalResponse `json:"professionals,omitempty"`
}

// ServiceResponse активная услуга бизнеса
type ServiceResponse struct {
	ID              int64    `json:"id"`
	Name            string   `json:"name"`
	DurationMinutes int      `json:"durationMinutes"`
	Price           *float64 `json:"price,omitempty"`
}

// ProfessionalResponse специалист со свободными слотами
type ProfessionalResponse struct {
	ID    int64          `json:"id"`
	Name  string         `json:"name"`
	Slots []SlotResponse `json:"slots"`
}

// SlotResponse свободный интервал
type SlotResponse struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// ToUseCaseRequest формирует запрос use case из query параметров
func ToUseCaseRequest(query url.Values) (*discoverBusinesses.Request, error) {
	req := &discoverBusinesses.Request{
		Address: strings.TrimSpace(query.Get("address")),
	}

	if category := strings.TrimSpace(query.Get("category")); category != "" {
		req.Category = &category
	}

	if s := query.Get("date"); s != "" {
		date, err := time.Parse(domain.DateFormat, s)
		if err != nil {
			return nil, fmt.Errorf("invalid date %q: %w", s, err)
		}
		req.Date = &date
	}

	if s := query.Get("time"); s != "" {
		at, err := types.NewTimeStringFromString(s)
		if err != nil {
			return nil, fmt.Errorf("invalid time %q: %w", s, err)
		}
		req.Time = &at
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(req *discoverBusinesses.Request, resp *discoverBusinesses.Response) *DiscoveryResponse {
	out := &DiscoveryResponse{
		Mode:       string(resp.Mode),
		Businesses: make([]BusinessResponse, 0, len(resp.Businesses)),
	}
	if req.Date != nil {
		date := req.Date.Format(domain.DateFormat)
		out.Date = &date
	}
	if req.Time != nil {
		at := req.Time.String()
		out.Time = &at
	}

	for _, b := range resp.Businesses {
		out.Businesses = append(out.Businesses, fromDiscovered(b))
	}

	return out
}

func fromDiscovered(b discovery.DiscoveredBusiness) BusinessResponse {
	result := BusinessResponse{
		ID:         b.Business.ID,
		Name:       b.Business.Name,
		Address:    b.Business.Address,
		Category:   b.Business.Category,
		Plan:       string(b.Business.Plan),
		Services:   make([]ServiceResponse, 0, len(b.Services)),
		TotalSlots: b.TotalSlots,
	}

	for _, s := range b.Services {
		result.Services = append(result.Services, ServiceResponse{
			ID:              s.ID,
			Name:            s.Name,
			DurationMinutes: s.DurationMinutes,
			Price:           s.Price,
		})
	}

	if b.ReferenceService != nil {
		id := b.ReferenceService.ID
		result.ReferenceServiceID = &id
	}

	for _, pa := range b.Professionals {
		slots := make([]SlotResponse, len(pa.Slots))
		for i, slot := range pa.Slots {
			slots[i] = SlotResponse{StartTime: slot.Start.String(), EndTime: slot.End.String()}
		}
		result.Professionals = append(result.Professionals, ProfessionalResponse{
			ID:    pa.Professional.ID,
			Name:  pa.Professional.Name,
			Slots: slots,
		})
	}

	return result
}
