package domain

import "time"

// SlotEngineConfig tunes slot generation
type SlotEngineConfig struct {
	StepMinutes     int // Candidate granularity
	BufferMinutes   int // Mandatory gap around every confirmed booking
	LeadTimeMinutes int // Minimum same-day advance notice
}

// DefaultSlotEngineConfig returns the stock engine configuration
func DefaultSlotEngineConfig() SlotEngineConfig {
	return SlotEngineConfig{
		StepMinutes:     DefaultStepMinutes,
		BufferMinutes:   DefaultBufferMinutes,
		LeadTimeMinutes: DefaultLeadTimeMinutes,
	}
}

// BusinessSlotsConfig represents the persisted engine configuration of a business
// Supports hierarchical configuration:
// 1. Professional-specific (business_id, professional_id)
// 2. Business-wide (business_id, NULL)
type BusinessSlotsConfig struct {
	ID              int64
	BusinessID      int64
	ProfessionalID  *int64 // NULL = config for all professionals
	StepMinutes     int
	BufferMinutes   int
	LeadTimeMinutes int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IsProfessionalSpecific returns true if this configuration targets one professional
func (c *BusinessSlotsConfig) IsProfessionalSpecific() bool {
	return c.ProfessionalID != nil
}

// EngineConfig converts the stored row into engine settings
func (c *BusinessSlotsConfig) EngineConfig() SlotEngineConfig {
	return SlotEngineConfig{
		StepMinutes:     c.StepMinutes,
		BufferMinutes:   c.BufferMinutes,
		LeadTimeMinutes: c.LeadTimeMinutes,
	}
}
