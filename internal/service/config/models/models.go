package models

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// Уровни, с которых взята действующая конфигурация
const (
	LevelProfessional = "professional"
	LevelBusiness     = "business"
	LevelDefault      = "default"
)

// Request модели

// GetConfigRequest запрос действующей конфигурации (иерархический поиск)
type GetConfigRequest struct {
	BusinessID     int64  `json:"businessId"`
	ProfessionalID *int64 `json:"professionalId,omitempty"` // nil - уровень бизнеса
}

// UpsertConfigRequest запрос на создание или обновление конфигурации уровня.
// Непереданные поля берутся из существующей записи уровня или из значений по умолчанию.
type UpsertConfigRequest struct {
	UserID          int64  `json:"userId"`
	BusinessID      int64  `json:"businessId"`
	ProfessionalID  *int64 `json:"professionalId,omitempty"`
	StepMinutes     *int   `json:"stepMinutes,omitempty"`
	BufferMinutes   *int   `json:"bufferMinutes,omitempty"`
	LeadTimeMinutes *int   `json:"leadTimeMinutes,omitempty"`
}

// ApplyToConfig применяет переданные поля к конфигурации
func (r *UpsertConfigRequest) ApplyToConfig(config *domain.BusinessSlotsConfig) {
	if r.StepMinutes != nil {
		config.StepMinutes = *r.StepMinutes
	}
	if r.BufferMinutes != nil {
		config.BufferMinutes = *r.BufferMinutes
	}
	if r.LeadTimeMinutes != nil {
		config.LeadTimeMinutes = *r.LeadTimeMinutes
	}
}

// Response модели

// ConfigResponse ответ с данными конфигурации слотов
type ConfigResponse struct {
	ID              int64      `json:"id,omitempty"` // 0 для значений по умолчанию
	BusinessID      int64      `json:"businessId"`
	ProfessionalID  *int64     `json:"professionalId,omitempty"`
	Level           string     `json:"level"`
	StepMinutes     int        `json:"stepMinutes"`
	BufferMinutes   int        `json:"bufferMinutes"`
	LeadTimeMinutes int        `json:"leadTimeMinutes"`
	UpdatedAt       *time.Time `json:"updatedAt,omitempty"`
}

// FromDomainConfig конвертирует domain модель в DTO
func FromDomainConfig(c *domain.BusinessSlotsConfig) *ConfigResponse {
	if c == nil {
		return nil
	}

	level := LevelBusiness
	if c.IsProfessionalSpecific() {
		level = LevelProfessional
	}

	updatedAt := c.UpdatedAt
	return &ConfigResponse{
		ID:              c.ID,
		BusinessID:      c.BusinessID,
		ProfessionalID:  c.ProfessionalID,
		Level:           level,
		StepMinutes:     c.StepMinutes,
		BufferMinutes:   c.BufferMinutes,
		LeadTimeMinutes: c.LeadTimeMinutes,
		UpdatedAt:       &updatedAt,
	}
}

// DefaultConfig ответ для бизнеса без сохраненной конфигурации
func DefaultConfig(businessID int64) *ConfigResponse {
	d := domain.DefaultSlotEngineConfig()
	return &ConfigResponse{
		BusinessID:      businessID,
		Level:           LevelDefault,
		StepMinutes:     d.StepMinutes,
		BufferMinutes:   d.BufferMinutes,
		LeadTimeMinutes: d.LeadTimeMinutes,
	}
}
