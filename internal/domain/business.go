package domain

import "time"

// BusinessPlan is the subscription tier of a business
type BusinessPlan string

const (
	PlanIndividual BusinessPlan = "individual"
	PlanDuo        BusinessPlan = "duo"
	PlanUnlimited  BusinessPlan = "unlimited"
)

// Business represents a salon/studio that employs professionals
type Business struct {
	ID        int64
	OwnerID   int64
	Name      string
	Address   string
	Category  string
	Plan      BusinessPlan
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsOwner returns true if userID owns the business
func (b *Business) IsOwner(userID int64) bool {
	return b.OwnerID == userID
}
