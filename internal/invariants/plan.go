package invariants

import (
	"math"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// Unlimited ceiling of the unlimited plan
const Unlimited = math.MaxInt

var professionalLimits = map[domain.BusinessPlan]int{
	domain.PlanIndividual: 1,
	domain.PlanDuo:        2,
	domain.PlanUnlimited:  Unlimited,
}

// AssertProfessionalLimit fails when adding one more professional would exceed the plan ceiling
func AssertProfessionalLimit(plan domain.BusinessPlan, currentCount int) error {
	limit, ok := professionalLimits[plan]
	if !ok {
		return businessViolation(RuleProfessionalLimit,
			"plan %q does not allow adding professionals", plan)
	}
	if currentCount >= limit {
		return businessViolation(RuleProfessionalLimit,
			"the %s plan allows at most %d professionals, upgrade the plan to add more",
			plan, limit)
	}
	return nil
}
