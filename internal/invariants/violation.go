// Package invariants holds the guards that run before a reservation or a
// professional is persisted. Each guard returns nil or a *Violation.
package invariants

import (
	"errors"
	"fmt"
)

var (
	// ErrBookingInvariant категория нарушений правил бронирования
	ErrBookingInvariant = errors.New("booking invariant violated")

	// ErrBusinessInvariant категория нарушений правил бизнеса (тарифный план)
	ErrBusinessInvariant = errors.New("business invariant violated")
)

// Rule identifies which guard rejected the operation
type Rule string

const (
	RuleNoOverlap         Rule = "no_overlap"
	RuleInFuture          Rule = "in_future"
	RuleLeadTime          Rule = "lead_time"
	RuleProfessionalLimit Rule = "professional_limit"
)

// Violation typed failure of a guard. Message is safe to show to end users.
type Violation struct {
	category error
	Rule     Rule
	Message  string
}

// Error реализует error
func (v *Violation) Error() string {
	return v.Message
}

// Unwrap позволяет проверять категорию через errors.Is
func (v *Violation) Unwrap() error {
	return v.category
}

func bookingViolation(rule Rule, format string, args ...interface{}) *Violation {
	return &Violation{
		category: ErrBookingInvariant,
		Rule:     rule,
		Message:  fmt.Sprintf(format, args...),
	}
}

func businessViolation(rule Rule, format string, args ...interface{}) *Violation {
	return &Violation{
		category: ErrBusinessInvariant,
		Rule:     rule,
		Message:  fmt.Sprintf(format, args...),
	}
}

// AsViolation извлекает *Violation из цепочки ошибок
func AsViolation(err error) (*Violation, bool) {
	var v *Violation
	if errors.As(err, &v) {
		return v, true
	}
	return nil, false
}

// IsRule returns true if err is a violation of rule
func IsRule(err error, rule Rule) bool {
	v, ok := AsViolation(err)
	return ok && v.Rule == rule
}
