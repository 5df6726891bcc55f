package matching

import (
	"fmt"

	"github.com/hireloop/matchwise/internal/domain"
)

// EligibilityGate applies the strict pass/fail filters evaluated before any
// scoring. Both rules run independently so all failure reasons are collected.
// Evaluate has no side effects and is safe for concurrent use.
type EligibilityGate struct {
	// SalaryRule and ExperienceRule allow disabling the respective filter.
	SalaryRule     bool
	ExperienceRule bool
}

// NewEligibilityGate returns a gate with both rules enabled.
func NewEligibilityGate() *EligibilityGate {
	return &EligibilityGate{SalaryRule: true, ExperienceRule: true}
}

// Evaluate checks the pair against the strict rules and returns whether it
// passes plus the collected failure reasons. A missing value on either side
// of a rule skips that rule.
func (g *EligibilityGate) Evaluate(c *domain.Candidate, j *domain.Job) (bool, []string) {
	var reasons []string

	if g.SalaryRule && c.ExpectedSalary != nil {
		expected := *c.ExpectedSalary
		switch {
		case j.SalaryMax != nil:
			if *j.SalaryMax < expected {
				reasons = append(reasons, fmt.Sprintf("offered salary up to %d below expectation %d", *j.SalaryMax, expected))
			}
		case j.SalaryMin != nil:
			if *j.SalaryMin < expected {
				reasons = append(reasons, fmt.Sprintf("offered salary %d below expectation %d", *j.SalaryMin, expected))
			}
		}
	}

	if g.ExperienceRule && c.ExperienceYears != nil && j.ExperienceMin != nil {
		if *c.ExperienceYears < *j.ExperienceMin {
			reasons = append(reasons, fmt.Sprintf("experience %.1f years below required %.1f years", *c.ExperienceYears, *j.ExperienceMin))
		}
	}

	return len(reasons) == 0, reasons
}
