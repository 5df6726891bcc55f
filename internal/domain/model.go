// Package domain holds the platform entities the matching engine operates on.
// Persistence of these entities lives in the adapters; everything here is a
// plain value read from external collaborators.
package domain

import "time"

// Role distinguishes the two kinds of actors the engine serves.
type Role string

const (
	RoleCandidate Role = "candidate"
	RoleRecruiter Role = "recruiter"
)

// Actor identifies the caller of an access-controlled operation.
type Actor struct {
	ID             string
	Role           Role
	OrganizationID string
}

// Education is a single entry of a candidate's education history.
type Education struct {
	Institution  string
	Degree       string
	FieldOfStudy string
}

// Candidate is a job seeker's profile as stored by the platform.
//
// ExperienceYears, ExpectedSalary and the job's salary/experience bounds are
// pointers: a nil value means the field was never filled in, which is
// different from zero for both gating and scoring.
type Candidate struct {
	ID               string
	Name             string
	Title            string
	Summary          string
	Skills           []string
	ExperienceYears  *float64
	ExpectedSalary   *int
	Location         string
	RemotePreference bool
	Education        []Education
	MatchingEnabled  bool
}

// Job is a published job posting.
type Job struct {
	ID               string
	RecruiterID      string
	OrganizationID   string
	CompanyName      string
	Title            string
	Description      string
	Requirements     []string
	Responsibilities []string
	Skills           []string
	Location         string
	Remote           bool
	Type             string
	SalaryMin        *int
	SalaryMax        *int
	ExperienceMin    *float64
	ExperienceMax    *float64
	Category         string
	Restricted       bool
	Active           bool
	MatchingEnabled  bool
}

// Application links a candidate to a job they applied for.
type Application struct {
	CandidateID string
	JobID       string
	Status      string
	AppliedAt   time.Time
}

// Subscription is the billing collaborator's view of an actor's plan.
// The engine reads it and consumes quota through SubscriptionStore; it never
// mutates the record in any other way.
type Subscription struct {
	Active           bool
	Plan             string
	ApplicationsUsed int
	// ApplicationLimit of -1 means unlimited.
	ApplicationLimit int
}

// Unlimited reports whether the plan has no usage ceiling.
func (s *Subscription) Unlimited() bool { return s.ApplicationLimit < 0 }

// Remaining returns the number of restricted accesses left, or -1 when the
// plan is unlimited.
func (s *Subscription) Remaining() int {
	if s.Unlimited() {
		return -1
	}
	left := s.ApplicationLimit - s.ApplicationsUsed
	if left < 0 {
		return 0
	}
	return left
}
