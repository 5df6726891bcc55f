// Package matching implements the scoring core of the platform: the
// eligibility gate, the two scoring strategies and the engine that combines
// them into a match outcome for a (candidate, job) pair.
package matching

import (
	"fmt"
	"strings"

	"github.com/hireloop/matchwise/internal/domain"
)

// ComparisonRecord is the normalized view of a (candidate, job) pair handed
// to a scoring strategy. It is built fresh for every scoring call, owned by
// that call and never persisted.
type ComparisonRecord struct {
	CandidateID      string
	CandidateSkills  []string
	ExperienceYears  *float64
	ExpectedSalary   *int
	CandidateTitle   string
	CandidateSummary string
	EducationSummary string
	Location         string
	AcceptsRemote    bool

	JobID            string
	JobTitle         string
	JobDescription   string
	Requirements     string
	Responsibilities string
	RequiredSkills   []string
	JobLocation      string
	Remote           bool
	JobType          string
	SalaryMin        *int
	SalaryMax        *int
	ExperienceMin    *float64
	ExperienceMax    *float64
}

// NewComparisonRecord flattens the two entities into a record.
func NewComparisonRecord(c *domain.Candidate, j *domain.Job) *ComparisonRecord {
	return &ComparisonRecord{
		CandidateID:      c.ID,
		CandidateSkills:  c.Skills,
		ExperienceYears:  c.ExperienceYears,
		ExpectedSalary:   c.ExpectedSalary,
		CandidateTitle:   c.Title,
		CandidateSummary: c.Summary,
		EducationSummary: educationSummary(c.Education),
		Location:         c.Location,
		AcceptsRemote:    c.RemotePreference,

		JobID:            j.ID,
		JobTitle:         j.Title,
		JobDescription:   j.Description,
		Requirements:     strings.Join(j.Requirements, "; "),
		Responsibilities: strings.Join(j.Responsibilities, "; "),
		RequiredSkills:   j.Skills,
		JobLocation:      j.Location,
		Remote:           j.Remote,
		JobType:          j.Type,
		SalaryMin:        j.SalaryMin,
		SalaryMax:        j.SalaryMax,
		ExperienceMin:    j.ExperienceMin,
		ExperienceMax:    j.ExperienceMax,
	}
}

func educationSummary(entries []domain.Education) string {
	if len(entries) == 0 {
		return ""
	}
	parts := make([]string, 0, len(entries))
	for _, e := range entries {
		part := e.Degree
		if e.FieldOfStudy != "" {
			part = fmt.Sprintf("%s in %s", part, e.FieldOfStudy)
		}
		if e.Institution != "" {
			part = fmt.Sprintf("%s (%s)", part, e.Institution)
		}
		parts = append(parts, strings.TrimSpace(part))
	}
	return strings.Join(parts, "; ")
}

// ScoreBreakdown is the multi-dimension score produced by a strategy. Every
// score is a percentage in [0, 100]; each dimension carries a short
// human-readable explanation and Summary explains the overall score.
type ScoreBreakdown struct {
	Skills           float64 `json:"skills"`
	Experience       float64 `json:"experience"`
	Education        float64 `json:"education"`
	Responsibilities float64 `json:"responsibilities"`
	Location         float64 `json:"location"`
	Overall          float64 `json:"overall"`

	SkillsNote           string `json:"skills_note"`
	ExperienceNote       string `json:"experience_note"`
	EducationNote        string `json:"education_note"`
	ResponsibilitiesNote string `json:"responsibilities_note"`
	LocationNote         string `json:"location_note"`
	Summary              string `json:"summary"`
}

// MatchOutcome is the immutable result of matching one (subject, target) pair.
type MatchOutcome struct {
	SubjectID          string          `json:"subject_id"`
	TargetID           string          `json:"target_id"`
	PassesGate         bool            `json:"passes_gate"`
	GateFailureReasons []string        `json:"gate_failure_reasons,omitempty"`
	ScorePercent       float64         `json:"score_percent"`
	Breakdown          *ScoreBreakdown `json:"breakdown,omitempty"`
	MeetsThreshold     bool            `json:"meets_threshold"`
}
