package matching

import (
	"context"
	"fmt"
	"strings"
)

// Neutral defaults emitted when a dimension cannot be computed from the
// structured fields alone.
const (
	neutralSkillsScore           = 50.0
	neutralExperienceScore       = 75.0
	defaultEducationScore        = 75.0
	defaultResponsibilitiesScore = 70.0
	neutralLocationScore         = 70.0
	partialLocationScore         = 60.0
)

// Fallback overall weighting. Education and responsibilities are intentionally
// excluded: the rule-based strategy has no semantic view of free text, so only
// the dimensions it actually computes carry weight. The remote strategy
// weights all five dimensions; the two formulas intentionally diverge.
const (
	skillsWeight     = 0.5
	experienceWeight = 0.3
	locationWeight   = 0.2
)

// RuleBasedStrategy is the deterministic fallback scorer. It never fails and
// uses only the structured fields of the comparison record.
type RuleBasedStrategy struct{}

func NewRuleBasedStrategy() *RuleBasedStrategy { return &RuleBasedStrategy{} }

func (s *RuleBasedStrategy) Name() string { return "rules" }

func (s *RuleBasedStrategy) Score(_ context.Context, rec *ComparisonRecord) (*ScoreBreakdown, error) {
	bd := &ScoreBreakdown{
		Education:            defaultEducationScore,
		EducationNote:        "education is not compared by rule-based scoring",
		Responsibilities:     defaultResponsibilitiesScore,
		ResponsibilitiesNote: "responsibilities are not compared by rule-based scoring",
	}

	bd.Skills, bd.SkillsNote = skillsScore(rec.CandidateSkills, rec.RequiredSkills)
	bd.Experience, bd.ExperienceNote = experienceScore(rec.ExperienceYears, rec.ExperienceMin)
	bd.Location, bd.LocationNote = locationScore(rec)

	bd.Overall = skillsWeight*bd.Skills + experienceWeight*bd.Experience + locationWeight*bd.Location
	bd.Summary = fmt.Sprintf("rule-based score %.0f%%: skills %.0f%%, experience %.0f%%, location %.0f%%",
		bd.Overall, bd.Skills, bd.Experience, bd.Location)

	return bd, nil
}

// skillsScore measures the share of required skills covered by the candidate.
// Containment is case-insensitive and substring-based in either direction, so
// "go" matches "golang" and "node.js" matches "node".
func skillsScore(candidate, required []string) (float64, string) {
	if len(candidate) == 0 || len(required) == 0 {
		return neutralSkillsScore, "skill sets incomplete, neutral score"
	}

	matched := 0
	for _, req := range required {
		if skillCovered(candidate, req) {
			matched++
		}
	}

	score := 100 * float64(matched) / float64(len(required))
	if score > 100 {
		score = 100
	}
	return score, fmt.Sprintf("%d of %d required skills matched", matched, len(required))
}

func skillCovered(candidate []string, required string) bool {
	req := strings.ToLower(strings.TrimSpace(required))
	if req == "" {
		return false
	}
	for _, have := range candidate {
		h := strings.ToLower(strings.TrimSpace(have))
		if h == "" {
			continue
		}
		if strings.Contains(h, req) || strings.Contains(req, h) {
			return true
		}
	}
	return false
}

func experienceScore(years, required *float64) (float64, string) {
	if years == nil || required == nil {
		return neutralExperienceScore, "experience data incomplete, neutral score"
	}

	if *years >= *required {
		return 100, fmt.Sprintf("%.1f years meets the %.1f required", *years, *required)
	}

	score := 100 * *years / *required
	if score < 0 {
		score = 0
	}
	return score, fmt.Sprintf("%.1f of %.1f required years", *years, *required)
}

func locationScore(rec *ComparisonRecord) (float64, string) {
	if rec.Remote && rec.AcceptsRemote {
		return 100, "remote role matches remote preference"
	}

	if strings.TrimSpace(rec.JobLocation) == "" || strings.TrimSpace(rec.Location) == "" {
		return neutralLocationScore, "location data incomplete, neutral score"
	}

	if strings.Contains(strings.ToLower(rec.JobLocation), strings.ToLower(rec.Location)) {
		return 100, "job location matches candidate location"
	}

	return partialLocationScore, "locations differ"
}
