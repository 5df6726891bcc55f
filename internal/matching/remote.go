package matching

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	_ "embed"

	"go.uber.org/zap"

	"github.com/hireloop/matchwise/internal/logger"
)

//go:embed prompt.md
var promptTemplate string

const defaultMaxLogLength = 200

// requiredScoreKeys are the numeric fields a remote response must carry.
var requiredScoreKeys = []string{"skills", "experience", "education", "responsibilities", "location", "overall"}

// requiredNoteKeys are the explanation fields a remote response must carry.
var requiredNoteKeys = []string{"skills_note", "experience_note", "education_note", "responsibilities_note", "location_note", "summary"}

// RemoteStrategy scores a pair by prompting an external model. Its output is
// advisory and non-deterministic between calls; callers should rely on shape
// and bounds, not on exact values.
type RemoteStrategy struct {
	backend   Backend
	logger    *zap.Logger
	maxLogLen int
}

func NewRemoteStrategy(backend Backend, log *zap.Logger, maxLogLength int) *RemoteStrategy {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}
	if log == nil {
		log = zap.NewNop()
	}

	return &RemoteStrategy{
		backend:   backend,
		logger:    log,
		maxLogLen: maxLogLength,
	}
}

func (s *RemoteStrategy) Name() string { return "remote" }

func (s *RemoteStrategy) Score(ctx context.Context, rec *ComparisonRecord) (*ScoreBreakdown, error) {
	if s.backend == nil {
		return nil, fmt.Errorf("%w: no backend configured", ErrStrategyUnavailable)
	}

	prompt, err := buildPrompt(rec)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStrategyError, err)
	}

	s.logger.Debug("remote scoring request",
		append(logger.PairFields(rec.CandidateID, rec.JobID),
			zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
			zap.String("prompt_preview", logger.Truncate(prompt, s.maxLogLen)),
		)...,
	)

	raw, err := s.backend.Complete(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStrategyUnavailable, err)
	}

	s.logger.Debug("remote scoring response",
		append(logger.PairFields(rec.CandidateID, rec.JobID),
			zap.Int("response_length", utf8.RuneCountInString(raw)),
			zap.String("response_preview", logger.Truncate(raw, s.maxLogLen)),
		)...,
	)

	return parseBreakdown(raw)
}

func buildPrompt(rec *ComparisonRecord) (string, error) {
	candidate := map[string]any{
		"title":            rec.CandidateTitle,
		"summary":          rec.CandidateSummary,
		"skills":           rec.CandidateSkills,
		"experience_years": rec.ExperienceYears,
		"education":        rec.EducationSummary,
		"location":         rec.Location,
		"accepts_remote":   rec.AcceptsRemote,
	}
	job := map[string]any{
		"title":            rec.JobTitle,
		"description":      rec.JobDescription,
		"requirements":     rec.Requirements,
		"responsibilities": rec.Responsibilities,
		"required_skills":  rec.RequiredSkills,
		"location":         rec.JobLocation,
		"remote":           rec.Remote,
		"job_type":         rec.JobType,
		"experience_min":   rec.ExperienceMin,
		"experience_max":   rec.ExperienceMax,
	}

	candidateJSON, err := json.MarshalIndent(candidate, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal candidate payload: %w", err)
	}
	jobJSON, err := json.MarshalIndent(job, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal job payload: %w", err)
	}

	prompt := strings.ReplaceAll(promptTemplate, "{{CANDIDATE_JSON}}", string(candidateJSON))
	prompt = strings.ReplaceAll(prompt, "{{JOB_JSON}}", string(jobJSON))
	return prompt, nil
}

// parseBreakdown decodes the model response permissively: surrounding
// markdown fencing is tolerated and numbers may arrive as strings, but every
// required field must be present and every score is clamped to [0, 100].
func parseBreakdown(raw string) (*ScoreBreakdown, error) {
	cleaned := extractJSON(raw)

	var data map[string]any
	if err := json.Unmarshal([]byte(cleaned), &data); err != nil {
		return nil, fmt.Errorf("%w: parse response: %v", ErrStrategyError, err)
	}

	scores := make(map[string]float64, len(requiredScoreKeys))
	for _, key := range requiredScoreKeys {
		val, ok := data[key]
		if !ok {
			return nil, fmt.Errorf("%w: response missing %q", ErrStrategyError, key)
		}
		f, ok := coerceFloat(val)
		if !ok {
			return nil, fmt.Errorf("%w: field %q is not a number", ErrStrategyError, key)
		}
		scores[key] = clampScore(f)
	}

	notes := make(map[string]string, len(requiredNoteKeys))
	for _, key := range requiredNoteKeys {
		val, ok := data[key]
		if !ok {
			return nil, fmt.Errorf("%w: response missing %q", ErrStrategyError, key)
		}
		notes[key] = coerceString(val)
	}

	return &ScoreBreakdown{
		Skills:           scores["skills"],
		Experience:       scores["experience"],
		Education:        scores["education"],
		Responsibilities: scores["responsibilities"],
		Location:         scores["location"],
		Overall:          scores["overall"],

		SkillsNote:           notes["skills_note"],
		ExperienceNote:       notes["experience_note"],
		EducationNote:        notes["education_note"],
		ResponsibilitiesNote: notes["responsibilities_note"],
		LocationNote:         notes["location_note"],
		Summary:              notes["summary"],
	}, nil
}

// extractJSON isolates the JSON object in a model response. Models wrap the
// object in markdown fences or surround it with prose despite instructions,
// so the fence is stripped first and the outermost braces win otherwise.
func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)

	if idx := strings.Index(raw, "```"); idx != -1 {
		raw = raw[idx+3:]
		raw = strings.TrimPrefix(raw, "json")
		if end := strings.Index(raw, "```"); end != -1 {
			raw = raw[:end]
		}
		raw = strings.TrimSpace(raw)
	}

	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start != -1 && end > start {
		raw = raw[start : end+1]
	}

	return strings.TrimSpace(raw)
}

func clampScore(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 100 {
		return 100
	}
	return f
}

func coerceFloat(v any) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case int:
		return float64(val), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

func coerceString(v any) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	case fmt.Stringer:
		return strings.TrimSpace(val.String())
	default:
		if v == nil {
			return ""
		}
		bytes, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(bytes)
	}
}
