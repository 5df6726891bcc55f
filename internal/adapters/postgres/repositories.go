package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/hireloop/matchwise/internal/domain"
	"github.com/hireloop/matchwise/internal/ports"
)

const candidateColumns = `
	id, COALESCE(name, ''), COALESCE(title, ''), COALESCE(summary, ''),
	COALESCE(skills, '{}'), experience_years, expected_salary,
	COALESCE(location, ''), remote_preference,
	COALESCE(education, '[]'::jsonb), matching_enabled`

const jobColumns = `
	id, recruiter_id, COALESCE(organization_id, ''), COALESCE(company_name, ''),
	COALESCE(title, ''), COALESCE(description, ''),
	COALESCE(requirements, '{}'), COALESCE(responsibilities, '{}'), COALESCE(skills, '{}'),
	COALESCE(location, ''), remote, COALESCE(job_type, ''),
	salary_min, salary_max, experience_min, experience_max,
	COALESCE(category, ''), restricted, is_active, matching_enabled`

// educationEntry is the jsonb shape of one education record.
type educationEntry struct {
	Institution  string `json:"institution"`
	Degree       string `json:"degree"`
	FieldOfStudy string `json:"field_of_study"`
}

// GetProfile implements ports.ProfileReader.
func (s *Store) GetProfile(ctx context.Context, id string) (*domain.Candidate, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+candidateColumns+` FROM candidates WHERE id = $1`, id)
	c, err := scanCandidate(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ports.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query candidate: %w", err)
	}
	return c, nil
}

// ListMatchableCandidates implements ports.CandidateReader.
func (s *Store) ListMatchableCandidates(ctx context.Context) ([]domain.Candidate, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+candidateColumns+` FROM candidates WHERE matching_enabled ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query candidates: %w", err)
	}
	defer rows.Close()

	var out []domain.Candidate
	for rows.Next() {
		c, err := scanCandidate(rows)
		if err != nil {
			return nil, fmt.Errorf("scan candidate: %w", err)
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

// GetJob implements ports.JobReader.
func (s *Store) GetJob(ctx context.Context, id string) (*domain.Job, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id)
	j, err := scanJob(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ports.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query job: %w", err)
	}
	return j, nil
}

// ListActiveMatchableJobs implements ports.JobReader.
func (s *Store) ListActiveMatchableJobs(ctx context.Context) ([]domain.Job, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+jobColumns+` FROM jobs WHERE is_active AND matching_enabled ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query jobs: %w", err)
	}
	defer rows.Close()

	var out []domain.Job
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("scan job: %w", err)
		}
		out = append(out, *j)
	}
	return out, rows.Err()
}

// FindApplication implements ports.ApplicationReader.
func (s *Store) FindApplication(ctx context.Context, candidateID, jobID string) (*domain.Application, error) {
	var app domain.Application
	err := s.pool.QueryRow(ctx, `
		SELECT candidate_id, job_id, status, applied_at
		FROM applications
		WHERE candidate_id = $1 AND job_id = $2
	`, candidateID, jobID).Scan(&app.CandidateID, &app.JobID, &app.Status, &app.AppliedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ports.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query application: %w", err)
	}
	return &app, nil
}

// ListForJob implements ports.ApplicationReader.
func (s *Store) ListForJob(ctx context.Context, jobID string) ([]domain.Application, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT candidate_id, job_id, status, applied_at
		FROM applications
		WHERE job_id = $1
		ORDER BY applied_at
	`, jobID)
	if err != nil {
		return nil, fmt.Errorf("query applications: %w", err)
	}
	defer rows.Close()

	var out []domain.Application
	for rows.Next() {
		var app domain.Application
		if err := rows.Scan(&app.CandidateID, &app.JobID, &app.Status, &app.AppliedAt); err != nil {
			return nil, fmt.Errorf("scan application: %w", err)
		}
		out = append(out, app)
	}
	return out, rows.Err()
}

func scanCandidate(row pgx.Row) (*domain.Candidate, error) {
	var c domain.Candidate
	var education []byte
	err := row.Scan(
		&c.ID, &c.Name, &c.Title, &c.Summary,
		&c.Skills, &c.ExperienceYears, &c.ExpectedSalary,
		&c.Location, &c.RemotePreference,
		&education, &c.MatchingEnabled,
	)
	if err != nil {
		return nil, err
	}

	var entries []educationEntry
	if err := json.Unmarshal(education, &entries); err != nil {
		return nil, fmt.Errorf("decode education: %w", err)
	}
	for _, e := range entries {
		c.Education = append(c.Education, domain.Education{
			Institution:  e.Institution,
			Degree:       e.Degree,
			FieldOfStudy: e.FieldOfStudy,
		})
	}

	return &c, nil
}

func scanJob(row pgx.Row) (*domain.Job, error) {
	var j domain.Job
	err := row.Scan(
		&j.ID, &j.RecruiterID, &j.OrganizationID, &j.CompanyName,
		&j.Title, &j.Description,
		&j.Requirements, &j.Responsibilities, &j.Skills,
		&j.Location, &j.Remote, &j.Type,
		&j.SalaryMin, &j.SalaryMax, &j.ExperienceMin, &j.ExperienceMax,
		&j.Category, &j.Restricted, &j.Active, &j.MatchingEnabled,
	)
	if err != nil {
		return nil, err
	}
	return &j, nil
}
