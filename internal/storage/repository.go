package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	domerrors "github.com/abitbot/abit-advisor-go/internal/errors"
)

// SaveProgram inserts or replaces a program record keyed by slug.
// The write happens in one transaction: either the whole new record lands
// or the prior record (if any) stays untouched. A zero CachedAt is
// stamped with the current time, so the persisted row always matches
// the record the caller holds.
func (db *DB) SaveProgram(ctx context.Context, program *Program) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return domerrors.NewPersistenceError("save_program", program.Slug, fmt.Errorf("begin transaction: %w", err))
	}
	defer func() { _ = tx.Rollback() }()

	query := `
		INSERT INTO programs (slug, program_id, title, exam_dates, admission_quotas,
			study_plan_url, study_plan_file, study_plan_text, cached_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(slug) DO UPDATE SET
			program_id = excluded.program_id,
			title = excluded.title,
			exam_dates = excluded.exam_dates,
			admission_quotas = excluded.admission_quotas,
			study_plan_url = excluded.study_plan_url,
			study_plan_file = excluded.study_plan_file,
			study_plan_text = excluded.study_plan_text,
			cached_at = excluded.cached_at
	`

	if program.CachedAt == 0 {
		program.CachedAt = time.Now().Unix()
	}

	start := time.Now()
	_, err = tx.ExecContext(ctx, query,
		program.Slug,
		program.ProgramID,
		program.Title,
		nullableBlob(program.ExamDates),
		nullableBlob(program.AdmissionQuotas),
		program.StudyPlanURL,
		program.StudyPlanFile,
		program.StudyPlanText,
		program.CachedAt,
	)
	if err != nil {
		slog.ErrorContext(ctx, "failed to save program",
			"slug", program.Slug,
			"error", err)
		return domerrors.NewPersistenceError("save_program", program.Slug, err)
	}

	if err := tx.Commit(); err != nil {
		return domerrors.NewPersistenceError("save_program", program.Slug, fmt.Errorf("commit transaction: %w", err))
	}

	// Warn on slow queries (>100ms)
	if duration := time.Since(start); duration > 100*time.Millisecond {
		slog.WarnContext(ctx, "slow database operation",
			"operation", "SaveProgram",
			"duration_ms", duration.Milliseconds(),
			"slug", program.Slug)
	}
	return nil
}

// GetProgramBySlug returns one program record.
// Returns domerrors.ErrNotFound when the slug has never been ingested.
func (db *DB) GetProgramBySlug(ctx context.Context, slug string) (*Program, error) {
	query := `
		SELECT slug, program_id, title, exam_dates, admission_quotas,
			study_plan_url, study_plan_file, study_plan_text, cached_at
		FROM programs WHERE slug = ?
	`

	program, err := scanProgram(db.conn.QueryRowContext(ctx, query, slug))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domerrors.ErrNotFound
		}
		return nil, domerrors.NewPersistenceError("get_program", slug, err)
	}
	return program, nil
}

// GetProgramsBySlugs returns the records whose slug is in the given set,
// ordered by slug for reproducible prompt assembly. Slugs that have never
// been ingested are simply absent from the result.
func (db *DB) GetProgramsBySlugs(ctx context.Context, slugs []string) ([]Program, error) {
	if len(slugs) == 0 {
		return nil, nil
	}

	placeholders := strings.Repeat("?,", len(slugs))
	placeholders = placeholders[:len(placeholders)-1]
	query := fmt.Sprintf(`
		SELECT slug, program_id, title, exam_dates, admission_quotas,
			study_plan_url, study_plan_file, study_plan_text, cached_at
		FROM programs WHERE slug IN (%s)
		ORDER BY slug
	`, placeholders)

	args := make([]any, len(slugs))
	for i, s := range slugs {
		args[i] = s
	}

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, domerrors.NewPersistenceError("get_programs", "", err)
	}
	defer func() { _ = rows.Close() }()

	var programs []Program
	for rows.Next() {
		program, err := scanProgram(rows)
		if err != nil {
			return nil, domerrors.NewPersistenceError("get_programs", "", err)
		}
		programs = append(programs, *program)
	}
	if err := rows.Err(); err != nil {
		return nil, domerrors.NewPersistenceError("get_programs", "", err)
	}

	return programs, nil
}

// CountPrograms returns the number of persisted program records.
func (db *DB) CountPrograms(ctx context.Context) (int, error) {
	var count int
	err := db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM programs`).Scan(&count)
	if err != nil {
		return 0, domerrors.NewPersistenceError("count_programs", "", err)
	}
	return count, nil
}

// scanner abstracts *sql.Row and *sql.Rows for scanProgram.
type scanner interface {
	Scan(dest ...any) error
}

func scanProgram(s scanner) (*Program, error) {
	var p Program
	var examDates, admissionQuotas, studyPlanText sql.NullString
	err := s.Scan(
		&p.Slug,
		&p.ProgramID,
		&p.Title,
		&examDates,
		&admissionQuotas,
		&p.StudyPlanURL,
		&p.StudyPlanFile,
		&studyPlanText,
		&p.CachedAt,
	)
	if err != nil {
		return nil, err
	}
	if examDates.Valid && examDates.String != "" {
		p.ExamDates = []byte(examDates.String)
	}
	if admissionQuotas.Valid && admissionQuotas.String != "" {
		p.AdmissionQuotas = []byte(admissionQuotas.String)
	}
	p.StudyPlanText = studyPlanText.String
	return &p, nil
}

// nullableBlob stores empty JSON blobs as NULL instead of empty strings.
func nullableBlob(raw []byte) any {
	if len(raw) == 0 {
		return nil
	}
	return string(raw)
}
