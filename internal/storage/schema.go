package storage

import (
	"context"
	"database/sql"
	"fmt"
)

// InitSchema creates all necessary tables and indexes.
// Note: WAL mode and pragmas are configured in db.go.
func InitSchema(ctx context.Context, db *sql.DB) error {
	return createProgramsTable(ctx, db)
}

func createProgramsTable(ctx context.Context, db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS programs (
		slug TEXT PRIMARY KEY,
		program_id INTEGER NOT NULL,
		title TEXT NOT NULL,
		exam_dates TEXT,
		admission_quotas TEXT,
		study_plan_url TEXT NOT NULL,
		study_plan_file TEXT NOT NULL,
		study_plan_text TEXT,
		cached_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_programs_program_id ON programs(program_id);
	CREATE INDEX IF NOT EXISTS idx_programs_cached_at ON programs(cached_at);
	`

	if _, err := db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to create programs table: %w", err)
	}

	return nil
}
