// Package storage provides the SQLite-backed program corpus and the
// repository interface that decouples the conversation layer and the
// ingestion orchestrator from the concrete database.
package storage

import (
	"context"
)

// ProgramRepository defines the interface for program data operations.
type ProgramRepository interface {
	SaveProgram(ctx context.Context, program *Program) error
	GetProgramBySlug(ctx context.Context, slug string) (*Program, error)
	GetProgramsBySlugs(ctx context.Context, slugs []string) ([]Program, error)
	CountPrograms(ctx context.Context) (int, error)
}

// Compile-time check that DB satisfies the repository interface.
var _ ProgramRepository = (*DB)(nil)
