package abit

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"
)

// DownloadPlan downloads a program's study plan PDF into destDir and
// returns the path of the stored file. The filename comes from the
// Content-Disposition header when the server provides one, otherwise
// a deterministic {program_id}_study_plan.pdf. An existing file is
// overwritten so re-ingestion always refreshes the document.
func (s *Scraper) DownloadPlan(ctx context.Context, programID int64, destDir string) (string, error) {
	body, headers, err := s.client.GetBytes(ctx, s.PlanURL(programID), "application/pdf")
	if err != nil {
		return "", fmt.Errorf("failed to download study plan: %w", err)
	}

	filename := planFilename(headers.Get("Content-Disposition"), programID)

	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create document dir: %w", err)
	}

	path := filepath.Join(destDir, filename)
	if err := os.WriteFile(path, body, 0o644); err != nil {
		return "", fmt.Errorf("failed to store study plan: %w", err)
	}
	return path, nil
}

// planFilename picks the stored filename for a study plan download.
func planFilename(contentDisposition string, programID int64) string {
	fallback := fmt.Sprintf("%d_study_plan.pdf", programID)
	if contentDisposition == "" {
		return fallback
	}
	_, params, err := mime.ParseMediaType(contentDisposition)
	if err != nil {
		return fallback
	}
	name := filepath.Base(params["filename"])
	if name == "" || name == "." || name == string(filepath.Separator) {
		return fallback
	}
	return name
}
