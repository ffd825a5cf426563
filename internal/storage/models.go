package storage

import "encoding/json"

// Program is one ingested master's program record. A row is only written
// when every field could be produced by the pipeline, so any row read
// back is safe to surface in prompts.
type Program struct {
	Slug            string          `json:"slug"`             // Stable human-readable identifier, primary key
	ProgramID       int64           `json:"program_id"`       // Numeric identifier assigned by the admission site
	Title           string          `json:"title"`            // Display name
	ExamDates       json.RawMessage `json:"exam_dates"`       // Opaque pass-through blob from the page payload
	AdmissionQuotas json.RawMessage `json:"admission_quotas"` // Opaque pass-through blob from the page payload
	StudyPlanURL    string          `json:"study_plan_url"`   // Canonical study plan location on the source
	StudyPlanFile   string          `json:"study_plan_file"`  // Local path of the downloaded PDF
	StudyPlanText   string          `json:"study_plan_text"`  // Extracted plain text, may be empty
	CachedAt        int64           `json:"cached_at"`        // Unix timestamp of ingestion; SaveProgram stamps it when zero
}
