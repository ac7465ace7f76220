package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/resume-extractor/constants"
)

// Run is one extraction run as stored in the history table.
type Run struct {
	ID           uuid.UUID           `json:"id"`
	SourcePath   string              `json:"source_path"`
	OutputPath   string              `json:"output_path"`
	Status       constants.RunStatus `json:"status"`
	StartedAt    time.Time           `json:"started_at"`
	FinishedAt   *time.Time          `json:"finished_at,omitempty"`
	ErrorMessage *string             `json:"error_message,omitempty"`
	NameSource   string              `json:"name_source,omitempty"`
	RecordJSON   json.RawMessage     `json:"record_json,omitempty"`
}

// Duration is the wall time of a finished run, zero while running.
func (r Run) Duration() time.Duration {
	if r.FinishedAt == nil {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}
