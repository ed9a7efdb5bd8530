package vo

import "errors"

var ErrEmptyImportFile = errors.New("import file has no rows")
var ErrInvalidImportFile = errors.New("import file could not be parsed")

const (
	ImportRowImported = "imported"
	ImportRowFailed   = "failed"
)

// ImportRow is the per-row outcome of a registration import. A failed row
// still carries the registration number it consumed; numbers are never
// reassigned within a run.
type ImportRow struct {
	Line           int    `json:"line"`
	RegistrationNo string `json:"registration_no"`
	Email          string `json:"email,omitempty"`
	Status         string `json:"status"`
	Error          string `json:"error,omitempty"`
}

type ImportSummary struct {
	EventCode string      `json:"event_code"`
	Total     int         `json:"total"`
	Imported  int         `json:"imported"`
	Failed    int         `json:"failed"`
	Rows      []ImportRow `json:"rows"`
}
