package reporter

import (
	"encoding/json"
	"io"
)

// JSONReporter outputs results as JSON
type JSONReporter struct {
	w io.Writer
}

// NewJSONReporter creates a new JSON reporter
func NewJSONReporter(w io.Writer) *JSONReporter {
	return &JSONReporter{w: w}
}

// Output is the document written by the structured reporters
type Output struct {
	Files   []FileReport `json:"files" yaml:"files"`
	Summary Summary      `json:"summary" yaml:"summary"`
}

func newOutput(reports []FileReport) Output {
	if reports == nil {
		reports = []FileReport{}
	}
	return Output{Files: reports, Summary: ComputeSummary(reports)}
}

// Report outputs reports as JSON
func (r *JSONReporter) Report(reports []FileReport) error {
	encoder := json.NewEncoder(r.w)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	return encoder.Encode(newOutput(reports))
}
