package reporter

import (
	"io"

	"gopkg.in/yaml.v3"
)

// YAMLReporter outputs results as YAML
type YAMLReporter struct {
	w io.Writer
}

// NewYAMLReporter creates a new YAML reporter
func NewYAMLReporter(w io.Writer) *YAMLReporter {
	return &YAMLReporter{w: w}
}

// Report outputs reports as YAML
func (r *YAMLReporter) Report(reports []FileReport) error {
	encoder := yaml.NewEncoder(r.w)
	encoder.SetIndent(2)
	if err := encoder.Encode(newOutput(reports)); err != nil {
		return err
	}
	return encoder.Close()
}
