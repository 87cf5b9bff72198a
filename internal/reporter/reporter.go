package reporter

import (
	"fmt"
	"io"

	"github.com/pthm/promptly/internal/analyzer"
	"github.com/pthm/promptly/internal/rules"
)

// FileReport is the analysis of one prompt source
type FileReport struct {
	Path     string            `json:"path" yaml:"path"`
	Result   *analyzer.Result  `json:"result" yaml:"result"`
	Metrics  *analyzer.Metrics `json:"metrics,omitempty" yaml:"metrics,omitempty"`
	Sections int               `json:"sections,omitempty" yaml:"sections,omitempty"`
}

// Reporter defines the interface for outputting analysis results
type Reporter interface {
	// Report outputs the analysis results
	Report(reports []FileReport) error
}

// Summary holds summary statistics for an analysis run
type Summary struct {
	Files        int `json:"files" yaml:"files"`
	Suggestions  int `json:"suggestions" yaml:"suggestions"`
	High         int `json:"high" yaml:"high"`
	Med          int `json:"med" yaml:"med"`
	Low          int `json:"low" yaml:"low"`
	AverageScore int `json:"average_score" yaml:"average_score"`
	LowestScore  int `json:"lowest_score" yaml:"lowest_score"`
}

// ComputeSummary computes summary statistics from reports
func ComputeSummary(reports []FileReport) Summary {
	s := Summary{Files: len(reports)}

	total := 0
	for i, r := range reports {
		total += r.Result.Score
		if i == 0 || r.Result.Score < s.LowestScore {
			s.LowestScore = r.Result.Score
		}
		for _, sug := range r.Result.Suggestions {
			s.Suggestions++
			switch sug.Severity {
			case rules.High:
				s.High++
			case rules.Med:
				s.Med++
			case rules.Low:
				s.Low++
			}
		}
	}
	if len(reports) > 0 {
		s.AverageScore = (total + len(reports)/2) / len(reports)
	}

	return s
}

// New returns the reporter for format: "terminal", "json" or "yaml"
func New(format string, w io.Writer, verbose bool) (Reporter, error) {
	switch format {
	case "", "terminal":
		return NewTerminalReporter(w, verbose), nil
	case "json":
		return NewJSONReporter(w), nil
	case "yaml":
		return NewYAMLReporter(w), nil
	default:
		return nil, fmt.Errorf("unknown format %q (want terminal, json or yaml)", format)
	}
}
