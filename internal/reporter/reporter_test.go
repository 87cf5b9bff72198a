package reporter

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/pthm/promptly/internal/analyzer"
	"github.com/pthm/promptly/internal/rules"
)

var fixedClock = analyzer.WithClock(func() time.Time {
	return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
})

func sampleReports() []FileReport {
	a := analyzer.New(fixedClock)
	launch := "Write a good launch plan for my product."
	return []FileReport{
		{Path: "launch.txt", Result: a.Analyze(launch, rules.IntentWrite)},
		{Path: "empty.txt", Result: a.Analyze("", rules.IntentOther)},
	}
}

func TestComputeSummary(t *testing.T) {
	s := ComputeSummary(sampleReports())

	// launch: 59 with R004 high, R002/R005/R007 med, R009/R012 low; empty: 76 with R001 and R004 high.
	assert.Equal(t, Summary{
		Files:        2,
		Suggestions:  8,
		High:         3,
		Med:          3,
		Low:          2,
		AverageScore: 68,
		LowestScore:  59,
	}, s)

	assert.Equal(t, Summary{}, ComputeSummary(nil))
}

func TestJSONReporter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSONReporter(&buf).Report(sampleReports()))

	var out struct {
		Files []struct {
			Path   string `json:"path"`
			Result struct {
				Score       int    `json:"score"`
				Label       string `json:"label"`
				Suggestions []struct {
					RuleID   string `json:"rule_id"`
					Severity string `json:"severity"`
				} `json:"suggestions"`
			} `json:"result"`
		} `json:"files"`
		Summary Summary `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))

	require.Len(t, out.Files, 2)
	assert.Equal(t, "launch.txt", out.Files[0].Path)
	assert.Equal(t, 59, out.Files[0].Result.Score)
	assert.Equal(t, "needs_work", out.Files[0].Result.Label)
	assert.Equal(t, "R004", out.Files[0].Result.Suggestions[0].RuleID)
	assert.Equal(t, "high", out.Files[0].Result.Suggestions[0].Severity)
	assert.Equal(t, 2, out.Summary.Files)
}

func TestJSONReporter_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSONReporter(&buf).Report(nil))
	assert.Contains(t, buf.String(), `"files": []`)
}

func TestYAMLReporter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewYAMLReporter(&buf).Report(sampleReports()[:1]))

	var out map[string]interface{}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &out))
	assert.Contains(t, buf.String(), "severity: high")
	assert.Contains(t, buf.String(), "label: needs_work")
	assert.Contains(t, buf.String(), "rule_id: R004")
}

func TestTerminalReporter(t *testing.T) {
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = false })

	reports := sampleReports()
	m := analyzer.ComputeMetrics("Write a good launch plan for my product.", reports[0].Result)
	reports[0].Metrics = m

	var buf bytes.Buffer
	require.NoError(t, NewTerminalReporter(&buf, true).Report(reports))
	out := buf.String()

	for _, want := range []string{
		"launch.txt",
		"59/100 Needs work",
		"(6 of 20 rules triggered, intent write)",
		"✗ Missing output format [R004 high] fixable",
		"Why: ",
		`> phrase: "good"`,
		"By severity: high=1 med=3 low=2",
		"Analyzed 2 prompts (average 68, lowest 59): 3 high, 3 med, 2 low",
	} {
		assert.Contains(t, out, want)
	}
	assert.Equal(t, 1, strings.Count(out, "Metrics"))
}

func TestNew(t *testing.T) {
	var buf bytes.Buffer
	for _, format := range []string{"", "terminal", "json", "yaml"} {
		r, err := New(format, &buf, false)
		require.NoError(t, err)
		assert.NotNil(t, r)
	}
	_, err := New("xml", &buf, false)
	assert.Error(t, err)
}
