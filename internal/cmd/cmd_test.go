package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/pthm/promptly/internal/analyzer"
	"github.com/pthm/promptly/internal/rewrite"
	"github.com/pthm/promptly/internal/rules"
)

const launchPrompt = "Write a good launch plan for my product."

// execute runs the root command with fresh flag state and a rules-only config.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	verbose, format, configPath = false, "terminal", ""
	intentFlag, promptFlag, minScore, watchFlag = "", "", 0, false
	dryRun, fixRules, fixOutput, fixIntent, fixPrompt = false, nil, "", "", ""
	rewriteIntent, rewritePrompt, rewriteVariant, payloadOnly = "", "", rewrite.VariantDefault, false
	reportIntent, reportPrompt = "", ""
	diffHTML = false
	appUI = nil

	cfgFile := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("rules_only: true\n"), 0644))

	var out bytes.Buffer
	RootCmd.SetOut(&out)
	RootCmd.SetErr(&bytes.Buffer{})
	RootCmd.SetIn(strings.NewReader(stdin))
	RootCmd.SetArgs(append([]string{"--config", cfgFile}, args...))

	err := RootCmd.Execute()
	return out.String(), err
}

func TestAnalyze_InlineJSON(t *testing.T) {
	out, err := execute(t, "", "analyze", "--format", "json", "--intent", "write", "--prompt", launchPrompt)
	require.NoError(t, err)

	want := analyzer.Analyze(launchPrompt, rules.IntentWrite)
	doc := gjson.Parse(out)
	assert.Equal(t, "<prompt>", doc.Get("files.0.path").String())
	assert.Equal(t, int64(want.Score), doc.Get("files.0.result.score").Int())
	assert.Equal(t, "write", doc.Get("files.0.result.meta.intent").String())
	assert.Equal(t, int64(1), doc.Get("summary.files").Int())
	assert.Equal(t, "R004", doc.Get("files.0.result.suggestions.0.rule_id").String())
}

func TestAnalyze_Stdin(t *testing.T) {
	out, err := execute(t, launchPrompt, "analyze", "--intent", "write")
	require.NoError(t, err)
	assert.Contains(t, out, "/100")
	assert.Contains(t, out, "R004")
}

func TestAnalyze_MinScore(t *testing.T) {
	_, err := execute(t, "", "analyze", "--min-score", "95", "--prompt", launchPrompt)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "scored below 95")
}

func TestAnalyze_UnknownFormat(t *testing.T) {
	_, err := execute(t, "", "analyze", "--format", "xml", "--prompt", launchPrompt)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown format "xml"`)
}

func TestAnalyze_WatchNeedsFiles(t *testing.T) {
	_, err := execute(t, "", "analyze", "--watch", "--prompt", launchPrompt)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--watch needs prompt files")
}

func TestFix_InlineIsDryRun(t *testing.T) {
	out, err := execute(t, "", "fix", "--format", "json", "--intent", "write", "--prompt", launchPrompt)
	require.NoError(t, err)

	doc := gjson.Parse(out)
	assert.Equal(t, "R004", doc.Get("0.applied.0").String())
	assert.Contains(t, doc.Get("0.fixed").String(), "Output format:")
	assert.Empty(t, doc.Get("0.written").String())
}

func TestFix_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prompt.txt")
	require.NoError(t, os.WriteFile(path, []byte(launchPrompt+"\n"), 0644))

	_, err := execute(t, "", "fix", "--intent", "write", path)
	require.NoError(t, err)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(got), "Output format: Return the answer as concise bullet points")
}

func TestDiff_JSON(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.txt")
	b := filepath.Join(dir, "b.txt")
	require.NoError(t, os.WriteFile(a, []byte("the cat sat"), 0644))
	require.NoError(t, os.WriteFile(b, []byte("the dog sat"), 0644))

	out, err := execute(t, "", "diff", "--format", "json", a, b)
	require.NoError(t, err)

	var got diffOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, 1, got.Stats.Added)
	assert.Equal(t, 1, got.Stats.Removed)
	assert.Equal(t, 2, got.Stats.Equal)
}

func TestNormalize(t *testing.T) {
	raw := "Sure! ```json\n{\"critic\":{\"priority_issues\":[{\"title\":\"Vague\",\"severity\":\"urgent\",\"fix_hint\":\"Be specific\"}]},\"rewriter\":{\"improved_prompt\":\"  Better.  \"}}\n```"
	out, err := execute(t, raw, "normalize")
	require.NoError(t, err)

	doc := gjson.Parse(out)
	assert.Equal(t, "med", doc.Get("critic.priority_issues.0.severity").String())
	assert.Equal(t, "Better.", doc.Get("rewriter.improved_prompt").String())
}

func TestNormalize_Invalid(t *testing.T) {
	_, err := execute(t, "no json here", "normalize")
	assert.ErrorIs(t, err, rewrite.ErrInvalidResponse)
}

func TestRewrite_RulesOnly(t *testing.T) {
	_, err := execute(t, "", "rewrite", "--prompt", launchPrompt)
	assert.ErrorIs(t, err, rewrite.ErrRewriteDisabled)
}

func TestRewrite_Payload(t *testing.T) {
	out, err := execute(t, "", "rewrite", "--payload", "--format", "json", "--intent", "write", "--prompt", launchPrompt)
	require.NoError(t, err)

	doc := gjson.Parse(out)
	assert.Equal(t, rewrite.CombinedSystemPrompt, doc.Get("system").String())
	assert.Contains(t, doc.Get("user").String(), launchPrompt)
}

func TestRules(t *testing.T) {
	out, err := execute(t, "", "rules", "--format", "json")
	require.NoError(t, err)

	doc := gjson.Parse(out)
	assert.Len(t, doc.Array(), 20)
	assert.Equal(t, "R001", doc.Get("0.id").String())
}

func TestReport_Metrics(t *testing.T) {
	out, err := execute(t, "", "report", "--format", "json", "--prompt", launchPrompt)
	require.NoError(t, err)

	doc := gjson.Parse(out)
	assert.Equal(t, int64(8), doc.Get("files.0.metrics.words").Int())
}
