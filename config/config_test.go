package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aschroede/vemap/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	c := config.Default()
	require.NoError(t, c.Validate())
	assert.Equal(t, "TestResults", c.TestDir)
	assert.Equal(t, "INFO", c.LogLevel)
	assert.Equal(t, "MINFILL", c.Heuristic)
	assert.Equal(t, config.ExporterNone, c.TraceExporter)
	assert.False(t, c.AnyBackend())
}

func TestParse(t *testing.T) {
	c, err := config.Parse([]byte(`
input: alarm.fg
output: run1.log
log_level: DEBUG
hypothesis_vars: [0, 1]
evidence_vars: [4]
evidence_values: [1]
ve_map: true
jt_map: true
heuristic: MINWEIGHT
state_warn_limit: 1024
trace_exporter: stdout
`))
	require.NoError(t, err)
	require.NoError(t, c.Validate())
	assert.Equal(t, "alarm.fg", c.Input)
	assert.Equal(t, "TestResults", c.TestDir, "unset keys keep defaults")
	assert.Equal(t, []int{0, 1}, c.HypothesisVars)
	assert.Equal(t, []int{4}, c.EvidenceVars)
	assert.True(t, c.VEMap && c.JTMap && !c.VE)
	assert.Equal(t, int64(1024), c.StateWarnLimit)
	assert.True(t, c.AnyBackend())

	c, err = config.Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), c)

	_, err = config.Parse([]byte("hypothesis: [0]\n"))
	assert.ErrorIs(t, err, config.ErrInvalidConfig, "unknown key")
	_, err = config.Parse([]byte("ve: [\n"))
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestValidate(t *testing.T) {
	tests := map[string]func(*config.Run){
		"empty input":       func(c *config.Run) { c.Input = "" },
		"empty output":      func(c *config.Run) { c.Output = "" },
		"log level":         func(c *config.Run) { c.LogLevel = "LOUD" },
		"heuristic":         func(c *config.Run) { c.Heuristic = "RANDOM" },
		"evidence mismatch": func(c *config.Run) { c.EvidenceVars = []int{1} },
		"negative label":    func(c *config.Run) { c.HypothesisVars = []int{-1} },
		"negative limit":    func(c *config.Run) { c.StateWarnLimit = -5 },
		"unknown exporter":  func(c *config.Run) { c.TraceExporter = "jaeger" },
		"negative evidence": func(c *config.Run) { c.EvidenceVars, c.EvidenceValues = []int{1}, []int{-1} },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			c := config.Default()
			mutate(&c)
			assert.ErrorIs(t, c.Validate(), config.ErrInvalidConfig)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	require.NoError(t, os.WriteFile(path, []byte("hypothesis_vars: [2]\nlog_level: WARNING\n"), 0o644))

	t.Setenv("VEMAP_LOG_LEVEL", "ERROR")
	t.Setenv("VEMAP_VERBOSE_TRACE", "true")
	t.Setenv("VEMAP_STATE_WARN_LIMIT", "64")
	c, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, []int{2}, c.HypothesisVars)
	assert.Equal(t, "ERROR", c.LogLevel, "environment wins over the file")
	assert.True(t, c.VerboseTrace)
	assert.Equal(t, int64(64), c.StateWarnLimit)

	t.Setenv("VEMAP_STATE_WARN_LIMIT", "many")
	_, err = config.Load(path)
	assert.ErrorIs(t, err, config.ErrInvalidConfig)

	_, err = config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_NoFile(t *testing.T) {
	t.Setenv("VEMAP_HEURISTIC", "MINNEIGHBORS")
	c, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, "MINNEIGHBORS", c.Heuristic)
}
