package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func write(t *testing.T, name, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func noEnv(t *testing.T) string {
	return filepath.Join(t.TempDir(), "missing.env")
}

func TestDefaultIsValidOnceInputIsSet(t *testing.T) {
	cfg := Default()
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
	cfg.Input.Path = "titanic.csv"
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, AllStages, cfg.Stages)
	assert.Equal(t, "eda_pipeline.log", cfg.Logging.File)
}

func TestLoadYAML(t *testing.T) {
	p := write(t, "edachain.yaml", `
input:
  path: data/titanic.csv
target: survived
strategy: median
stages: [summary, impute]
plots:
  enabled: false
logging:
  level: debug
  suppress: ["^findfont"]
`)
	cfg, err := Load(p, noEnv(t))
	require.NoError(t, err)
	assert.Equal(t, "data/titanic.csv", cfg.Input.Path)
	assert.Equal(t, "median", cfg.Strategy)
	assert.Equal(t, []string{"summary", "impute"}, cfg.Stages)
	assert.False(t, cfg.Plots.Enabled)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, []string{"^findfont"}, cfg.Logging.Suppress)
	assert.Equal(t, 20, cfg.Bins, "unset fields keep defaults")
}

func TestLoadTOMLAndJSON(t *testing.T) {
	tp := write(t, "edachain.toml", `
strategy = "median"
bins = 10
[input]
path = "titanic.parquet"
`)
	cfg, err := Load(tp, noEnv(t))
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.Bins)
	assert.Equal(t, "titanic.parquet", cfg.Input.Path)

	jp := write(t, "edachain.json", `{"input": {"path": "t.jsonl"}, "max_cardinality": 5}`)
	cfg, err = Load(jp, noEnv(t))
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.MaxCardinality)
}

func TestEnvOverridesFile(t *testing.T) {
	p := write(t, "edachain.yaml", "input:\n  path: a.csv\nstrategy: median\n")
	env := write(t, "test.env", "EDA_TARGET=alive\nEDA_BINS=7\n")
	t.Setenv("EDA_STRATEGY", "mean")
	t.Setenv("EDA_LOGGING_LEVEL", "warn")

	cfg, err := Load(p, env)
	require.NoError(t, err)
	assert.Equal(t, "mean", cfg.Strategy)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, "alive", cfg.Target)
	assert.Equal(t, 7, cfg.Bins)
	t.Cleanup(func() {
		os.Unsetenv("EDA_TARGET")
		os.Unsetenv("EDA_BINS")
	})
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), noEnv(t))
	assert.ErrorIs(t, err, ErrConfigNotFound)

	_, err = Load(write(t, "edachain.ini", "x=1"), noEnv(t))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = Load(write(t, "bad.yaml", "input:\n  path: a.csv\nstrategy: mode\n"), noEnv(t))
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = Load(write(t, "bad.yaml", "input:\n  path: a.csv\nstages: [summary, plotting]\n"), noEnv(t))
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestBivariateNeedsTarget(t *testing.T) {
	cfg := Default()
	cfg.Input.Path = "a.csv"
	cfg.Target = ""
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
	cfg.Stages = []string{"summary"}
	assert.NoError(t, cfg.Validate())
}

func TestSQLInput(t *testing.T) {
	cfg := Default()
	cfg.Input = InputConfig{Driver: "sqlite", DSN: "file:t.db", Query: "select * from titanic"}
	assert.NoError(t, cfg.Validate())
	cfg.Input.Query = ""
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
}

func TestReadLeavesValidationToCaller(t *testing.T) {
	p := write(t, "edachain.yaml", "strategy: median\n")
	cfg, err := Read(p, noEnv(t))
	require.NoError(t, err)
	assert.Equal(t, "median", cfg.Strategy)
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)

	_, err = Load(p, noEnv(t))
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestFillValues(t *testing.T) {
	p := write(t, "edachain.yaml", "input:\n  path: a.csv\nfill_values:\n  deck: U\n  age: \"0\"\n")
	cfg, err := Load(p, noEnv(t))
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"deck": "U", "age": "0"}, cfg.FillValues)

	t.Setenv("EDA_FILL_VALUES", "embarked:S")
	cfg, err = Load(p, noEnv(t))
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"embarked": "S"}, cfg.FillValues)
}
