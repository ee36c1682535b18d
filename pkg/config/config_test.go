package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/japaniel/alifba/pkg/selection"
)

func TestDefault(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)
	assert.Equal(t, "alifba.db", c.Database.Path)
	assert.Equal(t, "lam", c.Segmentation.LamID)
	assert.Equal(t, 4, c.Ingest.Workers)
	assert.Equal(t, 100*time.Millisecond, c.Ingest.FlushInterval)
	require.NoError(t, c.Validate())

	p, err := c.Teacher.Parameters()
	require.NoError(t, err)
	assert.Equal(t, selection.MayRepeatIfNotEnough, p.CorrectSeverity)
	assert.Equal(t, selection.RepeatWhenFull, p.CorrectHistory)
	assert.Equal(t, selection.NoFilter, p.WrongHistory)
	assert.True(t, p.SortPacksByDifficulty)
}

func TestLoadFileOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "alifba.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
content:
  path: packs/
segmentation:
  collapse_symbols: [shaddah]
teacher:
  correct_severity: strict
`), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "packs/", c.Content.Path)
	assert.Equal(t, []string{"shaddah"}, c.Segmentation.CollapseSymbols)
	assert.Equal(t, "alifba.db", c.Database.Path, "unset keys keep their defaults")

	p, err := c.Teacher.Parameters()
	require.NoError(t, err)
	assert.Equal(t, selection.Strict, p.CorrectSeverity)
}

func TestLoadRejectsBadValues(t *testing.T) {
	dir := t.TempDir()
	bad := map[string]string{
		"severity.yaml": "teacher:\n  wrong_severity: sometimes\n",
		"history.yaml":  "teacher:\n  correct_history: forever\n",
		"workers.yaml":  "ingest:\n  workers: 0\n",
		"syntax.yaml":   "ingest: [",
	}
	for name, body := range bad {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
		_, err := Load(path)
		assert.Error(t, err, name)
	}
	_, err := Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)
	env := map[string]string{
		EnvDB:      "/tmp/x.db",
		EnvContent: "pack.json",
		EnvLogMode: "prod",
		EnvWorkers: "not-a-number",
	}
	c.applyEnv(func(k string) string { return env[k] })
	assert.Equal(t, "/tmp/x.db", c.Database.Path)
	assert.Equal(t, "pack.json", c.Content.Path)
	assert.Equal(t, "prod", c.Logging.Mode)
	assert.Equal(t, 4, c.Ingest.Workers, "bad worker counts are ignored")

	t.Setenv(EnvWorkers, "9")
	c, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, 9, c.Ingest.Workers)
}
