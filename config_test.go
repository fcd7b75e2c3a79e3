package defog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/defogjs/defog/internal"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()
	config := DefaultConfig()
	assert.Equal(t, "defog", config.Name)
	assert.Equal(t, internal.DefaultMaxPasses, config.MaxPasses)
	assert.Empty(t, config.Rules)
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
name: myproject
max-passes: 10
rules:
  numeric-literal:
    disabled: true
  binary-expression:
    disabled: false
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	config, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "myproject", config.Name)
	assert.Equal(t, 10, config.MaxPasses)
	assert.True(t, config.Rules["numeric-literal"].Disabled)
	assert.False(t, config.Rules["binary-expression"].Disabled)
}

func TestLoadConfigClampsMaxPasses(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("max-passes: -1\n"), 0o644))

	config, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, internal.DefaultMaxPasses, config.MaxPasses)
}

func TestLoadConfigMissingExplicitPath(t *testing.T) {
	t.Parallel()
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadConfigMalformed(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("rules: [not a map\n"), 0o644))
	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestNewAppliesConfig(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
rules:
  numeric-literal:
    disabled: true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	engine, err := New(path)
	require.NoError(t, err)
	report, err := engine.Evaluate("var x = 0xFF;")
	require.NoError(t, err)
	assert.Equal(t, "var x = 0xFF;\n", report.Output)
}
