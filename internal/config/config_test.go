package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfigJSONAndTOMLAgree(t *testing.T) {
	jsonPath := writeConfig(t, "gbkit.json", `{
  "default_target": "UTF-8",
  "infer_source": false,
  "replace_unsupported": true,
  "allowed_extensions": [".txt"],
  "color": "never"
}`)
	tomlPath := writeConfig(t, "gbkit.toml", `
default_target = "UTF-8"
infer_source = false
replace_unsupported = true
allowed_extensions = [".txt"]
color = "never"
`)

	fromJSON, err := LoadConfig(jsonPath)
	require.NoError(t, err)
	fromTOML, err := LoadConfig(tomlPath)
	require.NoError(t, err)

	assert.Equal(t, fromJSON, fromTOML)
	assert.Equal(t, "UTF-8", fromJSON.DefaultTarget)
	assert.False(t, *fromJSON.InferSource)
	assert.True(t, *fromJSON.ReplaceUnsupported)
	assert.Equal(t, []string{".txt"}, fromJSON.AllowedExtensions)
	assert.Equal(t, ColorNever, fromJSON.Color)
}

func TestLoadConfigFillsDefaults(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, "partial.json", `{"color": "always"}`))
	require.NoError(t, err)

	def := DefaultConfig()
	assert.Equal(t, ColorAlways, cfg.Color)
	assert.Equal(t, def.DefaultTarget, cfg.DefaultTarget)
	assert.True(t, *cfg.InferSource)
	assert.False(t, *cfg.ReplaceUnsupported)
	assert.Equal(t, def.AllowedExtensions, cfg.AllowedExtensions)
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = LoadConfig(writeConfig(t, "bad.json", `{not json`))
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = LoadConfig(writeConfig(t, "enc.toml", `default_target = "Shift-JIS"`))
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = LoadConfig(writeConfig(t, "color.json", `{"color": "rainbow"}`))
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestDefaultConfigValid(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())
}
