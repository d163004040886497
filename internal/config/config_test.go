package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phobologic/treepath/internal/lang"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), DefaultPath)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadMissing(t *testing.T) {
	t.Parallel()
	missing := filepath.Join(t.TempDir(), DefaultPath)

	cfg, err := Load(missing, false)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	_, err = Load(missing, true)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadOverridesDefaults(t *testing.T) {
	t.Parallel()
	path := writeConfig(t, `
exclude:
  - "**/Migrations/**"
max_files: 50
concurrency: 2
format: toon
named_paths: true
`)

	cfg, err := Load(path, true)
	require.NoError(t, err)
	assert.Equal(t, []string{"csharp"}, cfg.Languages)
	assert.Equal(t, []string{"**/Migrations/**"}, cfg.Exclude)
	assert.Equal(t, 50, cfg.MaxFiles)
	assert.Equal(t, 2, cfg.Concurrency)
	assert.Equal(t, FormatTOON, cfg.Format)
	assert.True(t, cfg.NamedPaths)
	assert.Equal(t, Default().MaxFileSize, cfg.MaxFileSize)
}

func TestLoadEmptyFile(t *testing.T) {
	t.Parallel()
	cfg, err := Load(writeConfig(t, ""), true)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadRejects(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		target  error
	}{
		{"unknown language", "languages: [cobol]\n", lang.ErrUnsupportedLanguage},
		{"unknown format", "format: xml\n", ErrInvalidConfig},
		{"negative max files", "max_files: -1\n", ErrInvalidConfig},
		{"negative concurrency", "concurrency: -4\n", ErrInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Load(writeConfig(t, tt.content), true)
			assert.ErrorIs(t, err, tt.target)
		})
	}

	_, err := Load(writeConfig(t, "colour: red\n"), true)
	assert.ErrorContains(t, err, "colour")
}

func TestWriteRoundTrip(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), DefaultPath)

	want := Default()
	want.MaxFiles = 10
	want.SkipTests = true
	require.NoError(t, want.Write(path))

	got, err := Load(path, true)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
