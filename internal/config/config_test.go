package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shinji-kodama/godot-import/internal/model"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_NoFile(t *testing.T) {
	cfg, err := Load("", t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, cfg.Path)
	assert.Empty(t, cfg.Editor)
	assert.Empty(t, cfg.ContainerImage())
	assert.Equal(t, DefaultContainerEditor, cfg.ContainerEditor())
}

func TestLoad_YAML(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, ".godot-import.yaml", `
# Launcher defaults for CI.
editor: /opt/godot/godot.mono
binDir: build/bin
project: ./client
args:
  - --verbose
docker:
  image: barichello/godot-ci:mono-4.3
  editor: /usr/local/bin/godot
  pull: true
`)

	cfg, err := Load("", dir)
	require.NoError(t, err)
	assert.Equal(t, path, cfg.Path)
	assert.Equal(t, "/opt/godot/godot.mono", cfg.Editor)
	assert.Equal(t, "build/bin", cfg.BinDir)
	assert.Equal(t, "./client", cfg.Project)
	assert.Equal(t, []string{"--verbose"}, cfg.Args)
	assert.Equal(t, "barichello/godot-ci:mono-4.3", cfg.ContainerImage())
	assert.Equal(t, "/usr/local/bin/godot", cfg.ContainerEditor())
	assert.True(t, cfg.Docker.Pull)
}

func TestLoad_JSONC(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ".godot-import.jsonc", `{
  // Local editor build.
  "binDir": "engine/bin",
  /* default project */
  "project": "./game",
  "args": ["--quit-after", "2",],
}`)

	cfg, err := Load("", dir)
	require.NoError(t, err)
	assert.Equal(t, "engine/bin", cfg.BinDir)
	assert.Equal(t, "./game", cfg.Project)
	assert.Equal(t, []string{"--quit-after", "2"}, cfg.Args)
	assert.Nil(t, cfg.Docker)
}

// TestLoad_CandidateOrder checks that YAML wins over JSON when both exist.
func TestLoad_CandidateOrder(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ".godot-import.json", `{"binDir": "from-json"}`)
	writeFile(t, dir, ".godot-import.yml", `binDir: from-yml`)

	cfg, err := Load("", dir)
	require.NoError(t, err)
	assert.Equal(t, "from-yml", cfg.BinDir)
}

func TestLoad_Explicit(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "ci.json", `{"editor": "/ci/godot"}`)

	cfg, err := Load(path, t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "/ci/godot", cfg.Editor)
}

func TestLoad_ExplicitMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), "")
	require.Error(t, err)

	var cliErr *model.CLIError
	require.ErrorAs(t, err, &cliErr)
	assert.Equal(t, model.ExitGeneralError, cliErr.Code)
	assert.Contains(t, cliErr.Message, "failed to read config file")
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name     string
		file     string
		content  string
		contains string
	}{
		{"unknown yaml key", ".godot-import.yaml", "editr: /typo\n", "failed to parse"},
		{"unknown json key", ".godot-import.json", `{"editr": "/typo"}`, "failed to parse"},
		{"malformed yaml", ".godot-import.yaml", "args: [unterminated\n", "failed to parse"},
		{"docker without image", ".godot-import.yaml", "docker:\n  pull: true\n", "docker.image"},
		{"empty arg", ".godot-import.yaml", "args: ['  ']\n", "args[0]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeFile(t, dir, tt.file, tt.content)

			_, err := Load("", dir)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}

func TestParse_Empty(t *testing.T) {
	for _, f := range []Format{FormatYAML, FormatJSON} {
		t.Run(string(f), func(t *testing.T) {
			cfg, err := Parse([]byte("  \n"), f)
			require.NoError(t, err)
			assert.Empty(t, cfg.Editor)
		})
	}

	cfg, err := Parse([]byte("// only a comment\n"), FormatJSON)
	require.NoError(t, err)
	assert.Empty(t, cfg.Editor)
}

func TestFormatOf(t *testing.T) {
	assert.Equal(t, FormatJSON, formatOf("a.json"))
	assert.Equal(t, FormatJSON, formatOf("a.JSONC"))
	assert.Equal(t, FormatYAML, formatOf("a.yaml"))
	assert.Equal(t, FormatYAML, formatOf("a.conf"))
}
