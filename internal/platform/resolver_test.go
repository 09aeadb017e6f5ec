package platform

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shinji-kodama/godot-import/internal/model"
)

// TestBinaryName covers every supported (OS, architecture) pair in both
// runtime.GOOS and uname spellings.
func TestBinaryName(t *testing.T) {
	tests := []struct {
		name string
		host model.Host
		want string
	}{
		{"windows x86_64", model.Host{OS: "Windows", Arch: "x86_64"}, "godot.windows.editor.x86_64.executable.mono.exe"},
		{"windows amd64 goos", model.Host{OS: "windows", Arch: "amd64"}, "godot.windows.editor.x86_64.executable.mono.exe"},
		{"windows arm64", model.Host{OS: "Windows", Arch: "ARM64"}, "godot.windows.editor.arm64.executable.mono.exe"},
		{"linux arm64", model.Host{OS: "Linux", Arch: "arm64"}, "godot.linuxbsd.editor.arm64.executable.mono"},
		{"linux aarch64", model.Host{OS: "linux", Arch: "aarch64"}, "godot.linuxbsd.editor.arm64.executable.mono"},
		{"linux x86_64", model.Host{OS: "Linux", Arch: "x86_64"}, "godot.linuxbsd.editor.x86_64.executable.mono"},
		{"darwin aarch64", model.Host{OS: "Darwin", Arch: "aarch64"}, "godot.macos.editor.arm64.executable.mono"},
		{"darwin arm64 goos", model.Host{OS: "darwin", Arch: "arm64"}, "godot.macos.editor.arm64.executable.mono"},
		{"darwin x86_64", model.Host{OS: "Darwin", Arch: "x86_64"}, "godot.macos.editor.x86_64.executable.mono"},
		{"unknown arch falls back", model.Host{OS: "Linux", Arch: "riscv64"}, "godot.linuxbsd.editor.x86_64.executable.mono"},
		{"empty arch falls back", model.Host{OS: "Linux", Arch: ""}, "godot.linuxbsd.editor.x86_64.executable.mono"},
		{"aarch64 uppercase", model.Host{OS: "LINUX", Arch: "AARCH64"}, "godot.linuxbsd.editor.arm64.executable.mono"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BinaryName(tt.host)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// TestBinaryName_Unsupported checks that unknown OS values are rejected with
// the user-facing message and the taxonomy sentinel.
func TestBinaryName_Unsupported(t *testing.T) {
	for _, osName := range []string{"Plan9", "freebsd", "", "android"} {
		t.Run(osName, func(t *testing.T) {
			_, err := BinaryName(model.Host{OS: osName, Arch: "x86_64"})
			require.Error(t, err)
			assert.True(t, errors.Is(err, model.ErrUnsupportedPlatform))

			var cliErr *model.CLIError
			require.True(t, errors.As(err, &cliErr))
			assert.Equal(t, model.ExitGeneralError, cliErr.Code)
			assert.Equal(t, "Unsupported platform: "+osName, cliErr.Message)
		})
	}
}

// TestBinaryPath verifies the default directory and custom directories.
func TestBinaryPath(t *testing.T) {
	host := model.Host{OS: "Linux", Arch: "x86_64"}

	got, err := BinaryPath("", host)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("godot", "bin", "godot.linuxbsd.editor.x86_64.executable.mono"), got)

	got, err = BinaryPath(filepath.Join("build", "out"), host)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("build", "out", "godot.linuxbsd.editor.x86_64.executable.mono"), got)

	_, err = BinaryPath("", model.Host{OS: "Plan9"})
	assert.True(t, errors.Is(err, model.ErrUnsupportedPlatform))
}

// TestBinaryPath_Idempotent ensures repeated resolution yields identical
// results with no state carried between calls.
func TestBinaryPath_Idempotent(t *testing.T) {
	host := model.Host{OS: "Darwin", Arch: "arm64"}
	first, err := BinaryPath("", host)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := BinaryPath("", host)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}
