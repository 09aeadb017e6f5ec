// Package platform maps a host descriptor to the file name of the matching
// Godot Mono editor build.
//
// Godot's build system names editor binaries as
//
//	godot.<platform>.editor.<arch>.executable.mono[.exe]
//
// where <platform> is one of "windows", "linuxbsd" or "macos". This package
// performs that mapping as a pure computation; it never touches the
// filesystem.
package platform

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/shinji-kodama/godot-import/internal/model"
)

// DefaultBinDir is the directory, relative to the working directory, where
// locally built editor binaries live.
var DefaultBinDir = filepath.Join("godot", "bin")

// Architecture tokens used in editor file names.
const (
	ArchARM64  = "arm64"
	ArchX86_64 = "x86_64"
)

// Target is the resolved (os-token, arch-token) pair for a host.
type Target struct {
	// Platform is the Godot platform token: "windows", "linuxbsd" or "macos".
	Platform string

	// Arch is the architecture token: "arm64" or "x86_64".
	Arch string

	// Suffix is the executable extension, ".exe" on Windows and empty elsewhere.
	Suffix string
}

// BinaryName returns the editor file name for the target.
func (t Target) BinaryName() string {
	return fmt.Sprintf("godot.%s.editor.%s.executable.mono%s", t.Platform, t.Arch, t.Suffix)
}

// Resolve maps a host descriptor to an editor build target.
//
// OS names are matched case-insensitively and accept both runtime.GOOS and
// uname spellings. Any other OS yields a CLIError of kind
// model.ErrUnsupportedPlatform. Architecture never fails: anything that is
// not arm64/aarch64 falls back to x86_64.
func Resolve(host model.Host) (Target, error) {
	var t Target

	switch strings.ToLower(host.OS) {
	case "windows":
		t.Platform, t.Suffix = "windows", ".exe"
	case "linux":
		t.Platform = "linuxbsd"
	case "darwin", "macos":
		t.Platform = "macos"
	default:
		return Target{}, model.NewCLIError(
			model.ExitGeneralError,
			fmt.Sprintf("Unsupported platform: %s", host.OS),
		).WithKind(model.ErrUnsupportedPlatform)
	}

	t.Arch = archToken(host.Arch)
	return t, nil
}

// archToken folds the many spellings of 64-bit ARM into "arm64". Every other
// value, including the empty string and 32-bit architectures, is treated as
// x86_64 because that is the only other editor build that exists.
func archToken(arch string) string {
	switch strings.ToLower(arch) {
	case "arm64", "aarch64":
		return ArchARM64
	default:
		return ArchX86_64
	}
}

// BinaryName returns the editor file name for host.
func BinaryName(host model.Host) (string, error) {
	t, err := Resolve(host)
	if err != nil {
		return "", err
	}
	return t.BinaryName(), nil
}

// BinaryPath joins binDir with the editor file name for host. An empty
// binDir means DefaultBinDir.
func BinaryPath(binDir string, host model.Host) (string, error) {
	name, err := BinaryName(host)
	if err != nil {
		return "", err
	}
	if binDir == "" {
		binDir = DefaultBinDir
	}
	return filepath.Join(binDir, name), nil
}
