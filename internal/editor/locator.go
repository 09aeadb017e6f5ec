// Package editor locates the Godot editor executable to invoke.
//
// An explicit override always wins and is used verbatim: the --editor flag,
// then the GODOT_EDITOR environment variable, then the "editor" key of the
// config file. Only when none of these is set does the locator fall back to
// platform detection, and only that computed path is checked for existence.
package editor

import (
	"fmt"
	"os"

	"github.com/shinji-kodama/godot-import/internal/model"
	"github.com/shinji-kodama/godot-import/internal/platform"
)

// EnvEditor is the environment variable that overrides editor detection.
const EnvEditor = "GODOT_EDITOR"

// Source records where a located editor path came from.
type Source string

const (
	SourceFlag     Source = "flag"
	SourceEnv      Source = "env"
	SourceConfig   Source = "config"
	SourceDetected Source = "detected"

	// SourceImage marks a command that lives inside a container image and
	// cannot be checked from the host.
	SourceImage Source = "image"
)

// Location is the result of a successful Locate call.
type Location struct {
	Path   string
	Source Source
}

// IsOverride reports whether the path was supplied rather than computed.
// Overrides skip both platform detection and the existence check.
func (l Location) IsOverride() bool {
	return l.Source != SourceDetected
}

// Static always returns the same location. It stands in for a Locator
// when the editor is not on the host filesystem.
type Static Location

// Locate returns s regardless of host.
func (s Static) Locate(model.Host) (Location, error) {
	return Location(s), nil
}

// Locator resolves the editor binary path. The zero value reads the real
// environment and filesystem and uses platform.DefaultBinDir.
type Locator struct {
	// FlagEditor is the value of the --editor flag, if any.
	FlagEditor string

	// ConfigEditor is the "editor" value from the config file, if any.
	ConfigEditor string

	// BinDir is the directory searched by platform detection.
	BinDir string

	// LookupEnv defaults to os.LookupEnv. Tests replace it to avoid
	// touching the process environment.
	LookupEnv func(key string) (string, bool)

	// Logf receives trace output. Nil disables tracing.
	Logf func(format string, args ...any)
}

// Locate returns the editor path for host.
//
// When an override is present host is ignored entirely, so an unsupported
// platform does not fail as long as the user says which binary to run.
// A computed path that does not exist yields a CLIError of kind
// model.ErrBinaryNotFound with a remediation hint.
func (l *Locator) Locate(host model.Host) (Location, error) {
	if loc, ok := l.override(); ok {
		l.logf("Using editor override from %s: %s", loc.Source, loc.Path)
		return loc, nil
	}

	path, err := platform.BinaryPath(l.BinDir, host)
	if err != nil {
		return Location{}, err
	}
	l.logf("Detected host %s, expecting editor at %s", host, path)

	if _, err := os.Stat(path); err != nil {
		return Location{}, model.NewCLIError(
			model.ExitGeneralError,
			fmt.Sprintf("Editor binary not found: %s", path),
		).WithKind(model.ErrBinaryNotFound).
			WithHint(fmt.Sprintf("Build the editor first, or set %s to an existing editor binary", EnvEditor))
	}

	return Location{Path: path, Source: SourceDetected}, nil
}

// override returns the first non-empty override in precedence order.
// Empty strings count as unset, matching how shells treat `VAR=`.
func (l *Locator) override() (Location, bool) {
	if l.FlagEditor != "" {
		return Location{Path: l.FlagEditor, Source: SourceFlag}, true
	}

	lookup := l.LookupEnv
	if lookup == nil {
		lookup = os.LookupEnv
	}
	if v, ok := lookup(EnvEditor); ok && v != "" {
		return Location{Path: v, Source: SourceEnv}, true
	}

	if l.ConfigEditor != "" {
		return Location{Path: l.ConfigEditor, Source: SourceConfig}, true
	}

	return Location{}, false
}

func (l *Locator) logf(format string, args ...any) {
	if l.Logf != nil {
		l.Logf(format, args...)
	}
}
