// Package model defines the domain types for the godot-import CLI.
//
// All values in this package are transient and process-local: the host
// descriptor is read once at startup, paths are resolved per invocation,
// and nothing is persisted between runs.
package model

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
)

// Host describes the machine the launcher runs on. It is derived once at
// startup and never modified afterwards.
//
// OS accepts both runtime.GOOS spellings ("windows", "linux", "darwin") and
// uname-style names ("Windows", "Linux", "Darwin"), so tests and callers can
// feed either form.
type Host struct {
	// OS is the operating-system family name.
	OS string `json:"os"`

	// Arch is the CPU architecture string (e.g. "amd64", "arm64", "aarch64").
	Arch string `json:"arch"`
}

// CurrentHost returns the Host descriptor of the running process.
func CurrentHost() Host {
	return Host{OS: runtime.GOOS, Arch: runtime.GOARCH}
}

// String returns "os/arch", the same form Go uses for build targets.
func (h Host) String() string {
	return h.OS + "/" + h.Arch
}

// Invocation is a fully resolved editor command, ready to be handed to a
// runner. ProjectPath is always absolute and has already been validated.
type Invocation struct {
	// Editor is the executable to run. On the host this is a filesystem
	// path; in container mode it is a command inside the image.
	Editor string `json:"editor"`

	// Args are the arguments passed to Editor, including the fixed
	// headless import flags.
	Args []string `json:"args"`

	// ProjectPath is the absolute path of the validated project directory.
	ProjectPath string `json:"projectPath"`
}

// CommandLine renders the invocation as a single shell-like string for
// display (dry-run and verbose output). Arguments containing spaces are
// double-quoted; no other escaping is applied.
func (inv Invocation) CommandLine() string {
	parts := make([]string, 0, len(inv.Args)+1)
	parts = append(parts, quoteArg(inv.Editor))
	for _, a := range inv.Args {
		parts = append(parts, quoteArg(a))
	}
	return strings.Join(parts, " ")
}

func quoteArg(s string) string {
	if s == "" || strings.ContainsAny(s, " \t") {
		return `"` + s + `"`
	}
	return s
}

// Sentinel errors for the launcher's fatal pre-spawn conditions. They are
// attached to CLIError values as Kind so callers can match them with
// errors.Is without the sentinel text leaking into the printed message.
var (
	// ErrUnsupportedPlatform is returned when the host OS has no editor build.
	ErrUnsupportedPlatform = errors.New("unsupported platform")

	// ErrBinaryNotFound is returned when the resolved editor path is missing.
	ErrBinaryNotFound = errors.New("editor binary not found")

	// ErrProjectNotFound is returned when the project marker file is missing.
	ErrProjectNotFound = errors.New("project not found")
)

// ExitCode defines the process exit codes used by the CLI itself. Exit codes
// of the spawned editor are forwarded verbatim and are not represented here.
type ExitCode int

const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess ExitCode = 0

	// ExitGeneralError covers every fatal pre-spawn condition: unsupported
	// platform, missing editor binary, missing project.godot, unreadable
	// config and spawn failures.
	ExitGeneralError ExitCode = 1

	// ExitSignalBase is added to the signal number when the editor is killed
	// by a signal, following the POSIX shell convention.
	ExitSignalBase ExitCode = 128
)

// CLIError is a custom error type that carries an exit code.
// This allows the CLI layer to translate domain errors into
// appropriate process exit codes.
type CLIError struct {
	// Code is the exit code to return to the OS.
	Code ExitCode

	// Message is the human-readable error description.
	Message string

	// Hint is an optional remediation line printed after the message.
	Hint string

	// Err is the underlying error, if any.
	Err error

	// Kind classifies the error (one of the Err* sentinels). It takes part
	// in errors.Is matching but is never printed.
	Kind error
}

// Error satisfies the error interface. It returns the human-readable
// error message, optionally including the underlying error.
func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for use with errors.Is/errors.As.
func (e *CLIError) Unwrap() error {
	return e.Err
}

// Is reports whether target is the error's Kind.
func (e *CLIError) Is(target error) bool {
	return e.Kind != nil && e.Kind == target
}

// WithKind sets the taxonomy sentinel and returns the same error.
func (e *CLIError) WithKind(kind error) *CLIError {
	e.Kind = kind
	return e
}

// WithHint sets the remediation hint and returns the same error so it can be
// chained onto a constructor.
func (e *CLIError) WithHint(hint string) *CLIError {
	e.Hint = hint
	return e
}

// NewCLIError creates a new CLIError with the given exit code and message.
func NewCLIError(code ExitCode, message string) *CLIError {
	return &CLIError{Code: code, Message: message}
}

// WrapCLIError creates a new CLIError that wraps an existing error.
func WrapCLIError(code ExitCode, message string, err error) *CLIError {
	return &CLIError{Code: code, Message: message, Err: err}
}
