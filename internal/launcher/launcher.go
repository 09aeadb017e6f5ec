// Package launcher runs the Godot editor's headless import against a
// validated project and reports the editor's exit status.
//
// The flow is strictly linear:
//
//	locate editor → validate project → build invocation → run → exit code
//
// Any failure before the run step is a *model.CLIError and nothing is
// spawned. Once the editor runs, its exit status is returned unchanged.
package launcher

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/shinji-kodama/godot-import/internal/editor"
	"github.com/shinji-kodama/godot-import/internal/model"
	"github.com/shinji-kodama/godot-import/internal/project"
)

// Fixed editor flags that trigger a headless resource import.
const (
	FlagHeadless = "--headless"
	FlagImport   = "--import"
	FlagPath     = "--path"
)

// EditorSource resolves the editor command for a host. *editor.Locator and
// editor.Static both satisfy it.
type EditorSource interface {
	Locate(host model.Host) (editor.Location, error)
}

// Runner executes an invocation and returns the editor's exit status.
// A non-nil error means the editor could not be started at all.
type Runner interface {
	Run(ctx context.Context, inv model.Invocation) (int, error)
}

// PathMapper is implemented by runners that execute the editor somewhere
// the host project path is not visible (e.g. inside a container). The
// launcher passes the mapped path to --path.
type PathMapper interface {
	MapProjectPath(hostPath string) string
}

// Options are the per-invocation inputs.
type Options struct {
	// Host is consulted only when the editor source needs platform detection.
	Host model.Host

	// ProjectPath may be relative; empty means project.DefaultPath.
	ProjectPath string

	// ExtraArgs are appended after the fixed import flags.
	ExtraArgs []string

	// DryRun prints the command line instead of running it.
	DryRun bool
}

// Launcher wires an editor source to a runner.
type Launcher struct {
	Editor EditorSource
	Runner Runner

	// Stdout receives dry-run output. Defaults to os.Stdout.
	Stdout io.Writer

	// Logf receives trace output. Nil disables tracing.
	Logf func(format string, args ...any)
}

// New creates a Launcher with default output streams.
func New(src EditorSource, runner Runner) *Launcher {
	return &Launcher{Editor: src, Runner: runner, Stdout: os.Stdout}
}

// Prepare performs every pre-spawn step and returns the invocation that
// Run would execute. It never starts a process.
func (l *Launcher) Prepare(opts Options) (model.Invocation, error) {
	loc, err := l.Editor.Locate(opts.Host)
	if err != nil {
		return model.Invocation{}, err
	}

	abs, err := project.Validate(opts.ProjectPath)
	if err != nil {
		return model.Invocation{}, err
	}
	l.logProject(abs)

	pathArg := abs
	if m, ok := l.Runner.(PathMapper); ok {
		pathArg = m.MapProjectPath(abs)
	}

	return model.Invocation{
		Editor:      loc.Path,
		Args:        ImportArgs(pathArg, opts.ExtraArgs),
		ProjectPath: abs,
	}, nil
}

// Run prepares the invocation and executes it, returning the editor's
// exit status. In dry-run mode the command line is printed and 0 returned.
func (l *Launcher) Run(ctx context.Context, opts Options) (int, error) {
	inv, err := l.Prepare(opts)
	if err != nil {
		return int(model.ExitGeneralError), err
	}

	if opts.DryRun {
		fmt.Fprintln(l.stdout(), inv.CommandLine())
		return int(model.ExitSuccess), nil
	}

	l.logf("Running %s", inv.CommandLine())
	code, err := l.Runner.Run(ctx, inv)
	if err != nil {
		return int(model.ExitGeneralError), err
	}
	l.logf("Editor exited with status %d", code)
	return code, nil
}

// ImportArgs builds the editor argument list for a headless import of the
// project at path.
func ImportArgs(path string, extra []string) []string {
	args := make([]string, 0, 4+len(extra))
	args = append(args, FlagHeadless, FlagImport, FlagPath, path)
	return append(args, extra...)
}

// logProject reports project metadata when tracing is on. A project.godot
// that cannot be parsed is only mentioned; the editor is the authority on
// its format.
func (l *Launcher) logProject(dir string) {
	if l.Logf == nil {
		return
	}
	info, err := project.ReadInfo(dir)
	if err != nil {
		l.logf("Could not read project metadata: %v", err)
		return
	}
	l.logf("Project %q (config_version=%d, features=%v)", info.Name, info.ConfigVersion, info.Features)
	if !info.UsesCSharp() {
		l.logf("Project does not declare the C# feature; a Mono editor is not required")
	}
}

func (l *Launcher) stdout() io.Writer {
	if l.Stdout == nil {
		return os.Stdout
	}
	return l.Stdout
}

func (l *Launcher) logf(format string, args ...any) {
	if l.Logf != nil {
		l.Logf(format, args...)
	}
}
