package launcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/shinji-kodama/godot-import/internal/model"
)

// HostRunner runs the editor as a direct child process. The child shares
// the given streams (the launcher's own by default); its output is never
// captured or parsed.
type HostRunner struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Run starts the editor and waits for it to finish.
//
// A child that ran and exited non-zero is not an error: its status is
// returned with a nil error. Only a failure to start the process (missing
// or non-executable binary) produces an error.
func (r *HostRunner) Run(ctx context.Context, inv model.Invocation) (int, error) {
	// #nosec G204 -- the editor path is chosen by the user on purpose.
	cmd := exec.CommandContext(ctx, inv.Editor, inv.Args...)
	cmd.Stdin = orReader(r.Stdin, os.Stdin)
	cmd.Stdout = orWriter(r.Stdout, os.Stdout)
	cmd.Stderr = orWriter(r.Stderr, os.Stderr)

	err := cmd.Run()
	if err == nil {
		return int(model.ExitSuccess), nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return ExitStatus(exitErr.ProcessState), nil
	}

	return int(model.ExitGeneralError), model.WrapCLIError(
		model.ExitGeneralError,
		fmt.Sprintf("failed to start editor %s", inv.Editor),
		err,
	)
}

func orReader(r, def io.Reader) io.Reader {
	if r == nil {
		return def
	}
	return r
}

func orWriter(w, def io.Writer) io.Writer {
	if w == nil {
		return def
	}
	return w
}
