//go:build !plan9

package launcher

import (
	"os"
	"syscall"

	"github.com/shinji-kodama/godot-import/internal/model"
)

// ExitStatus converts a finished process state into the launcher's exit
// code. Normal exits are forwarded verbatim. A child killed by signal N
// maps to 128+N, the value a POSIX shell would report; os.ProcessState
// alone would report -1.
func ExitStatus(ps *os.ProcessState) int {
	if ps == nil {
		return int(model.ExitGeneralError)
	}
	if ws, ok := ps.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		return int(model.ExitSignalBase) + int(ws.Signal())
	}
	return ps.ExitCode()
}
