//go:build plan9

package launcher

import (
	"os"

	"github.com/shinji-kodama/godot-import/internal/model"
)

// ExitStatus converts a finished process state into the launcher's exit
// code. Plan 9 reports exit strings rather than signals, so the portable
// exit code is forwarded as is.
func ExitStatus(ps *os.ProcessState) int {
	if ps == nil {
		return int(model.ExitGeneralError)
	}
	return ps.ExitCode()
}
