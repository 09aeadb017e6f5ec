// Package project validates Godot project directories and reads basic
// metadata from their project.godot file.
package project

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/shinji-kodama/godot-import/internal/model"
)

// MarkerFile is the file whose presence identifies a Godot project directory.
const MarkerFile = "project.godot"

// DefaultPath is the project directory used when none is given.
var DefaultPath = "." + string(filepath.Separator) + "game"

// Validate resolves path to an absolute directory and checks that it
// contains MarkerFile as a regular file. An empty path means DefaultPath.
//
// On success the absolute path is returned. A missing marker yields a
// CLIError of kind model.ErrProjectNotFound naming the resolved path.
func Validate(path string) (string, error) {
	if path == "" {
		path = DefaultPath
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", model.WrapCLIError(
			model.ExitGeneralError,
			fmt.Sprintf("failed to resolve project path %q", path),
			err,
		).WithKind(model.ErrProjectNotFound)
	}

	// A directory named project.godot does not make a project.
	info, err := os.Stat(filepath.Join(abs, MarkerFile))
	if err != nil || !info.Mode().IsRegular() {
		return "", model.NewCLIError(
			model.ExitGeneralError,
			fmt.Sprintf("No %s found in: %s", MarkerFile, abs),
		).WithKind(model.ErrProjectNotFound)
	}

	return abs, nil
}
