package docker

import (
	"path/filepath"

	"github.com/docker/docker/api/types/filters"

	"github.com/shinji-kodama/godot-import/internal/model"
)

// Label keys applied to every import container. All keys share the
// "godot-import." prefix so they never collide with labels set by other
// tools.
const (
	LabelPrefix = "godot-import."

	// LabelManagedBy identifies containers created by this CLI.
	LabelManagedBy = LabelPrefix + "managed-by"

	// LabelProject stores the absolute host path of the imported project.
	LabelProject = LabelPrefix + "project"

	// LabelProjectName stores the base name of the project directory, for
	// readable `docker ps` output.
	LabelProjectName = LabelPrefix + "project-name"

	// LabelEditor stores the editor command run inside the container.
	LabelEditor = LabelPrefix + "editor"
)

// ManagedByValue is the value of LabelManagedBy on every import container.
const ManagedByValue = "godot-import"

// BuildLabels returns the label set for the container running inv.
func BuildLabels(inv model.Invocation) map[string]string {
	return map[string]string{
		LabelManagedBy:   ManagedByValue,
		LabelProject:     inv.ProjectPath,
		LabelProjectName: filepath.Base(inv.ProjectPath),
		LabelEditor:      inv.Editor,
	}
}

// IsManaged reports whether labels mark a container created by this CLI.
func IsManaged(labels map[string]string) bool {
	return labels[LabelManagedBy] == ManagedByValue
}

// projectFilter selects this CLI's containers for one project. Docker
// evaluates it server-side.
func projectFilter(projectPath string) filters.Args {
	return filters.NewArgs(
		filters.Arg("label", LabelManagedBy+"="+ManagedByValue),
		filters.Arg("label", LabelProject+"="+projectPath),
	)
}
