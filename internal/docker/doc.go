// Package docker runs the headless import inside a container for
// machines that have Docker but no local editor build.
//
// This package handles:
//   - Docker client initialization with automatic socket detection
//     (Linux, macOS, Windows)
//   - Labels that mark import containers as managed by godot-import
//   - The container lifecycle of a single import: create with the project
//     bind-mounted, stream logs, wait for the exit status, remove
//
// The package uses github.com/docker/docker/client as the underlying
// Docker SDK, with version negotiation enabled for broad compatibility.
package docker
