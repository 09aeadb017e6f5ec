// Package model defines the domain types and value objects for the
// godot-import CLI.
//
// This package contains pure data structures with no external dependencies:
// the Host descriptor, the resolved Invocation, and the exit codes and
// CLIError type used to turn fatal conditions into process exit statuses.
package model
