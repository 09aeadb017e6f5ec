// Package cli implements the cobra-based command line for godot-import.
//
// The tool has a single root command (import.go) that runs the headless
// import. This file defines the root command wiring, global flags, error
// formatting and the translation of errors into process exit codes.
package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/godot-import/internal/model"
)

// Global flag variables, bound to persistent flags on the root command.
var (
	// jsonOutput switches error output to a JSON object on stderr.
	jsonOutput bool

	// verbose enables [verbose] trace lines on stderr.
	verbose bool
)

// version, commit, and date are set at build time via ldflags.
// They are injected from the main package to display version information.
var (
	// Version is the semantic version of the binary (e.g., "1.0.0").
	Version = "dev"

	// Commit is the Git commit hash the binary was built from.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"
)

// detectHost is replaced in tests to simulate other platforms.
var detectHost = model.CurrentHost

// NewRootCommand creates and configures the root cobra command.
func NewRootCommand() *cobra.Command {
	opts := &importOptions{}

	rootCmd := &cobra.Command{
		Use:   "godot-import [project-path] [-- editor-args...]",
		Short: "Run the Godot editor's headless asset import on a project",
		Long: `godot-import locates the Godot Mono editor built for this machine under
godot/bin/ and runs it headless with --import against a project directory,
exiting with the editor's own exit status.

The project path defaults to ./game and must contain project.godot.
Set GODOT_EDITOR (or pass --editor) to use a specific editor binary.

Examples:
  godot-import
  godot-import ./client
  GODOT_EDITOR=/opt/godot/godot.mono godot-import ./game
  godot-import --docker-image barichello/godot-ci:mono-4.3 ./game
  godot-import ./game -- --verbose`,

		Args: importArgs,

		// Errors and usage are printed by Execute, not cobra.
		SilenceUsage:  true,
		SilenceErrors: true,

		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date),

		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd, opts, args)
		},
	}

	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output errors in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")

	opts.bind(rootCmd)

	return rootCmd
}

// Execute runs the root command and exits the process with the resulting
// code. This is the main entry point called from main.go.
func Execute(rootCmd *cobra.Command) {
	os.Exit(Run(rootCmd))
}

// Run executes rootCmd and returns the exit code instead of exiting.
//
// An editor that ran is reported through exitStatus and passed through
// silently. CLIError values carry their own exit codes; any other error
// defaults to exit code 1.
func Run(rootCmd *cobra.Command) int {
	err := rootCmd.Execute()
	if err == nil {
		return int(model.ExitSuccess)
	}

	var status exitStatus
	if errors.As(err, &status) {
		return int(status)
	}

	var cliErr *model.CLIError
	if errors.As(err, &cliErr) {
		printError(rootCmd.ErrOrStderr(), cliErr.Message, cliErr.Err, cliErr.Hint)
		return int(cliErr.Code)
	}

	printError(rootCmd.ErrOrStderr(), err.Error(), nil, "")
	return int(model.ExitGeneralError)
}

// exitStatus carries a non-zero editor exit code through cobra's error
// return. The editor has already reported its own failure, so nothing is
// printed for it.
type exitStatus int

func (e exitStatus) Error() string {
	return fmt.Sprintf("editor exited with status %d", int(e))
}

// printError writes an error in the format selected by --json.
func printError(w io.Writer, message string, underlying error, hint string) {
	if jsonOutput {
		errObj := map[string]interface{}{
			"error": map[string]interface{}{
				"message": message,
			},
		}
		if errMap, ok := errObj["error"].(map[string]interface{}); ok {
			if underlying != nil {
				errMap["detail"] = underlying.Error()
			}
			if hint != "" {
				errMap["hint"] = hint
			}
		}
		data, _ := json.MarshalIndent(errObj, "", "  ")
		fmt.Fprintln(w, string(data))
		return
	}

	if underlying != nil {
		fmt.Fprintf(w, "Error: %s: %v\n", message, underlying)
	} else {
		fmt.Fprintf(w, "Error: %s\n", message)
	}
	if hint != "" {
		fmt.Fprintln(w, hint)
	}
}

// VerboseLog prints a message to stderr only when verbose mode is enabled.
func VerboseLog(format string, args ...interface{}) {
	if verbose {
		fmt.Fprintf(os.Stderr, "[verbose] "+format+"\n", args...)
	}
}

// IsJSONOutput returns whether the --json flag is set.
func IsJSONOutput() bool {
	return jsonOutput
}
