// Package cli — import.go implements the root command's import action.
//
// The action loads the optional config file, chooses between the host
// runner and the container runner, and hands control to the launcher.
// The editor's exit status becomes the process exit status.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/godot-import/internal/config"
	"github.com/shinji-kodama/godot-import/internal/docker"
	"github.com/shinji-kodama/godot-import/internal/editor"
	"github.com/shinji-kodama/godot-import/internal/launcher"
	"github.com/shinji-kodama/godot-import/internal/project"
)

// importOptions holds the root command's local flags.
type importOptions struct {
	editor      string
	binDir      string
	configPath  string
	dockerImage string
	pull        bool
	dryRun      bool
	printEditor bool
}

func (o *importOptions) bind(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&o.editor, "editor", "", "Editor binary to run (overrides "+editor.EnvEditor+" and detection)")
	f.StringVar(&o.binDir, "bin-dir", "", "Directory holding locally built editors (default \"godot/bin\")")
	f.StringVarP(&o.configPath, "config", "c", "", "Config file (default: .godot-import.{yaml,yml,jsonc,json} in the working directory)")
	f.StringVar(&o.dockerImage, "docker-image", "", "Run the import inside a container of this image")
	f.BoolVar(&o.pull, "pull", false, "Always pull the container image before running")
	f.BoolVar(&o.dryRun, "dry-run", false, "Print the editor command instead of running it")
	f.BoolVar(&o.printEditor, "print-editor", false, "Print the resolved editor path and exit")
}

// importArgs allows at most one positional project path before "--".
// Everything after "--" is passed to the editor untouched.
func importArgs(cmd *cobra.Command, args []string) error {
	positional, _ := splitArgs(cmd, args)
	if len(positional) > 1 {
		return fmt.Errorf("accepts at most 1 project path, received %d", len(positional))
	}
	return nil
}

// splitArgs separates positional arguments from editor arguments after "--".
func splitArgs(cmd *cobra.Command, args []string) (positional, extra []string) {
	dash := cmd.ArgsLenAtDash()
	if dash < 0 {
		return args, nil
	}
	return args[:dash], args[dash:]
}

// runImport is the main logic of the root command.
func runImport(cmd *cobra.Command, opts *importOptions, args []string) error {
	ctx := cmd.Context()
	positional, extra := splitArgs(cmd, args)

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to determine working directory: %w", err)
	}

	cfg, err := config.Load(opts.configPath, cwd)
	if err != nil {
		return err
	}
	if cfg.Path != "" {
		VerboseLog("Loaded config %s", cfg.Path)
	}

	projectPath := project.DefaultPath
	switch {
	case len(positional) == 1:
		projectPath = positional[0]
	case cfg.Project != "":
		projectPath = cfg.Project
	}

	host := detectHost()
	l := newLauncher(cmd, opts, cfg)

	if opts.printEditor {
		loc, err := l.Editor.Locate(host)
		if err != nil {
			return err
		}
		return printEditor(cmd.OutOrStdout(), loc)
	}

	runOpts := launcher.Options{
		Host:        host,
		ProjectPath: projectPath,
		ExtraArgs:   append(append([]string(nil), cfg.Args...), extra...),
		DryRun:      opts.dryRun,
	}

	if opts.dryRun && IsJSONOutput() {
		inv, err := l.Prepare(runOpts)
		if err != nil {
			return err
		}
		return writeJSON(cmd.OutOrStdout(), inv)
	}

	code, err := l.Run(ctx, runOpts)
	if err != nil {
		return err
	}
	if code != 0 {
		return exitStatus(code)
	}
	return nil
}

// newLauncher picks the editor source and runner. A container image from
// the flag or the config switches to the Docker runner; in that mode the
// editor lives inside the image and is never looked up on the host.
func newLauncher(cmd *cobra.Command, opts *importOptions, cfg *config.Config) *launcher.Launcher {
	image := opts.dockerImage
	if image == "" {
		image = cfg.ContainerImage()
	}

	var (
		src    launcher.EditorSource
		runner launcher.Runner
	)

	if image != "" {
		editorCmd := opts.editor
		if editorCmd == "" {
			editorCmd = cfg.ContainerEditor()
		}
		VerboseLog("Container mode: image %s, editor %s", image, editorCmd)

		src = editor.Static{Path: editorCmd, Source: editor.SourceImage}
		runner = &docker.Runner{
			Image:  image,
			Pull:   opts.pull || (cfg.Docker != nil && cfg.Docker.Pull),
			Stdout: cmd.OutOrStdout(),
			Stderr: cmd.ErrOrStderr(),
			Logf:   VerboseLog,
		}
	} else {
		binDir := opts.binDir
		if binDir == "" {
			binDir = cfg.BinDir
		}
		src = &editor.Locator{
			FlagEditor:   opts.editor,
			ConfigEditor: cfg.Editor,
			BinDir:       binDir,
			Logf:         VerboseLog,
		}
		runner = &launcher.HostRunner{
			Stdin:  cmd.InOrStdin(),
			Stdout: cmd.OutOrStdout(),
			Stderr: cmd.ErrOrStderr(),
		}
	}

	l := launcher.New(src, runner)
	l.Stdout = cmd.OutOrStdout()
	l.Logf = VerboseLog
	return l
}

func printEditor(w io.Writer, loc editor.Location) error {
	if IsJSONOutput() {
		return writeJSON(w, map[string]string{
			"editor": loc.Path,
			"source": string(loc.Source),
		})
	}
	_, err := fmt.Fprintln(w, loc.Path)
	return err
}

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
