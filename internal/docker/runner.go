package docker

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"
	"strconv"

	cerrdefs "github.com/containerd/errdefs"
	"github.com/docker/docker/api/types/container"
	imagetypes "github.com/docker/docker/api/types/image"
	"github.com/docker/docker/api/types/mount"
	"github.com/docker/docker/pkg/stdcopy"

	"github.com/shinji-kodama/godot-import/internal/model"
)

// ContainerProjectPath is where the host project is bind-mounted inside the
// import container.
const ContainerProjectPath = "/project"

// Runner executes an import inside a fresh container of Image. It
// satisfies launcher.Runner and launcher.PathMapper.
type Runner struct {
	// Image is the container image providing a headless Godot editor.
	Image string

	// Pull forces an image pull before the run. Without it the image is
	// pulled only when it is missing locally.
	Pull bool

	// Stdout and Stderr receive the container's demultiplexed output.
	Stdout io.Writer
	Stderr io.Writer

	// Logf receives trace output. Nil disables tracing.
	Logf func(format string, args ...any)

	// NewClient defaults to NewClient. Tests replace it.
	NewClient func() (*Client, error)
}

// MapProjectPath returns the in-container project path; the host path is
// mounted there by Run.
func (r *Runner) MapProjectPath(string) string {
	return ContainerProjectPath
}

// Run creates the container, streams its output until it stops, and
// returns its exit status. The container is always removed afterwards.
//
// Like the host runner, a non-zero editor exit is not an error. Errors are
// reserved for failures to reach Docker or to start the container.
func (r *Runner) Run(ctx context.Context, inv model.Invocation) (int, error) {
	newClient := r.NewClient
	if newClient == nil {
		newClient = NewClient
	}
	cli, err := newClient()
	if err != nil {
		return int(model.ExitGeneralError), err
	}
	defer func() { _ = cli.Close() }()

	if err := cli.Ping(ctx); err != nil {
		return int(model.ExitGeneralError), err
	}
	r.logf("Connected to Docker daemon")

	r.removeStale(ctx, cli, inv.ProjectPath)

	if r.Pull {
		if err := r.pull(ctx, cli); err != nil {
			return int(model.ExitGeneralError), err
		}
	}

	id, err := r.create(ctx, cli, inv)
	if err != nil && cerrdefs.IsNotFound(err) && !r.Pull {
		r.logf("Image %s not found locally", r.Image)
		if pullErr := r.pull(ctx, cli); pullErr != nil {
			return int(model.ExitGeneralError), pullErr
		}
		id, err = r.create(ctx, cli, inv)
	}
	if err != nil {
		return int(model.ExitGeneralError), model.WrapCLIError(
			model.ExitGeneralError,
			fmt.Sprintf("failed to create import container from %s", r.Image),
			err,
		)
	}
	r.logf("Created container %s", shortID(id))

	// Removal must happen even if ctx was cancelled mid-run.
	defer func() {
		rmErr := cli.Inner().ContainerRemove(context.WithoutCancel(ctx), id, container.RemoveOptions{Force: true})
		if rmErr != nil {
			r.logf("Failed to remove container %s: %v", shortID(id), rmErr)
		}
	}()

	// Register the wait before starting so a fast exit is not missed.
	waitCh, waitErrCh := cli.Inner().ContainerWait(ctx, id, container.WaitConditionNextExit)

	if err := cli.Inner().ContainerStart(ctx, id, container.StartOptions{}); err != nil {
		return int(model.ExitGeneralError), model.WrapCLIError(
			model.ExitGeneralError,
			fmt.Sprintf("failed to start import container %s", shortID(id)),
			err,
		)
	}

	if err := r.streamLogs(ctx, cli, id); err != nil {
		r.logf("Log stream ended with error: %v", err)
	}

	select {
	case res := <-waitCh:
		if res.Error != nil && res.Error.Message != "" {
			return int(model.ExitGeneralError), model.NewCLIError(
				model.ExitGeneralError,
				fmt.Sprintf("waiting for import container failed: %s", res.Error.Message),
			)
		}
		return int(res.StatusCode), nil
	case err := <-waitErrCh:
		return int(model.ExitGeneralError), model.WrapCLIError(
			model.ExitGeneralError,
			"waiting for import container failed",
			err,
		)
	}
}

// ContainerSpec builds the container and host configuration for inv. The
// editor becomes the entrypoint so image defaults cannot prepend anything.
func ContainerSpec(image string, inv model.Invocation) (*container.Config, *container.HostConfig) {
	cfg := &container.Config{
		Image:      image,
		Entrypoint: []string{inv.Editor},
		Cmd:        append([]string(nil), inv.Args...),
		WorkingDir: ContainerProjectPath,
		Labels:     BuildLabels(inv),
		User:       hostUser(),
	}
	hostCfg := &container.HostConfig{
		Mounts: []mount.Mount{
			{
				Type:   mount.TypeBind,
				Source: inv.ProjectPath,
				Target: ContainerProjectPath,
			},
		},
	}
	return cfg, hostCfg
}

// hostUser returns "uid:gid" on Linux so files written by the import
// (the .godot/imported cache) stay owned by the invoking user. Docker
// Desktop on macOS and Windows already maps ownership.
func hostUser() string {
	if runtime.GOOS != "linux" {
		return ""
	}
	uid, gid := os.Getuid(), os.Getgid()
	if uid < 0 || gid < 0 {
		return ""
	}
	return strconv.Itoa(uid) + ":" + strconv.Itoa(gid)
}

func (r *Runner) create(ctx context.Context, cli *Client, inv model.Invocation) (string, error) {
	cfg, hostCfg := ContainerSpec(r.Image, inv)
	resp, err := cli.Inner().ContainerCreate(ctx, cfg, hostCfg, nil, nil, "")
	if err != nil {
		return "", err
	}
	for _, w := range resp.Warnings {
		r.logf("Docker warning: %s", w)
	}
	return resp.ID, nil
}

func (r *Runner) pull(ctx context.Context, cli *Client) error {
	r.logf("Pulling image %s...", r.Image)
	rc, err := cli.Inner().ImagePull(ctx, r.Image, imagetypes.PullOptions{})
	if err != nil {
		return model.WrapCLIError(
			model.ExitGeneralError,
			fmt.Sprintf("failed to pull image %s", r.Image),
			err,
		)
	}
	defer func() { _ = rc.Close() }()

	// The pull only completes once the progress stream is drained.
	if _, err := io.Copy(io.Discard, rc); err != nil {
		return model.WrapCLIError(
			model.ExitGeneralError,
			fmt.Sprintf("failed to pull image %s", r.Image),
			err,
		)
	}
	return nil
}

// streamLogs copies the container's output to the runner's writers until
// the container stops.
func (r *Runner) streamLogs(ctx context.Context, cli *Client, id string) error {
	rc, err := cli.Inner().ContainerLogs(ctx, id, container.LogsOptions{
		ShowStdout: true,
		ShowStderr: true,
		Follow:     true,
	})
	if err != nil {
		return err
	}
	defer func() { _ = rc.Close() }()

	// Without a TTY the stream is multiplexed with 8-byte frame headers.
	_, err = stdcopy.StdCopy(orWriter(r.Stdout, os.Stdout), orWriter(r.Stderr, os.Stderr), rc)
	return err
}

// removeStale deletes stopped import containers left behind for the same
// project, e.g. when a previous run was killed before cleanup. Running
// ones belong to a concurrent import and are left alone.
func (r *Runner) removeStale(ctx context.Context, cli *Client, projectPath string) {
	list, err := cli.Inner().ContainerList(ctx, container.ListOptions{
		All:     true,
		Filters: projectFilter(projectPath),
	})
	if err != nil {
		r.logf("Could not list previous import containers: %v", err)
		return
	}
	for _, c := range list {
		if !IsManaged(c.Labels) || c.State == "running" {
			continue
		}
		r.logf("Removing stale import container %s", shortID(c.ID))
		if err := cli.Inner().ContainerRemove(ctx, c.ID, container.RemoveOptions{Force: true}); err != nil {
			r.logf("Failed to remove container %s: %v", shortID(c.ID), err)
		}
	}
}

func (r *Runner) logf(format string, args ...any) {
	if r.Logf != nil {
		r.Logf(format, args...)
	}
}

func shortID(id string) string {
	if len(id) > 12 {
		return id[:12]
	}
	return id
}

func orWriter(w, def io.Writer) io.Writer {
	if w == nil {
		return def
	}
	return w
}
