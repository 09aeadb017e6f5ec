package model

import (
	"errors"
	"fmt"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestCurrentHost verifies that the host descriptor mirrors the Go runtime.
func TestCurrentHost(t *testing.T) {
	h := CurrentHost()
	assert.Equal(t, runtime.GOOS, h.OS)
	assert.Equal(t, runtime.GOARCH, h.Arch)
	assert.Equal(t, runtime.GOOS+"/"+runtime.GOARCH, h.String())
}

// TestInvocation_CommandLine checks the display form used by --dry-run.
func TestInvocation_CommandLine(t *testing.T) {
	tests := []struct {
		name string
		inv  Invocation
		want string
	}{
		{
			name: "plain arguments",
			inv: Invocation{
				Editor: "godot/bin/godot.linuxbsd.editor.x86_64.executable.mono",
				Args:   []string{"--headless", "--import", "--path", "/work/game"},
			},
			want: "godot/bin/godot.linuxbsd.editor.x86_64.executable.mono --headless --import --path /work/game",
		},
		{
			name: "path with spaces is quoted",
			inv: Invocation{
				Editor: "/opt/Godot Mono/godot",
				Args:   []string{"--path", "/home/me/My Game"},
			},
			want: `"/opt/Godot Mono/godot" --path "/home/me/My Game"`,
		},
		{
			name: "empty argument is quoted",
			inv:  Invocation{Editor: "godot", Args: []string{""}},
			want: `godot ""`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.inv.CommandLine())
		})
	}
}

// TestCLIError verifies the custom error type used for exit code mapping.
func TestCLIError(t *testing.T) {
	t.Run("simple error", func(t *testing.T) {
		err := NewCLIError(ExitGeneralError, "Unsupported platform: Plan9")
		assert.Equal(t, ExitGeneralError, err.Code)
		assert.Equal(t, "Unsupported platform: Plan9", err.Error())
		assert.Nil(t, err.Unwrap())
	})

	t.Run("wrapped error", func(t *testing.T) {
		inner := errors.New("permission denied")
		err := WrapCLIError(ExitGeneralError, "failed to start editor", inner)
		assert.Equal(t, ExitGeneralError, err.Code)
		assert.Contains(t, err.Error(), "permission denied")
		assert.Equal(t, inner, err.Unwrap())
		assert.True(t, errors.Is(err, inner))
	})

	t.Run("kind matches with errors.Is but is not printed", func(t *testing.T) {
		err := NewCLIError(ExitGeneralError, "Editor binary not found: godot/bin/x").
			WithKind(ErrBinaryNotFound)
		assert.True(t, errors.Is(err, ErrBinaryNotFound))
		assert.False(t, errors.Is(err, ErrProjectNotFound))
		assert.Equal(t, "Editor binary not found: godot/bin/x", err.Error())
	})

	t.Run("kind survives further wrapping", func(t *testing.T) {
		err := fmt.Errorf("launch: %w",
			NewCLIError(ExitGeneralError, "No project.godot found in: /tmp").WithKind(ErrProjectNotFound))
		assert.True(t, errors.Is(err, ErrProjectNotFound))

		var cliErr *CLIError
		assert.True(t, errors.As(err, &cliErr))
		assert.Equal(t, ExitGeneralError, cliErr.Code)
	})

	t.Run("hint", func(t *testing.T) {
		err := NewCLIError(ExitGeneralError, "missing").WithHint("do something")
		assert.Equal(t, "do something", err.Hint)
		assert.Equal(t, "missing", err.Error())
	})
}
