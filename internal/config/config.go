// Package config loads the optional godot-import configuration file.
//
// The file lets a repository pin launcher defaults (editor path, binary
// directory, default project, extra editor arguments, container image)
// instead of repeating them on every invocation. Both YAML and JSON with
// comments are accepted; JSONC is handled with github.com/tidwall/jsonc,
// which strips comments and trailing commas before encoding/json parses it.
//
// Precedence is applied by the caller: flags > environment > file > defaults.
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/shinji-kodama/godot-import/internal/model"
)

// Candidates lists the file names searched in the working directory, in
// priority order, when no explicit --config path is given.
var Candidates = []string{
	".godot-import.yaml",
	".godot-import.yml",
	".godot-import.jsonc",
	".godot-import.json",
}

// DefaultContainerEditor is the editor command used inside a container
// image when the config does not name one.
const DefaultContainerEditor = "godot"

// Config is the on-disk launcher configuration. Every field is optional.
type Config struct {
	// Editor overrides editor detection, like GODOT_EDITOR but with lower
	// precedence.
	Editor string `yaml:"editor,omitempty" json:"editor,omitempty"`

	// BinDir replaces the default godot/bin search directory.
	BinDir string `yaml:"binDir,omitempty" json:"binDir,omitempty"`

	// Project is the default project path when no argument is given.
	Project string `yaml:"project,omitempty" json:"project,omitempty"`

	// Args are appended to the fixed editor arguments.
	Args []string `yaml:"args,omitempty" json:"args,omitempty"`

	// Docker enables containerized imports when Docker.Image is set.
	Docker *DockerConfig `yaml:"docker,omitempty" json:"docker,omitempty"`

	// Path is the file the config was loaded from. Empty for defaults.
	Path string `yaml:"-" json:"-"`
}

// DockerConfig configures the container runner.
type DockerConfig struct {
	// Image is the container image holding a headless Godot editor.
	Image string `yaml:"image" json:"image"`

	// Editor is the editor command inside the image.
	Editor string `yaml:"editor,omitempty" json:"editor,omitempty"`

	// Pull forces an image pull before running.
	Pull bool `yaml:"pull,omitempty" json:"pull,omitempty"`
}

// ContainerImage returns the configured image, or "" when container mode is off.
func (c *Config) ContainerImage() string {
	if c == nil || c.Docker == nil {
		return ""
	}
	return c.Docker.Image
}

// ContainerEditor returns the editor command to run inside the image.
func (c *Config) ContainerEditor() string {
	if c == nil || c.Docker == nil || c.Docker.Editor == "" {
		return DefaultContainerEditor
	}
	return c.Docker.Editor
}

// Load reads the configuration.
//
// If explicit is non-empty that file must exist. Otherwise dir is searched
// for the Candidates; finding none is not an error and yields an empty
// Config. Read or parse failures are returned as CLIErrors with
// ExitGeneralError.
func Load(explicit, dir string) (*Config, error) {
	if explicit != "" {
		return loadFile(explicit)
	}

	path, err := Find(dir)
	if err != nil {
		return nil, err
	}
	if path == "" {
		return &Config{}, nil
	}
	return loadFile(path)
}

// Find returns the first candidate config file in dir, or "" if none exists.
func Find(dir string) (string, error) {
	for _, name := range Candidates {
		path := filepath.Join(dir, name)
		info, err := os.Stat(path)
		if err == nil {
			if info.IsDir() {
				continue
			}
			return path, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return "", model.WrapCLIError(model.ExitGeneralError,
				fmt.Sprintf("failed to check config file %s", path), err)
		}
	}
	return "", nil
}

func loadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, model.WrapCLIError(model.ExitGeneralError,
			fmt.Sprintf("failed to read config file %s", path), err)
	}

	cfg, err := Parse(data, formatOf(path))
	if err != nil {
		return nil, model.WrapCLIError(model.ExitGeneralError,
			fmt.Sprintf("failed to parse config file %s", path), err)
	}
	cfg.Path = path

	if err := cfg.Validate(); err != nil {
		return nil, model.WrapCLIError(model.ExitGeneralError,
			fmt.Sprintf("invalid config file %s", path), err)
	}
	return cfg, nil
}

// Format identifies a config file syntax.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// formatOf picks the parser from the file extension. Unknown extensions
// are read as YAML, which is a superset of JSON.
func formatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		return FormatJSON
	default:
		return FormatYAML
	}
}

// Parse decodes data in the given format. Unknown keys are rejected so
// typos surface instead of being silently ignored.
func Parse(data []byte, format Format) (*Config, error) {
	var cfg Config

	// An empty document decodes to io.EOF in both formats; that is an
	// empty config, not an error.
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(jsonc.ToJSON(data)))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, err
		}
	default:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, err
		}
	}

	return &cfg, nil
}

// Validate checks field combinations that cannot be expressed in the schema.
func (c *Config) Validate() error {
	if c.Docker != nil && c.Docker.Image == "" {
		return errors.New("docker.image must be set when the docker section is present")
	}
	for i, a := range c.Args {
		if strings.TrimSpace(a) == "" {
			return fmt.Errorf("args[%d] must not be empty", i)
		}
	}
	return nil
}
