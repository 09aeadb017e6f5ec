package project

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
)

// Info is the subset of project.godot the launcher reports in verbose mode.
type Info struct {
	// ConfigVersion is the engine config format version (5 for Godot 4).
	ConfigVersion int

	// Name is application/config/name.
	Name string

	// Features is application/config/features, e.g. ["4.3", "C#", "Forward Plus"].
	Features []string

	// Values holds every top-level key as "section/key" with its raw value.
	// Keys before the first section header have no "section/" prefix.
	Values map[string]string
}

// UsesCSharp reports whether the project declares the C# feature, which
// requires a Mono editor build.
func (i *Info) UsesCSharp() bool {
	return slices.Contains(i.Features, "C#")
}

// ReadInfo reads MarkerFile from dir.
func ReadInfo(dir string) (*Info, error) {
	f, err := os.Open(filepath.Join(dir, MarkerFile))
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", MarkerFile, err)
	}
	defer func() { _ = f.Close() }()

	values, err := parseConfig(bufio.NewScanner(f))
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", MarkerFile, err)
	}

	info := &Info{Values: values}
	if v, ok := values["config_version"]; ok {
		if n, err := strconv.Atoi(v); err == nil {
			info.ConfigVersion = n
		}
	}
	info.Name = unquote(values["application/config/name"])
	info.Features = parsePackedStrings(values["application/config/features"])

	return info, nil
}

// parseConfig reads Godot's ConfigFile text format. It understands
// comments (";"), [section] headers and key=value pairs whose values may
// span several lines while brackets or braces remain open. Values are kept
// raw; only the keys are normalised to "section/key".
func parseConfig(sc *bufio.Scanner) (map[string]string, error) {
	values := make(map[string]string)
	section := ""

	var (
		pendingKey string
		pending    strings.Builder
		depth      int
	)

	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := sc.Text()

		if depth > 0 {
			pending.WriteString("\n")
			pending.WriteString(line)
			depth += nesting(line)
			if depth <= 0 {
				values[pendingKey] = strings.TrimSpace(pending.String())
				pending.Reset()
				depth = 0
			}
			continue
		}

		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "", strings.HasPrefix(trimmed, ";"):
			continue
		case strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]"):
			section = strings.TrimSpace(trimmed[1 : len(trimmed)-1])
			continue
		}

		key, value, ok := strings.Cut(trimmed, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		if section != "" {
			key = section + "/" + key
		}
		value = strings.TrimSpace(value)

		if d := nesting(value); d > 0 {
			pendingKey = key
			pending.WriteString(value)
			depth = d
			continue
		}
		values[key] = value
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if depth > 0 {
		return nil, fmt.Errorf("unterminated value for key %q", pendingKey)
	}

	return values, nil
}

// nesting returns the net number of opened brackets in s, ignoring any
// inside double-quoted strings.
func nesting(s string) int {
	n := 0
	inString := false
	escaped := false
	for _, r := range s {
		switch {
		case escaped:
			escaped = false
		case r == '\\' && inString:
			escaped = true
		case r == '"':
			inString = !inString
		case inString:
		case r == '{' || r == '[' || r == '(':
			n++
		case r == '}' || r == ']' || r == ')':
			n--
		}
	}
	return n
}

func unquote(s string) string {
	if u, err := strconv.Unquote(s); err == nil {
		return u
	}
	return s
}

// parsePackedStrings extracts the elements of PackedStringArray("a", "b").
func parsePackedStrings(s string) []string {
	inner, ok := strings.CutPrefix(s, "PackedStringArray(")
	if !ok {
		return nil
	}
	inner = strings.TrimSuffix(inner, ")")

	var out []string
	for _, part := range strings.Split(inner, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, unquote(part))
	}
	return out
}
