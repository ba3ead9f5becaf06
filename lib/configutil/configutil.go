package configutil

import (
	devenv "catalogwatch/dev/env"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"dario.cat/mergo"
	"github.com/titanous/json5"
)

// layers lists the files making up the config at path, lowest priority
// first: config.json5 then config.local.json5.
func layers(path string) []string {
	ext := filepath.Ext(path)
	return []string{
		path,
		strings.TrimSuffix(path, ext) + ".local" + ext,
	}
}

// readLayer parses a single layer into out, found is false when the file
// doesn't exist or is empty.
func readLayer[T any](path string, out *T) (found bool, err error) {
	contents, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if len(contents) == 0 {
		return false, nil
	}
	err = json5.Unmarshal(contents, out)
	if err != nil {
		return false, fmt.Errorf("parse %s: %w", path, err)
	}
	return true, nil
}

// ReadConfig reads the json5 config at name (which may start with
// <dev_state>) and merges a sibling <name>.local.<ext> over it, non-zero
// fields of the local file win. os.ErrNotExist is returned when neither
// file exists.
func ReadConfig[T any](name string) (T, error) {
	var out T

	name, err := devenv.ResolvePath(name)
	if err != nil {
		return out, err
	}

	found := false
	for i, path := range layers(name) {
		var layer T
		ok, err := readLayer(path, &layer)
		if err != nil {
			return out, err
		}
		if !ok {
			continue
		}
		found = true

		if i == 0 {
			out = layer
			continue
		}
		err = mergo.Merge(&out, layer, mergo.WithOverride)
		if err != nil {
			return out, fmt.Errorf("merge %s: %w", path, err)
		}
		slog.Debug("merged config override", "path", path)
	}

	if !found {
		return out, os.ErrNotExist
	}
	return out, nil
}

// ReadRecursively looks for name in the working directory and then each
// parent directory, returning the first config found.
func ReadRecursively[T any](name string) (T, error) {
	var empty T

	dir, err := os.Getwd()
	if err != nil {
		return empty, err
	}
	for {
		config, err := ReadConfig[T](filepath.Join(dir, name))
		if err == nil || !os.IsNotExist(err) {
			return config, err
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return empty, os.ErrNotExist
		}
		dir = parent
	}
}
