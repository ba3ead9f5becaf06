package devenv

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

const (
	moduleName  = "catalogwatch"
	statePrefix = "<dev_state>"
)

var moduleLine = regexp.MustCompile(`(?m)^module\s+(\S+)\s*$`)

func isWorkspaceRoot(dir string) bool {
	mod, err := os.ReadFile(filepath.Join(dir, "go.mod"))
	if err != nil {
		return false
	}
	match := moduleLine.FindSubmatch(mod)
	return match != nil && string(match[1]) == moduleName
}

// GetWorkspaceRoot walks up from the working directory to the directory
// holding the catalogwatch go.mod.
func GetWorkspaceRoot() (string, error) {
	dir, err := filepath.Abs(".")
	if err != nil {
		return "", err
	}
	for {
		if isWorkspaceRoot(dir) {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", os.ErrNotExist
		}
		dir = parent
	}
}

// ResolvePath expands a leading <dev_state> to the dev/.state directory
// of the workspace (creating it), other paths are returned unchanged.
func ResolvePath(path string) (string, error) {
	rest, ok := strings.CutPrefix(filepath.ToSlash(path), statePrefix)
	if !ok {
		return path, nil
	}

	root, err := GetWorkspaceRoot()
	if err != nil {
		return "", err
	}
	state := filepath.Join(root, "dev", ".state")
	err = os.MkdirAll(state, 0777)
	if err != nil {
		return "", err
	}
	return filepath.Join(state, filepath.FromSlash(strings.TrimPrefix(rest, "/"))), nil
}
