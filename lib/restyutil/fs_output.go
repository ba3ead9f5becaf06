package restyutil

import (
	devenv "catalogwatch/dev/env"
	"log/slog"
	"os"
	"path/filepath"
)

// FilesystemOutput dumps every exchange to <directory>/<id>.http.
type FilesystemOutput struct {
	directory string
}

// NewFilesystemOutput empties dir, which may start with <dev_state>, so a
// run only leaves its own exchanges behind.
func NewFilesystemOutput(dir string) (FilesystemOutput, error) {
	dir, err := devenv.ResolvePath(dir)
	if err != nil {
		return FilesystemOutput{}, err
	}
	err = os.RemoveAll(dir)
	if err != nil {
		return FilesystemOutput{}, err
	}
	err = os.MkdirAll(dir, 0777)
	if err != nil {
		return FilesystemOutput{}, err
	}
	return FilesystemOutput{directory: dir}, nil
}

func (o FilesystemOutput) Write(id string, contents string) {
	path := filepath.Join(o.directory, id+".http")
	err := os.WriteFile(path, []byte(contents), 0600)
	if err != nil {
		slog.Warn("failed to write http dump", "path", path, "err", err)
	}
}
