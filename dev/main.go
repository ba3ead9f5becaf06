package main

import (
	devenv "catalogwatch/dev/env"
	configlibsql "catalogwatch/lib/configutil/libsql"
	snapshotdb "catalogwatch/lib/snapshot/db"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

const devConfig = `{
  // any listing page made of goods tiles works
  url: "https://rozetka.com.ua/ua/notebooks/c80004/",
  report: "<dev_state>/results/report.txt",
  snapshot: {
    database: {
      file: "<dev_state>/snapshots.db",
    },
  },
}
`

type step struct {
	name string
	// path relative to dev/.state, the step is skipped when it exists
	path string
	run  func(path string) error
}

var steps = []step{
	{
		name: "snapshot database",
		path: "snapshots.db",
		run: func(path string) error {
			db, err := configlibsql.Struct{File: path}.OpenDB(snapshotdb.Schema)
			if err != nil {
				return err
			}
			return db.Close()
		},
	},
	{
		name: "config",
		path: "config.json5",
		run: func(path string) error {
			return os.WriteFile(path, []byte(devConfig), 0644)
		},
	},
}

func create(recreate bool) error {
	root, err := devenv.GetWorkspaceRoot()
	if err != nil {
		return fmt.Errorf("the dev environment must be created inside the catalogwatch repository: %w", err)
	}
	state := filepath.Join(root, "dev", ".state")

	if recreate {
		err = os.RemoveAll(state)
		if err != nil {
			return err
		}
	}
	err = os.MkdirAll(state, 0777)
	if err != nil {
		return err
	}

	for _, s := range steps {
		path := filepath.Join(state, s.path)
		if _, err := os.Stat(path); err == nil {
			slog.Info("already exists, skipping", "step", s.name, "path", path)
			continue
		}
		slog.Info("creating", "step", s.name, "path", path)
		err = s.run(path)
		if err != nil {
			return fmt.Errorf("%s: %w", s.name, err)
		}
	}
	return nil
}

func main() {
	recreate := flag.Bool("recreate", false, "recreate the dev environment from scratch")
	flag.Parse()

	err := create(*recreate)
	if err != nil {
		slog.Error("failed to create dev environment", "err", err.Error())
		os.Exit(1)
	}

	slog.Info("dev environment ready, run with: go run ./cmd/catalogwatch --config \"<dev_state>/config.json5\" run")
}
