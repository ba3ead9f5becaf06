package commands

import (
	"catalogwatch/lib/configutil"
	"catalogwatch/lib/scrapers/storefront"
	"catalogwatch/lib/snapshot"
	"os"
)

type Config struct {
	// the listing page to monitor
	Url string `json:"url"`
	// where the change report is written
	Report     string               `json:"report"`
	Selectors  storefront.Selectors `json:"selectors"`
	Snapshot   snapshot.Config      `json:"snapshot"`
	AllowEmpty bool                 `json:"allow_empty"`
}

const (
	defaultReportPath   = "results/report.txt"
	defaultSnapshotPath = "data/products.csv"
)

// readConfig reads the config file, a missing file yields the defaults so
// the cli works with flags alone.
func readConfig(path string) (Config, error) {
	cfg, err := configutil.ReadConfig[Config](path)
	if err != nil && !os.IsNotExist(err) {
		return Config{}, err
	}
	if cfg.Report == "" {
		cfg.Report = defaultReportPath
	}
	if cfg.Snapshot.CSV == "" && cfg.Snapshot.Database.IsZero() {
		cfg.Snapshot.CSV = defaultSnapshotPath
	}
	return cfg, nil
}
