package commands

import (
	"catalogwatch/lib/restyutil"
	"catalogwatch/lib/scrapers/storefront"
	"catalogwatch/lib/serviceutil"
	"catalogwatch/services/monitor"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
)

var (
	runUrl    *string
	runReport *string
)

func init() {
	runUrl = runCmd.Flags().String("url", "", "The page to monitor, overrides the config.")
	runReport = runCmd.Flags().String("report", "", "Where to write the report, overrides the config.")
	rootCmd.AddCommand(runCmd)
}

func newExtractor(selectors storefront.Selectors) *storefront.Client {
	opts := storefront.ClientOptions{Selectors: selectors}
	if *verbose {
		output, err := restyutil.NewFilesystemOutput(".dev/resty/storefront")
		if err != nil {
			serviceutil.Fatal("failed to prepare http dump directory", err)
		}
		opts.InstrumentOutput = output
	}
	client, err := storefront.NewClient(opts)
	if err != nil {
		serviceutil.Fatal("failed to initialize storefront client", err)
	}
	return client
}

var runCmd = &cobra.Command{
	Use:   "run [--url <page>] [--report <path/to/report.txt>]",
	Short: "Extracts the catalog, reports changes against the last snapshot and saves the new one.",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := readConfig(*configPath)
		if err != nil {
			serviceutil.Fatal("failed to read config", err)
		}
		if *runUrl != "" {
			cfg.Url = *runUrl
		}
		if *runReport != "" {
			cfg.Report = *runReport
		}
		if cfg.Url == "" {
			serviceutil.Fatal("nothing to monitor", fmt.Errorf("set url in %s or pass --url", *configPath))
		}

		store, closeStore, err := cfg.Snapshot.Open(cfg.Url)
		if err != nil {
			serviceutil.Fatal("failed to open snapshot store", err)
		}
		defer closeStore()

		m := monitor.NewMonitor(newExtractor(cfg.Selectors), store, monitor.Options{
			Url:        cfg.Url,
			ReportPath: cfg.Report,
			AllowEmpty: cfg.AllowEmpty,
		})

		res, err := m.Run(cmd.Context())
		if err != nil {
			serviceutil.Fatal("monitoring run failed", err)
		}

		if res.Report == "" {
			slog.Info("no changes since the last snapshot", "products", len(res.Current))
			return
		}
		fmt.Println(res.Report)
	},
}
