package commands

import (
	"catalogwatch/lib/changereport"
	"catalogwatch/lib/serviceutil"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(scrapeCmd)
}

var scrapeCmd = &cobra.Command{
	Use:   "scrape <url>",
	Short: "Extracts and prints the catalog of a page without touching the snapshot.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := readConfig(*configPath)
		if err != nil {
			serviceutil.Fatal("failed to read config", err)
		}

		res, err := newExtractor(cfg.Selectors).FetchCatalog(cmd.Context(), args[0])
		if err != nil {
			serviceutil.Fatal("failed to extract catalog", err)
		}
		for _, failure := range res.Failures {
			slog.Warn("skipped tile", "err", failure)
		}

		fmt.Println(changereport.ProductTable(res.Products))
		slog.Info("extracted", "products", len(res.Products), "failures", len(res.Failures))
	},
}
