package commands

import (
	"catalogwatch/lib/serviceutil"
	"catalogwatch/lib/telemetry"
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var (
	configPath *string
	verbose    *bool
)

var tel telemetry.Telemetry

func init() {
	configPath = rootCmd.PersistentFlags().String("config", "config.json5", "The config file to read.")
	verbose = rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging/instrumentation.")
}

var rootCmd = &cobra.Command{
	Use:          "catalogwatch",
	Short:        "catalogwatch extracts a product catalog from a page and reports what changed since the last run.",
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		telemetry.InitSlog(*verbose)
		if *verbose {
			slog.DebugContext(cmd.Context(), "verbose logging enabled")
		}

		var err error
		tel, err = telemetry.SetupFromEnv(cmd.Context(), "catalogwatch")
		if err != nil {
			serviceutil.Fatal("setup telemetry", err)
		}
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		telemetry.RecordPerfStats(cmd.Context())
		err := tel.Shutdown(context.Background())
		if err != nil {
			slog.Warn("failed to shutdown telemetry", "err", err)
		}
	},
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newTable() table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(os.Stdout)
	return t
}
