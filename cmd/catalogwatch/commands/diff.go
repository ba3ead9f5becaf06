package commands

import (
	"catalogwatch/lib/catalog"
	"catalogwatch/lib/changereport"
	"catalogwatch/lib/serviceutil"
	"catalogwatch/lib/snapshot"
	"context"
	"fmt"
	"log/slog"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var renameThreshold *float64

func init() {
	renameThreshold = diffCmd.Flags().Float64("renames", 0, "Also list removed/added pairs whose names are at least this similar (0 to 1), 0 disables.")
	rootCmd.AddCommand(diffCmd)
}

func loadCSV(ctx context.Context, path string) catalog.Catalog {
	store, err := snapshot.NewCSVStore(path)
	if err != nil {
		serviceutil.Fatal("failed to resolve snapshot path", err)
	}
	c, err := store.Load(ctx)
	if err != nil {
		serviceutil.Fatal("failed to read snapshot", err)
	}
	return c
}

var diffCmd = &cobra.Command{
	Use:   "diff <previous.csv> <current.csv> [--renames <threshold>]",
	Short: "Reports the changes between two csv snapshots.",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		previous := loadCSV(cmd.Context(), args[0])
		current := loadCSV(cmd.Context(), args[1])

		changes := catalog.Diff(previous, current)
		report := changereport.Format(changes)
		if report == "" {
			slog.Info("no changes")
		} else {
			fmt.Println(report)
		}

		if *renameThreshold <= 0 {
			return
		}
		hints := catalog.SuggestRenames(changes, *renameThreshold)
		if len(hints) == 0 {
			return
		}
		fmt.Println()
		fmt.Println("Possible Renames:")
		t := newTable()
		t.AppendHeader(table.Row{"Removed", "Added", "Similarity"})
		for _, h := range hints {
			t.AppendRow(table.Row{h.Removed.Name, h.Added.Name, fmt.Sprintf("%.2f", h.Similarity)})
		}
		t.Render()
	},
}
