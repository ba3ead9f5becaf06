package commands

import (
	"catalogwatch/lib/changereport"
	"catalogwatch/lib/serviceutil"
	"catalogwatch/lib/snapshot"
	"fmt"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var showUrl *string

func init() {
	showUrl = showCmd.Flags().String("url", "", "The page whose snapshot to show, overrides the config.")
	rootCmd.AddCommand(showCmd)
}

var showCmd = &cobra.Command{
	Use:   "show [--url <page>]",
	Short: "Prints the stored snapshot.",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := readConfig(*configPath)
		if err != nil {
			serviceutil.Fatal("failed to read config", err)
		}
		if *showUrl != "" {
			cfg.Url = *showUrl
		}

		store, closeStore, err := cfg.Snapshot.Open(cfg.Url)
		if err != nil {
			serviceutil.Fatal("failed to open snapshot store", err)
		}
		defer closeStore()

		if sqlStore, ok := store.(snapshot.SQLStore); ok {
			infos, err := sqlStore.List(cmd.Context())
			if err != nil {
				serviceutil.Fatal("failed to list snapshots", err)
			}
			t := newTable()
			t.AppendHeader(table.Row{"Source", "Taken At"})
			for _, info := range infos {
				t.AppendRow(table.Row{info.Source, info.TakenAt.Format(time.DateTime)})
			}
			t.Render()
		}

		c, err := store.Load(cmd.Context())
		if err != nil {
			serviceutil.Fatal("failed to load snapshot", err)
		}
		fmt.Println(changereport.ProductTable(c))
	},
}
