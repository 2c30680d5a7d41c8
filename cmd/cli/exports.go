package main

import (
	"fmt"
	"io"
	"time"

	"github.com/mauv0809/halo-league-export/internal/config"
	"github.com/mauv0809/halo-league-export/internal/database"
	"github.com/mauv0809/halo-league-export/internal/exports"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var listLimit int

func init() {
	exportsCmd.Flags().IntVar(&listLimit, "limit", 20, "Maximum number of exports to list")
	rootCmd.AddCommand(exportsCmd)
}

var exportsCmd = &cobra.Command{
	Use:   "exports",
	Short: "List recorded exports",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.LoadCLI()
		db, teardown, err := database.InitDB(cfg.DBName, cfg.Turso.PrimaryURL, cfg.Turso.AuthToken)
		if err != nil {
			return err
		}
		defer teardown()

		list, err := exports.New(db).ListExports(listLimit)
		if err != nil {
			return err
		}
		return renderExports(cmd.OutOrStdout(), list)
	},
}

func renderExports(w io.Writer, list []exports.Export) error {
	if len(list) == 0 {
		_, err := fmt.Fprintln(w, "No exports recorded.")
		return err
	}
	table := tablewriter.NewTable(w)
	table.Header("ID", "Match", "Created", "Rows", "Anomalies")
	for _, e := range list {
		created := time.Unix(e.CreatedAt, 0).UTC().Format(time.RFC3339)
		if err := table.Append(e.ID, e.MatchID, created, fmt.Sprint(e.RowCount), fmt.Sprint(e.AnomalyCount)); err != nil {
			return err
		}
	}
	return table.Render()
}
