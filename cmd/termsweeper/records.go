package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/vancomm/termsweeper/internal/records"
)

func newRecordsCmd(opts *options) *cobra.Command {
	var (
		limit    int
		allSizes bool
	)

	cmd := &cobra.Command{
		Use:   "records",
		Short: "List the fastest wins",
		Long: `List the fastest wins for the configured board size, or for every size
with --all-sizes.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.config(cmd)
			if err != nil {
				return err
			}

			store, err := records.Open(cmd.Context(), cfg.Records.Driver, cfg.Records.DSN)
			if err != nil {
				return err
			}
			defer store.Close()

			filter := records.Filter{Limit: limit}
			if !allSizes {
				params := cfg.Params()
				filter.Params = &params
			}
			best, err := store.Best(cmd.Context(), filter)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(best) == 0 {
				_, err := fmt.Fprintln(out, "No wins recorded yet.")
				return err
			}
			_, err = fmt.Fprintln(out, recordsTable(best))
			return err
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "number of records to show, 0 for all")
	cmd.Flags().BoolVar(&allSizes, "all-sizes", false, "include every board size")

	return cmd
}

func recordsTable(best []records.Record) string {
	header := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("#", "Board", "Mines", "Time", "Moves", "Date").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return cell
		})
	for i, r := range best {
		t.Row(
			strconv.Itoa(i+1),
			fmt.Sprintf("%dx%d", r.Rows, r.Cols),
			strconv.Itoa(r.Mines),
			r.Duration().Round(time.Millisecond).String(),
			strconv.Itoa(r.Moves),
			r.EndedAt.Local().Format(time.DateTime),
		)
	}
	return t.Render()
}
