package main

import (
	"github.com/spf13/cobra"

	"github.com/vancomm/termsweeper/internal/config"
)

type options struct {
	configPath string
	rows       int
	cols       int
	mines      int
	seed       uint64
	noRecords  bool
	noColor    bool
}

// config layers the file, the environment and then any flags that were
// set explicitly.
func (o *options) config(cmd *cobra.Command) (config.Config, error) {
	cfg := config.Default()
	if o.configPath != "" {
		var err error
		if cfg, err = config.Load(o.configPath); err != nil {
			return cfg, err
		}
	}
	if err := cfg.ApplyEnv(); err != nil {
		return cfg, err
	}

	flags := cmd.Flags()
	if flags.Changed("rows") {
		cfg.Board.Rows = o.rows
	}
	if flags.Changed("cols") {
		cfg.Board.Cols = o.cols
	}
	if flags.Changed("mines") {
		cfg.Board.Mines = o.mines
	}
	if flags.Changed("seed") {
		cfg.Seed = o.seed
	}
	if o.noRecords {
		cfg.Records.Enabled = false
	}
	return cfg, nil
}

func newRootCmd() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "termsweeper",
		Short: "Minesweeper in the terminal",
		Long: `termsweeper plays one game of Minesweeper on the terminal.

Enter moves as "row col" (both starting at 1). The first square you clear
is never a mine. Finished games are kept so that "termsweeper records" can
list your fastest wins.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.config(cmd)
			if err != nil {
				return err
			}
			return play(cmd.Context(), cfg, cmd.InOrStdin(), cmd.OutOrStdout(), !opts.noColor)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "YAML config file")
	flags.IntVar(&opts.rows, "rows", 0, "board height (env: TERMSWEEPER_ROWS)")
	flags.IntVar(&opts.cols, "cols", 0, "board width (env: TERMSWEEPER_COLS)")
	flags.IntVar(&opts.mines, "mines", 0, "number of mines (env: TERMSWEEPER_MINES)")

	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "mine placement seed, 0 for random (env: TERMSWEEPER_SEED)")
	cmd.Flags().BoolVar(&opts.noRecords, "no-records", false, "do not save the result")
	cmd.Flags().BoolVar(&opts.noColor, "no-color", false, "plain output")

	cmd.AddCommand(newRecordsCmd(&opts))
	cmd.AddCommand(newMigrateCmd(&opts))

	return cmd
}
