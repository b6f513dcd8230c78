package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vancomm/termsweeper/internal/database"
)

func newMigrateCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or upgrade the records database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.config(cmd)
			if err != nil {
				return err
			}
			version, dirty, err := database.Migrate(cfg.Records.Driver, cfg.Records.DSN)
			if err != nil {
				return fmt.Errorf("failed to migrate records database: %w", err)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "records schema at version %d (dirty: %t)\n", version, dirty)
			return err
		},
	}
}
