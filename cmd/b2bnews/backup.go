package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/b2bnews/internal/backup"
)

func newBackupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "backup",
		Short: "Copy all snapshots to object storage once",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			cfg, log, err := setup()
			if err != nil {
				return err
			}

			d, err := newDeps(ctx, cfg, log)
			if err != nil {
				return err
			}
			defer d.close(ctx)

			res, err := backup.New(cfg.Backup, d.backend, d.storage, log).Run(ctx)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, obj := range res.Objects {
				fmt.Fprintf(out, "%s\t%d bytes\n", obj.Key, obj.Size)
			}
			for _, key := range res.Skipped {
				fmt.Fprintf(out, "%s\tskipped (never saved)\n", key)
			}
			return nil
		},
	}
}
