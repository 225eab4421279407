package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
)

func newHealCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "heal",
		Short: "Fill in missing slugs in stored news and products and save them back",
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

			// Load already ran the repair pass; flushing persists it.
			if err := d.news.Flush(ctx); err != nil {
				return fmt.Errorf("flush news: %w", err)
			}
			if err := d.products.Flush(ctx); err != nil {
				return fmt.Errorf("flush products: %w", err)
			}

			log.InfoContext(ctx, "slugs healed",
				slog.Int("news", len(d.news.List())),
				slog.Int("products", len(d.products.List())),
			)
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "healed %d news articles and %d products\n", len(d.news.List()), len(d.products.List()))
			return err
		},
	}
}
