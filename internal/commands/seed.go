package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ledgerline-dev/ledgerline/internal/seed"
)

func newSeedCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Create the default companies, categories, and keywords",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			st, err := openStore(cfg)
			if err != nil {
				return err
			}

			if err := seed.Apply(cmd.Context(), st, seed.Defaults()); err != nil {
				return fmt.Errorf("seeding: %w", err)
			}
			fmt.Println("Seed data created")
			return nil
		},
	}
}
