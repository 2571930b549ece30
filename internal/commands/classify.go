package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ledgerline-dev/ledgerline/internal/classifier"
	"github.com/ledgerline-dev/ledgerline/internal/logger"
)

func newClassifyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "classify",
		Short: "Classify all pending transactions against the keyword rules",
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

			cl := classifier.New(st, logger.New())
			runLog, err := cl.ClassifyPending(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Printf("Classification complete: %s\n", runLog.Report())
			return nil
		},
	}
}
