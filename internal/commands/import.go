package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ledgerline-dev/ledgerline/internal/classifier"
	"github.com/ledgerline-dev/ledgerline/internal/ingest"
	"github.com/ledgerline-dev/ledgerline/internal/logger"
)

func newImportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.csv>",
		Short: "Replace all transactions with a bank CSV export and classify them",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			st, err := openStore(cfg)
			if err != nil {
				return err
			}
			loc, err := cfg.Import.Location()
			if err != nil {
				return err
			}

			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("opening %s: %w", args[0], err)
			}
			defer f.Close()

			log := logger.New()
			cl := classifier.New(st, log)
			pipeline := ingest.NewPipeline(st, cl, loc, log)

			runLog, err := pipeline.Ingest(cmd.Context(), f, filepath.Base(args[0]))
			if err != nil {
				return err
			}

			fmt.Printf("Import complete: %s\n", runLog.Report())
			return nil
		},
	}
}
