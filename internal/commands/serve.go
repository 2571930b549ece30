package commands

import (
	"net/http"

	"github.com/spf13/cobra"

	"github.com/ledgerline-dev/ledgerline/internal/api"
	"github.com/ledgerline-dev/ledgerline/internal/classifier"
	"github.com/ledgerline-dev/ledgerline/internal/ingest"
	"github.com/ledgerline-dev/ledgerline/internal/logger"
)

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
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
			loc, err := cfg.Import.Location()
			if err != nil {
				return err
			}

			log := logger.New()
			cl := classifier.New(st, log)
			pipeline := ingest.NewPipeline(st, cl, loc, log)
			handler := api.NewHandler(st, pipeline, cl)

			log.Info().Str("addr", cfg.Server.Addr).Msg("listening")
			return http.ListenAndServe(cfg.Server.Addr, handler.Routes())
		},
	}
}
