package commands

import (
	"github.com/spf13/cobra"

	"github.com/ledgerline-dev/ledgerline/internal/config"
	"github.com/ledgerline-dev/ledgerline/internal/store"
	"github.com/ledgerline-dev/ledgerline/internal/store/postgres"
)

// loadConfig reads the config file named by the --config flag.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	return config.Load(path)
}

// openStore connects to the configured database.
func openStore(cfg *config.Config) (store.Store, error) {
	return postgres.Open(cfg.Database.DSN)
}
