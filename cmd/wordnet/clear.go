package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Adithya-Monish-Kumar-K/lexigraph/internal/store/relational"
	"github.com/Adithya-Monish-Kumar-K/lexigraph/internal/store/snapshot"
	"github.com/Adithya-Monish-Kumar-K/lexigraph/pkg/config"
	"github.com/Adithya-Monish-Kumar-K/lexigraph/pkg/postgres"
	"github.com/Adithya-Monish-Kumar-K/lexigraph/pkg/sqlite"
)

func newClearDBCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "clear-db",
		Short: "Delete the snapshot and the SQLite database",
		Long: "Delete the snapshot and the SQLite database files. With the postgres " +
			"backend the lexigraph tables are dropped as well. The next command " +
			"rebuilds from the source document.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := flags.loadConfig(cmd)
			if err != nil {
				return err
			}
			if err := snapshot.Remove(cfg.Snapshot.Path); err != nil {
				return err
			}
			if err := sqlite.Remove(cfg.SQLite.Path); err != nil {
				return err
			}
			if cfg.Store.Backend == config.BackendPostgres {
				if err := dropPostgres(cmd, cfg); err != nil {
					return err
				}
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), "Database cleared successfully.")
			return err
		},
	}
}

func dropPostgres(cmd *cobra.Command, cfg *config.Config) error {
	ctx := cmd.Context()
	client, err := postgres.New(ctx, cfg.Postgres)
	if err != nil {
		return err
	}
	store, _, err := relational.Open(ctx, client.DB, relational.DialectPostgres, relational.Options{})
	if err != nil {
		client.Close()
		return err
	}
	defer store.Close()
	return store.Drop(ctx)
}
