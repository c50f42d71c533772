package main

import (
	"github.com/spf13/cobra"

	"github.com/Adithya-Monish-Kumar-K/lexigraph/internal/display"
	"github.com/Adithya-Monish-Kumar-K/lexigraph/internal/loader"
)

func newRandomCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "random",
		Short: "Print a random word",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := flags.loadConfig(cmd)
			if err != nil {
				return err
			}
			eng, err := openEngine(cmd.Context(), cfg, loader.Options{})
			if err != nil {
				return err
			}
			defer eng.Close()

			entry, err := eng.GetRandomEntry(cmd.Context())
			if err != nil {
				return err
			}
			return display.RenderRandom(cmd.OutOrStdout(), entry)
		},
	}
}
