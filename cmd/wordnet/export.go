package main

import (
	"bufio"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Adithya-Monish-Kumar-K/lexigraph/internal/loader"
)

func newExportCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Write every lexical entry to stdout as newline-delimited JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := flags.loadConfig(cmd)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			eng, err := openEngine(ctx, cfg, loader.Options{})
			if err != nil {
				return err
			}
			defer eng.Close()

			w := bufio.NewWriter(cmd.OutOrStdout())
			enc := json.NewEncoder(w)
			n := 0
			for entry, err := range eng.AllEntries(ctx) {
				if err != nil {
					return fmt.Errorf("exporting after %d entries: %w", n, err)
				}
				if err := enc.Encode(entry); err != nil {
					return err
				}
				n++
			}
			return w.Flush()
		},
	}
}
