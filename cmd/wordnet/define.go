package main

import (
	"github.com/spf13/cobra"

	"github.com/Adithya-Monish-Kumar-K/lexigraph/internal/display"
	"github.com/Adithya-Monish-Kumar-K/lexigraph/internal/lexicon"
	"github.com/Adithya-Monish-Kumar-K/lexigraph/internal/loader"
)

func newDefineCmd(flags *rootFlags) *cobra.Command {
	var posFlag string
	cmd := &cobra.Command{
		Use:   "define <word>",
		Short: "Print the definitions, synonyms and relations of a word",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var pos *lexicon.PartOfSpeech
			if posFlag != "" {
				p, err := lexicon.ParsePartOfSpeech(posFlag)
				if err != nil {
					return err
				}
				pos = &p
			}
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

			word := args[0]
			views, err := display.Define(ctx, eng, word, pos)
			if err != nil {
				return err
			}
			if len(views) == 0 {
				return display.RenderNotFound(cmd.OutOrStdout(), word)
			}
			return display.Render(cmd.OutOrStdout(), views)
		},
	}
	cmd.Flags().StringVarP(&posFlag, "pos", "p", "", "restrict to a part of speech (n, v, a, r, s or a long name)")
	return cmd
}
