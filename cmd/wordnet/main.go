// Command wordnet looks words up in a WordNet LMF lexicon and serves it over
// HTTP. The lexicon is indexed on first use and kept either as a snapshot or
// in a relational database.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Adithya-Monish-Kumar-K/lexigraph/internal/lmf"
	"github.com/Adithya-Monish-Kumar-K/lexigraph/internal/loader"
	"github.com/Adithya-Monish-Kumar-K/lexigraph/internal/query"
	"github.com/Adithya-Monish-Kumar-K/lexigraph/pkg/config"
	"github.com/Adithya-Monish-Kumar-K/lexigraph/pkg/logger"
)

// rootFlags are the persistent flags shared by every subcommand.
type rootFlags struct {
	configPath   string
	backend      string
	source       string
	forceRebuild bool
	logLevel     string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	root := &cobra.Command{
		Use:           "wordnet",
		Short:         "Look up words in a WordNet lexicon",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	pf := root.PersistentFlags()
	pf.StringVarP(&flags.configPath, "config", "c", "", "path to a YAML config file")
	pf.StringVar(&flags.backend, "backend", "", "storage backend: memory, sqlite or postgres")
	pf.StringVar(&flags.source, "source", "", "path to the LMF document (.xml or .xml.gz)")
	pf.BoolVar(&flags.forceRebuild, "force-rebuild", false, "discard persisted data and rebuild from the source")
	pf.StringVar(&flags.logLevel, "log-level", "", "log level: debug, info, warn or error")

	root.AddCommand(
		newDefineCmd(flags),
		newRandomCmd(flags),
		newClearDBCmd(flags),
		newExportCmd(flags),
		newServeCmd(flags),
		newLoadTestCmd(),
	)
	return root
}

// loadConfig reads the config file, then lets explicitly set flags win over
// both the file and the environment.
func (f *rootFlags) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return nil, err
	}
	pf := cmd.Flags()
	if pf.Changed("backend") {
		cfg.Store.Backend = f.backend
	}
	if pf.Changed("source") {
		cfg.Source.Path = f.source
	}
	if pf.Changed("force-rebuild") {
		cfg.Store.ForceRebuild = f.forceRebuild
	}
	if pf.Changed("log-level") {
		cfg.Logging.Level = f.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger.SetupWriter(cmd.ErrOrStderr(), cfg.Logging.Level, cfg.Logging.Format)
	return cfg, nil
}

// openEngine loads the configured backend, building it from the source
// document when needed.
func openEngine(ctx context.Context, cfg *config.Config, opts loader.Options) (query.Engine, error) {
	base := loader.OptionsFromConfig(cfg)
	base.Notifier = opts.Notifier
	base.Recorder = opts.Recorder
	base.Logger = opts.Logger
	base.Progress = opts.Progress
	if base.Progress == nil {
		base.Progress = logProgress
	}
	return loader.Load(ctx, base, lmf.NewFileProvider(cfg.Source.Path))
}

// logProgress reports each table once it has been written in full.
func logProgress(stage string, done, total int) {
	if done == total {
		slog.Info("table written", "component", "populate", "table", stage, "rows", total)
	}
}
