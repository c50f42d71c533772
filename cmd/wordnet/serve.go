package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/Adithya-Monish-Kumar-K/lexigraph/internal/api"
	"github.com/Adithya-Monish-Kumar-K/lexigraph/internal/cache"
	"github.com/Adithya-Monish-Kumar-K/lexigraph/internal/events"
	"github.com/Adithya-Monish-Kumar-K/lexigraph/internal/loader"
	"github.com/Adithya-Monish-Kumar-K/lexigraph/internal/query"
	"github.com/Adithya-Monish-Kumar-K/lexigraph/pkg/config"
	"github.com/Adithya-Monish-Kumar-K/lexigraph/pkg/health"
	"github.com/Adithya-Monish-Kumar-K/lexigraph/pkg/kafka"
	"github.com/Adithya-Monish-Kumar-K/lexigraph/pkg/metrics"
	"github.com/Adithya-Monish-Kumar-K/lexigraph/pkg/middleware"
	pkgredis "github.com/Adithya-Monish-Kumar-K/lexigraph/pkg/redis"
	"github.com/Adithya-Monish-Kumar-K/lexigraph/pkg/resilience"
)

const breakerName = "lookup-cache"

func newServeCmd(flags *rootFlags) *cobra.Command {
	var port int
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the lexicon as a read-only JSON API",
		Long: "Serve the lexicon over HTTP. The server starts answering health checks " +
			"immediately; API calls return 503 until the lexicon has been loaded.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := flags.loadConfig(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("port") {
				cfg.Server.Port = port
			}
			return serve(cmd.Context(), cfg)
		},
	}
	cmd.Flags().IntVar(&port, "port", 8080, "HTTP port for the API")
	return cmd
}

func serve(ctx context.Context, cfg *config.Config) error {
	logger := slog.Default().With("component", "serve")
	logger.Info("starting lexigraph", "backend", cfg.Store.Backend, "port", cfg.Server.Port)

	m := metrics.New(nil)
	if cfg.Metrics.Enabled {
		shutdownMetrics := m.StartServer(cfg.Metrics.Port)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
			defer cancel()
			shutdownMetrics(shutdownCtx)
		}()
	}

	holder := query.NewHolder()
	defer holder.Close()

	var redisClient *pkgredis.Client
	if cfg.Cache.Enabled {
		var err error
		redisClient, err = pkgredis.NewClient(ctx, cfg.Redis)
		if err != nil {
			logger.Warn("redis unavailable, lookup caching disabled", "error", err)
		} else {
			defer redisClient.Close()
			logger.Info("lookup cache enabled", "addr", cfg.Redis.Addr, "ttl", cfg.Cache.TTL)
		}
	}
	breaker := resilience.NewCircuitBreaker(breakerName, resilience.CircuitBreakerConfig{})

	var producer *kafka.Producer
	if cfg.Kafka.Enabled {
		producer = kafka.NewProducer(cfg.Kafka, cfg.Kafka.Topics.LexiconIndexed)
		defer producer.Close()
	}

	checker := health.NewChecker()
	checker.Register("lexicon", func(context.Context) health.ComponentHealth {
		if holder.Ready() {
			return health.ComponentHealth{Status: health.StatusUp}
		}
		return health.ComponentHealth{Status: health.StatusDown, Message: "loading"}
	})
	if redisClient != nil {
		checker.RegisterOptional("redis", health.FromError(func(ctx context.Context) error {
			m.SetBreakerState(breakerName, int(breaker.State()))
			return redisClient.Ping(ctx)
		}))
	}

	var limiter *middleware.Limiter
	if cfg.Server.RateLimit > 0 {
		limiter = middleware.NewLimiter(cfg.Server.RateLimit, time.Minute)
		defer limiter.Close()
		logger.Info("rate limiting enabled", "requests_per_minute", cfg.Server.RateLimit)
	}

	handler := api.NewRouter(api.NewHandler(holder, cfg.Server.RequestTimeout), checker, m, limiter)
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      middleware.Timeout(cfg.Server.WriteTimeout)(handler),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("api listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("api server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	g.Go(func() error {
		opts := loader.Options{Recorder: m, Logger: slog.Default()}
		if producer != nil {
			opts.Notifier = events.NewPublisher(producer)
		}
		loaded, err := openEngine(gctx, cfg, opts)
		if err != nil {
			return fmt.Errorf("loading lexicon: %w", err)
		}

		var eng query.Engine = query.NewInstrumented(loaded, cfg.Store.Backend, m)
		var lookups *cache.LookupCache
		if redisClient != nil {
			lookups = cache.New(eng, redisClient, cache.Options{
				TTL:      cfg.Cache.TTL,
				Breaker:  breaker,
				Observer: m,
			})
			eng = lookups
		}
		holder.Set(eng)
		logger.Info("lexicon ready")

		if lookups == nil || !cfg.Kafka.Enabled {
			return nil
		}
		consumer := kafka.NewConsumer(cfg.Kafka, cfg.Kafka.Topics.LexiconIndexed, events.InvalidationHandler(lookups))
		return consumer.Start(gctx)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("lexigraph stopped")
	return nil
}
