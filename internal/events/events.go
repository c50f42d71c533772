// Package events carries index lifecycle notifications over Kafka so that
// every serving replica can drop cached lookups when a new index appears.
package events

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Adithya-Monish-Kumar-K/lexigraph/pkg/kafka"
)

// LexiconIndexed announces that a backend finished rebuilding its data.
type LexiconIndexed struct {
	Backend  string    `json:"backend"`
	Lexicons []string  `json:"lexicons"`
	Entries  int       `json:"entries"`
	Synsets  int       `json:"synsets"`
	BuiltAt  time.Time `json:"built_at"`
}

// EventPublisher is satisfied by *kafka.Producer.
type EventPublisher interface {
	Publish(ctx context.Context, event kafka.Event) error
}

// Publisher sends LexiconIndexed events. It satisfies loader.Notifier.
type Publisher struct {
	producer EventPublisher
	logger   *slog.Logger
}

func NewPublisher(producer EventPublisher) *Publisher {
	return &Publisher{
		producer: producer,
		logger:   slog.Default().With("component", "events"),
	}
}

func (p *Publisher) Notify(ctx context.Context, ev LexiconIndexed) error {
	if err := p.producer.Publish(ctx, kafka.Event{Key: ev.Backend, Value: ev}); err != nil {
		return fmt.Errorf("publishing lexicon indexed event: %w", err)
	}
	p.logger.Info("lexicon indexed event published",
		"backend", ev.Backend,
		"entries", ev.Entries,
		"synsets", ev.Synsets,
	)
	return nil
}

// Invalidator is satisfied by *cache.LookupCache.
type Invalidator interface {
	Invalidate(ctx context.Context) error
}

// InvalidationHandler returns a consumer handler that invalidates inv on
// every LexiconIndexed event.
func InvalidationHandler(inv Invalidator) kafka.MessageHandler {
	logger := slog.Default().With("component", "events")
	return func(ctx context.Context, _, value []byte) error {
		ev, err := kafka.DecodeJSON[LexiconIndexed](value)
		if err != nil {
			return err
		}
		logger.Info("lexicon indexed event received",
			"backend", ev.Backend,
			"built_at", ev.BuiltAt,
		)
		return inv.Invalidate(ctx)
	}
}
