// Package events relays quote store notifications to a Redis channel so other
// services can follow new quotes, decisions and refreshes.
package events

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"supplier-quotes/internal/usecase/store"

	"github.com/redis/go-redis/v9"
)

const subscriberBuffer = 64

type Publisher interface {
	Publish(ctx context.Context, channel string, message any) *redis.IntCmd
}

type Source interface {
	Subscribe(buffer int) (<-chan store.Event, func())
}

// Message is the JSON payload published per store event.
type Message struct {
	Type       string    `json:"type"`
	QuoteID    string    `json:"quote_id,omitempty"`
	Number     string    `json:"quote_number,omitempty"`
	Status     string    `json:"status,omitempty"`
	Total      string    `json:"total,omitempty"`
	DealID     string    `json:"deal_id,omitempty"`
	Count      int       `json:"count,omitempty"`
	Generation uint64    `json:"generation,omitempty"`
	At         time.Time `json:"at"`
}

func NewMessage(ev store.Event) Message {
	m := Message{
		Type:       string(ev.Type),
		Count:      ev.Count,
		Generation: ev.Generation,
		At:         ev.At.UTC(),
	}
	if ev.Quote != nil {
		m.QuoteID = ev.Quote.ID().String()
		m.Number = ev.Quote.Number()
		m.Status = ev.Quote.Status().String()
		m.Total = ev.Quote.Total().StringFixed(2)
		m.DealID = ev.Quote.DealID().String()
	}
	return m
}

type Forwarder struct {
	source    Source
	publisher Publisher
	channel   string
	logger    *slog.Logger
	timeout   time.Duration
}

func NewForwarder(source Source, publisher Publisher, channel string, logger *slog.Logger) *Forwarder {
	return &Forwarder{
		source:    source,
		publisher: publisher,
		channel:   channel,
		logger:    logger,
		timeout:   2 * time.Second,
	}
}

// Run blocks until ctx is done. Publish failures are logged and skipped.
func (f *Forwarder) Run(ctx context.Context) {
	ch, cancel := f.source.Subscribe(subscriberBuffer)
	defer cancel()

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-ch:
			if !ok {
				return
			}
			f.forward(ctx, ev)
		}
	}
}

func (f *Forwarder) forward(ctx context.Context, ev store.Event) {
	payload, err := json.Marshal(NewMessage(ev))
	if err != nil {
		f.logger.Error("failed to encode quote event", "type", string(ev.Type), "error", err.Error())
		return
	}

	pubCtx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()
	if err := f.publisher.Publish(pubCtx, f.channel, payload).Err(); err != nil {
		f.logger.Warn("failed to publish quote event",
			"channel", f.channel,
			"type", string(ev.Type),
			"error", err.Error())
		return
	}
	f.logger.Debug("quote event published", "channel", f.channel, "type", string(ev.Type))
}
