package events

import (
	"context"
	"encoding/json"
	"healthdash/config"
	"healthdash/internal/database"
	"healthdash/internal/logger"
	"sync"
	"time"

	"github.com/valkey-io/valkey-go"
)

type Event struct {
	ID        string         `json:"id"`
	Type      string         `json:"type"`
	Channel   string         `json:"channel,omitempty"`
	UserID    string         `json:"userId,omitempty"`
	Data      map[string]any `json:"data,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}

// EventBus publishes application events over valkey pubsub. Without a cache
// client it degrades to in-process delivery, which is what tests use.
type EventBus struct {
	client database.CacheClient
	config config.Config
	log    logger.Logger

	mu      sync.RWMutex
	local   map[string][]func(Event)
	cancels []func()
}

func New(client database.CacheClient, config config.Config) *EventBus {
	return &EventBus{
		client: client,
		config: config,
		log:    logger.New("events"),
		local:  make(map[string][]func(Event)),
	}
}

func (b *EventBus) Publish(channel string, event Event) error {
	log := b.log.Function("Publish")

	payload, err := json.Marshal(event)
	if err != nil {
		return log.Err("failed to marshal event", err, "channel", channel)
	}

	if b.client == nil {
		b.mu.RLock()
		handlers := b.local[channel]
		b.mu.RUnlock()
		for _, handler := range handlers {
			handler(event)
		}
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := b.client.Do(ctx, b.client.B().Publish().Channel(channel).Message(string(payload)).Build()).Error(); err != nil {
		return log.Err("failed to publish event", err, "channel", channel)
	}

	return nil
}

// Subscribe registers a handler for a channel. With a cache client the
// subscription rides a dedicated pubsub connection; otherwise events are
// delivered in-process on Publish.
func (b *EventBus) Subscribe(channel string, handler func(Event)) {
	log := b.log.Function("Subscribe")

	if b.client == nil {
		b.mu.Lock()
		b.local[channel] = append(b.local[channel], handler)
		b.mu.Unlock()
		return
	}

	dedicated, cancel := b.client.Dedicate()
	b.mu.Lock()
	b.cancels = append(b.cancels, cancel)
	b.mu.Unlock()

	go func() {
		err := dedicated.Receive(context.Background(),
			dedicated.B().Subscribe().Channel(channel).Build(),
			func(msg valkey.PubSubMessage) {
				var event Event
				if err := json.Unmarshal([]byte(msg.Message), &event); err != nil {
					log.Er("failed to unmarshal event", err, "channel", channel)
					return
				}
				handler(event)
			})
		if err != nil {
			log.Er("pubsub receive ended", err, "channel", channel)
		}
	}()
}

func (b *EventBus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, cancel := range b.cancels {
		cancel()
	}
	b.cancels = nil
	return nil
}
