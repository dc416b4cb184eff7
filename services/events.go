package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/Alx74909/Projet-ATLAS/config"
	"github.com/Alx74909/Projet-ATLAS/models"

	"github.com/redis/go-redis/v9"
)

// EventPublisher broadcasts prediction events on a Redis channel. A publisher
// without a client is a no-op, so Redis stays optional.
type EventPublisher struct {
	client  *redis.Client
	channel string
}

func NewEventPublisher(cfg config.RedisConfig) (*EventPublisher, error) {
	if cfg.URL == "" {
		return &EventPublisher{channel: cfg.Channel}, nil
	}
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return &EventPublisher{channel: cfg.Channel}, fmt.Errorf("invalid REDIS_URL: %w", err)
	}
	client := redis.NewClient(opts)

	var lastErr error
	for i := 0; i < cfg.PingAttempts; i++ {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		lastErr = client.Ping(ctx).Err()
		cancel()
		if lastErr == nil {
			return &EventPublisher{client: client, channel: cfg.Channel}, nil
		}
		log.Printf("redis ping attempt %d/%d failed: %v", i+1, cfg.PingAttempts, lastErr)
		time.Sleep(time.Second)
	}
	client.Close()
	return &EventPublisher{channel: cfg.Channel}, fmt.Errorf("redis ping failed after %d attempts: %w", cfg.PingAttempts, lastErr)
}

func (p *EventPublisher) Available() bool {
	return p != nil && p.client != nil
}

func (p *EventPublisher) Publish(ctx context.Context, event models.PredictionEvent) error {
	if !p.Available() {
		return nil
	}
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	if err := p.client.Publish(ctx, p.channel, data).Err(); err != nil {
		return err
	}
	eventsPublished.Inc()
	return nil
}

func (p *EventPublisher) Close() error {
	if !p.Available() {
		return nil
	}
	return p.client.Close()
}
