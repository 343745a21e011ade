package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"price-radar/pkg/logger"
	"price-radar/pkg/models"

	"github.com/redis/go-redis/v9"
)

// Dispatcher delivers a price-drop notification for a triggered alert.
type Dispatcher interface {
	Notify(ctx context.Context, alert models.PriceAlert) error
}

// Event is the payload published for a triggered alert.
type Event struct {
	AlertID      string             `json:"alertId"`
	UserID       string             `json:"userId"`
	ProductID    string             `json:"productId"`
	ProductName  string             `json:"productName"`
	Platform     models.Marketplace `json:"platform"`
	TargetPrice  int64              `json:"targetPrice"`
	CurrentPrice int64              `json:"currentPrice"`
	TriggeredAt  time.Time          `json:"triggeredAt"`
}

func NewEvent(alert models.PriceAlert) Event {
	e := Event{
		AlertID:      alert.ID,
		UserID:       alert.UserID,
		ProductID:    alert.ProductID,
		ProductName:  alert.ProductName,
		Platform:     alert.Platform,
		TargetPrice:  alert.TargetPrice,
		CurrentPrice: alert.CurrentPrice,
	}
	if alert.TriggeredAt != nil {
		e.TriggeredAt = *alert.TriggeredAt
	}
	return e
}

// LogDispatcher writes notifications to the structured log.
type LogDispatcher struct{}

func (LogDispatcher) Notify(_ context.Context, alert models.PriceAlert) error {
	logger.Logger.Info().
		Str("alert_id", alert.ID).
		Str("user_id", alert.UserID).
		Str("product", alert.ProductName).
		Int64("target_price", alert.TargetPrice).
		Int64("current_price", alert.CurrentPrice).
		Msg("price alert triggered")
	return nil
}

// Publisher is the subset of the redis client used for pub/sub delivery.
type Publisher interface {
	Publish(ctx context.Context, channel string, message any) *redis.IntCmd
}

// RedisDispatcher publishes alert events as JSON on a channel.
type RedisDispatcher struct {
	client  Publisher
	channel string
}

func NewRedisDispatcher(client Publisher, channel string) *RedisDispatcher {
	return &RedisDispatcher{client: client, channel: channel}
}

func (d *RedisDispatcher) Notify(ctx context.Context, alert models.PriceAlert) error {
	payload, err := json.Marshal(NewEvent(alert))
	if err != nil {
		return err
	}
	if err := d.client.Publish(ctx, d.channel, payload).Err(); err != nil {
		return fmt.Errorf("publish alert %s: %w", alert.ID, err)
	}
	return nil
}

// Multi fans a notification out to several dispatchers and returns the first error.
type Multi []Dispatcher

func (m Multi) Notify(ctx context.Context, alert models.PriceAlert) error {
	var firstErr error
	for _, d := range m {
		if err := d.Notify(ctx, alert); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
