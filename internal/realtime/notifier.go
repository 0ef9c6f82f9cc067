// Package realtime publishes change events over redis pub/sub so dashboard
// clients can refresh without polling.
package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type Notifier struct {
	rdb *redis.Client
}

func New(rdb *redis.Client) *Notifier {
	return &Notifier{rdb: rdb}
}

type Event struct {
	Resource string    `json:"resource"`
	Action   string    `json:"action"`
	ID       string    `json:"id"`
	At       time.Time `json:"at"`
}

// Publish sends one change event on the "asset:<resource>" channel.
// Callers treat failures as best-effort and only log them.
func (n *Notifier) Publish(ctx context.Context, resource, action, id string) error {
	payload, err := json.Marshal(Event{
		Resource: resource,
		Action:   action,
		ID:       id,
		At:       time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}
	if err := n.rdb.Publish(ctx, "asset:"+resource, string(payload)).Err(); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}
	return nil
}
