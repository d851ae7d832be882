package pkg

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aquamarinepk/aqm/events"
)

// PublishJSON encodes v and publishes it on topic. A nil publisher is a no-op.
func PublishJSON(ctx context.Context, pub events.Publisher, topic string, v interface{}) error {
	if pub == nil {
		return nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("cannot encode event for %s: %w", topic, err)
	}
	if err := pub.Publish(ctx, topic, data); err != nil {
		return fmt.Errorf("cannot publish event to %s: %w", topic, err)
	}
	return nil
}
