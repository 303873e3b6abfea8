// Package events publishes order lifecycle events to downstream consumers.
package events

import (
	"context"
	"errors"
)

// Routing keys.
const (
	OrderCreated       = "order.created"
	OrderStatusUpdated = "order.status_updated"
)

// Publisher delivers a JSON-encodable payload under a routing key.
type Publisher interface {
	Publish(ctx context.Context, key string, v any) error
}

// Noop drops every event. Used when no broker is configured.
type Noop struct{}

func (Noop) Publish(context.Context, string, any) error { return nil }

// Multi publishes to every publisher and joins their errors.
type Multi []Publisher

func (m Multi) Publish(ctx context.Context, key string, v any) error {
	var errs []error
	for _, p := range m {
		if p == nil {
			continue
		}
		if err := p.Publish(ctx, key, v); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
