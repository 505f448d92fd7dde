package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/coffee-shop-service/internal/events"
)

// publishEvent hands the event to the dispatcher. Subscriber failures are
// logged and never reach the caller.
func publishEvent(ctx context.Context, dispatcher events.Dispatcher, logger *zap.Logger, event events.Event) {
	if dispatcher == nil {
		return
	}
	if err := dispatcher.Publish(ctx, event); err != nil {
		logger.Warn("event subscriber failed",
			zap.String("event_id", event.ID),
			zap.String("event_type", string(event.Type)),
			zap.Error(err))
	}
}
