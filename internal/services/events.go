package services

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/javajoker/storefront-backend/internal/events"
)

// publish delivers ev after a successful commit. Delivery failures are logged
// and never undo the committed change.
func publish(ctx context.Context, publisher events.Publisher, topic, key string, ev events.Event) {
	if publisher == nil {
		return
	}
	if err := publisher.Publish(context.WithoutCancel(ctx), topic, key, ev); err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"topic": topic,
			"event": ev.Type,
			"key":   key,
		}).Warn("Failed to publish domain event")
	}
}
