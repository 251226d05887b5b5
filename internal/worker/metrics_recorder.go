package worker

import (
	"context"

	"github.com/mypaws/adoption-service/internal/events"
	"github.com/mypaws/adoption-service/internal/observability"
)

// StartMetricsRecorder subscribes the workflow counters to the event stream.
func StartMetricsRecorder(dispatcher events.Dispatcher, metrics *observability.Metrics) {
	if dispatcher == nil || metrics == nil {
		return
	}
	dispatcher.Subscribe(events.EventPaymentCompleted, func(_ context.Context, event events.Event) error {
		if payload, ok := event.Payload.(events.PaymentCompletedPayload); ok {
			metrics.RecordPaymentCompleted(payload.Amount)
		}
		return nil
	})
	dispatcher.Subscribe(events.EventPaymentFailed, func(_ context.Context, event events.Event) error {
		metrics.RecordPaymentFailed()
		return nil
	})
	dispatcher.Subscribe(events.EventListingActivated, func(_ context.Context, event events.Event) error {
		if payload, ok := event.Payload.(events.ListingActivatedPayload); ok {
			metrics.RecordListingActivated(string(payload.ListingType))
		}
		return nil
	})
}
