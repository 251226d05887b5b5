package worker

import (
	"context"
	"testing"

	"github.com/mypaws/adoption-service/internal/domain"
	"github.com/mypaws/adoption-service/internal/events"
	"github.com/mypaws/adoption-service/internal/observability"
)

func TestMetricsRecorderCountsWorkflowEvents(t *testing.T) {
	t.Parallel()
	dispatcher := events.NewInMemoryDispatcher()
	metrics := observability.NewMetrics()
	StartMetricsRecorder(dispatcher, metrics)

	ctx := context.Background()
	publish := func(event events.Event) {
		t.Helper()
		if err := dispatcher.Publish(ctx, event); err != nil {
			t.Fatalf("publish: %v", err)
		}
	}

	publish(events.Event{
		Type: events.EventPaymentCompleted,
		Payload: events.PaymentCompletedPayload{
			PaymentID:   "pay-1",
			ListingType: domain.ListingTypeAdoption,
			ListingID:   "adoption-1",
			Amount:      399,
		},
	})
	publish(events.Event{
		Type:    events.EventPaymentFailed,
		Payload: events.PaymentFailedPayload{PaymentID: "pay-2", Reason: "signature verification failed"},
	})
	publish(events.Event{
		Type: events.EventListingActivated,
		Payload: events.ListingActivatedPayload{
			ListingType: domain.ListingTypeAdoption,
			ListingID:   "adoption-1",
			PricingTier: domain.TierFeatured,
		},
	})
	publish(events.Event{
		Type: events.EventListingActivated,
		Payload: events.ListingActivatedPayload{
			ListingType: domain.ListingTypeBreeder,
			ListingID:   "sale-1",
			PricingTier: domain.TierFree,
			FreeTier:    true,
		},
	})
	// Unrelated events pass through untouched.
	publish(events.Event{
		Type:    events.EventListingAdopted,
		Payload: events.ListingAdoptedPayload{ListingID: "adoption-1"},
	})

	snap := metrics.Domain()
	if snap.PaymentsCompleted != 1 || snap.AmountCollected != 399 {
		t.Fatalf("completed = %d amount = %d, want 1 and 399", snap.PaymentsCompleted, snap.AmountCollected)
	}
	if snap.PaymentsFailed != 1 {
		t.Fatalf("failed = %d, want 1", snap.PaymentsFailed)
	}
	if snap.Activations[string(domain.ListingTypeAdoption)] != 1 {
		t.Fatalf("adoption activations = %d, want 1", snap.Activations[string(domain.ListingTypeAdoption)])
	}
	if snap.Activations[string(domain.ListingTypeBreeder)] != 1 {
		t.Fatalf("breeder activations = %d, want 1", snap.Activations[string(domain.ListingTypeBreeder)])
	}
}

func TestMetricsRecorderToleratesMissingCollaborators(t *testing.T) {
	t.Parallel()
	StartMetricsRecorder(nil, observability.NewMetrics())
	StartMetricsRecorder(events.NewInMemoryDispatcher(), nil)
}
