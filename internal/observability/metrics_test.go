package observability

import "testing"

func TestMetricsDomainCounters(t *testing.T) {
	t.Parallel()
	m := NewMetrics()

	m.RecordPaymentCompleted(199)
	m.RecordPaymentCompleted(999)
	m.RecordPaymentFailed()
	m.RecordListingActivated("adoption")
	m.RecordListingActivated("adoption")
	m.RecordListingActivated("breeder")

	snap := m.Domain()
	if snap.PaymentsCompleted != 2 {
		t.Fatalf("payments completed = %d, want 2", snap.PaymentsCompleted)
	}
	if snap.PaymentsFailed != 1 {
		t.Fatalf("payments failed = %d, want 1", snap.PaymentsFailed)
	}
	if snap.AmountCollected != 1198 {
		t.Fatalf("amount collected = %d, want 1198", snap.AmountCollected)
	}
	if snap.Activations["adoption"] != 2 || snap.Activations["breeder"] != 1 {
		t.Fatalf("activations = %v, want adoption=2 breeder=1", snap.Activations)
	}

	// The snapshot is a copy, not a view.
	snap.Activations["adoption"] = 99
	if m.Domain().Activations["adoption"] != 2 {
		t.Fatal("mutating a snapshot must not touch the live counters")
	}
}

func TestMetricsNilReceiverIsSafe(t *testing.T) {
	t.Parallel()
	var m *Metrics
	m.RecordRequest("/health/live", "GET", 200, 0)
	m.RecordError("/api/v1/payments/initiate", "POST", "gateway_error")
	m.RecordPaymentCompleted(499)
	m.RecordPaymentFailed()
	m.RecordListingActivated("adoption")
	if snap := m.Domain(); snap.PaymentsCompleted != 0 || len(snap.Activations) != 0 {
		t.Fatalf("nil metrics snapshot = %+v, want zero values", snap)
	}
}
