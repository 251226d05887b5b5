package observability

import (
	"strconv"
	"sync"
	"time"
)

// Metrics keeps in-memory counters for the HTTP surface and for the
// marketplace workflow (payments and listing activations).
type Metrics struct {
	mu                sync.Mutex
	requestCount      map[string]int64
	errorCount        map[string]int64
	activationCount   map[string]int64
	paymentsCompleted int64
	paymentsFailed    int64
	amountCollected   int64
}

// DomainSnapshot is a point-in-time copy of the workflow counters.
type DomainSnapshot struct {
	PaymentsCompleted int64
	PaymentsFailed    int64
	AmountCollected   int64
	Activations       map[string]int64
}

// NewMetrics initializes metrics storage.
func NewMetrics() *Metrics {
	return &Metrics{
		requestCount:    make(map[string]int64),
		errorCount:      make(map[string]int64),
		activationCount: make(map[string]int64),
	}
}

// RecordRequest increments counters for requests.
func (m *Metrics) RecordRequest(path, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	key := pathKey(path, method, status)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requestCount[key]++
}

// RecordError increments error counters.
func (m *Metrics) RecordError(path, method, code string) {
	if m == nil {
		return
	}
	key := path + "|" + method + "|" + code
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errorCount[key]++
}

// RecordPaymentCompleted counts a settled payment and its gross amount.
func (m *Metrics) RecordPaymentCompleted(amount int64) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.paymentsCompleted++
	m.amountCollected += amount
}

// RecordPaymentFailed counts a payment that did not settle.
func (m *Metrics) RecordPaymentFailed() {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.paymentsFailed++
}

// RecordListingActivated counts a listing going live, keyed by listing type.
func (m *Metrics) RecordListingActivated(listingType string) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.activationCount[listingType]++
}

// Domain returns a copy of the workflow counters.
func (m *Metrics) Domain() DomainSnapshot {
	if m == nil {
		return DomainSnapshot{Activations: map[string]int64{}}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	activations := make(map[string]int64, len(m.activationCount))
	for k, v := range m.activationCount {
		activations[k] = v
	}
	return DomainSnapshot{
		PaymentsCompleted: m.paymentsCompleted,
		PaymentsFailed:    m.paymentsFailed,
		AmountCollected:   m.amountCollected,
		Activations:       activations,
	}
}

func pathKey(path, method string, status int) string {
	return path + "|" + method + "|" + strconv.Itoa(status)
}
