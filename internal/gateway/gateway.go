package gateway

import "context"

// Order is the gateway-side order handle returned on creation. KeyID is
// echoed so the web client can open the checkout widget.
type Order struct {
	OrderID string
	KeyID   string
}

// PaymentGateway is the external payment collaborator. Two operations only:
// create an order, verify a completed payment's signature.
type PaymentGateway interface {
	CreateOrder(ctx context.Context, amount int64, currency, receipt string, notes map[string]string) (*Order, error)
	VerifySignature(orderID, paymentID, signature string) bool
}
