package gateway

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"
)

func signPayload(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifySignature(t *testing.T) {
	t.Parallel()
	g := NewRazorpayGateway("rzp_test_key", "rzp_test_secret")

	orderID := "order_EKwxwAgItmmXdp"
	paymentID := "pay_29QQoUBi66xm2f"
	good := signPayload("rzp_test_secret", orderID, paymentID)

	if !g.VerifySignature(orderID, paymentID, good) {
		t.Fatal("expected valid signature to verify")
	}
	if g.VerifySignature(orderID, paymentID, "deadbeef") {
		t.Fatal("forged signature must not verify")
	}
	if g.VerifySignature(orderID, "pay_other", good) {
		t.Fatal("signature must bind to the payment id")
	}
	if g.VerifySignature("order_other", paymentID, good) {
		t.Fatal("signature must bind to the order id")
	}
	if g.VerifySignature(orderID, paymentID, signPayload("wrong_secret", orderID, paymentID)) {
		t.Fatal("signature from a different secret must not verify")
	}
}
