package payments

import "testing"

const testSecret = "test-key-secret"

func TestVerifySignatureRoundTrip(t *testing.T) {
	sig := SignPayment(testSecret, "order_123", "pay_456")

	if !VerifySignature(testSecret, "order_123", "pay_456", sig) {
		t.Fatal("expected untampered triple to verify")
	}
}

func TestVerifySignatureRejectsTampering(t *testing.T) {
	sig := SignPayment(testSecret, "order_123", "pay_456")

	cases := []struct {
		name      string
		orderID   string
		paymentID string
		signature string
	}{
		{"tampered order id", "order_999", "pay_456", sig},
		{"tampered payment id", "order_123", "pay_999", sig},
		{"tampered signature", "order_123", "pay_456", sig[:len(sig)-1] + "0"},
		{"empty signature", "order_123", "pay_456", ""},
		{"wrong secret", "order_123", "pay_456", SignPayment("other-secret", "order_123", "pay_456")},
		{"swapped ids", "pay_456", "order_123", sig},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if VerifySignature(testSecret, tc.orderID, tc.paymentID, tc.signature) {
				t.Fatalf("expected verification to fail for %s", tc.name)
			}
		})
	}
}

func TestClientVerifySignatureUsesKeySecret(t *testing.T) {
	c := NewClient("key-id", testSecret, "order_rcptid_11")

	sig := SignPayment(testSecret, "order_abc", "pay_def")
	if !c.VerifySignature("order_abc", "pay_def", sig) {
		t.Fatal("client should verify a signature derived from its key secret")
	}
	if c.VerifySignature("order_abc", "pay_def", "deadbeef") {
		t.Fatal("client verified a bogus signature")
	}
}
