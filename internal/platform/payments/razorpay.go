// Package payments wraps the Razorpay integration: order creation against
// the processor and local HMAC verification of payment signatures. Orders are
// not persisted locally; the processor's ledger is the source of truth.
package payments

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/nexgenbattles/tournament-api/internal/domain"
	razorpay "github.com/razorpay/razorpay-go"
)

// OrderCreator is the slice of the processor the handlers need.
type OrderCreator interface {
	CreateOrder(ctx context.Context, amount int64, currency string) (*domain.OrderRes, error)
}

// SignatureVerifier checks a client-submitted payment confirmation.
type SignatureVerifier interface {
	VerifySignature(orderID, paymentID, signature string) bool
}

type Client struct {
	rz      *razorpay.Client
	secret  string
	receipt string
}

func NewClient(keyID, keySecret, receipt string) *Client {
	return &Client{
		rz:      razorpay.NewClient(keyID, keySecret),
		secret:  keySecret,
		receipt: receipt,
	}
}

// CreateOrder registers an order with Razorpay. Amount arrives in major
// currency units and is converted to minor units (paise) for the processor.
func (c *Client) CreateOrder(ctx context.Context, amount int64, currency string) (*domain.OrderRes, error) {
	data := map[string]interface{}{
		"amount":   amount * 100,
		"currency": currency,
		"receipt":  c.receipt,
	}

	order, err := c.rz.Order.Create(data, nil)
	if err != nil {
		return nil, fmt.Errorf("razorpay order create: %w", err)
	}

	id, _ := order["id"].(string)
	if id == "" {
		return nil, fmt.Errorf("razorpay order create: response missing id")
	}

	return &domain.OrderRes{OrderID: id, Amount: amount * 100}, nil
}

// VerifySignature recomputes HMAC-SHA256(secret, orderID+"|"+paymentID) and
// compares the hex digest with the submitted signature in constant time.
func (c *Client) VerifySignature(orderID, paymentID, signature string) bool {
	return VerifySignature(c.secret, orderID, paymentID, signature)
}

func VerifySignature(secret, orderID, paymentID, signature string) bool {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

// SignPayment produces the signature the processor would; used by tests and
// by tooling that simulates the checkout callback.
func SignPayment(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}
