package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/nexgenbattles/tournament-api/internal/domain"
	"github.com/nexgenbattles/tournament-api/internal/http/response"
	"github.com/nexgenbattles/tournament-api/internal/platform/payments"
	"github.com/nexgenbattles/tournament-api/pkg/events"
	"github.com/nexgenbattles/tournament-api/pkg/logger"
)

// PaymentsHandler exposes order creation and signature verification. Both
// endpoints are public: verification is part of the processor's checkout
// callback design, where the only proof of payment is the HMAC signature
// itself. Do not add a session gate here without changing the checkout flow.
type PaymentsHandler struct {
	orders   payments.OrderCreator
	verifier payments.SignatureVerifier
	eventBus events.Publisher
}

func NewPaymentsHandler(orders payments.OrderCreator, verifier payments.SignatureVerifier, eventBus events.Publisher) *PaymentsHandler {
	return &PaymentsHandler{orders: orders, verifier: verifier, eventBus: eventBus}
}

func (h *PaymentsHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/order", h.createOrder)
	r.Post("/verify", h.verify)
	return r
}

func (h *PaymentsHandler) createOrder(w http.ResponseWriter, r *http.Request) {
	var in domain.OrderReq
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		response.BadRequest(w, "invalid json")
		return
	}
	if in.Amount == nil || *in.Amount <= 0 {
		response.BadRequest(w, "amount must be a positive number")
		return
	}
	if in.Currency == "" {
		response.BadRequest(w, "currency is required")
		return
	}

	order, err := h.orders.CreateOrder(r.Context(), *in.Amount, in.Currency)
	if err != nil {
		logger.ErrorContext(r.Context(), "Order creation failed", "error", err)
		response.InternalError(w, "failed to create payment order")
		return
	}

	h.publish(r, events.PaymentOrderCreated, events.PaymentOrderCreatedEvent{
		OrderID:  order.OrderID,
		Amount:   order.Amount,
		Currency: in.Currency,
	})

	writeJSON(w, http.StatusOK, order)
}

func (h *PaymentsHandler) verify(w http.ResponseWriter, r *http.Request) {
	var in domain.VerifyReq
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		response.BadRequest(w, "invalid json")
		return
	}
	if in.OrderID == "" || in.PaymentID == "" || in.Signature == "" {
		response.BadRequest(w, "orderId, paymentId and signature are required")
		return
	}

	if !h.verifier.VerifySignature(in.OrderID, in.PaymentID, in.Signature) {
		response.BadRequest(w, "Payment verification failed")
		return
	}

	h.publish(r, events.PaymentVerified, events.PaymentVerifiedEvent{
		OrderID:   in.OrderID,
		PaymentID: in.PaymentID,
	})

	writeJSON(w, http.StatusOK, map[string]string{"message": "Payment verified successfully"})
}

func (h *PaymentsHandler) publish(r *http.Request, subject string, payload interface{}) {
	if h.eventBus == nil {
		return
	}
	if err := h.eventBus.Publish(r.Context(), subject, payload); err != nil {
		logger.ErrorContext(r.Context(), "Failed to publish event", "subject", subject, "error", err)
	}
}
