package domain

// OrderReq carries the entry-fee amount in major currency units; the
// processor is handed minor units.
type OrderReq struct {
	Amount   *int64 `json:"amount"`
	Currency string `json:"currency"`
}

type OrderRes struct {
	OrderID string `json:"orderId"`
	Amount  int64  `json:"amount"`
}

type VerifyReq struct {
	OrderID   string `json:"orderId"`
	PaymentID string `json:"paymentId"`
	Signature string `json:"signature"`
}
