package model

// TransactionStatus is the payment gateway's notification status enum.
type TransactionStatus string

const (
	StatusCapture    TransactionStatus = "capture"
	StatusSettlement TransactionStatus = "settlement"
	StatusPending    TransactionStatus = "pending"
	StatusDeny       TransactionStatus = "deny"
	StatusExpire     TransactionStatus = "expire"
	StatusCancel     TransactionStatus = "cancel"
)

// PaymentNotification is the inbound webhook payload from the gateway.
// Transient: verified, routed, answered, never persisted.
type PaymentNotification struct {
	OrderID           string            `json:"order_id"`
	StatusCode        string            `json:"status_code"`
	GrossAmount       string            `json:"gross_amount"`
	SignatureKey      string            `json:"signature_key"`
	TransactionStatus TransactionStatus `json:"transaction_status"`
	FraudStatus       string            `json:"fraud_status"`
	PaymentType       string            `json:"payment_type"`
}

// Outcome buckets for transaction statuses.
const (
	PaymentOutcomePaid    = "paid"
	PaymentOutcomePending = "pending"
	PaymentOutcomeFailed  = "failed"
)

// Outcome maps the gateway status enum onto paid/pending/failed.
func (s TransactionStatus) Outcome() string {
	switch s {
	case StatusCapture, StatusSettlement:
		return PaymentOutcomePaid
	case StatusPending:
		return PaymentOutcomePending
	default:
		return PaymentOutcomeFailed
	}
}
