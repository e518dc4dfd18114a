package service

import (
	"context"
	"errors"
	"log"
	"sync"

	"go-pos-ws/internal/model"
	"go-pos-ws/internal/payment"
)

// PendingCheckout is a QRIS checkout that obtained a gateway session and
// is waiting for the terminal's confirmation. Held in memory only: an
// abandoned session dies with the process, which is safe because no
// inventory has been touched yet.
type PendingCheckout struct {
	Request *CheckoutRequest
	Token   string
}

// SessionRegistry keys pending checkouts by order id.
type SessionRegistry struct {
	mu      sync.Mutex
	pending map[string]*PendingCheckout
}

func NewSessionRegistry() *SessionRegistry {
	return &SessionRegistry{pending: make(map[string]*PendingCheckout)}
}

func (r *SessionRegistry) Put(req *CheckoutRequest, token string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pending[req.OrderID] = &PendingCheckout{Request: req, Token: token}
}

// Take removes and returns the pending checkout for an order id, so a
// confirmation can only be consumed once.
func (r *SessionRegistry) Take(orderID string) (*PendingCheckout, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	pc, ok := r.pending[orderID]
	if ok {
		delete(r.pending, orderID)
	}
	return pc, ok
}

func (r *SessionRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.pending)
}

// WebhookService authenticates inbound payment-status callbacks and
// routes the verified status. A settlement for an order that still has
// a pending QRIS session completes that checkout; a failure drops the
// session so the cashier can retry. Already-committed sales are never
// rewritten.
type WebhookService interface {
	Process(ctx context.Context, n *model.PaymentNotification) error
}

type webhookService struct {
	serverKey string
	checkout  CheckoutService
	sessions  *SessionRegistry
}

func NewWebhookService(serverKey string, checkout CheckoutService, sessions *SessionRegistry) WebhookService {
	return &webhookService{serverKey: serverKey, checkout: checkout, sessions: sessions}
}

func (s *webhookService) Process(ctx context.Context, n *model.PaymentNotification) error {
	// Authenticate first. Nothing downstream may see an unverified
	// payload.
	if err := payment.VerifySignature(n.OrderID, n.StatusCode, n.GrossAmount, s.serverKey, n.SignatureKey); err != nil {
		return err
	}

	switch n.TransactionStatus.Outcome() {
	case model.PaymentOutcomePaid:
		_, err := s.checkout.ConfirmQRIS(ctx, n.OrderID, ConfirmSuccess)
		if errors.Is(err, ErrNoPendingCheckout) {
			// Terminal already confirmed, or the order is not QRIS.
			log.Printf("payment %s: settled (%s, fraud=%s), no pending session", n.OrderID, n.TransactionStatus, n.FraudStatus)
			return nil
		}
		if err != nil {
			return err
		}
		log.Printf("payment %s: settled (%s, fraud=%s), checkout completed", n.OrderID, n.TransactionStatus, n.FraudStatus)
	case model.PaymentOutcomePending:
		log.Printf("payment %s: pending", n.OrderID)
	default:
		if _, ok := s.sessions.Take(n.OrderID); ok {
			log.Printf("payment %s: failed (%s), dropping pending session", n.OrderID, n.TransactionStatus)
		} else {
			log.Printf("payment %s: failed (%s)", n.OrderID, n.TransactionStatus)
		}
	}
	return nil
}
