package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"go-pos-ws/internal/cart"
	"go-pos-ws/internal/model"
	"go-pos-ws/internal/notify"
	"go-pos-ws/internal/payment"
	"go-pos-ws/internal/repository"
	"go-pos-ws/pkg/validator"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Products with this many units or fewer left after a sale trigger a
// low-stock notification.
const lowStockThreshold = 5

// CheckoutRequest is the immutable snapshot of one cart taken at the
// start of orchestration. Built once so a concurrent cart clear cannot
// corrupt the in-flight write sequence.
type CheckoutRequest struct {
	OrderID        string
	UserID         uuid.UUID
	CashierName    string
	StoreID        string
	Items          []cart.LineItem
	TotalAmount    int64
	TotalItemCount int
	PaymentMethod  model.PaymentMethod
}

// ReceiptSummary is returned to the terminal for confirmation display.
type ReceiptSummary struct {
	OrderID        string          `json:"order_id"`
	SaleID         uuid.UUID       `json:"sale_id"`
	Items          []cart.LineItem `json:"items"`
	TotalAmount    int64           `json:"total_amount"`
	TotalItemCount int             `json:"total_item_count"`
	PaymentMethod  model.PaymentMethod `json:"payment_method"`
	CompletedAt    time.Time       `json:"completed_at"`
}

// CheckoutResult is the immediate response of a checkout call. Cash
// checkouts complete inline and carry a receipt; QRIS checkouts return
// pending with the gateway session token.
type CheckoutResult struct {
	Status      string          `json:"status"` // "completed" or "pending"
	OrderID     string          `json:"order_id"`
	Token       string          `json:"token,omitempty"`
	RedirectURL string          `json:"redirect_url,omitempty"`
	Receipt     *ReceiptSummary `json:"receipt,omitempty"`
}

// ConfirmResult is the terminal's report of the embedded payment UI
// outcome for a pending QRIS checkout.
type ConfirmResult string

const (
	ConfirmSuccess ConfirmResult = "success"
	ConfirmPending ConfirmResult = "pending"
	ConfirmError   ConfirmResult = "error"
	ConfirmClose   ConfirmResult = "close"
)

type CheckoutService interface {
	// Checkout converts the user's cart into a durable sale (cash) or a
	// pending payment session (QRIS).
	Checkout(ctx context.Context, userID uuid.UUID, cashierName string, method model.PaymentMethod, customer payment.Customer) (*CheckoutResult, error)
	// ConfirmQRIS drives the continuation of a pending QRIS checkout.
	// success/pending complete the sale, error aborts it, close abandons
	// it silently with the cart left intact.
	ConfirmQRIS(ctx context.Context, orderID string, result ConfirmResult) (*CheckoutResult, error)
	// PendingIntents lists checkout intents that never completed, for
	// reconciliation.
	PendingIntents() ([]model.CheckoutIntent, error)
}

type checkoutService struct {
	carts       *cart.Store
	productRepo repository.ProductRepository
	saleRepo    repository.SaleRepository
	statsRepo   repository.StatsRepository
	intentRepo  repository.IntentRepository
	userRepo    repository.UserRepository
	gateway     payment.Gateway
	sessions    *SessionRegistry
	emitter     notify.Emitter
}

func NewCheckoutService(
	carts *cart.Store,
	productRepo repository.ProductRepository,
	saleRepo repository.SaleRepository,
	statsRepo repository.StatsRepository,
	intentRepo repository.IntentRepository,
	userRepo repository.UserRepository,
	gateway payment.Gateway,
	sessions *SessionRegistry,
	emitter notify.Emitter,
) CheckoutService {
	return &checkoutService{
		carts:       carts,
		productRepo: productRepo,
		saleRepo:    saleRepo,
		statsRepo:   statsRepo,
		intentRepo:  intentRepo,
		userRepo:    userRepo,
		gateway:     gateway,
		sessions:    sessions,
		emitter:     emitter,
	}
}

// newOrderID follows the ORDER-<epoch millis> uniqueness scheme.
func newOrderID() string {
	return fmt.Sprintf("ORDER-%d", time.Now().UnixMilli())
}

func (s *checkoutService) Checkout(ctx context.Context, userID uuid.UUID, cashierName string, method model.PaymentMethod, customer payment.Customer) (*CheckoutResult, error) {
	// Step 1: snapshot the cart before anything else.
	items, totalPrice, totalItems := s.carts.Snapshot(userID)
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}
	if totalPrice <= 0 {
		return nil, ErrInvalidAmount
	}

	storeID, err := s.userRepo.ResolveStoreID(userID)
	if err != nil {
		log.Printf("checkout: cannot resolve store for user %s: %v", userID, err)
		storeID = ""
	}

	req := &CheckoutRequest{
		OrderID:        newOrderID(),
		UserID:         userID,
		CashierName:    cashierName,
		StoreID:        storeID,
		Items:          items,
		TotalAmount:    totalPrice,
		TotalItemCount: totalItems,
		PaymentMethod:  method,
	}

	// Step 2: QRIS obtains a gateway session first and defers the write
	// sequence to the confirmation. A gateway error aborts before any
	// inventory mutation.
	if method == model.PaymentQRIS {
		session, err := s.gateway.CreateTransaction(ctx, req.OrderID, req.TotalAmount, customer)
		if err != nil {
			return nil, err
		}
		s.sessions.Put(req, session.Token)
		return &CheckoutResult{
			Status:      "pending",
			OrderID:     req.OrderID,
			Token:       session.Token,
			RedirectURL: session.RedirectURL,
		}, nil
	}

	receipt, err := s.complete(ctx, req)
	if err != nil {
		return nil, err
	}
	return &CheckoutResult{Status: "completed", OrderID: req.OrderID, Receipt: receipt}, nil
}

func (s *checkoutService) ConfirmQRIS(ctx context.Context, orderID string, result ConfirmResult) (*CheckoutResult, error) {
	pending, ok := s.sessions.Take(orderID)
	if !ok {
		return nil, ErrNoPendingCheckout
	}

	switch result {
	case ConfirmClose:
		// User dismissed the payment dialog: abandon without error,
		// inventory untouched, cart still populated for retry.
		log.Printf("checkout %s: payment dialog closed, abandoning", orderID)
		return &CheckoutResult{Status: "cancelled", OrderID: orderID}, nil

	case ConfirmError:
		return nil, fmt.Errorf("payment failed for order %s", orderID)

	case ConfirmSuccess, ConfirmPending:
		// A pending QRIS payment is optimistically treated as authorized;
		// reconciliation against the later webhook is out of scope here.
		receipt, err := s.complete(ctx, pending.Request)
		if err != nil {
			return nil, err
		}
		return &CheckoutResult{Status: "completed", OrderID: orderID, Receipt: receipt}, nil

	default:
		return nil, fmt.Errorf("unknown confirmation result %q", result)
	}
}

// complete runs the multi-store write sequence for one snapshot. Any
// failure halts further steps, leaves the cart intact for retry, and
// leaves the intent row incomplete; already-applied sibling writes are
// not rolled back.
func (s *checkoutService) complete(ctx context.Context, req *CheckoutRequest) (*ReceiptSummary, error) {
	// Durable intent before any mutation.
	intent := &model.CheckoutIntent{
		OrderID:        req.OrderID,
		UserID:         req.UserID,
		StoreID:        req.StoreID,
		TotalAmount:    req.TotalAmount,
		TotalItemCount: req.TotalItemCount,
		PaymentMethod:  req.PaymentMethod,
	}
	if err := s.intentRepo.Create(intent); err != nil {
		return nil, fmt.Errorf("failed to record checkout intent: %w", err)
	}

	// Step 3: decrement stock per line item, concurrently, and join.
	// The per-item read also captures the cost price for profit totals.
	profits := make([]int64, len(req.Items))
	g, gctx := errgroup.WithContext(ctx)
	for i, item := range req.Items {
		i, item := i, item
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			product, err := s.productRepo.FindByID(item.ProductID)
			if err != nil {
				return fmt.Errorf("item %s: %w", item.ProductID, err)
			}
			profits[i] = product.UnitProfit() * int64(item.Quantity)
			if err := s.productRepo.DecrementStock(item.ProductID, item.Quantity, req.UserID.String()); err != nil {
				return fmt.Errorf("item %s: %w", item.ProductID, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, s.fail(intent, "stock decrement", err)
	}
	if err := s.intentRepo.MarkStockApplied(req.OrderID); err != nil {
		log.Printf("checkout %s: failed to mark stock applied: %v", req.OrderID, err)
	}

	var totalProfit int64
	for _, p := range profits {
		totalProfit += p
	}

	// Step 4: append both ledger views. Independent writes; a failure on
	// the second does not undo the first.
	sale := &model.Sale{
		OrderID:        req.OrderID,
		UserID:         req.UserID,
		StoreID:        req.StoreID,
		TotalAmount:    req.TotalAmount,
		TotalItemCount: req.TotalItemCount,
		PaymentMethod:  req.PaymentMethod,
		Status:         model.SaleCompleted,
	}
	sale.CreatedBy = req.UserID.String()
	for _, item := range req.Items {
		sale.Items = append(sale.Items, model.SaleItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			UnitPrice: item.UnitPrice,
			Quantity:  item.Quantity,
			Subtotal:  item.Subtotal(),
		})
	}
	if errs := validator.ValidateStruct(sale); len(errs) > 0 {
		return nil, s.fail(intent, "sales ledger write",
			fmt.Errorf("validation failed: field '%s' failed on tag '%s'", errs[0].FailedField, errs[0].Tag))
	}
	if err := s.saleRepo.CreateSale(sale); err != nil {
		return nil, s.fail(intent, "sales ledger write", err)
	}

	record := &model.RevenueRecord{
		OrderID:       req.OrderID,
		SaleID:        sale.ID,
		UserID:        req.UserID,
		StoreID:       req.StoreID,
		Amount:        req.TotalAmount,
		Profit:        totalProfit,
		ItemCount:     req.TotalItemCount,
		PaymentMethod: req.PaymentMethod,
	}
	if err := s.saleRepo.CreateRevenueRecord(record); err != nil {
		return nil, s.fail(intent, "revenue ledger write", err)
	}
	if err := s.intentRepo.MarkLedgerWritten(req.OrderID); err != nil {
		log.Printf("checkout %s: failed to mark ledger written: %v", req.OrderID, err)
	}

	// Step 5: one atomic stats increment, skipped when no store resolves.
	if req.StoreID == "" {
		log.Printf("checkout %s: no store for user %s, skipping stats", req.OrderID, req.UserID)
	} else {
		delta := model.StatsDelta{Sales: 1, Revenue: req.TotalAmount, Profit: totalProfit}
		if err := s.statsRepo.ApplyIncrement(req.StoreID, delta); err != nil {
			return nil, s.fail(intent, "store stats update", err)
		}
		if err := s.intentRepo.MarkStatsApplied(req.OrderID); err != nil {
			log.Printf("checkout %s: failed to mark stats applied: %v", req.OrderID, err)
		}
	}

	// Step 6: advisory stock pass. Never blocks or fails the checkout.
	for _, item := range req.Items {
		stock, err := s.productRepo.GetStock(item.ProductID)
		if err != nil {
			log.Printf("checkout %s: stock re-read failed for %s: %v", req.OrderID, item.ProductID, err)
			continue
		}
		if stock <= 0 {
			s.emitter.Emit(notify.StockDepleted{ProductID: item.ProductID, ProductName: item.Name})
		} else if stock <= lowStockThreshold {
			s.emitter.Emit(notify.LowStock{ProductID: item.ProductID, ProductName: item.Name, Remaining: stock})
		}
	}

	// Step 7: sale-completed notification.
	s.emitter.Emit(notify.SaleCompleted{
		OrderID:       req.OrderID,
		TotalAmount:   req.TotalAmount,
		ItemCount:     req.TotalItemCount,
		PaymentMethod: string(req.PaymentMethod),
		CashierName:   req.CashierName,
	})

	// Step 8: clear the cart and hand back the receipt.
	s.carts.Clear(req.UserID)
	if err := s.intentRepo.MarkCompleted(req.OrderID); err != nil {
		log.Printf("checkout %s: failed to mark intent completed: %v", req.OrderID, err)
	}

	return &ReceiptSummary{
		OrderID:        req.OrderID,
		SaleID:         sale.ID,
		Items:          req.Items,
		TotalAmount:    req.TotalAmount,
		TotalItemCount: req.TotalItemCount,
		PaymentMethod:  req.PaymentMethod,
		CompletedAt:    time.Now(),
	}, nil
}

// fail records the failure on the intent row and wraps the error. The
// incomplete intent is the reconciliation hook for whatever writes
// already landed.
func (s *checkoutService) fail(intent *model.CheckoutIntent, step string, err error) error {
	if markErr := s.intentRepo.MarkFailed(intent.OrderID, fmt.Sprintf("%s: %v", step, err)); markErr != nil {
		log.Printf("checkout %s: failed to record failure reason: %v", intent.OrderID, markErr)
	}
	pwe := &PartialWriteError{Step: step, OrderID: intent.OrderID, Err: err}
	log.Printf("RECONCILIATION NEEDED: %v", pwe)
	return pwe
}

func (s *checkoutService) PendingIntents() ([]model.CheckoutIntent, error) {
	return s.intentRepo.FindIncomplete()
}
