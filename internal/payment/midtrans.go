package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	snapSandboxURL    = "https://app.sandbox.midtrans.com/snap/v1/transactions"
	snapProductionURL = "https://app.midtrans.com/snap/v1/transactions"
)

// Customer is the payer identity forwarded to the gateway.
type Customer struct {
	FirstName string `json:"first_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

// SnapSession is the opaque client-usable payment session returned by
// the gateway for one order.
type SnapSession struct {
	Token       string `json:"token"`
	RedirectURL string `json:"redirect_url"`
}

// GatewayError mirrors the gateway's own error response, including its
// HTTP status, so handlers can pass it through.
type GatewayError struct {
	StatusCode int
	Messages   []string
}

func (e *GatewayError) Error() string {
	if len(e.Messages) == 0 {
		return fmt.Sprintf("payment gateway error (status %d)", e.StatusCode)
	}
	return "payment gateway: " + strings.Join(e.Messages, "; ")
}

// Gateway creates payment sessions with the external provider.
type Gateway interface {
	CreateTransaction(ctx context.Context, orderID string, grossAmount int64, customer Customer) (*SnapSession, error)
}

// SnapClient talks to the Midtrans Snap API over HTTP with server-key
// basic auth.
type SnapClient struct {
	serverKey string
	baseURL   string
	client    *http.Client
}

func NewSnapClient(serverKey string, production bool) *SnapClient {
	url := snapSandboxURL
	if production {
		url = snapProductionURL
	}
	return &SnapClient{
		serverKey: serverKey,
		baseURL:   url,
		client:    &http.Client{Timeout: 30 * time.Second},
	}
}

type snapRequest struct {
	TransactionDetails struct {
		OrderID     string `json:"order_id"`
		GrossAmount int64  `json:"gross_amount"`
	} `json:"transaction_details"`
	CustomerDetails *Customer `json:"customer_details,omitempty"`
	EnabledPayments []string  `json:"enabled_payments,omitempty"`
}

type snapErrorResponse struct {
	ErrorMessages []string `json:"error_messages"`
	Message       string   `json:"message"`
}

func (c *SnapClient) CreateTransaction(ctx context.Context, orderID string, grossAmount int64, customer Customer) (*SnapSession, error) {
	var reqBody snapRequest
	reqBody.TransactionDetails.OrderID = orderID
	reqBody.TransactionDetails.GrossAmount = grossAmount
	if customer != (Customer{}) {
		reqBody.CustomerDetails = &customer
	}
	reqBody.EnabledPayments = []string{"qris", "gopay"}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.SetBasicAuth(c.serverKey, "")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("payment gateway unreachable: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var gwErr snapErrorResponse
		_ = json.Unmarshal(body, &gwErr)
		messages := gwErr.ErrorMessages
		if len(messages) == 0 && gwErr.Message != "" {
			messages = []string{gwErr.Message}
		}
		return nil, &GatewayError{StatusCode: resp.StatusCode, Messages: messages}
	}

	var session SnapSession
	if err := json.Unmarshal(body, &session); err != nil {
		return nil, fmt.Errorf("malformed gateway response: %w", err)
	}
	return &session, nil
}
