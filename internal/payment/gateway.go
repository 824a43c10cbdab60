package payment

import (
	"context"
	"fmt"
)

// OrderRequest is a typed payment order creation request. Amount is in the
// currency's minor units (paise for INR).
type OrderRequest struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
}

// Order is the gateway's view of a created payment order.
type Order struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

// GatewayError describes a failed order creation at the payment gateway.
type GatewayError struct {
	StatusCode  int
	Code        string
	Description string
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("payment gateway error (status=%d, code=%s): %s", e.StatusCode, e.Code, e.Description)
}

// Gateway creates payment orders with an external payment provider. The
// call is a blocking, single-shot network operation: no retry is performed
// and callers must not hold locks across it.
type Gateway interface {
	CreateOrder(ctx context.Context, req OrderRequest) (*Order, error)
}

// Validate checks the request at the gateway boundary before any network
// call is made.
func (r OrderRequest) Validate() error {
	if r.Amount <= 0 {
		return fmt.Errorf("order amount must be positive, got %d", r.Amount)
	}
	if r.Currency == "" {
		return fmt.Errorf("order currency is required")
	}
	if r.Receipt == "" {
		return fmt.Errorf("order receipt is required")
	}
	return nil
}
