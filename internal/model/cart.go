package model

import (
	"time"

	"github.com/google/uuid"
)

// ShoppingCart represents a customer's cart. CartTotal is recomputed from
// current menu item prices at checkout time, never read from stale state.
// PaymentOrderID is set only after a successful gateway order creation.
type ShoppingCart struct {
	ID             uuid.UUID  `json:"id" db:"id"`
	UserID         string     `json:"userId" db:"user_id"`
	CartTotal      float64    `json:"cartTotal" db:"cart_total"`
	PaymentOrderID *string    `json:"paymentOrderId,omitempty" db:"payment_order_id"`
	CreatedAt      time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time  `json:"updatedAt" db:"updated_at"`
	Items          []CartItem `json:"items,omitempty"`
}

// CartItem represents a line item in a shopping cart. MenuItem carries the
// current menu item row loaded alongside the cart so the price used for
// totals is the price at read time.
type CartItem struct {
	ID         uuid.UUID `json:"-" db:"id"`
	CartID     uuid.UUID `json:"-" db:"cart_id"`
	MenuItemID uuid.UUID `json:"menuItemId" db:"menu_item_id"`
	Quantity   int       `json:"quantity" db:"quantity"`
	MenuItem   *MenuItem `json:"menuItem,omitempty"`
}
