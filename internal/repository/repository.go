package repository

import (
	"context"

	"redmango/internal/model"

	"github.com/google/uuid"
)

// MenuItemRepository defines the interface for menu item data access
// operations. It is pure storage: validation and asset orchestration live
// in the service layer.
type MenuItemRepository interface {
	// List retrieves all menu items ordered by name.
	List(ctx context.Context) ([]model.MenuItem, error)

	// GetByID retrieves a single menu item by its ID.
	// Returns (nil, nil) when the item does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*model.MenuItem, error)

	// Insert stores a new menu item record.
	Insert(ctx context.Context, item *model.MenuItem) error

	// Update persists all fields of an existing menu item record.
	// Returns model.ErrMenuItemNotFound when no row matches the ID.
	Update(ctx context.Context, item *model.MenuItem) error

	// Delete removes a menu item record.
	// Returns model.ErrMenuItemNotFound when no row matches the ID.
	Delete(ctx context.Context, id uuid.UUID) error
}

// CartRepository defines the interface for shopping cart data access.
type CartRepository interface {
	// GetByUserID retrieves a user's cart together with its line items and
	// each item's current menu item row, so callers total against prices as
	// of this read. Returns (nil, nil) when the user has no cart.
	GetByUserID(ctx context.Context, userID string) (*model.ShoppingCart, error)

	// SavePaymentResult persists the recomputed cart total and the payment
	// order identifier returned by the gateway.
	SavePaymentResult(ctx context.Context, cartID uuid.UUID, total float64, paymentOrderID string) error
}
