package service

import (
	"context"

	"redmango/internal/model"
	"redmango/internal/storage"

	"github.com/google/uuid"
)

// MenuItemService orchestrates menu item records and their image assets so
// the pair behaves as one unit despite the database and the asset store
// being independent systems with no shared transaction.
type MenuItemService interface {
	// List retrieves all menu items.
	List(ctx context.Context) ([]model.MenuItem, error)

	// GetByID retrieves a single menu item.
	GetByID(ctx context.Context, id uuid.UUID) (*model.MenuItem, error)

	// Create validates the upload, stores the asset, then inserts the
	// record referencing it. On validation failure nothing is written.
	Create(ctx context.Context, fields model.MenuItemFields, upload *storage.Upload) (*model.MenuItem, error)

	// Update applies scalar field changes and, when a replacement upload is
	// present, validates it before any asset is touched, stores the new
	// asset, repoints the record and then removes the old asset.
	Update(ctx context.Context, id uuid.UUID, fields model.MenuItemFields, upload *storage.Upload) (*model.MenuItem, error)

	// Delete removes the item's asset and then its record. Repeating the
	// call for an already-deleted id returns model.ErrMenuItemNotFound.
	Delete(ctx context.Context, id uuid.UUID) error
}

// CheckoutService converts a shopping cart into an external payment order.
type CheckoutService interface {
	// CreatePaymentOrder loads the user's cart, recomputes its total from
	// current prices, creates a gateway order and persists the result.
	// Nothing is persisted when the gateway call fails.
	CreatePaymentOrder(ctx context.Context, userID string) (*model.ShoppingCart, error)
}
