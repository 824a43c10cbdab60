package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"redmango/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// cartRepository implements the CartRepository interface using PostgreSQL.
type cartRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewCartRepository creates a new PostgreSQL-backed cart repository.
func NewCartRepository(pool *pgxpool.Pool, logger zerolog.Logger) CartRepository {
	return &cartRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "cart").Logger(),
	}
}

// GetByUserID retrieves a user's cart with its line items and each item's
// current menu item row in a single eager read.
func (r *cartRepository) GetByUserID(ctx context.Context, userID string) (*model.ShoppingCart, error) {
	cartQuery := `
		SELECT id, user_id, cart_total, payment_order_id, created_at, updated_at
		FROM shopping_carts
		WHERE user_id = $1
	`

	var cart model.ShoppingCart
	err := r.pool.QueryRow(ctx, cartQuery, userID).Scan(
		&cart.ID,
		&cart.UserID,
		&cart.CartTotal,
		&cart.PaymentOrderID,
		&cart.CreatedAt,
		&cart.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("user_id", userID).Msg("cart not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("user_id", userID).Msg("failed to query cart")
		return nil, fmt.Errorf("failed to query cart: %w", err)
	}

	itemsQuery := `
		SELECT ci.id, ci.cart_id, ci.menu_item_id, ci.quantity,
		       m.id, m.name, m.description, m.special_tag, m.category,
		       m.price, m.image, m.created_at, m.updated_at
		FROM cart_items ci
		JOIN menu_items m ON m.id = ci.menu_item_id
		WHERE ci.cart_id = $1
		ORDER BY ci.created_at, ci.id
	`

	rows, err := r.pool.Query(ctx, itemsQuery, cart.ID)
	if err != nil {
		r.logger.Error().Err(err).Str("cart_id", cart.ID.String()).Msg("failed to query cart items")
		return nil, fmt.Errorf("failed to query cart items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item model.CartItem
		var menuItem model.MenuItem
		err := rows.Scan(
			&item.ID, &item.CartID, &item.MenuItemID, &item.Quantity,
			&menuItem.ID, &menuItem.Name, &menuItem.Description, &menuItem.SpecialTag,
			&menuItem.Category, &menuItem.Price, &menuItem.Image,
			&menuItem.CreatedAt, &menuItem.UpdatedAt,
		)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan cart item row")
			return nil, fmt.Errorf("failed to scan cart item: %w", err)
		}
		item.MenuItem = &menuItem
		cart.Items = append(cart.Items, item)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating cart item rows")
		return nil, fmt.Errorf("error iterating cart items: %w", err)
	}

	return &cart, nil
}

// SavePaymentResult persists the recomputed total and the gateway's order id.
func (r *cartRepository) SavePaymentResult(ctx context.Context, cartID uuid.UUID, total float64, paymentOrderID string) error {
	query := `
		UPDATE shopping_carts
		SET cart_total = $2, payment_order_id = $3, updated_at = $4
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query, cartID, total, paymentOrderID, time.Now())
	if err != nil {
		r.logger.Error().Err(err).Str("cart_id", cartID.String()).Msg("failed to save payment result")
		return fmt.Errorf("failed to save payment result: %w", err)
	}

	if tag.RowsAffected() == 0 {
		r.logger.Debug().Str("cart_id", cartID.String()).Msg("cart not found for payment result")
		return model.ErrCartNotFound
	}

	r.logger.Debug().
		Str("cart_id", cartID.String()).
		Float64("cart_total", total).
		Str("payment_order_id", paymentOrderID).
		Msg("payment result saved")

	return nil
}
