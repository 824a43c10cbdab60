package service

import (
	"context"
	"fmt"
	"math"

	"redmango/internal/model"
	"redmango/internal/payment"
	"redmango/internal/repository"

	"github.com/bwmarrin/snowflake"
	"github.com/rs/zerolog"
)

// checkoutService implements CheckoutService.
type checkoutService struct {
	cartRepo repository.CartRepository
	gateway  payment.Gateway
	currency string
	receipts *snowflake.Node
	logger   zerolog.Logger
}

// NewCheckoutService creates a new checkout service. Receipt identifiers
// are generated from a snowflake node so each gateway order carries a
// unique, sortable receipt.
func NewCheckoutService(
	cartRepo repository.CartRepository,
	gateway payment.Gateway,
	currency string,
	logger zerolog.Logger,
) (CheckoutService, error) {
	node, err := snowflake.NewNode(1)
	if err != nil {
		return nil, fmt.Errorf("failed to create receipt generator: %w", err)
	}

	return &checkoutService{
		cartRepo: cartRepo,
		gateway:  gateway,
		currency: currency,
		receipts: node,
		logger:   logger.With().Str("service", "checkout").Logger(),
	}, nil
}

// CreatePaymentOrder loads the user's cart, recomputes the total from the
// prices read alongside the cart, submits a gateway order and persists the
// result. A gateway failure leaves the cart untouched so no payment
// reference is ever recorded for an order that was not created.
func (s *checkoutService) CreatePaymentOrder(ctx context.Context, userID string) (*model.ShoppingCart, error) {
	if userID == "" {
		return nil, model.ErrCartNotFound
	}

	cart, err := s.cartRepo.GetByUserID(ctx, userID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("failed to load cart")
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	if cart == nil {
		s.logger.Debug().Str("user_id", userID).Msg("cart not found")
		return nil, model.ErrCartNotFound
	}
	if len(cart.Items) == 0 {
		s.logger.Debug().Str("user_id", userID).Msg("cart is empty")
		return nil, model.ErrEmptyCart
	}

	// The total is always recomputed from the prices loaded with the cart;
	// any cached cart_total is stale by definition.
	total := 0.0
	for _, item := range cart.Items {
		if item.MenuItem == nil {
			return nil, fmt.Errorf("cart item %s has no menu item loaded", item.ID)
		}
		total += float64(item.Quantity) * item.MenuItem.Price
	}

	amount := int64(math.Round(total * 100))
	receipt := "rcpt_" + s.receipts.Generate().String()

	order, err := s.gateway.CreateOrder(ctx, payment.OrderRequest{
		Amount:   amount,
		Currency: s.currency,
		Receipt:  receipt,
	})
	if err != nil {
		s.logger.Warn().
			Err(err).
			Str("user_id", userID).
			Int64("amount", amount).
			Msg("payment order creation failed")
		return nil, fmt.Errorf("%w: %v", model.ErrPaymentFailed, err)
	}

	if err := s.cartRepo.SavePaymentResult(ctx, cart.ID, total, order.ID); err != nil {
		// The gateway order exists but could not be recorded; surface the
		// failure rather than silently continuing.
		s.logger.Error().
			Err(err).
			Str("cart_id", cart.ID.String()).
			Str("payment_order_id", order.ID).
			Msg("failed to persist payment result for created order")
		return nil, fmt.Errorf("failed to persist payment result: %w", err)
	}

	cart.CartTotal = total
	cart.PaymentOrderID = &order.ID

	s.logger.Info().
		Str("user_id", userID).
		Str("cart_id", cart.ID.String()).
		Float64("cart_total", total).
		Int64("amount", amount).
		Str("payment_order_id", order.ID).
		Msg("payment order created")

	return cart, nil
}
