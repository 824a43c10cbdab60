package integration

import (
	"context"
	"testing"
	"time"

	"redmango/internal/model"
	"redmango/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMenuItemRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	logger := zerolog.Nop()
	repo := repository.NewMenuItemRepository(testDB.Pool, logger)

	ctx := context.Background()

	newItem := func(name string, price float64) *model.MenuItem {
		now := time.Now().UTC().Truncate(time.Microsecond)
		return &model.MenuItem{
			ID:          uuid.New(),
			Name:        name,
			Description: "A test dish",
			SpecialTag:  "Chef's choice",
			Category:    "Mains",
			Price:       price,
			Image:       uuid.New().String() + ".jpg",
			CreatedAt:   now,
			UpdatedAt:   now,
		}
	}

	t.Run("Insert and GetByID round trip", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		item := newItem("Margherita Pizza", 150.00)
		require.NoError(t, repo.Insert(ctx, item))

		got, err := repo.GetByID(ctx, item.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, item.ID, got.ID)
		assert.Equal(t, "Margherita Pizza", got.Name)
		assert.Equal(t, "Chef's choice", got.SpecialTag)
		assert.Equal(t, 150.00, got.Price)
		assert.Equal(t, item.Image, got.Image)
	})

	t.Run("List returns items ordered by name", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		require.NoError(t, repo.Insert(ctx, newItem("Paneer Tikka", 99.50)))
		require.NoError(t, repo.Insert(ctx, newItem("Gulab Jamun", 60.00)))
		require.NoError(t, repo.Insert(ctx, newItem("Margherita Pizza", 150.00)))

		items, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, items, 3)
		assert.Equal(t, "Gulab Jamun", items[0].Name)
		assert.Equal(t, "Margherita Pizza", items[1].Name)
		assert.Equal(t, "Paneer Tikka", items[2].Name)
	})

	t.Run("GetByID returns nil for non-existent item", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		got, err := repo.GetByID(ctx, uuid.New())
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("Update changes scalar fields and image", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		item := newItem("Margherita Pizza", 150.00)
		require.NoError(t, repo.Insert(ctx, item))

		item.Name = "Margherita Pizza XL"
		item.Price = 180.00
		item.Image = uuid.New().String() + ".png"
		item.UpdatedAt = time.Now().UTC().Truncate(time.Microsecond)
		require.NoError(t, repo.Update(ctx, item))

		got, err := repo.GetByID(ctx, item.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "Margherita Pizza XL", got.Name)
		assert.Equal(t, 180.00, got.Price)
		assert.Equal(t, item.Image, got.Image)
	})

	t.Run("Update returns not found for missing item", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		item := newItem("Ghost Dish", 10.00)
		err := repo.Update(ctx, item)
		require.Error(t, err)
		assert.Equal(t, model.ErrMenuItemNotFound, err)
	})

	t.Run("Delete removes the record", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		item := newItem("Margherita Pizza", 150.00)
		require.NoError(t, repo.Insert(ctx, item))

		require.NoError(t, repo.Delete(ctx, item.ID))

		got, err := repo.GetByID(ctx, item.ID)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("Delete returns not found for missing item", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		err := repo.Delete(ctx, uuid.New())
		require.Error(t, err)
		assert.Equal(t, model.ErrMenuItemNotFound, err)
	})

	t.Run("Insert rejects negative price", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		item := newItem("Bad Dish", -1.00)
		err := repo.Insert(ctx, item)
		require.Error(t, err)
	})
}

func TestCartRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	logger := zerolog.Nop()
	repo := repository.NewCartRepository(testDB.Pool, logger)

	ctx := context.Background()

	t.Run("GetByUserID loads cart with items and menu items", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		ids := SeedMenuItems(t, testDB.Pool)
		cartID := SeedCart(t, testDB.Pool, "user-1", map[uuid.UUID]int{
			ids[0]: 2,
			ids[1]: 1,
		})

		cart, err := repo.GetByUserID(ctx, "user-1")
		require.NoError(t, err)
		require.NotNil(t, cart)
		assert.Equal(t, cartID, cart.ID)
		assert.Equal(t, "user-1", cart.UserID)
		assert.Nil(t, cart.PaymentOrderID)
		require.Len(t, cart.Items, 2)

		// Every line item carries the current menu item row.
		var total float64
		for _, item := range cart.Items {
			require.NotNil(t, item.MenuItem)
			assert.Equal(t, item.MenuItemID, item.MenuItem.ID)
			total += float64(item.Quantity) * item.MenuItem.Price
		}
		assert.Equal(t, 399.50, total)
	})

	t.Run("GetByUserID returns nil for unknown user", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		cart, err := repo.GetByUserID(ctx, "nobody")
		require.NoError(t, err)
		assert.Nil(t, cart)
	})

	t.Run("GetByUserID returns cart with no items", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		SeedCart(t, testDB.Pool, "user-2", nil)

		cart, err := repo.GetByUserID(ctx, "user-2")
		require.NoError(t, err)
		require.NotNil(t, cart)
		assert.Empty(t, cart.Items)
	})

	t.Run("SavePaymentResult persists total and order id", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		ids := SeedMenuItems(t, testDB.Pool)
		cartID := SeedCart(t, testDB.Pool, "user-3", map[uuid.UUID]int{ids[0]: 1})

		require.NoError(t, repo.SavePaymentResult(ctx, cartID, 150.00, "order_abc123"))

		cart, err := repo.GetByUserID(ctx, "user-3")
		require.NoError(t, err)
		require.NotNil(t, cart)
		assert.Equal(t, 150.00, cart.CartTotal)
		require.NotNil(t, cart.PaymentOrderID)
		assert.Equal(t, "order_abc123", *cart.PaymentOrderID)
	})

	t.Run("SavePaymentResult returns cart not found for missing cart", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		err := repo.SavePaymentResult(ctx, uuid.New(), 10.00, "order_missing")
		require.Error(t, err)
		assert.Equal(t, model.ErrCartNotFound, err)
	})

	t.Run("Deleting a menu item cascades to cart items", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		ids := SeedMenuItems(t, testDB.Pool)
		SeedCart(t, testDB.Pool, "user-4", map[uuid.UUID]int{ids[0]: 2, ids[1]: 1})

		_, err := testDB.Pool.Exec(ctx, "DELETE FROM menu_items WHERE id = $1", ids[0])
		require.NoError(t, err)

		cart, err := repo.GetByUserID(ctx, "user-4")
		require.NoError(t, err)
		require.NotNil(t, cart)
		require.Len(t, cart.Items, 1)
		assert.Equal(t, ids[1], cart.Items[0].MenuItemID)
	})
}
