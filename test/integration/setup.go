package integration

import (
	"context"
	"fmt"
	"testing"
	"time"

	"redmango/internal/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestDB represents a test database instance.
type TestDB struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
	ConnStr   string
}

// SetupTestDB creates a PostgreSQL test container, applies the embedded
// migrations and returns a connection pool.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	postgresContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	if err := database.Migrate(ctx, connStr, zerolog.Nop()); err != nil {
		t.Fatalf("failed to apply migrations: %v", err)
	}

	poolConfig, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		t.Fatalf("failed to parse connection string: %v", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		t.Fatalf("failed to create connection pool: %v", err)
	}

	if err := pool.Ping(ctx); err != nil {
		t.Fatalf("failed to ping database: %v", err)
	}

	t.Cleanup(func() {
		pool.Close()
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	return &TestDB{
		Container: postgresContainer,
		Pool:      pool,
		ConnStr:   connStr,
	}
}

// SeedMenuItems inserts test menu item data and returns the IDs used.
func SeedMenuItems(t *testing.T, pool *pgxpool.Pool) []uuid.UUID {
	t.Helper()

	ctx := context.Background()

	items := []struct {
		name     string
		category string
		price    float64
		image    string
	}{
		{"Margherita Pizza", "Mains", 150.00, "seed-margherita.jpg"},
		{"Paneer Tikka", "Starters", 99.50, "seed-paneer.png"},
		{"Gulab Jamun", "Desserts", 60.00, "seed-gulab.jpeg"},
	}

	ids := make([]uuid.UUID, 0, len(items))
	for _, it := range items {
		id := uuid.New()
		_, err := pool.Exec(ctx,
			`INSERT INTO menu_items (id, name, description, special_tag, category, price, image)
			 VALUES ($1, $2, '', '', $3, $4, $5)`,
			id, it.name, it.category, it.price, it.image,
		)
		if err != nil {
			t.Fatalf("failed to seed menu item %s: %v", it.name, err)
		}
		ids = append(ids, id)
	}
	return ids
}

// SeedCart creates a shopping cart for the given user with the given
// menu item quantities and returns the cart ID.
func SeedCart(t *testing.T, pool *pgxpool.Pool, userID string, quantities map[uuid.UUID]int) uuid.UUID {
	t.Helper()

	ctx := context.Background()

	cartID := uuid.New()
	_, err := pool.Exec(ctx,
		"INSERT INTO shopping_carts (id, user_id, cart_total) VALUES ($1, $2, 0)",
		cartID, userID,
	)
	if err != nil {
		t.Fatalf("failed to seed cart for user %s: %v", userID, err)
	}

	for menuItemID, qty := range quantities {
		_, err := pool.Exec(ctx,
			"INSERT INTO cart_items (id, cart_id, menu_item_id, quantity) VALUES ($1, $2, $3, $4)",
			uuid.New(), cartID, menuItemID, qty,
		)
		if err != nil {
			t.Fatalf("failed to seed cart item: %v", err)
		}
	}
	return cartID
}

// CleanupDB cleans all data from test tables.
func CleanupDB(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	tables := []string{"cart_items", "shopping_carts", "menu_items"}
	for _, table := range tables {
		_, err := pool.Exec(ctx, fmt.Sprintf("DELETE FROM %s", table))
		if err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}
}
