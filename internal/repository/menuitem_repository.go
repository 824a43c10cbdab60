package repository

import (
	"context"
	"errors"
	"fmt"

	"redmango/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// menuItemRepository implements the MenuItemRepository interface using PostgreSQL.
type menuItemRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewMenuItemRepository creates a new PostgreSQL-backed menu item repository.
func NewMenuItemRepository(pool *pgxpool.Pool, logger zerolog.Logger) MenuItemRepository {
	return &menuItemRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "menuitem").Logger(),
	}
}

// List retrieves all menu items ordered by name.
func (r *menuItemRepository) List(ctx context.Context) ([]model.MenuItem, error) {
	query := `
		SELECT id, name, description, special_tag, category, price, image, created_at, updated_at
		FROM menu_items
		ORDER BY name
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query menu items")
		return nil, fmt.Errorf("failed to query menu items: %w", err)
	}
	defer rows.Close()

	var items []model.MenuItem
	for rows.Next() {
		var m model.MenuItem
		err := rows.Scan(&m.ID, &m.Name, &m.Description, &m.SpecialTag, &m.Category,
			&m.Price, &m.Image, &m.CreatedAt, &m.UpdatedAt)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan menu item row")
			return nil, fmt.Errorf("failed to scan menu item: %w", err)
		}
		items = append(items, m)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating menu item rows")
		return nil, fmt.Errorf("error iterating menu items: %w", err)
	}

	return items, nil
}

// GetByID retrieves a single menu item by its ID.
func (r *menuItemRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.MenuItem, error) {
	query := `
		SELECT id, name, description, special_tag, category, price, image, created_at, updated_at
		FROM menu_items
		WHERE id = $1
	`

	var m model.MenuItem
	err := r.pool.QueryRow(ctx, query, id).Scan(&m.ID, &m.Name, &m.Description, &m.SpecialTag,
		&m.Category, &m.Price, &m.Image, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("menu_item_id", id.String()).Msg("menu item not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("menu_item_id", id.String()).Msg("failed to query menu item")
		return nil, fmt.Errorf("failed to query menu item: %w", err)
	}

	return &m, nil
}

// Insert stores a new menu item record.
func (r *menuItemRepository) Insert(ctx context.Context, item *model.MenuItem) error {
	query := `
		INSERT INTO menu_items (id, name, description, special_tag, category, price, image, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.pool.Exec(ctx, query, item.ID, item.Name, item.Description, item.SpecialTag,
		item.Category, item.Price, item.Image, item.CreatedAt, item.UpdatedAt)
	if err != nil {
		r.logger.Error().Err(err).Str("menu_item_id", item.ID.String()).Msg("failed to insert menu item")
		return fmt.Errorf("failed to insert menu item: %w", err)
	}

	r.logger.Debug().Str("menu_item_id", item.ID.String()).Msg("menu item inserted")
	return nil
}

// Update persists all fields of an existing menu item record.
func (r *menuItemRepository) Update(ctx context.Context, item *model.MenuItem) error {
	query := `
		UPDATE menu_items
		SET name = $2, description = $3, special_tag = $4, category = $5,
		    price = $6, image = $7, updated_at = $8
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query, item.ID, item.Name, item.Description, item.SpecialTag,
		item.Category, item.Price, item.Image, item.UpdatedAt)
	if err != nil {
		r.logger.Error().Err(err).Str("menu_item_id", item.ID.String()).Msg("failed to update menu item")
		return fmt.Errorf("failed to update menu item: %w", err)
	}

	if tag.RowsAffected() == 0 {
		r.logger.Debug().Str("menu_item_id", item.ID.String()).Msg("menu item not found for update")
		return model.ErrMenuItemNotFound
	}

	r.logger.Debug().Str("menu_item_id", item.ID.String()).Msg("menu item updated")
	return nil
}

// Delete removes a menu item record.
func (r *menuItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM menu_items WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		r.logger.Error().Err(err).Str("menu_item_id", id.String()).Msg("failed to delete menu item")
		return fmt.Errorf("failed to delete menu item: %w", err)
	}

	if tag.RowsAffected() == 0 {
		r.logger.Debug().Str("menu_item_id", id.String()).Msg("menu item not found for delete")
		return model.ErrMenuItemNotFound
	}

	r.logger.Debug().Str("menu_item_id", id.String()).Msg("menu item deleted")
	return nil
}
