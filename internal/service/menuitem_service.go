package service

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"redmango/internal/model"
	"redmango/internal/repository"
	"redmango/internal/storage"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// menuItemService implements MenuItemService.
type menuItemService struct {
	repo   repository.MenuItemRepository
	store  storage.ImageStore
	logger zerolog.Logger
}

// NewMenuItemService creates a new menu item service.
func NewMenuItemService(
	repo repository.MenuItemRepository,
	store storage.ImageStore,
	logger zerolog.Logger,
) MenuItemService {
	return &menuItemService{
		repo:   repo,
		store:  store,
		logger: logger.With().Str("service", "menuitem").Logger(),
	}
}

// List retrieves all menu items.
func (s *menuItemService) List(ctx context.Context) ([]model.MenuItem, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list menu items")
		return nil, fmt.Errorf("failed to list menu items: %w", err)
	}

	s.logger.Debug().Int("count", len(items)).Msg("retrieved menu items")
	return items, nil
}

// GetByID retrieves a single menu item.
func (s *menuItemService) GetByID(ctx context.Context, id uuid.UUID) (*model.MenuItem, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("menu_item_id", id.String()).Msg("failed to get menu item")
		return nil, fmt.Errorf("failed to get menu item: %w", err)
	}

	if item == nil {
		s.logger.Debug().Str("menu_item_id", id.String()).Msg("menu item not found")
		return nil, model.ErrMenuItemNotFound
	}

	return item, nil
}

// Create validates the upload, stores the asset, then inserts the record.
// The asset is written before any record references it so a crash between
// the two steps leaves an orphaned file, never a record pointing at nothing.
func (s *menuItemService) Create(ctx context.Context, fields model.MenuItemFields, upload *storage.Upload) (*model.MenuItem, error) {
	if err := s.validateFields(fields); err != nil {
		return nil, err
	}

	if err := s.store.Validate(upload); err != nil {
		s.logger.Warn().Err(err).Str("name", fields.Name).Msg("rejected menu item upload")
		return nil, err
	}

	assetRef, err := s.store.Save(ctx, upload)
	if err != nil {
		s.logger.Error().Err(err).Str("name", fields.Name).Msg("failed to save menu item asset")
		return nil, fmt.Errorf("failed to save menu item image: %w", err)
	}

	now := time.Now()
	item := &model.MenuItem{
		ID:          uuid.New(),
		Name:        fields.Name,
		Description: fields.Description,
		SpecialTag:  fields.SpecialTag,
		Category:    fields.Category,
		Price:       fields.Price,
		Image:       assetRef,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Insert(ctx, item); err != nil {
		// Compensate so a failed insert does not leak an orphan asset. A
		// failed cleanup is logged and left for the reconciliation sweep.
		if delErr := s.store.Delete(ctx, assetRef); delErr != nil {
			s.logger.Warn().Err(delErr).Str("asset", assetRef).Msg("failed to clean up asset after insert failure")
		}
		s.logger.Error().Err(err).Str("menu_item_id", item.ID.String()).Msg("failed to insert menu item")
		return nil, fmt.Errorf("failed to create menu item: %w", err)
	}

	s.logger.Info().
		Str("menu_item_id", item.ID.String()).
		Str("asset", assetRef).
		Msg("menu item created")

	return item, nil
}

// Update applies scalar changes and optionally replaces the image asset.
// A replacement upload is validated before the old asset is touched, and
// the new asset is written before the old one is removed, so the record
// never references a file that does not exist.
func (s *menuItemService) Update(ctx context.Context, id uuid.UUID, fields model.MenuItemFields, upload *storage.Upload) (*model.MenuItem, error) {
	if err := s.validateFields(fields); err != nil {
		return nil, err
	}

	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("menu_item_id", id.String()).Msg("failed to load menu item for update")
		return nil, fmt.Errorf("failed to load menu item: %w", err)
	}
	if item == nil {
		return nil, model.ErrMenuItemNotFound
	}

	item.Name = fields.Name
	item.Description = fields.Description
	item.SpecialTag = fields.SpecialTag
	item.Category = fields.Category
	item.Price = fields.Price
	item.UpdatedAt = time.Now()

	oldAsset := ""
	if upload != nil && upload.Size > 0 {
		if err := s.store.Validate(upload); err != nil {
			s.logger.Warn().Err(err).Str("menu_item_id", id.String()).Msg("rejected replacement upload")
			return nil, err
		}

		newAsset, err := s.store.Save(ctx, upload)
		if err != nil {
			s.logger.Error().Err(err).Str("menu_item_id", id.String()).Msg("failed to save replacement asset")
			return nil, fmt.Errorf("failed to save menu item image: %w", err)
		}

		oldAsset = item.Image
		item.Image = newAsset
	}

	if err := s.repo.Update(ctx, item); err != nil {
		if item.Image != "" && oldAsset != "" {
			if delErr := s.store.Delete(ctx, item.Image); delErr != nil {
				s.logger.Warn().Err(delErr).Str("asset", item.Image).Msg("failed to clean up asset after update failure")
			}
		}
		s.logger.Error().Err(err).Str("menu_item_id", id.String()).Msg("failed to update menu item")
		if errors.Is(err, model.ErrMenuItemNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update menu item: %w", err)
	}

	// The record now points at the new asset; the old file is deletable.
	// A failed delete leaves an orphan, which wastes space but never
	// breaks a read, so it is logged rather than surfaced.
	if oldAsset != "" {
		if err := s.store.Delete(ctx, oldAsset); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				s.logger.Debug().Str("asset", oldAsset).Msg("old asset already gone")
			} else {
				s.logger.Warn().Err(err).Str("asset", oldAsset).Msg("failed to delete replaced asset")
			}
		}
	}

	s.logger.Info().
		Str("menu_item_id", id.String()).
		Bool("image_replaced", oldAsset != "").
		Msg("menu item updated")

	return item, nil
}

// Delete removes the item's asset and then its record. Deleting the asset
// first means a crash between the steps leaves a dangling record, which is
// visible and fixable, rather than an invisible orphan file.
func (s *menuItemService) Delete(ctx context.Context, id uuid.UUID) error {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("menu_item_id", id.String()).Msg("failed to load menu item for delete")
		return fmt.Errorf("failed to load menu item: %w", err)
	}
	if item == nil {
		return model.ErrMenuItemNotFound
	}

	if err := s.store.Delete(ctx, item.Image); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			// A dangling record being cleaned up; proceed to the record.
			s.logger.Warn().Str("asset", item.Image).Str("menu_item_id", id.String()).Msg("asset already missing during delete")
		} else {
			s.logger.Error().Err(err).Str("asset", item.Image).Msg("failed to delete menu item asset")
			return fmt.Errorf("failed to delete menu item image: %w", err)
		}
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, model.ErrMenuItemNotFound) {
			return err
		}
		s.logger.Error().Err(err).Str("menu_item_id", id.String()).Msg("failed to delete menu item record")
		return fmt.Errorf("failed to delete menu item: %w", err)
	}

	s.logger.Info().Str("menu_item_id", id.String()).Msg("menu item deleted")
	return nil
}

// validateFields checks the scalar fields common to create and update.
func (s *menuItemService) validateFields(fields model.MenuItemFields) error {
	if fields.Name == "" {
		return fmt.Errorf("menu item name is required")
	}
	if fields.Price < 0 {
		return model.ErrInvalidPrice
	}
	return nil
}
