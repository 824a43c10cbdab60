package model

import (
	"time"

	"github.com/google/uuid"
)

// MenuItem represents a catalog entry in the menu.
// Image always names a file in the menu-item asset namespace.
type MenuItem struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	SpecialTag  string    `json:"specialTag" db:"special_tag"`
	Category    string    `json:"category" db:"category"`
	Price       float64   `json:"price" db:"price"`
	Image       string    `json:"image" db:"image"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

// MenuItemFields holds the scalar fields supplied when creating or
// updating a menu item. The image is carried separately as an upload.
type MenuItemFields struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	SpecialTag  string  `json:"specialTag"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
}
