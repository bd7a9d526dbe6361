// internal/models/favorite.go
package models

import (
	"github.com/google/uuid"
)

// Favorite joins a user to a saved property. The composite unique index
// guarantees at most one row per (user, property) pair.
type Favorite struct {
	BaseModel
	UserID     uuid.UUID `json:"userId" gorm:"type:uuid;not null;uniqueIndex:idx_favorites_user_property"`
	PropertyID uuid.UUID `json:"propertyId" gorm:"type:uuid;not null;uniqueIndex:idx_favorites_user_property"`
	Notes      string    `json:"notes,omitempty" gorm:"size:500"`

	User     User     `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Property Property `json:"property,omitempty" gorm:"foreignKey:PropertyID"`
}
