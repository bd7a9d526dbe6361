// internal/models/interaction.go
package models

import (
	"github.com/google/uuid"
)

// Interaction records one tracked user action. Rows are written
// asynchronously and are never read on the request path.
type Interaction struct {
	BaseModel
	UserID    uuid.UUID         `json:"userId" gorm:"type:uuid;not null;index"`
	SessionID string            `json:"sessionId" gorm:"size:64;not null"`
	Action    InteractionAction `json:"action" gorm:"type:varchar(30);not null;index"`
	Details   JSONB             `json:"details" gorm:"type:jsonb"`

	User User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}
