// internal/models/contact.go
package models

import (
	"time"

	"github.com/google/uuid"
)

// Contact is an inquiry submitted through the contact form. It is immutable
// once created except for the status/priority/response fields, which only
// administrative review may set.
type Contact struct {
	BaseModel
	Name    string `json:"name" gorm:"size:100;not null"`
	Email   string `json:"email" gorm:"size:255;not null;index"`
	Phone   string `json:"phone" gorm:"size:20;not null"`
	Subject string `json:"subject" gorm:"size:255;not null"`
	Message string `json:"message" gorm:"type:text;not null"`

	PropertyID   *uuid.UUID   `json:"propertyId,omitempty" gorm:"type:uuid;index"`
	UserID       *uuid.UUID   `json:"userId,omitempty" gorm:"type:uuid"`
	InterestedIn InterestedIn `json:"interestedIn,omitempty" gorm:"type:varchar(20)"`

	Status   ContactStatus   `json:"status" gorm:"type:varchar(15);default:'new';index"`
	Priority ContactPriority `json:"priority" gorm:"type:varchar(10);default:'medium'"`

	Source    string `json:"source" gorm:"size:50;default:'website'"`
	IPAddress string `json:"-" gorm:"size:45"`
	UserAgent string `json:"-" gorm:"size:500"`

	ResponseMessage string     `json:"responseMessage,omitempty" gorm:"type:text"`
	ResponseByID    *uuid.UUID `json:"responseById,omitempty" gorm:"type:uuid"`
	ResponseAt      *time.Time `json:"responseAt,omitempty"`

	User       *User     `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Property   *Property `json:"property,omitempty" gorm:"foreignKey:PropertyID"`
	ResponseBy *User     `json:"responseBy,omitempty" gorm:"foreignKey:ResponseByID"`
}
