// internal/models/property.go
package models

import (
	"database/sql/driver"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// PropertyImage is one entry of the ordered image gallery. The cover flag
// marks the image shown on listing cards.
type PropertyImage struct {
	URL     string `json:"url"`
	Alt     string `json:"alt,omitempty"`
	IsCover bool   `json:"isCover,omitempty"`
}

// PropertyImages is stored as a single jsonb column to keep gallery order.
type PropertyImages []PropertyImage

func (p PropertyImages) Value() (driver.Value, error) {
	if p == nil {
		return nil, nil
	}
	return json.Marshal(p)
}

func (p *PropertyImages) Scan(value interface{}) error {
	if value == nil {
		*p = nil
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}

	return json.Unmarshal(bytes, p)
}

// Agent is a denormalized contact snapshot, not a live user reference.
type Agent struct {
	Name  string `json:"name" gorm:"size:100"`
	Phone string `json:"phone" gorm:"size:20"`
	Email string `json:"email" gorm:"size:255"`
	Image string `json:"image" gorm:"size:500"`
}

type Property struct {
	BaseModel
	Title        string       `json:"title" gorm:"size:100;not null"`
	Description  string       `json:"description" gorm:"type:text;not null"`
	PropertyType PropertyType `json:"propertyType" gorm:"type:varchar(20);not null;index"`
	ListingFor   ListingFor   `json:"listingFor" gorm:"type:varchar(10);default:'sale'"`
	Furnishing   Furnishing   `json:"furnishing" gorm:"type:varchar(20);not null"`
	Possession   Possession   `json:"possession" gorm:"type:varchar(20);not null"`

	// Price is stored in whole rupees; filters arrive in crore and are
	// converted before they reach the query.
	Price int64 `json:"price" gorm:"not null;check:price >= 0;index"`

	// Location
	Location  string   `json:"location" gorm:"size:255;not null"`
	Address   string   `json:"address" gorm:"size:500;not null"`
	City      string   `json:"city" gorm:"size:100;not null;index"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`

	Bedrooms  int `json:"bedrooms" gorm:"not null;check:bedrooms >= 0"`
	Bathrooms int `json:"bathrooms" gorm:"not null;check:bathrooms >= 0"`
	Garages   int `json:"garages" gorm:"default:0"`
	Area      int `json:"area" gorm:"not null;check:area >= 1"`

	Amenities pq.StringArray `json:"amenities" gorm:"type:text[]"`
	Features  pq.StringArray `json:"features" gorm:"type:text[]"`
	Images    PropertyImages `json:"images" gorm:"type:jsonb"`

	OwnerID uuid.UUID `json:"ownerId" gorm:"type:uuid;not null;index"`
	Agent   Agent     `json:"agent" gorm:"embedded;embeddedPrefix:agent_"`

	YearBuilt *int   `json:"yearBuilt,omitempty"`
	Developer string `json:"developer,omitempty" gorm:"size:255"`
	Rera      string `json:"rera,omitempty" gorm:"size:50"`

	Status     PropertyStatus `json:"status" gorm:"type:varchar(10);default:'active';index"`
	IsVerified bool           `json:"isVerified" gorm:"default:false"`
	IsFeatured bool           `json:"isFeatured" gorm:"default:false"`

	// Analytics counters, incremented atomically in SQL
	Views     int64 `json:"views" gorm:"default:0"`
	Inquiries int64 `json:"inquiries" gorm:"default:0"`

	// Relationships
	Owner User `json:"owner,omitempty" gorm:"foreignKey:OwnerID"`
}
