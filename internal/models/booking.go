// internal/models/booking.go
package models

import (
	"time"

	"github.com/google/uuid"
)

// BookingContact is the visitor's contact snapshot taken at booking time.
type BookingContact struct {
	Name  string `json:"name" gorm:"size:100"`
	Phone string `json:"phone" gorm:"size:20"`
	Email string `json:"email" gorm:"size:255"`
}

// Booking is a requested site visit for a property.
type Booking struct {
	BaseModel
	PropertyID uuid.UUID      `json:"propertyId" gorm:"type:uuid;not null;index"`
	UserID     uuid.UUID      `json:"userId" gorm:"type:uuid;not null;index"`
	VisitDate  time.Time      `json:"visitDate" gorm:"not null"`
	VisitTime  string         `json:"visitTime" gorm:"size:20;not null"`
	Message    string         `json:"message" gorm:"type:text"`
	Status     BookingStatus  `json:"status" gorm:"type:varchar(10);default:'pending';index"`
	Contact    BookingContact `json:"contactInfo" gorm:"embedded;embeddedPrefix:contact_"`

	Property Property `json:"property,omitempty" gorm:"foreignKey:PropertyID"`
	User     User     `json:"user,omitempty" gorm:"foreignKey:UserID"`
}
