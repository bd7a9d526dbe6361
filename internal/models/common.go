// internal/models/common.go
package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base model with common fields
type BaseModel struct {
	ID        uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// JSONB type for PostgreSQL
type JSONB map[string]interface{}

func (j JSONB) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

func (j *JSONB) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}

	return json.Unmarshal(bytes, j)
}

// Enums
type UserRole string

const (
	UserRoleUser  UserRole = "user"
	UserRoleAdmin UserRole = "admin"
)

type PropertyType string

const (
	PropertyTypeApartment  PropertyType = "apartment"
	PropertyTypeVilla      PropertyType = "villa"
	PropertyTypeHouse      PropertyType = "house"
	PropertyTypePlot       PropertyType = "plot"
	PropertyTypeCommercial PropertyType = "commercial"
)

type ListingFor string

const (
	ListingForSale ListingFor = "sale"
	ListingForRent ListingFor = "rent"
)

type Furnishing string

const (
	FurnishingFurnished     Furnishing = "furnished"
	FurnishingSemiFurnished Furnishing = "semi-furnished"
	FurnishingUnfurnished   Furnishing = "unfurnished"
)

type Possession string

const (
	PossessionReady             Possession = "ready"
	PossessionUnderConstruction Possession = "under-construction"
	PossessionNewLaunch         Possession = "new-launch"
)

type PropertyStatus string

const (
	PropertyStatusActive   PropertyStatus = "active"
	PropertyStatusInactive PropertyStatus = "inactive"
	PropertyStatusSold     PropertyStatus = "sold"
	PropertyStatusRented   PropertyStatus = "rented"
)

type ContactStatus string

const (
	ContactStatusNew        ContactStatus = "new"
	ContactStatusInProgress ContactStatus = "in-progress"
	ContactStatusResolved   ContactStatus = "resolved"
	ContactStatusClosed     ContactStatus = "closed"
)

type ContactPriority string

const (
	ContactPriorityLow    ContactPriority = "low"
	ContactPriorityMedium ContactPriority = "medium"
	ContactPriorityHigh   ContactPriority = "high"
	ContactPriorityUrgent ContactPriority = "urgent"
)

type InterestedIn string

const (
	InterestedInSiteVisit        InterestedIn = "site-visit"
	InterestedInMoreInfo         InterestedIn = "more-info"
	InterestedInPriceNegotiation InterestedIn = "price-negotiation"
	InterestedInLoanAssistance   InterestedIn = "loan-assistance"
	InterestedInGeneral          InterestedIn = "general"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

type InteractionAction string

const (
	ActionLogin            InteractionAction = "login"
	ActionLogout           InteractionAction = "logout"
	ActionPageView         InteractionAction = "page_view"
	ActionPropertyView     InteractionAction = "property_view"
	ActionPropertySearch   InteractionAction = "property_search"
	ActionPropertyFavorite InteractionAction = "property_favorite"
	ActionBookingRequest   InteractionAction = "booking_request"
	ActionContactForm      InteractionAction = "contact_form"
	ActionPropertyAdd      InteractionAction = "property_add"
	ActionProfileUpdate    InteractionAction = "profile_update"
	ActionFilterApplied    InteractionAction = "filter_applied"
)
