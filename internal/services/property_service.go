// internal/services/property_service.go
package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/saarthi/saarthi-backend/internal/models"
	"github.com/saarthi/saarthi-backend/internal/utils"
)

var (
	ErrPropertyNotFound = errors.New("property not found")
	ErrNotPropertyOwner = errors.New("not the property owner")
)

// propertySortFields maps API sort names onto columns. Anything not listed
// here falls back to created_at.
var propertySortFields = map[string]string{
	"createdAt": "created_at",
	"updatedAt": "updated_at",
	"price":     "price",
	"area":      "area",
	"views":     "views",
	"bedrooms":  "bedrooms",
	"title":     "title",
}

// PropertySearchParams carries the parsed listing filters. Every filter is
// optional; nil means the caller did not constrain that field. Price bounds
// are already converted to rupees by the time they reach the service.
type PropertySearchParams struct {
	utils.PaginationParams

	City         string
	PropertyType string
	Furnishing   string
	Possession   string
	ListingFor   string

	MinPrice *int64
	MaxPrice *int64

	Bedrooms *int
	MinArea  *int
	MaxArea  *int

	Amenities []string
}

type PropertyService struct {
	db *gorm.DB
}

func NewPropertyService(db *gorm.DB) *PropertyService {
	return &PropertyService{db: db}
}

// buildSearchQuery translates the filter set into a query. Only active
// listings are ever searchable; the free-text search matches title,
// description and location case-insensitively; every other filter narrows
// the result further.
func (s *PropertyService) buildSearchQuery(params PropertySearchParams) *gorm.DB {
	query := s.db.Model(&models.Property{}).Where("status = ?", models.PropertyStatusActive)

	if params.Search != "" {
		term := "%" + strings.ToLower(params.Search) + "%"
		query = query.Where(
			"LOWER(title) LIKE ? OR LOWER(description) LIKE ? OR LOWER(location) LIKE ?",
			term, term, term,
		)
	}

	if params.City != "" {
		query = query.Where("LOWER(city) LIKE ?", "%"+strings.ToLower(params.City)+"%")
	}

	if params.PropertyType != "" {
		query = query.Where("property_type = ?", params.PropertyType)
	}
	if params.Furnishing != "" {
		query = query.Where("furnishing = ?", params.Furnishing)
	}
	if params.Possession != "" {
		query = query.Where("possession = ?", params.Possession)
	}
	if params.ListingFor != "" {
		query = query.Where("listing_for = ?", params.ListingFor)
	}

	if params.MinPrice != nil {
		query = query.Where("price >= ?", *params.MinPrice)
	}
	if params.MaxPrice != nil {
		query = query.Where("price <= ?", *params.MaxPrice)
	}

	if params.Bedrooms != nil {
		query = query.Where("bedrooms >= ?", *params.Bedrooms)
	}
	if params.MinArea != nil {
		query = query.Where("area >= ?", *params.MinArea)
	}
	if params.MaxArea != nil {
		query = query.Where("area <= ?", *params.MaxArea)
	}

	if len(params.Amenities) > 0 {
		// Overlap: a property matches when it has at least one of the
		// requested amenities.
		query = query.Where("amenities && ?", pq.StringArray(params.Amenities))
	}

	return query
}

// SearchProperties runs the listing query: count the full filtered set, then
// fetch one sorted page. A page past the end returns an empty data slice with
// the real totals intact.
func (s *PropertyService) SearchProperties(params PropertySearchParams) ([]models.Property, int64, error) {
	query := s.buildSearchQuery(params)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count properties: %w", err)
	}

	var properties []models.Property
	query = utils.ApplySort(query, params.PaginationParams, propertySortFields)
	query = utils.ApplyPagination(query, params.PaginationParams)

	if err := query.Preload("Owner").Find(&properties).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to search properties: %w", err)
	}

	return properties, total, nil
}

// GetProperty fetches one listing and counts the view. The owner browsing
// their own listing does not inflate its view count.
func (s *PropertyService) GetProperty(id uuid.UUID, viewerID *uuid.UUID) (*models.Property, error) {
	var property models.Property
	err := s.db.Preload("Owner").First(&property, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPropertyNotFound
		}
		return nil, fmt.Errorf("failed to get property: %w", err)
	}

	if viewerID == nil || *viewerID != property.OwnerID {
		s.incrementViews(property.ID)
	}

	return &property, nil
}

// incrementViews bumps the counter in SQL so concurrent views never lose
// updates. The write happens off the request path.
func (s *PropertyService) incrementViews(propertyID uuid.UUID) {
	go func() {
		err := s.db.Model(&models.Property{}).
			Where("id = ?", propertyID).
			UpdateColumn("views", gorm.Expr("views + 1")).Error
		if err != nil {
			logrus.WithError(err).WithField("property_id", propertyID).
				Error("Failed to increment property views")
		}
	}()
}

// IncrementInquiries bumps the inquiry counter within the caller's
// transaction.
func IncrementInquiries(tx *gorm.DB, propertyID uuid.UUID) error {
	return tx.Model(&models.Property{}).
		Where("id = ?", propertyID).
		UpdateColumn("inquiries", gorm.Expr("inquiries + 1")).Error
}

type CreatePropertyRequest struct {
	Title        string                `json:"title" validate:"required,min=3,max=100"`
	Description  string                `json:"description" validate:"required,min=10"`
	PropertyType models.PropertyType   `json:"propertyType" validate:"required,oneof=apartment villa house plot commercial"`
	ListingFor   models.ListingFor     `json:"listingFor" validate:"omitempty,oneof=sale rent"`
	Furnishing   models.Furnishing     `json:"furnishing" validate:"required,oneof=furnished semi-furnished unfurnished"`
	Possession   models.Possession     `json:"possession" validate:"required,oneof=ready under-construction new-launch"`
	Price        int64                 `json:"price" validate:"required,min=0"`
	Location     string                `json:"location" validate:"required,max=255"`
	Address      string                `json:"address" validate:"required,max=500"`
	City         string                `json:"city" validate:"required,max=100"`
	Latitude     *float64              `json:"latitude"`
	Longitude    *float64              `json:"longitude"`
	Bedrooms     int                   `json:"bedrooms" validate:"min=0"`
	Bathrooms    int                   `json:"bathrooms" validate:"min=0"`
	Garages      int                   `json:"garages" validate:"min=0"`
	Area         int                   `json:"area" validate:"required,min=1"`
	Amenities    []string              `json:"amenities"`
	Features     []string              `json:"features"`
	Images       models.PropertyImages `json:"images"`
	Agent        *models.Agent         `json:"agent"`
	YearBuilt    *int                  `json:"yearBuilt"`
	Developer    string                `json:"developer" validate:"max=255"`
	Rera         string                `json:"rera" validate:"max=50"`
}

// CreateProperty creates a listing owned by the caller. When no agent
// snapshot is supplied the owner's own contact details are used.
func (s *PropertyService) CreateProperty(ownerID uuid.UUID, req *CreatePropertyRequest) (*models.Property, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	var owner models.User
	if err := s.db.First(&owner, "id = ?", ownerID).Error; err != nil {
		return nil, fmt.Errorf("failed to load owner: %w", err)
	}

	listingFor := req.ListingFor
	if listingFor == "" {
		listingFor = models.ListingForSale
	}

	agent := models.Agent{
		Name:  owner.Name,
		Phone: owner.Phone,
		Email: owner.Email,
		Image: owner.Avatar,
	}
	if req.Agent != nil {
		agent = *req.Agent
	}

	property := &models.Property{
		Title:        req.Title,
		Description:  req.Description,
		PropertyType: req.PropertyType,
		ListingFor:   listingFor,
		Furnishing:   req.Furnishing,
		Possession:   req.Possession,
		Price:        req.Price,
		Location:     req.Location,
		Address:      req.Address,
		City:         req.City,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		Bedrooms:     req.Bedrooms,
		Bathrooms:    req.Bathrooms,
		Garages:      req.Garages,
		Area:         req.Area,
		Amenities:    req.Amenities,
		Features:     req.Features,
		Images:       req.Images,
		OwnerID:      ownerID,
		Agent:        agent,
		YearBuilt:    req.YearBuilt,
		Developer:    req.Developer,
		Rera:         req.Rera,
		Status:       models.PropertyStatusActive,
	}

	if err := s.db.Create(property).Error; err != nil {
		return nil, fmt.Errorf("failed to create property: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"property_id": property.ID,
		"owner_id":    ownerID,
		"city":        property.City,
	}).Info("Property created")

	return property, nil
}

type UpdatePropertyRequest struct {
	Title       *string                `json:"title" validate:"omitempty,min=3,max=100"`
	Description *string                `json:"description" validate:"omitempty,min=10"`
	Price       *int64                 `json:"price" validate:"omitempty,min=0"`
	Location    *string                `json:"location" validate:"omitempty,max=255"`
	Address     *string                `json:"address" validate:"omitempty,max=500"`
	City        *string                `json:"city" validate:"omitempty,max=100"`
	Bedrooms    *int                   `json:"bedrooms" validate:"omitempty,min=0"`
	Bathrooms   *int                   `json:"bathrooms" validate:"omitempty,min=0"`
	Garages     *int                   `json:"garages" validate:"omitempty,min=0"`
	Area        *int                   `json:"area" validate:"omitempty,min=1"`
	Furnishing  *models.Furnishing     `json:"furnishing" validate:"omitempty,oneof=furnished semi-furnished unfurnished"`
	Possession  *models.Possession     `json:"possession" validate:"omitempty,oneof=ready under-construction new-launch"`
	Amenities   []string               `json:"amenities"`
	Features    []string               `json:"features"`
	Images      models.PropertyImages  `json:"images"`
	Agent       *models.Agent          `json:"agent"`
	Status      *models.PropertyStatus `json:"status" validate:"omitempty,oneof=active inactive sold rented"`
}

// UpdateProperty applies a partial update. Only the owner or an admin may
// modify a listing.
func (s *PropertyService) UpdateProperty(id, callerID uuid.UUID, isAdmin bool, req *UpdatePropertyRequest) (*models.Property, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	var property models.Property
	if err := s.db.First(&property, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPropertyNotFound
		}
		return nil, fmt.Errorf("failed to get property: %w", err)
	}

	if property.OwnerID != callerID && !isAdmin {
		return nil, ErrNotPropertyOwner
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Price != nil {
		updates["price"] = *req.Price
	}
	if req.Location != nil {
		updates["location"] = *req.Location
	}
	if req.Address != nil {
		updates["address"] = *req.Address
	}
	if req.City != nil {
		updates["city"] = *req.City
	}
	if req.Bedrooms != nil {
		updates["bedrooms"] = *req.Bedrooms
	}
	if req.Bathrooms != nil {
		updates["bathrooms"] = *req.Bathrooms
	}
	if req.Garages != nil {
		updates["garages"] = *req.Garages
	}
	if req.Area != nil {
		updates["area"] = *req.Area
	}
	if req.Furnishing != nil {
		updates["furnishing"] = *req.Furnishing
	}
	if req.Possession != nil {
		updates["possession"] = *req.Possession
	}
	if req.Amenities != nil {
		updates["amenities"] = pq.StringArray(req.Amenities)
	}
	if req.Features != nil {
		updates["features"] = pq.StringArray(req.Features)
	}
	if req.Images != nil {
		updates["images"] = req.Images
	}
	if req.Agent != nil {
		updates["agent_name"] = req.Agent.Name
		updates["agent_phone"] = req.Agent.Phone
		updates["agent_email"] = req.Agent.Email
		updates["agent_image"] = req.Agent.Image
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}

	if len(updates) > 0 {
		if err := s.db.Model(&property).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update property: %w", err)
		}
	}

	return &property, nil
}

// DeleteProperty soft-deletes a listing. Only the owner or an admin may
// remove it.
func (s *PropertyService) DeleteProperty(id, callerID uuid.UUID, isAdmin bool) error {
	var property models.Property
	if err := s.db.First(&property, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPropertyNotFound
		}
		return fmt.Errorf("failed to get property: %w", err)
	}

	if property.OwnerID != callerID && !isAdmin {
		return ErrNotPropertyOwner
	}

	if err := s.db.Delete(&property).Error; err != nil {
		return fmt.Errorf("failed to delete property: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"property_id": id,
		"deleted_by":  callerID,
	}).Info("Property deleted")

	return nil
}

// GetFeaturedProperties returns the newest featured active listings. The
// limit follows the same clamp policy as listing pagination.
func (s *PropertyService) GetFeaturedProperties(limit int) ([]models.Property, error) {
	if limit < 1 {
		limit = 6
	}
	if limit > utils.MaxLimit {
		limit = utils.MaxLimit
	}

	var properties []models.Property
	err := s.db.Where("is_featured = ? AND status = ?", true, models.PropertyStatusActive).
		Order("created_at DESC").
		Limit(limit).
		Preload("Owner").
		Find(&properties).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get featured properties: %w", err)
	}

	return properties, nil
}

// GetUserProperties lists a user's own listings regardless of status.
func (s *PropertyService) GetUserProperties(ownerID uuid.UUID, params utils.PaginationParams) ([]models.Property, int64, error) {
	query := s.db.Model(&models.Property{}).Where("owner_id = ?", ownerID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count user properties: %w", err)
	}

	var properties []models.Property
	query = utils.ApplySort(query, params, propertySortFields)
	query = utils.ApplyPagination(query, params)
	if err := query.Find(&properties).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to get user properties: %w", err)
	}

	return properties, total, nil
}

// SetFeatured toggles the featured flag. Admin only; enforced at the router.
func (s *PropertyService) SetFeatured(id uuid.UUID, featured bool) (*models.Property, error) {
	var property models.Property
	if err := s.db.First(&property, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPropertyNotFound
		}
		return nil, fmt.Errorf("failed to get property: %w", err)
	}

	if err := s.db.Model(&property).Update("is_featured", featured).Error; err != nil {
		return nil, fmt.Errorf("failed to update featured flag: %w", err)
	}

	return &property, nil
}

// AddImages appends uploaded image URLs to the listing gallery.
func (s *PropertyService) AddImages(id, callerID uuid.UUID, isAdmin bool, images []models.PropertyImage) (*models.Property, error) {
	var property models.Property
	if err := s.db.First(&property, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPropertyNotFound
		}
		return nil, fmt.Errorf("failed to get property: %w", err)
	}

	if property.OwnerID != callerID && !isAdmin {
		return nil, ErrNotPropertyOwner
	}

	property.Images = append(property.Images, images...)
	if err := s.db.Model(&property).Update("images", property.Images).Error; err != nil {
		return nil, fmt.Errorf("failed to update property images: %w", err)
	}

	return &property, nil
}
