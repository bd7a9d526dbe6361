// internal/handlers/property.go
package handlers

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/saarthi/saarthi-backend/internal/models"
	"github.com/saarthi/saarthi-backend/internal/services"
	"github.com/saarthi/saarthi-backend/internal/utils"
)

type PropertyHandler struct {
	properties   *services.PropertyService
	storage      *services.StorageService
	interactions *services.InteractionService
	cacheTTL     time.Duration
}

func NewPropertyHandler(properties *services.PropertyService, storage *services.StorageService, interactions *services.InteractionService, cacheTTL time.Duration) *PropertyHandler {
	return &PropertyHandler{
		properties:   properties,
		storage:      storage,
		interactions: interactions,
		cacheTTL:     cacheTTL,
	}
}

// parseSearchParams reads listing filters from the query string. Parsing is
// lenient: a filter value that does not parse is dropped, never an error.
// Price bounds arrive in crore and leave here as rupees.
func parseSearchParams(c *gin.Context) services.PropertySearchParams {
	// The listing client sends either "city" or the legacy "location" key for
	// the same filter.
	city := c.Query("city")
	if city == "" {
		city = c.Query("location")
	}

	params := services.PropertySearchParams{
		PaginationParams: utils.GetPaginationParams(c),
		City:             city,
		PropertyType:     c.Query("propertyType"),
		Furnishing:       c.Query("furnishing"),
		Possession:       c.Query("possession"),
		ListingFor:       c.Query("listingFor"),
	}

	if v, ok := utils.ParseCrore(c.Query("minPrice")); ok {
		params.MinPrice = &v
	}
	if v, ok := utils.ParseCrore(c.Query("maxPrice")); ok {
		params.MaxPrice = &v
	}

	if v, err := strconv.Atoi(c.Query("bedrooms")); err == nil {
		params.Bedrooms = &v
	}
	if v, err := strconv.Atoi(c.Query("minArea")); err == nil {
		params.MinArea = &v
	}
	if v, err := strconv.Atoi(c.Query("maxArea")); err == nil {
		params.MaxArea = &v
	}

	// Amenities arrive either repeated (?amenities=a&amenities=b) or as one
	// comma-separated value.
	if values, ok := c.GetQueryArray("amenities"); ok {
		for _, value := range values {
			for _, amenity := range strings.Split(value, ",") {
				if amenity = strings.TrimSpace(amenity); amenity != "" {
					params.Amenities = append(params.Amenities, amenity)
				}
			}
		}
	}

	return params
}

// List is GET /api/properties: the filtered, sorted, paginated listing.
// Responses are cached briefly per unique filter combination.
func (h *PropertyHandler) List(c *gin.Context) {
	params := parseSearchParams(c)

	// A cache hit is still a search; track before the cache lookup.
	if userID, ok := currentUserID(c); ok && h.interactions != nil && params.Search != "" {
		h.interactions.Track(userID, utils.SessionFingerprint(c.Request.UserAgent(), c.ClientIP()),
			models.ActionPropertySearch, models.JSONB{
				"search": params.Search,
				"city":   params.City,
			})
	}

	cacheKey := utils.QueryCacheKey("properties:list", c.Request.URL.Query())

	var cached utils.ListEnvelope
	if hit, err := utils.GetCached(c.Request.Context(), cacheKey, &cached); err == nil && hit {
		c.JSON(200, cached)
		return
	}

	properties, total, err := h.properties.SearchProperties(params)
	if err != nil {
		logrus.WithError(err).Error("Property search failed")
		utils.InternalErrorResponse(c, "Failed to fetch properties")
		return
	}

	envelope := utils.ListEnvelope{
		Success:     true,
		Count:       len(properties),
		Total:       total,
		TotalPages:  utils.TotalPages(total, params.Limit),
		CurrentPage: params.Page,
		Data:        properties,
	}

	if err := utils.SetCached(c.Request.Context(), cacheKey, envelope, h.cacheTTL); err != nil {
		logrus.WithError(err).Warn("Failed to cache property listing")
	}

	c.JSON(200, envelope)
}

// Featured is GET /api/properties/featured.
func (h *PropertyHandler) Featured(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "6"))

	cacheKey := utils.QueryCacheKey("properties:featured", c.Request.URL.Query())
	var cached utils.APIResponse
	if hit, err := utils.GetCached(c.Request.Context(), cacheKey, &cached); err == nil && hit {
		c.JSON(200, cached)
		return
	}

	properties, err := h.properties.GetFeaturedProperties(limit)
	if err != nil {
		logrus.WithError(err).Error("Failed to fetch featured properties")
		utils.InternalErrorResponse(c, "Failed to fetch featured properties")
		return
	}

	response := utils.APIResponse{Success: true, Data: properties}
	if err := utils.SetCached(c.Request.Context(), cacheKey, response, h.cacheTTL); err != nil {
		logrus.WithError(err).Warn("Failed to cache featured properties")
	}

	c.JSON(200, response)
}

// Detail is GET /api/properties/:id.
func (h *PropertyHandler) Detail(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid property ID")
		return
	}

	var viewerID *uuid.UUID
	if idStr, ok := utils.GetUserIDFromContext(c); ok {
		if parsed, err := uuid.Parse(idStr); err == nil {
			viewerID = &parsed
		}
	}

	property, err := h.properties.GetProperty(id, viewerID)
	if err != nil {
		if errors.Is(err, services.ErrPropertyNotFound) {
			utils.NotFoundResponse(c, "Property not found")
			return
		}
		logrus.WithError(err).Error("Failed to fetch property")
		utils.InternalErrorResponse(c, "Failed to fetch property")
		return
	}

	utils.SuccessResponse(c, property)
}

// Create is POST /api/properties.
func (h *PropertyHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req services.CreatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}

	property, err := h.properties.CreateProperty(userID, &req)
	if err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok {
			utils.ValidationErrorResponse(c, utils.GetValidationErrors(verrs))
			return
		}
		logrus.WithError(err).Error("Failed to create property")
		utils.InternalErrorResponse(c, "Failed to create property")
		return
	}

	utils.CreatedResponse(c, "Property listed successfully", property)
}

// Update is PUT /api/properties/:id.
func (h *PropertyHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid property ID")
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req services.UpdatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}

	property, err := h.properties.UpdateProperty(id, userID, isAdmin(c), &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrPropertyNotFound):
			utils.NotFoundResponse(c, "Property not found")
		case errors.Is(err, services.ErrNotPropertyOwner):
			utils.ForbiddenResponse(c, "")
		default:
			if verrs, ok := err.(validator.ValidationErrors); ok {
				utils.ValidationErrorResponse(c, utils.GetValidationErrors(verrs))
				return
			}
			logrus.WithError(err).Error("Failed to update property")
			utils.InternalErrorResponse(c, "Failed to update property")
		}
		return
	}

	utils.SuccessResponse(c, property)
}

// Delete is DELETE /api/properties/:id.
func (h *PropertyHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid property ID")
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	if err := h.properties.DeleteProperty(id, userID, isAdmin(c)); err != nil {
		switch {
		case errors.Is(err, services.ErrPropertyNotFound):
			utils.NotFoundResponse(c, "Property not found")
		case errors.Is(err, services.ErrNotPropertyOwner):
			utils.ForbiddenResponse(c, "")
		default:
			logrus.WithError(err).Error("Failed to delete property")
			utils.InternalErrorResponse(c, "Failed to delete property")
		}
		return
	}

	utils.MessageResponse(c, "Property removed successfully")
}

// MyProperties is GET /api/properties/mine.
func (h *PropertyHandler) MyProperties(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	params := utils.GetPaginationParams(c)
	properties, total, err := h.properties.GetUserProperties(userID, params)
	if err != nil {
		logrus.WithError(err).Error("Failed to fetch user properties")
		utils.InternalErrorResponse(c, "Failed to fetch your properties")
		return
	}

	utils.ListResponse(c, properties, len(properties), total, params)
}

// UploadImages is POST /api/properties/:id/images (multipart form, field
// "images").
func (h *PropertyHandler) UploadImages(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid property ID")
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		utils.BadRequestResponse(c, "Invalid multipart form")
		return
	}

	files := form.File["images"]
	if len(files) == 0 {
		utils.BadRequestResponse(c, "No images provided")
		return
	}

	var uploaded []models.PropertyImage
	for _, header := range files {
		file, err := header.Open()
		if err != nil {
			utils.BadRequestResponse(c, "Failed to read uploaded image")
			return
		}

		result, err := h.storage.UploadPropertyImage(file, header)
		file.Close()
		if err != nil {
			utils.BadRequestResponse(c, err.Error())
			return
		}

		uploaded = append(uploaded, models.PropertyImage{URL: result.URL})
	}

	property, err := h.properties.AddImages(id, userID, isAdmin(c), uploaded)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrPropertyNotFound):
			utils.NotFoundResponse(c, "Property not found")
		case errors.Is(err, services.ErrNotPropertyOwner):
			utils.ForbiddenResponse(c, "")
		default:
			logrus.WithError(err).Error("Failed to attach property images")
			utils.InternalErrorResponse(c, "Failed to attach images")
		}
		return
	}

	utils.SuccessResponse(c, property)
}

func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	idStr, ok := utils.GetUserIDFromContext(c)
	if !ok {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

func isAdmin(c *gin.Context) bool {
	role, _ := utils.GetUserRoleFromContext(c)
	return role == string(models.UserRoleAdmin)
}
