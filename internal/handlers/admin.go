// internal/handlers/admin.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/saarthi/saarthi-backend/internal/services"
	"github.com/saarthi/saarthi-backend/internal/utils"
)

type AdminHandler struct {
	admin      *services.AdminService
	properties *services.PropertyService
}

func NewAdminHandler(admin *services.AdminService, properties *services.PropertyService) *AdminHandler {
	return &AdminHandler{admin: admin, properties: properties}
}

// Stats is GET /api/admin/stats.
func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := h.admin.GetDashboardStats()
	if err != nil {
		logrus.WithError(err).Error("Failed to load dashboard stats")
		utils.InternalErrorResponse(c, "Failed to load dashboard stats")
		return
	}

	utils.SuccessResponse(c, stats)
}

// Users is GET /api/admin/users.
func (h *AdminHandler) Users(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	users, total, err := h.admin.ListUsers(params)
	if err != nil {
		logrus.WithError(err).Error("Failed to list users")
		utils.InternalErrorResponse(c, "Failed to fetch users")
		return
	}

	utils.ListResponse(c, users, len(users), total, params)
}

type setFeaturedRequest struct {
	Featured *bool `json:"featured" binding:"required"`
}

// SetFeatured is PUT /api/admin/properties/:id/featured.
func (h *AdminHandler) SetFeatured(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid property ID")
		return
	}

	var req setFeaturedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Featured flag is required")
		return
	}

	property, err := h.properties.SetFeatured(id, *req.Featured)
	if err != nil {
		if errors.Is(err, services.ErrPropertyNotFound) {
			utils.NotFoundResponse(c, "Property not found")
			return
		}
		logrus.WithError(err).Error("Failed to update featured flag")
		utils.InternalErrorResponse(c, "Failed to update property")
		return
	}

	utils.SuccessResponse(c, property)
}
