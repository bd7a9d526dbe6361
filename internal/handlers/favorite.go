// internal/handlers/favorite.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/saarthi/saarthi-backend/internal/services"
	"github.com/saarthi/saarthi-backend/internal/utils"
)

type FavoriteHandler struct {
	favorites *services.FavoriteService
}

func NewFavoriteHandler(favorites *services.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{favorites: favorites}
}

// List is GET /api/favorites.
func (h *FavoriteHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	params := utils.GetPaginationParams(c)
	favorites, total, err := h.favorites.ListFavorites(userID, params)
	if err != nil {
		logrus.WithError(err).Error("Failed to list favorites")
		utils.InternalErrorResponse(c, "Failed to fetch favorites")
		return
	}

	utils.ListResponse(c, favorites, len(favorites), total, params)
}

type addFavoriteRequest struct {
	PropertyID uuid.UUID `json:"propertyId" binding:"required"`
	Notes      string    `json:"notes"`
}

// Add is POST /api/favorites.
func (h *FavoriteHandler) Add(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req addFavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}

	favorite, err := h.favorites.AddFavorite(userID, req.PropertyID, req.Notes)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrPropertyNotFound):
			utils.NotFoundResponse(c, "Property not found")
		case errors.Is(err, services.ErrAlreadyFavorited):
			utils.ConflictResponse(c, "Property is already in your favorites")
		default:
			logrus.WithError(err).Error("Failed to add favorite")
			utils.InternalErrorResponse(c, "Failed to save favorite")
		}
		return
	}

	utils.CreatedResponse(c, "Property saved to favorites", favorite)
}

// Remove is DELETE /api/favorites/:propertyId.
func (h *FavoriteHandler) Remove(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	propertyID, err := uuid.Parse(c.Param("propertyId"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid property ID")
		return
	}

	if err := h.favorites.RemoveFavorite(userID, propertyID); err != nil {
		if errors.Is(err, services.ErrPropertyNotFound) {
			utils.NotFoundResponse(c, "Favorite not found")
			return
		}
		logrus.WithError(err).Error("Failed to remove favorite")
		utils.InternalErrorResponse(c, "Failed to remove favorite")
		return
	}

	utils.MessageResponse(c, "Property removed from favorites")
}

// Check is GET /api/favorites/check/:propertyId.
func (h *FavoriteHandler) Check(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	propertyID, err := uuid.Parse(c.Param("propertyId"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid property ID")
		return
	}

	favorited, err := h.favorites.IsFavorited(userID, propertyID)
	if err != nil {
		logrus.WithError(err).Error("Failed to check favorite")
		utils.InternalErrorResponse(c, "Failed to check favorite")
		return
	}

	utils.SuccessResponse(c, gin.H{"isFavorited": favorited})
}

// Clear is DELETE /api/favorites.
func (h *FavoriteHandler) Clear(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	removed, err := h.favorites.ClearFavorites(userID)
	if err != nil {
		logrus.WithError(err).Error("Failed to clear favorites")
		utils.InternalErrorResponse(c, "Failed to clear favorites")
		return
	}

	utils.SuccessResponse(c, gin.H{"removed": removed})
}
