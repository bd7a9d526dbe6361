// internal/services/favorite_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/saarthi/saarthi-backend/internal/models"
	"github.com/saarthi/saarthi-backend/internal/utils"
)

var ErrAlreadyFavorited = errors.New("property already in favorites")

type FavoriteService struct {
	db *gorm.DB
}

func NewFavoriteService(db *gorm.DB) *FavoriteService {
	return &FavoriteService{db: db}
}

// ListFavorites returns the caller's saved properties, newest first.
func (s *FavoriteService) ListFavorites(userID uuid.UUID, params utils.PaginationParams) ([]models.Favorite, int64, error) {
	query := s.db.Model(&models.Favorite{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count favorites: %w", err)
	}

	var favorites []models.Favorite
	err := query.Order("created_at DESC").
		Offset((params.Page - 1) * params.Limit).
		Limit(params.Limit).
		Preload("Property").
		Preload("Property.Owner").
		Find(&favorites).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list favorites: %w", err)
	}

	return favorites, total, nil
}

// AddFavorite saves a property for the caller. Saving the same property
// twice is a conflict, not a silent no-op.
func (s *FavoriteService) AddFavorite(userID, propertyID uuid.UUID, notes string) (*models.Favorite, error) {
	var property models.Property
	if err := s.db.First(&property, "id = ?", propertyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPropertyNotFound
		}
		return nil, fmt.Errorf("failed to get property: %w", err)
	}

	var existing models.Favorite
	err := s.db.Where("user_id = ? AND property_id = ?", userID, propertyID).First(&existing).Error
	if err == nil {
		return nil, ErrAlreadyFavorited
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check favorite: %w", err)
	}

	favorite := &models.Favorite{
		UserID:     userID,
		PropertyID: propertyID,
		Notes:      notes,
	}

	if err := s.db.Create(favorite).Error; err != nil {
		return nil, fmt.Errorf("failed to add favorite: %w", err)
	}

	favorite.Property = property
	return favorite, nil
}

// RemoveFavorite deletes the caller's saved entry for a property.
func (s *FavoriteService) RemoveFavorite(userID, propertyID uuid.UUID) error {
	result := s.db.Where("user_id = ? AND property_id = ?", userID, propertyID).
		Delete(&models.Favorite{})
	if result.Error != nil {
		return fmt.Errorf("failed to remove favorite: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrPropertyNotFound
	}
	return nil
}

// IsFavorited reports whether the caller has saved the property.
func (s *FavoriteService) IsFavorited(userID, propertyID uuid.UUID) (bool, error) {
	var count int64
	err := s.db.Model(&models.Favorite{}).
		Where("user_id = ? AND property_id = ?", userID, propertyID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check favorite: %w", err)
	}
	return count > 0, nil
}

// ClearFavorites removes every saved property for the caller and reports
// how many were removed.
func (s *FavoriteService) ClearFavorites(userID uuid.UUID) (int64, error) {
	result := s.db.Where("user_id = ?", userID).Delete(&models.Favorite{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to clear favorites: %w", result.Error)
	}
	return result.RowsAffected, nil
}
