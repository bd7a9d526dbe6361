// internal/services/admin_service.go
package services

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/saarthi/saarthi-backend/internal/models"
	"github.com/saarthi/saarthi-backend/internal/utils"
)

type AdminService struct {
	db           *gorm.DB
	interactions *InteractionService
}

func NewAdminService(db *gorm.DB, interactions *InteractionService) *AdminService {
	return &AdminService{db: db, interactions: interactions}
}

// DashboardStats is the admin overview: entity counts plus the interaction
// breakdown.
type DashboardStats struct {
	TotalUsers         int64         `json:"totalUsers"`
	TotalProperties    int64         `json:"totalProperties"`
	ActiveProperties   int64         `json:"activeProperties"`
	FeaturedProperties int64         `json:"featuredProperties"`
	TotalContacts      int64         `json:"totalContacts"`
	NewContacts        int64         `json:"newContacts"`
	PendingBookings    int64         `json:"pendingBookings"`
	TotalFavorites     int64         `json:"totalFavorites"`
	ActionCounts       []ActionCount `json:"actionCounts"`
}

func (s *AdminService) GetDashboardStats() (*DashboardStats, error) {
	stats := &DashboardStats{}

	counts := []struct {
		dest  *int64
		query *gorm.DB
	}{
		{&stats.TotalUsers, s.db.Model(&models.User{})},
		{&stats.TotalProperties, s.db.Model(&models.Property{})},
		{&stats.ActiveProperties, s.db.Model(&models.Property{}).Where("status = ?", models.PropertyStatusActive)},
		{&stats.FeaturedProperties, s.db.Model(&models.Property{}).Where("is_featured = ?", true)},
		{&stats.TotalContacts, s.db.Model(&models.Contact{})},
		{&stats.NewContacts, s.db.Model(&models.Contact{}).Where("status = ?", models.ContactStatusNew)},
		{&stats.PendingBookings, s.db.Model(&models.Booking{}).Where("status = ?", models.BookingStatusPending)},
		{&stats.TotalFavorites, s.db.Model(&models.Favorite{})},
	}

	for _, c := range counts {
		if err := c.query.Count(c.dest).Error; err != nil {
			return nil, fmt.Errorf("failed to load dashboard stats: %w", err)
		}
	}

	actionCounts, err := s.interactions.CountByAction()
	if err != nil {
		return nil, err
	}
	stats.ActionCounts = actionCounts

	return stats, nil
}

// ListUsers is the paginated admin user directory. Search matches name or
// email.
func (s *AdminService) ListUsers(params utils.PaginationParams) ([]models.User, int64, error) {
	query := s.db.Model(&models.User{})

	if params.Search != "" {
		term := "%" + params.Search + "%"
		query = query.Where("name ILIKE ? OR email ILIKE ?", term, term)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	var users []models.User
	err := query.Order("created_at DESC").
		Offset((params.Page - 1) * params.Limit).
		Limit(params.Limit).
		Find(&users).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}

	return users, total, nil
}
