// internal/services/interaction_service.go
package services

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/saarthi/saarthi-backend/internal/models"
	"github.com/saarthi/saarthi-backend/internal/utils"
)

type InteractionService struct {
	db *gorm.DB
}

func NewInteractionService(db *gorm.DB) *InteractionService {
	return &InteractionService{db: db}
}

// Track records a user action asynchronously. Tracking must never slow or
// fail the request that produced it.
func (s *InteractionService) Track(userID uuid.UUID, sessionID string, action models.InteractionAction, details models.JSONB) {
	interaction := &models.Interaction{
		UserID:    userID,
		SessionID: sessionID,
		Action:    action,
		Details:   details,
	}

	go func() {
		if err := s.db.Create(interaction).Error; err != nil {
			logrus.WithError(err).WithField("action", action).Error("Failed to track interaction")
		}
	}()
}

// ActionCount is one row of the per-action activity summary.
type ActionCount struct {
	Action models.InteractionAction `json:"action"`
	Count  int64                    `json:"count"`
}

// CountByAction aggregates interactions per action for the admin dashboard.
func (s *InteractionService) CountByAction() ([]ActionCount, error) {
	var counts []ActionCount
	err := s.db.Model(&models.Interaction{}).
		Select("action, COUNT(*) as count").
		Group("action").
		Order("count DESC").
		Scan(&counts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count interactions: %w", err)
	}
	return counts, nil
}

// ListUserInteractions returns a user's recent activity, newest first.
func (s *InteractionService) ListUserInteractions(userID uuid.UUID, params utils.PaginationParams) ([]models.Interaction, int64, error) {
	query := s.db.Model(&models.Interaction{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count interactions: %w", err)
	}

	var interactions []models.Interaction
	err := query.Order("created_at DESC").
		Offset((params.Page - 1) * params.Limit).
		Limit(params.Limit).
		Find(&interactions).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list interactions: %w", err)
	}

	return interactions, total, nil
}
