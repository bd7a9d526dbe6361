// internal/services/contact_service.go
package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/saarthi/saarthi-backend/internal/database"
	"github.com/saarthi/saarthi-backend/internal/models"
	"github.com/saarthi/saarthi-backend/internal/utils"
)

var ErrContactNotFound = errors.New("contact inquiry not found")

type ContactService struct {
	db           *gorm.DB
	notification *NotificationService
}

func NewContactService(db *gorm.DB, notification *NotificationService) *ContactService {
	return &ContactService{db: db, notification: notification}
}

type SubmitContactRequest struct {
	Name         string              `json:"name" validate:"required,min=2,max=100"`
	Email        string              `json:"email" validate:"required,email"`
	Phone        string              `json:"phone" validate:"required,in_phone"`
	Subject      string              `json:"subject" validate:"required,max=255"`
	Message      string              `json:"message" validate:"required,min=10"`
	PropertyID   *uuid.UUID          `json:"propertyId"`
	InterestedIn models.InterestedIn `json:"interestedIn" validate:"omitempty,oneof=site-visit more-info price-negotiation loan-assistance general"`
}

// SubmitContact records an inquiry. When the inquiry targets a property the
// property's inquiry counter is incremented in the same transaction, so a
// stored inquiry and its count never diverge.
func (s *ContactService) SubmitContact(req *SubmitContactRequest, userID *uuid.UUID, ipAddress, userAgent string) (*models.Contact, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	var property *models.Property
	if req.PropertyID != nil {
		property = &models.Property{}
		if err := s.db.Preload("Owner").First(property, "id = ?", *req.PropertyID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrPropertyNotFound
			}
			return nil, fmt.Errorf("failed to get property: %w", err)
		}
	}

	interestedIn := req.InterestedIn
	if interestedIn == "" {
		interestedIn = models.InterestedInGeneral
	}

	contact := &models.Contact{
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		Subject:      req.Subject,
		Message:      req.Message,
		PropertyID:   req.PropertyID,
		UserID:       userID,
		InterestedIn: interestedIn,
		Status:       models.ContactStatusNew,
		Priority:     models.ContactPriorityMedium,
		Source:       "website",
		IPAddress:    ipAddress,
		UserAgent:    userAgent,
	}

	err := database.WithTransaction(s.db, func(tx *gorm.DB) error {
		if err := tx.Create(contact).Error; err != nil {
			return fmt.Errorf("failed to create contact: %w", err)
		}
		if req.PropertyID != nil {
			if err := IncrementInquiries(tx, *req.PropertyID); err != nil {
				return fmt.Errorf("failed to increment inquiries: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"contact_id": contact.ID,
		"email":      contact.Email,
		"subject":    contact.Subject,
	}).Info("Contact inquiry submitted")

	if s.notification != nil {
		s.notification.SendContactAcknowledgement(contact)
		if property != nil {
			s.notification.SendOwnerInquiryAlert(&property.Owner, property, contact)
		}
	}

	return contact, nil
}

// ContactListParams filters the admin inquiry list.
type ContactListParams struct {
	utils.PaginationParams
	Status   string
	Priority string
	Subject  string
}

// ListContacts is the admin view of inquiries.
func (s *ContactService) ListContacts(params ContactListParams) ([]models.Contact, int64, error) {
	query := s.db.Model(&models.Contact{})

	if params.Status != "" {
		query = query.Where("status = ?", params.Status)
	}
	if params.Priority != "" {
		query = query.Where("priority = ?", params.Priority)
	}
	if params.Subject != "" {
		query = query.Where("subject ILIKE ?", "%"+params.Subject+"%")
	}
	if params.Search != "" {
		term := "%" + params.Search + "%"
		query = query.Where("name ILIKE ? OR email ILIKE ?", term, term)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count contacts: %w", err)
	}

	var contacts []models.Contact
	err := query.Order("created_at DESC").
		Offset((params.Page - 1) * params.Limit).
		Limit(params.Limit).
		Preload("Property").
		Find(&contacts).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list contacts: %w", err)
	}

	return contacts, total, nil
}

type UpdateContactRequest struct {
	Status          *models.ContactStatus   `json:"status" validate:"omitempty,oneof=new in-progress resolved closed"`
	Priority        *models.ContactPriority `json:"priority" validate:"omitempty,oneof=low medium high urgent"`
	ResponseMessage *string                 `json:"responseMessage"`
}

// UpdateContact lets an admin move an inquiry through its lifecycle and
// attach a response.
func (s *ContactService) UpdateContact(id, adminID uuid.UUID, req *UpdateContactRequest) (*models.Contact, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	var contact models.Contact
	if err := s.db.First(&contact, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrContactNotFound
		}
		return nil, fmt.Errorf("failed to get contact: %w", err)
	}

	updates := map[string]interface{}{}
	if req.Status != nil {
		updates["status"] = *req.Status
	}
	if req.Priority != nil {
		updates["priority"] = *req.Priority
	}
	if req.ResponseMessage != nil {
		now := time.Now()
		updates["response_message"] = *req.ResponseMessage
		updates["response_by_id"] = adminID
		updates["response_at"] = &now
	}

	if len(updates) > 0 {
		if err := s.db.Model(&contact).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update contact: %w", err)
		}
	}

	return &contact, nil
}
