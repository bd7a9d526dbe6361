// internal/services/booking_service.go
package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/saarthi/saarthi-backend/internal/models"
	"github.com/saarthi/saarthi-backend/internal/utils"
)

var (
	ErrBookingNotFound   = errors.New("booking not found")
	ErrPastVisitDate     = errors.New("visit date must be in the future")
	ErrNotBookingActor   = errors.New("not allowed to modify this booking")
	ErrInvalidTransition = errors.New("invalid booking status change")
)

type BookingService struct {
	db           *gorm.DB
	notification *NotificationService
}

func NewBookingService(db *gorm.DB, notification *NotificationService) *BookingService {
	return &BookingService{db: db, notification: notification}
}

type CreateBookingRequest struct {
	PropertyID uuid.UUID `json:"propertyId" validate:"required"`
	VisitDate  string    `json:"visitDate" validate:"required"`
	VisitTime  string    `json:"visitTime" validate:"required,max=20"`
	Message    string    `json:"message"`
	Name       string    `json:"name" validate:"required,min=2,max=100"`
	Phone      string    `json:"phone" validate:"required,in_phone"`
	Email      string    `json:"email" validate:"required,email"`
}

// CreateBooking requests a site visit. The visit date must be in the future
// and the property must still be an active listing.
func (s *BookingService) CreateBooking(userID uuid.UUID, req *CreateBookingRequest) (*models.Booking, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	visitDate, err := time.Parse("2006-01-02", req.VisitDate)
	if err != nil {
		return nil, fmt.Errorf("invalid visit date %q: %w", req.VisitDate, err)
	}
	if visitDate.Before(time.Now().Truncate(24 * time.Hour)) {
		return nil, ErrPastVisitDate
	}

	var property models.Property
	if err := s.db.First(&property, "id = ? AND status = ?", req.PropertyID, models.PropertyStatusActive).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPropertyNotFound
		}
		return nil, fmt.Errorf("failed to get property: %w", err)
	}

	booking := &models.Booking{
		PropertyID: req.PropertyID,
		UserID:     userID,
		VisitDate:  visitDate,
		VisitTime:  req.VisitTime,
		Message:    req.Message,
		Status:     models.BookingStatusPending,
		Contact: models.BookingContact{
			Name:  req.Name,
			Phone: req.Phone,
			Email: req.Email,
		},
	}

	if err := s.db.Create(booking).Error; err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"booking_id":  booking.ID,
		"property_id": booking.PropertyID,
		"visit_date":  req.VisitDate,
	}).Info("Site visit booked")

	booking.Property = property
	return booking, nil
}

// ListUserBookings returns the caller's bookings, soonest visit first.
func (s *BookingService) ListUserBookings(userID uuid.UUID, params utils.PaginationParams) ([]models.Booking, int64, error) {
	query := s.db.Model(&models.Booking{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count bookings: %w", err)
	}

	var bookings []models.Booking
	err := query.Order("visit_date ASC").
		Offset((params.Page - 1) * params.Limit).
		Limit(params.Limit).
		Preload("Property").
		Find(&bookings).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list bookings: %w", err)
	}

	return bookings, total, nil
}

// ListPropertyBookings returns visit requests for a listing. Only its owner
// or an admin may see them.
func (s *BookingService) ListPropertyBookings(propertyID, callerID uuid.UUID, isAdmin bool) ([]models.Booking, error) {
	var property models.Property
	if err := s.db.First(&property, "id = ?", propertyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPropertyNotFound
		}
		return nil, fmt.Errorf("failed to get property: %w", err)
	}

	if property.OwnerID != callerID && !isAdmin {
		return nil, ErrNotPropertyOwner
	}

	var bookings []models.Booking
	err := s.db.Where("property_id = ?", propertyID).
		Order("visit_date ASC").
		Preload("User").
		Find(&bookings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list property bookings: %w", err)
	}

	return bookings, nil
}

// UpdateBookingStatus moves a booking through its lifecycle. The visitor may
// only cancel their own booking; the property owner or an admin may confirm,
// complete or cancel.
func (s *BookingService) UpdateBookingStatus(id, callerID uuid.UUID, isAdmin bool, status models.BookingStatus) (*models.Booking, error) {
	switch status {
	case models.BookingStatusConfirmed, models.BookingStatusCompleted, models.BookingStatusCancelled:
	default:
		return nil, ErrInvalidTransition
	}

	var booking models.Booking
	if err := s.db.Preload("Property").Preload("User").First(&booking, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}

	isVisitor := booking.UserID == callerID
	isOwner := booking.Property.OwnerID == callerID

	switch {
	case isAdmin || isOwner:
	case isVisitor && status == models.BookingStatusCancelled:
	default:
		return nil, ErrNotBookingActor
	}

	if err := s.db.Model(&booking).Update("status", status).Error; err != nil {
		return nil, fmt.Errorf("failed to update booking status: %w", err)
	}
	booking.Status = status

	if s.notification != nil {
		s.notification.SendBookingStatusUpdate(&booking)
	}

	return &booking, nil
}
