// internal/handlers/booking.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/saarthi/saarthi-backend/internal/models"
	"github.com/saarthi/saarthi-backend/internal/services"
	"github.com/saarthi/saarthi-backend/internal/utils"
)

type BookingHandler struct {
	bookings *services.BookingService
}

func NewBookingHandler(bookings *services.BookingService) *BookingHandler {
	return &BookingHandler{bookings: bookings}
}

// Create is POST /api/bookings.
func (h *BookingHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req services.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}

	booking, err := h.bookings.CreateBooking(userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrPropertyNotFound):
			utils.NotFoundResponse(c, "Property not found or no longer listed")
		case errors.Is(err, services.ErrPastVisitDate):
			utils.BadRequestResponse(c, "Visit date must be in the future")
		default:
			if verrs, ok := err.(validator.ValidationErrors); ok {
				utils.ValidationErrorResponse(c, utils.GetValidationErrors(verrs))
				return
			}
			logrus.WithError(err).Error("Failed to create booking")
			utils.InternalErrorResponse(c, "Failed to book your visit")
		}
		return
	}

	utils.CreatedResponse(c, "Site visit requested successfully", booking)
}

// List is GET /api/bookings: the caller's own bookings.
func (h *BookingHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	params := utils.GetPaginationParams(c)
	bookings, total, err := h.bookings.ListUserBookings(userID, params)
	if err != nil {
		logrus.WithError(err).Error("Failed to list bookings")
		utils.InternalErrorResponse(c, "Failed to fetch your bookings")
		return
	}

	utils.ListResponse(c, bookings, len(bookings), total, params)
}

// ListForProperty is GET /api/bookings/property/:propertyId.
func (h *BookingHandler) ListForProperty(c *gin.Context) {
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

	bookings, err := h.bookings.ListPropertyBookings(propertyID, userID, isAdmin(c))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrPropertyNotFound):
			utils.NotFoundResponse(c, "Property not found")
		case errors.Is(err, services.ErrNotPropertyOwner):
			utils.ForbiddenResponse(c, "")
		default:
			logrus.WithError(err).Error("Failed to list property bookings")
			utils.InternalErrorResponse(c, "Failed to fetch bookings")
		}
		return
	}

	utils.SuccessResponse(c, bookings)
}

type updateBookingStatusRequest struct {
	Status models.BookingStatus `json:"status" binding:"required"`
}

// UpdateStatus is PUT /api/bookings/:id/status.
func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid booking ID")
		return
	}

	var req updateBookingStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}

	booking, err := h.bookings.UpdateBookingStatus(id, userID, isAdmin(c), req.Status)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrBookingNotFound):
			utils.NotFoundResponse(c, "Booking not found")
		case errors.Is(err, services.ErrInvalidTransition):
			utils.BadRequestResponse(c, "Invalid booking status")
		case errors.Is(err, services.ErrNotBookingActor):
			utils.ForbiddenResponse(c, "")
		default:
			logrus.WithError(err).Error("Failed to update booking status")
			utils.InternalErrorResponse(c, "Failed to update booking")
		}
		return
	}

	utils.SuccessResponse(c, booking)
}
