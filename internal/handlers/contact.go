// internal/handlers/contact.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/saarthi/saarthi-backend/internal/services"
	"github.com/saarthi/saarthi-backend/internal/utils"
)

type ContactHandler struct {
	contacts *services.ContactService
}

func NewContactHandler(contacts *services.ContactService) *ContactHandler {
	return &ContactHandler{contacts: contacts}
}

// Submit is POST /api/contact. Works for anonymous visitors; a logged-in
// caller's identity is attached when present.
func (h *ContactHandler) Submit(c *gin.Context) {
	var req services.SubmitContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}

	var userID *uuid.UUID
	if idStr, ok := utils.GetUserIDFromContext(c); ok {
		if parsed, err := uuid.Parse(idStr); err == nil {
			userID = &parsed
		}
	}

	contact, err := h.contacts.SubmitContact(&req, userID, c.ClientIP(), c.Request.UserAgent())
	if err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok {
			utils.ValidationErrorResponse(c, utils.GetValidationErrors(verrs))
			return
		}
		if errors.Is(err, services.ErrPropertyNotFound) {
			utils.NotFoundResponse(c, "Property not found")
			return
		}
		logrus.WithError(err).Error("Failed to submit contact inquiry")
		utils.InternalErrorResponse(c, "Failed to submit your inquiry")
		return
	}

	utils.CreatedResponse(c, "Thank you for reaching out. We will get back to you within 24 hours.", contact)
}

// AdminList is GET /api/admin/contacts.
func (h *ContactHandler) AdminList(c *gin.Context) {
	params := services.ContactListParams{
		PaginationParams: utils.GetPaginationParams(c),
		Status:           c.Query("status"),
		Priority:         c.Query("priority"),
		Subject:          c.Query("subject"),
	}

	contacts, total, err := h.contacts.ListContacts(params)
	if err != nil {
		logrus.WithError(err).Error("Failed to list contacts")
		utils.InternalErrorResponse(c, "Failed to fetch inquiries")
		return
	}

	utils.ListResponse(c, contacts, len(contacts), total, params.PaginationParams)
}

// AdminUpdate is PUT /api/admin/contacts/:id.
func (h *ContactHandler) AdminUpdate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid contact ID")
		return
	}

	adminID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req services.UpdateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}

	contact, err := h.contacts.UpdateContact(id, adminID, &req)
	if err != nil {
		if errors.Is(err, services.ErrContactNotFound) {
			utils.NotFoundResponse(c, "Inquiry not found")
			return
		}
		if verrs, ok := err.(validator.ValidationErrors); ok {
			utils.ValidationErrorResponse(c, utils.GetValidationErrors(verrs))
			return
		}
		logrus.WithError(err).Error("Failed to update contact inquiry")
		utils.InternalErrorResponse(c, "Failed to update inquiry")
		return
	}

	utils.SuccessResponse(c, contact)
}
