// internal/middleware/logging.go
package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/saarthi/saarthi-backend/internal/models"
	"github.com/saarthi/saarthi-backend/internal/utils"
)

func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		duration := time.Since(start)

		userID, _ := c.Get("user_id")
		logrus.WithFields(logrus.Fields{
			"method":   c.Request.Method,
			"path":     c.Request.URL.Path,
			"status":   c.Writer.Status(),
			"duration": duration.Milliseconds(),
			"ip":       c.ClientIP(),
			"user_id":  userID,
		}).Info("Request processed")
	}
}

// TrackingMiddleware records mutating requests from authenticated users as
// interactions. Writes happen off the request path; tracking failures are
// logged and never surfaced to the caller.
func TrackingMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Request.Method == "GET" || c.Writer.Status() >= 400 {
			return
		}

		userIDStr, ok := utils.GetUserIDFromContext(c)
		if !ok {
			return
		}

		userID, err := uuid.Parse(userIDStr)
		if err != nil {
			return
		}

		action, tracked := actionForRequest(c.Request.Method, c.Request.URL.Path)
		if !tracked {
			return
		}

		interaction := &models.Interaction{
			UserID:    userID,
			SessionID: utils.SessionFingerprint(c.Request.UserAgent(), c.ClientIP()),
			Action:    action,
			Details: models.JSONB{
				"path":       c.Request.URL.Path,
				"method":     c.Request.Method,
				"ip":         c.ClientIP(),
				"user_agent": c.Request.UserAgent(),
			},
		}

		go func() {
			if err := db.Create(interaction).Error; err != nil {
				logrus.WithError(err).Error("Failed to record interaction")
			}
		}()
	}
}

func actionForRequest(method, path string) (models.InteractionAction, bool) {
	switch {
	case method == "POST" && strings.HasPrefix(path, "/api/contact"):
		return models.ActionContactForm, true
	case method == "POST" && strings.HasPrefix(path, "/api/bookings"):
		return models.ActionBookingRequest, true
	case method == "POST" && strings.HasPrefix(path, "/api/favorites"):
		return models.ActionPropertyFavorite, true
	case method == "POST" && strings.HasPrefix(path, "/api/properties"):
		return models.ActionPropertyAdd, true
	case method == "PUT" && strings.HasPrefix(path, "/api/auth/profile"):
		return models.ActionProfileUpdate, true
	default:
		return "", false
	}
}
