// internal/handlers/auth.go
package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/saarthi/saarthi-backend/internal/services"
	"github.com/saarthi/saarthi-backend/internal/utils"
)

const oauthStateCookie = "oauth_state"

type AuthHandler struct {
	auth        *services.AuthService
	frontendURL string
}

func NewAuthHandler(auth *services.AuthService, frontendURL string) *AuthHandler {
	return &AuthHandler{auth: auth, frontendURL: frontendURL}
}

// GoogleLogin is GET /api/auth/google: redirect to the Google consent page.
// The state token is pinned in a short-lived cookie and verified on the way
// back.
func (h *AuthHandler) GoogleLogin(c *gin.Context) {
	state, err := utils.GenerateStateToken()
	if err != nil {
		logrus.WithError(err).Error("Failed to generate OAuth state")
		utils.InternalErrorResponse(c, "Failed to start login")
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(oauthStateCookie, state, 300, "/", "", false, true)
	c.Redirect(http.StatusTemporaryRedirect, h.auth.AuthURL(state))
}

// GoogleCallback is GET /api/auth/google/callback. On success the browser is
// sent back to the frontend with the token pair in the fragment.
func (h *AuthHandler) GoogleCallback(c *gin.Context) {
	expectedState, err := c.Cookie(oauthStateCookie)
	if err != nil || expectedState == "" || c.Query("state") != expectedState {
		h.redirectWithError(c, "invalid_state")
		return
	}
	c.SetCookie(oauthStateCookie, "", -1, "/", "", false, true)

	code := c.Query("code")
	if code == "" {
		h.redirectWithError(c, "missing_code")
		return
	}

	_, pair, err := h.auth.HandleCallback(c.Request.Context(), code)
	if err != nil {
		logrus.WithError(err).Error("Google OAuth callback failed")
		h.redirectWithError(c, "login_failed")
		return
	}

	redirect := fmt.Sprintf("%s/auth/callback#access_token=%s&refresh_token=%s",
		h.frontendURL,
		url.QueryEscape(pair.AccessToken),
		url.QueryEscape(pair.RefreshToken),
	)
	c.Redirect(http.StatusTemporaryRedirect, redirect)
}

func (h *AuthHandler) redirectWithError(c *gin.Context, code string) {
	c.Redirect(http.StatusTemporaryRedirect, fmt.Sprintf("%s/auth/callback?error=%s", h.frontendURL, code))
}

// Me is GET /api/auth/me.
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	user, err := h.auth.GetUserByID(userID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			utils.NotFoundResponse(c, "User not found")
			return
		}
		logrus.WithError(err).Error("Failed to load current user")
		utils.InternalErrorResponse(c, "Failed to load profile")
		return
	}

	utils.SuccessResponse(c, user)
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// Refresh is POST /api/auth/refresh.
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Refresh token is required")
		return
	}

	pair, err := h.auth.RefreshTokens(req.RefreshToken)
	if err != nil {
		utils.UnauthorizedResponse(c, "Invalid or expired refresh token")
		return
	}

	utils.SuccessResponse(c, pair)
}

// Logout is POST /api/auth/logout. Tokens are stateless, so logout is a
// client-side discard; the endpoint exists so the frontend has one place to
// call.
func (h *AuthHandler) Logout(c *gin.Context) {
	utils.MessageResponse(c, "Logged out successfully")
}

// UpdateProfile is PUT /api/auth/profile.
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req services.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}

	user, err := h.auth.UpdateProfile(userID, &req)
	if err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok {
			utils.ValidationErrorResponse(c, utils.GetValidationErrors(verrs))
			return
		}
		if errors.Is(err, services.ErrUserNotFound) {
			utils.NotFoundResponse(c, "User not found")
			return
		}
		logrus.WithError(err).Error("Failed to update profile")
		utils.InternalErrorResponse(c, "Failed to update profile")
		return
	}

	utils.SuccessResponse(c, user)
}
