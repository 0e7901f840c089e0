// internal/api/auth_handlers.go
// Account authentication handlers: register/login/refresh/logout/change
// password. spec.md names no reset_password/verify_email commands, so
// those teacher flows were dropped rather than rebuilt against a fake
// mailer (see DESIGN.md).

package api

import (
	"net/http"

	"tournament-planner/internal/models"
	"tournament-planner/internal/services"

	"github.com/gin-gonic/gin"
)

// HandleRegister handles user registration.
func HandleRegister(authService *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.RegisterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			FailWith(c, http.StatusBadRequest, "ERR_INVALID_INPUT", err.Error())
			return
		}

		user, tokens, err := authService.Register(c.Request.Context(), req)
		if err != nil {
			Fail(c, err)
			return
		}

		Ok(c, http.StatusCreated, gin.H{"user": user, "auth": tokens})
	}
}

// HandleLogin handles user login.
func HandleLogin(authService *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			FailWith(c, http.StatusBadRequest, "ERR_INVALID_INPUT", err.Error())
			return
		}

		user, tokens, err := authService.Login(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			Fail(c, err)
			return
		}

		Ok(c, http.StatusOK, gin.H{"user": user, "auth": tokens})
	}
}

// HandleLogout handles user logout.
func HandleLogout(authService *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			RefreshToken string `json:"refresh_token"`
		}
		c.ShouldBindJSON(&req)

		authService.Logout(c.Request.Context(), req.RefreshToken)
		Ok(c, http.StatusOK, gin.H{"message": "logged out"})
	}
}

// HandleRefreshToken handles token refresh.
func HandleRefreshToken(authService *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			RefreshToken string `json:"refresh_token" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			FailWith(c, http.StatusBadRequest, "ERR_INVALID_INPUT", err.Error())
			return
		}

		tokens, err := authService.RefreshToken(c.Request.Context(), req.RefreshToken)
		if err != nil {
			Fail(c, err)
			return
		}

		Ok(c, http.StatusOK, gin.H{"auth": tokens})
	}
}

// HandleChangePassword handles password change for the authenticated user.
func HandleChangePassword(authService *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := AuthUserID(c)
		if !ok {
			FailWith(c, http.StatusUnauthorized, "ERR_UNAUTHORIZED", "authentication required")
			return
		}

		var req struct {
			CurrentPassword string `json:"current_password" binding:"required"`
			NewPassword     string `json:"new_password" binding:"required,min=8"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			FailWith(c, http.StatusBadRequest, "ERR_INVALID_INPUT", err.Error())
			return
		}

		if err := authService.ChangePassword(c.Request.Context(), userID, req.CurrentPassword, req.NewPassword); err != nil {
			Fail(c, err)
			return
		}

		Ok(c, http.StatusOK, gin.H{"message": "password changed"})
	}
}
