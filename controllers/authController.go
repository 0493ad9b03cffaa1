package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/ChurchSite/middlewares"
	"github.com/ChurchSite/models"
	"github.com/ChurchSite/services"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

func (h *Handler) Login(c *gin.Context) {
	var login models.Login
	if err := c.ShouldBindJSON(&login); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	identifier := strings.TrimSpace(login.Identifier())
	if identifier == "" || login.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Username or email and password are required"})
		return
	}

	matches := h.Repos.Users.Filter(c, func(u models.User) bool {
		return u.Username == identifier || strings.EqualFold(u.Email, identifier)
	})
	if len(matches) == 0 {
		services.CompareDummyPassword(login.Password)
		log.Warn().Str("client_ip", c.ClientIP()).Msg("login failed")
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials"})
		return
	}

	user := matches[0]
	if !services.CheckPassword(user.Password, login.Password) {
		log.Warn().Str("client_ip", c.ClientIP()).Msg("login failed")
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials"})
		return
	}

	token, expiresAt, err := h.Tokens.CreateToken(user.Identity())
	if err != nil {
		log.Error().Err(err).Msg("failed to create token")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create token"})
		return
	}

	log.Info().Int("user_id", user.ID).Msg("user logged in")
	c.JSON(http.StatusOK, gin.H{
		"token":     token,
		"expiresAt": expiresAt,
		"user":      user.Identity(),
	})
}

func (h *Handler) Verify(c *gin.Context) {
	user, ok := middlewares.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

var errWrongPassword = errors.New("current password is incorrect")

func (h *Handler) ChangePassword(c *gin.Context) {
	current, ok := middlewares.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	var req models.ChangePassword
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}
	if !requireFields(c, field{"currentPassword", req.CurrentPassword}, field{"newPassword", req.NewPassword}) {
		return
	}
	if len(req.NewPassword) < services.MinPasswordLength {
		c.JSON(http.StatusBadRequest, gin.H{"message": fmt.Sprintf("New password must be at least %d characters", services.MinPasswordLength)})
		return
	}
	if len(req.NewPassword) > services.MaxPasswordBytes {
		c.JSON(http.StatusBadRequest, gin.H{"message": fmt.Sprintf("New password must be at most %d bytes", services.MaxPasswordBytes)})
		return
	}

	var hashErr error
	_, err := h.Repos.Users.Update(c, current.ID, func(u *models.User) error {
		if !services.CheckPassword(u.Password, req.CurrentPassword) {
			return errWrongPassword
		}
		hash, err := services.HashPassword(req.NewPassword)
		if err != nil {
			hashErr = err
			return err
		}
		u.Password = hash
		u.UpdatedAt = h.now()
		return nil
	})
	if hashErr != nil {
		log.Error().Err(hashErr).Msg("failed to hash password")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to change password"})
		return
	}
	if errors.Is(err, errWrongPassword) {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Current password is incorrect"})
		return
	}
	if err != nil {
		storeError(c, err, "User")
		return
	}

	log.Info().Int("user_id", current.ID).Msg("password changed")
	c.JSON(http.StatusOK, gin.H{"message": "Password changed successfully"})
}
