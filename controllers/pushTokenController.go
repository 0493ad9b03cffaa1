package controllers

import (
	"net/http"

	"github.com/ChurchSite/middlewares"
	"github.com/ChurchSite/models"
	"github.com/ChurchSite/store"
	"github.com/gin-gonic/gin"
)

// RegisterPushToken stores a device token for the signed-in administrator.
// Registering a known token again moves it to the caller.
func (h *Handler) RegisterPushToken(c *gin.Context) {
	user, ok := middlewares.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	var req models.PushTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}
	if !requireFields(c, field{"token", req.Token}) {
		return
	}

	var saved models.PushToken
	status := http.StatusOK
	err := h.Repos.PushTokens.Mutate(c, func(doc *store.Document[models.PushToken]) error {
		for i := range doc.Items {
			if doc.Items[i].Token == req.Token {
				doc.Items[i].UserID = user.ID
				doc.Items[i].Platform = req.Platform
				saved = doc.Items[i]
				return nil
			}
		}
		saved = models.PushToken{
			ID:        doc.NextID,
			UserID:    user.ID,
			Token:     req.Token,
			Platform:  req.Platform,
			CreatedAt: h.now(),
		}
		doc.NextID++
		doc.Items = append(doc.Items, saved)
		status = http.StatusCreated
		return nil
	})
	if err != nil {
		storeError(c, err, "Push token")
		return
	}
	c.JSON(status, saved)
}

func (h *Handler) DeletePushToken(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if _, err := h.Repos.PushTokens.Delete(c, id); err != nil {
		storeError(c, err, "Push token")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Push token removed"})
}
