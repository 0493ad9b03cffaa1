package controllers

import (
	"net/http"

	"github.com/ChurchSite/services"
	"github.com/gin-gonic/gin"
)

func (h *Handler) Health(c *gin.Context) {
	storage := services.StorageLocal
	if h.Uploads != nil && h.Uploads.IsReady() {
		storage = services.StorageCloud
	}
	c.JSON(http.StatusOK, gin.H{
		"status":  "OK",
		"time":    h.now(),
		"storage": storage,
	})
}
