package controllers

import (
	"net/http"

	"github.com/ChurchSite/models"
	"github.com/ChurchSite/store"
	"github.com/gin-gonic/gin"
)

func (h *Handler) GetGallery(c *gin.Context) {
	c.JSON(http.StatusOK, h.Repos.Gallery.List(c, models.SortGallery))
}

func (h *Handler) GetGalleryByCategory(c *gin.Context) {
	category := c.Param("category")
	images := h.Repos.Gallery.Filter(c, func(g models.GalleryImage) bool {
		return g.Category == category
	})
	models.SortGallery(images)
	c.JSON(http.StatusOK, images)
}

func (h *Handler) GetGalleryImage(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	image, err := h.Repos.Gallery.Get(c, id)
	if err != nil {
		storeError(c, err, "Image")
		return
	}
	c.JSON(http.StatusOK, image)
}

func (h *Handler) CreateGalleryImage(c *gin.Context) {
	var req models.GalleryImageCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}
	if !requireFields(c, field{"title", req.Title}, field{"imageUrl", req.ImageURL}) {
		return
	}

	now := h.now()
	if req.Category == "" {
		req.Category = models.DefaultGalleryCategory
	}
	if req.Date == "" {
		req.Date = today(now)
	}

	created, err := h.Repos.Gallery.Create(c, models.GalleryImage{
		Title:       req.Title,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Category:    req.Category,
		Date:        req.Date,
		CreatedAt:   now,
	})
	if err != nil {
		storeError(c, err, "Image")
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *Handler) UpdateGalleryImage(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	updated, err := h.Repos.Gallery.Update(c, id, func(g *models.GalleryImage) error {
		merged, err := store.Merge(*g, body)
		if err != nil {
			return err
		}
		merged.CreatedAt = g.CreatedAt
		*g = merged
		return nil
	})
	if err != nil {
		storeError(c, err, "Image")
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *Handler) DeleteGalleryImage(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	removed, err := h.Repos.Gallery.Delete(c, id)
	if err != nil {
		storeError(c, err, "Image")
		return
	}
	h.deleteMedia(c.Request.Context(), removed.ImageURL)
	c.JSON(http.StatusOK, gin.H{"message": "Image deleted successfully"})
}
