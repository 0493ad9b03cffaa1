package controllers

import (
	"net/http"

	"github.com/ChurchSite/models"
	"github.com/ChurchSite/store"
	"github.com/gin-gonic/gin"
)

func (h *Handler) GetSermons(c *gin.Context) {
	c.JSON(http.StatusOK, h.Repos.Sermons.List(c, models.SortSermons))
}

func (h *Handler) GetSermonsByType(c *gin.Context) {
	messageType := c.Param("messageType")
	sermons := h.Repos.Sermons.Filter(c, func(s models.Sermon) bool {
		return s.MessageType == messageType
	})
	models.SortSermons(sermons)
	c.JSON(http.StatusOK, sermons)
}

func (h *Handler) GetSermon(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	sermon, err := h.Repos.Sermons.Get(c, id)
	if err != nil {
		storeError(c, err, "Sermon")
		return
	}
	c.JSON(http.StatusOK, sermon)
}

func (h *Handler) CreateSermon(c *gin.Context) {
	var req models.SermonCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}
	if !requireFields(c,
		field{"title", req.Title},
		field{"speaker", req.Speaker},
		field{"date", req.Date},
	) {
		return
	}
	if req.MessageType == "" {
		req.MessageType = models.DefaultMessageType
	}

	now := h.now()
	created, err := h.Repos.Sermons.Create(c, models.Sermon{
		Title:        req.Title,
		Speaker:      req.Speaker,
		Date:         req.Date,
		VideoURL:     req.VideoURL,
		MessageType:  req.MessageType,
		Scripture:    req.Scripture,
		Description:  req.Description,
		ThumbnailURL: req.ThumbnailURL,
		DocumentURL:  req.DocumentURL,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		storeError(c, err, "Sermon")
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *Handler) UpdateSermon(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	updated, err := h.Repos.Sermons.Update(c, id, func(s *models.Sermon) error {
		merged, err := store.Merge(*s, body)
		if err != nil {
			return err
		}
		merged.CreatedAt = s.CreatedAt
		merged.UpdatedAt = h.now()
		*s = merged
		return nil
	})
	if err != nil {
		storeError(c, err, "Sermon")
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *Handler) DeleteSermon(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	removed, err := h.Repos.Sermons.Delete(c, id)
	if err != nil {
		storeError(c, err, "Sermon")
		return
	}
	h.deleteMedia(c.Request.Context(), removed.MediaURLs()...)
	c.JSON(http.StatusOK, gin.H{"message": "Sermon deleted successfully"})
}
