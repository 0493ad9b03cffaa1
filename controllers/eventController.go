package controllers

import (
	"net/http"

	"github.com/ChurchSite/models"
	"github.com/ChurchSite/store"
	"github.com/gin-gonic/gin"
)

var errInvalidRecurrence = validationError{"recurrenceType must be one of none, weekly, monthly, yearly"}

func (h *Handler) GetEvents(c *gin.Context) {
	c.JSON(http.StatusOK, h.Repos.Events.List(c, models.SortEvents))
}

func (h *Handler) GetEvent(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	event, err := h.Repos.Events.Get(c, id)
	if err != nil {
		storeError(c, err, "Event")
		return
	}
	c.JSON(http.StatusOK, event)
}

func (h *Handler) CreateEvent(c *gin.Context) {
	var req models.EventCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}
	if !requireFields(c, field{"title", req.Title}, field{"date", req.Date}) {
		return
	}
	if req.RecurrenceType == "" {
		req.RecurrenceType = models.RecurrenceNone
	}
	if !models.ValidRecurrence(req.RecurrenceType) {
		c.JSON(http.StatusBadRequest, gin.H{"message": errInvalidRecurrence.msg})
		return
	}

	now := h.now()
	created, err := h.Repos.Events.Create(c, models.Event{
		Title:          req.Title,
		Description:    req.Description,
		Date:           req.Date,
		Time:           req.Time,
		EndTime:        req.EndTime,
		Location:       req.Location,
		RecurrenceType: req.RecurrenceType,
		ImageURL:       req.ImageURL,
		CreatedAt:      now,
		UpdatedAt:      now,
	})
	if err != nil {
		storeError(c, err, "Event")
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *Handler) UpdateEvent(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	updated, err := h.Repos.Events.Update(c, id, func(e *models.Event) error {
		merged, err := store.Merge(*e, body)
		if err != nil {
			return err
		}
		if merged.RecurrenceType == "" {
			merged.RecurrenceType = models.RecurrenceNone
		}
		if !models.ValidRecurrence(merged.RecurrenceType) {
			return errInvalidRecurrence
		}
		merged.CreatedAt = e.CreatedAt
		merged.UpdatedAt = h.now()
		*e = merged
		return nil
	})
	if err != nil {
		storeError(c, err, "Event")
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *Handler) DeleteEvent(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	removed, err := h.Repos.Events.Delete(c, id)
	if err != nil {
		storeError(c, err, "Event")
		return
	}
	h.deleteMedia(c.Request.Context(), removed.ImageURL)
	c.JSON(http.StatusOK, gin.H{"message": "Event deleted successfully"})
}
