package controllers

import (
	"net/http"

	"github.com/ChurchSite/models"
	"github.com/ChurchSite/store"
	"github.com/gin-gonic/gin"
)

func (h *Handler) CreatePrayerRequest(c *gin.Context) {
	var req models.PrayerRequestCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}
	if !requireFields(c,
		field{"name", req.Name},
		field{"email", req.Email},
		field{"message", req.Message},
	) {
		return
	}

	created, err := h.Repos.PrayerRequests.Create(c, models.PrayerRequest{
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Subject:   req.Subject,
		Message:   req.Message,
		IsUrgent:  req.IsUrgent,
		IsPrivate: req.IsPrivate,
		CreatedAt: h.now(),
	})
	if err != nil {
		storeError(c, err, "Prayer request")
		return
	}

	if h.Notifier != nil {
		h.Notifier.PrayerRequestReceived(c.Request.Context(), created)
	}

	c.JSON(http.StatusCreated, created)
}

func (h *Handler) GetPrayerRequests(c *gin.Context) {
	c.JSON(http.StatusOK, h.Repos.PrayerRequests.List(c, models.SortPrayerRequests))
}

func (h *Handler) GetUnreadPrayerRequestCount(c *gin.Context) {
	unread := h.Repos.PrayerRequests.Filter(c, func(p models.PrayerRequest) bool { return !p.Read })
	c.JSON(http.StatusOK, gin.H{"count": len(unread)})
}

func (h *Handler) GetPrayerRequest(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	prayer, err := h.Repos.PrayerRequests.Get(c, id)
	if err != nil {
		storeError(c, err, "Prayer request")
		return
	}
	c.JSON(http.StatusOK, prayer)
}

func (h *Handler) UpdatePrayerRequest(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	updated, err := h.Repos.PrayerRequests.Update(c, id, func(p *models.PrayerRequest) error {
		read, hasRead, err := readFlag(body)
		if err != nil {
			return err
		}
		merged, err := store.Merge(*p, body)
		if err != nil {
			return err
		}
		merged.Read, merged.ReadAt = p.Read, p.ReadAt
		if hasRead {
			merged.MarkRead(read, h.now())
		}
		*p = merged
		return nil
	})
	if err != nil {
		storeError(c, err, "Prayer request")
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *Handler) DeletePrayerRequest(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if _, err := h.Repos.PrayerRequests.Delete(c, id); err != nil {
		storeError(c, err, "Prayer request")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Prayer request deleted successfully"})
}
