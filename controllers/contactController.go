package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/ChurchSite/models"
	"github.com/ChurchSite/store"
	"github.com/gin-gonic/gin"
)

func (h *Handler) CreateMessage(c *gin.Context) {
	var req models.MessageCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}
	if !requireFields(c,
		field{"name", req.Name},
		field{"email", req.Email},
		field{"subject", req.Subject},
		field{"message", req.Message},
	) {
		return
	}

	created, err := h.Repos.Messages.Create(c, models.Message{
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Subject:   req.Subject,
		Message:   req.Message,
		CreatedAt: h.now(),
	})
	if err != nil {
		storeError(c, err, "Message")
		return
	}

	if h.Notifier != nil {
		h.Notifier.MessageReceived(c.Request.Context(), created)
	}

	c.JSON(http.StatusCreated, created)
}

func (h *Handler) GetMessages(c *gin.Context) {
	c.JSON(http.StatusOK, h.Repos.Messages.List(c, models.SortMessages))
}

func (h *Handler) GetUnreadMessageCount(c *gin.Context) {
	unread := h.Repos.Messages.Filter(c, func(m models.Message) bool { return !m.Read })
	c.JSON(http.StatusOK, gin.H{"count": len(unread)})
}

func (h *Handler) GetMessage(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	message, err := h.Repos.Messages.Get(c, id)
	if err != nil {
		storeError(c, err, "Message")
		return
	}
	c.JSON(http.StatusOK, message)
}

// UpdateMessage merges the body onto the message. read is applied through
// MarkRead so readAt follows the flag.
func (h *Handler) UpdateMessage(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	updated, err := h.Repos.Messages.Update(c, id, func(m *models.Message) error {
		read, hasRead, err := readFlag(body)
		if err != nil {
			return err
		}
		merged, err := store.Merge(*m, body)
		if err != nil {
			return err
		}
		merged.Read, merged.ReadAt = m.Read, m.ReadAt
		if hasRead {
			merged.MarkRead(read, h.now())
		}
		*m = merged
		return nil
	})
	if err != nil {
		storeError(c, err, "Message")
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *Handler) DeleteMessage(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if _, err := h.Repos.Messages.Delete(c, id); err != nil {
		storeError(c, err, "Message")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Message deleted successfully"})
}

// readFlag extracts the optional boolean read field from a patch body.
func readFlag(body []byte) (read bool, present bool, err error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return false, false, store.ErrInvalidPatch
	}
	raw, present := fields["read"]
	if !present {
		return false, false, nil
	}
	if err := json.Unmarshal(raw, &read); err != nil {
		return false, false, validationError{"read must be a boolean"}
	}
	return read, true, nil
}
