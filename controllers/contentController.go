package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/ChurchSite/models"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

func (h *Handler) GetContent(c *gin.Context) {
	c.JSON(http.StatusOK, h.Repos.Content.All(c))
}

func (h *Handler) GetContentSection(c *gin.Context) {
	section, err := h.Repos.Content.Section(c, c.Param("section"))
	if err != nil {
		storeError(c, err, "Section")
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", section)
}

// UpdateContentSection replaces a section wholesale. Known sections must
// match their schema; any other section accepts arbitrary JSON.
func (h *Handler) UpdateContentSection(c *gin.Context) {
	name := c.Param("section")
	body, err := c.GetRawData()
	if err != nil || !json.Valid(body) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	if schema, known := models.SectionSchema(name); known {
		if err := json.Unmarshal(body, schema); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid " + name + " content"})
			return
		}
		if err := binding.Validator.ValidateStruct(schema); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid " + name + " content", "details": err.Error()})
			return
		}
	}

	if err := h.Repos.Content.PutSection(c, name, body); err != nil {
		storeError(c, err, "Section")
		return
	}

	section, err := h.Repos.Content.Section(c, name)
	if err != nil {
		storeError(c, err, "Section")
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", section)
}
