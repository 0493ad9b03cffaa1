package controllers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/ChurchSite/services"
	"github.com/ChurchSite/store"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// Handler carries the dependencies shared by every route.
type Handler struct {
	Repos    *store.Repositories
	Tokens   services.TokenService
	Uploads  *services.UploadService
	Notifier services.Notifier

	// Now is overridden by tests.
	Now func() time.Time
}

func NewHandler(repos *store.Repositories, tokens services.TokenService, uploads *services.UploadService, notifier services.Notifier) *Handler {
	return &Handler{
		Repos:    repos,
		Tokens:   tokens,
		Uploads:  uploads,
		Notifier: notifier,
		Now:      time.Now,
	}
}

func (h *Handler) now() time.Time {
	if h.Now == nil {
		return time.Now().UTC()
	}
	return h.Now().UTC()
}

// validationError is returned from update callbacks to abort the write with
// a 400.
type validationError struct {
	msg string
}

func (e validationError) Error() string {
	return e.msg
}

type field struct {
	name  string
	value string
}

// requireFields writes a 400 naming every empty field and reports whether
// the request may continue.
func requireFields(c *gin.Context, fields ...field) bool {
	var missing []string
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) == 0 {
		return true
	}
	c.JSON(http.StatusBadRequest, gin.H{"message": "Missing required fields: " + strings.Join(missing, ", ")})
	return false
}

func parseID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid id"})
		return 0, false
	}
	return id, true
}

// storeError maps repository errors to responses. notFound names the
// resource in the 404 message.
func storeError(c *gin.Context, err error, notFound string) {
	var invalid validationError
	switch {
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": notFound + " not found"})
	case errors.As(err, &invalid):
		c.JSON(http.StatusBadRequest, gin.H{"message": invalid.msg})
	case errors.Is(err, store.ErrInvalidPatch):
		c.JSON(http.StatusBadRequest, gin.H{"message": store.ErrInvalidPatch.Error()})
	default:
		log.Error().Err(err).Str("path", c.FullPath()).Msg("store operation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to save changes"})
	}
}

// deleteMedia removes uploaded assets that belonged to a deleted record.
// Failures are logged only.
func (h *Handler) deleteMedia(ctx context.Context, urls ...string) {
	if h.Uploads == nil {
		return
	}
	for _, url := range urls {
		if url == "" {
			continue
		}
		if err := h.Uploads.Delete(ctx, url); err != nil {
			log.Warn().Err(err).Str("url", url).Msg("failed to delete media")
		}
	}
}

func today(now time.Time) string {
	return now.Format("2006-01-02")
}
