package controllers

import (
	"errors"
	"fmt"
	"mime"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type uploadKind struct {
	label           string
	defaultCategory string
	maxBytes        int64
	extensions      []string
}

var (
	imageUpload = uploadKind{
		label:           "image",
		defaultCategory: "general",
		maxBytes:        10 << 20,
		extensions:      []string{".jpg", ".jpeg", ".png", ".gif", ".webp", ".svg"},
	}
	videoUpload = uploadKind{
		label:           "video",
		defaultCategory: "videos",
		maxBytes:        500 << 20,
		extensions:      []string{".mp4", ".mov", ".webm", ".avi", ".mkv"},
	}
	documentUpload = uploadKind{
		label:           "document",
		defaultCategory: "documents",
		maxBytes:        25 << 20,
		extensions:      []string{".pdf", ".doc", ".docx", ".ppt", ".pptx", ".txt"},
	}
)

func (k uploadKind) allows(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, allowed := range k.extensions {
		if ext == allowed {
			return true
		}
	}
	return false
}

func (h *Handler) UploadImage(c *gin.Context) {
	h.upload(c, imageUpload)
}

func (h *Handler) UploadVideo(c *gin.Context) {
	h.upload(c, videoUpload)
}

func (h *Handler) UploadDocument(c *gin.Context) {
	h.upload(c, documentUpload)
}

func (k uploadKind) tooLarge(c *gin.Context) {
	c.JSON(http.StatusBadRequest, gin.H{
		"message": fmt.Sprintf("File too large. Maximum %s size is %d MB", k.label, k.maxBytes>>20),
	})
}

func (h *Handler) upload(c *gin.Context, kind uploadKind) {
	// one extra MB covers the multipart framing and form fields
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, kind.maxBytes+1<<20)

	header, err := c.FormFile("file")
	if err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			kind.tooLarge(c)
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"message": "No file uploaded"})
		return
	}
	if !kind.allows(header.Filename) {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": fmt.Sprintf("Invalid %s type. Allowed: %s", kind.label, strings.Join(kind.extensions, ", ")),
		})
		return
	}
	if header.Size > kind.maxBytes {
		kind.tooLarge(c)
		return
	}

	file, err := header.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Failed to read uploaded file"})
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		if guessed := mime.TypeByExtension(strings.ToLower(filepath.Ext(header.Filename))); guessed != "" {
			contentType = guessed
		}
	}

	category := c.DefaultPostForm("category", kind.defaultCategory)
	stored, err := h.Uploads.Save(c.Request.Context(), category, header.Filename, contentType, file)
	if err != nil {
		log.Error().Err(err).Str("file", header.Filename).Msg("upload failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to upload file"})
		return
	}

	log.Info().Str("url", stored.URL).Str("storage", stored.Storage).Int64("bytes", header.Size).Msg("file uploaded")
	c.JSON(http.StatusOK, stored)
}
