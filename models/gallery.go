package models

import (
	"sort"
	"time"
)

const DefaultGalleryCategory = "general"

type GalleryImage struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	ImageURL    string    `json:"imageUrl"`
	Category    string    `json:"category"`
	Date        string    `json:"date"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (g *GalleryImage) GetID() int   { return g.ID }
func (g *GalleryImage) SetID(id int) { g.ID = id }

type GalleryImageCreate struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
	Category    string `json:"category"`
	Date        string `json:"date"`
}

// SortGallery orders images newest first.
func SortGallery(images []GalleryImage) {
	sort.SliceStable(images, func(i, j int) bool {
		return images[i].Date > images[j].Date
	})
}
