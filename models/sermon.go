package models

import (
	"sort"
	"time"
)

const DefaultMessageType = "sermon"

type Sermon struct {
	ID           int       `json:"id"`
	Title        string    `json:"title"`
	Speaker      string    `json:"speaker"`
	Date         string    `json:"date"`
	VideoURL     string    `json:"videoUrl"`
	MessageType  string    `json:"messageType"`
	Scripture    string    `json:"scripture"`
	Description  string    `json:"description"`
	ThumbnailURL string    `json:"thumbnailUrl"`
	DocumentURL  string    `json:"documentUrl"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (s *Sermon) GetID() int   { return s.ID }
func (s *Sermon) SetID(id int) { s.ID = id }

// MediaURLs lists every uploaded asset the sermon points at.
func (s Sermon) MediaURLs() []string {
	return []string{s.VideoURL, s.ThumbnailURL, s.DocumentURL}
}

type SermonCreate struct {
	Title        string `json:"title"`
	Speaker      string `json:"speaker"`
	Date         string `json:"date"`
	VideoURL     string `json:"videoUrl"`
	MessageType  string `json:"messageType"`
	Scripture    string `json:"scripture"`
	Description  string `json:"description"`
	ThumbnailURL string `json:"thumbnailUrl"`
	DocumentURL  string `json:"documentUrl"`
}

// SortSermons orders sermons newest first.
func SortSermons(sermons []Sermon) {
	sort.SliceStable(sermons, func(i, j int) bool {
		return sermons[i].Date > sermons[j].Date
	})
}
