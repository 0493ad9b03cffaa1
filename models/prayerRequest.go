package models

import (
	"sort"
	"time"
)

type PrayerRequest struct {
	ID        int        `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Phone     *string    `json:"phone"`
	Subject   string     `json:"subject"`
	Message   string     `json:"message"`
	IsUrgent  bool       `json:"isUrgent"`
	IsPrivate bool       `json:"isPrivate"`
	CreatedAt time.Time  `json:"createdAt"`
	Read      bool       `json:"read"`
	ReadAt    *time.Time `json:"readAt"`
}

func (p *PrayerRequest) GetID() int   { return p.ID }
func (p *PrayerRequest) SetID(id int) { p.ID = id }

func (p *PrayerRequest) MarkRead(read bool, now time.Time) {
	switch {
	case read && !p.Read:
		p.ReadAt = &now
	case !read:
		p.ReadAt = nil
	}
	p.Read = read
}

type PrayerRequestCreate struct {
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	Phone     *string `json:"phone"`
	Subject   string  `json:"subject"`
	Message   string  `json:"message"`
	IsUrgent  bool    `json:"isUrgent"`
	IsPrivate bool    `json:"isPrivate"`
}

// SortPrayerRequests puts urgent requests first, then unread ones, then the
// newest.
func SortPrayerRequests(prayers []PrayerRequest) {
	sort.SliceStable(prayers, func(i, j int) bool {
		a, b := prayers[i], prayers[j]
		if a.IsUrgent != b.IsUrgent {
			return a.IsUrgent
		}
		if a.Read != b.Read {
			return !a.Read
		}
		return a.CreatedAt.After(b.CreatedAt)
	})
}
