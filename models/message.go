package models

import (
	"sort"
	"time"
)

type Message struct {
	ID        int        `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Phone     *string    `json:"phone"`
	Subject   string     `json:"subject"`
	Message   string     `json:"message"`
	CreatedAt time.Time  `json:"createdAt"`
	Read      bool       `json:"read"`
	ReadAt    *time.Time `json:"readAt"`
}

func (m *Message) GetID() int   { return m.ID }
func (m *Message) SetID(id int) { m.ID = id }

// MarkRead flips the read flag. readAt is only stamped on the unread to read
// transition so repeating the call leaves the item unchanged.
func (m *Message) MarkRead(read bool, now time.Time) {
	switch {
	case read && !m.Read:
		m.ReadAt = &now
	case !read:
		m.ReadAt = nil
	}
	m.Read = read
}

type MessageCreate struct {
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Phone   *string `json:"phone"`
	Subject string  `json:"subject"`
	Message string  `json:"message"`
}

// SortMessages orders unread messages first, newest first within each group.
func SortMessages(messages []Message) {
	sort.SliceStable(messages, func(i, j int) bool {
		a, b := messages[i], messages[j]
		if a.Read != b.Read {
			return !a.Read
		}
		return a.CreatedAt.After(b.CreatedAt)
	})
}
