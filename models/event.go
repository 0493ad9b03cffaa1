package models

import (
	"sort"
	"time"
)

const (
	RecurrenceNone    = "none"
	RecurrenceWeekly  = "weekly"
	RecurrenceMonthly = "monthly"
	RecurrenceYearly  = "yearly"
)

type Event struct {
	ID             int       `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Date           string    `json:"date"`
	Time           string    `json:"time"`
	EndTime        string    `json:"endTime"`
	Location       string    `json:"location"`
	RecurrenceType string    `json:"recurrenceType"`
	ImageURL       string    `json:"imageUrl"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func (e *Event) GetID() int   { return e.ID }
func (e *Event) SetID(id int) { e.ID = id }

type EventCreate struct {
	Title          string `json:"title"`
	Description    string `json:"description"`
	Date           string `json:"date"`
	Time           string `json:"time"`
	EndTime        string `json:"endTime"`
	Location       string `json:"location"`
	RecurrenceType string `json:"recurrenceType"`
	ImageURL       string `json:"imageUrl"`
}

func ValidRecurrence(kind string) bool {
	switch kind {
	case RecurrenceNone, RecurrenceWeekly, RecurrenceMonthly, RecurrenceYearly:
		return true
	}
	return false
}

// SortEvents orders events chronologically, soonest first.
func SortEvents(events []Event) {
	sort.SliceStable(events, func(i, j int) bool {
		a, b := events[i], events[j]
		if a.Date != b.Date {
			return a.Date < b.Date
		}
		return a.Time < b.Time
	})
}
