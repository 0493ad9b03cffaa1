package controllers

import (
	"testing"

	"github.com/ChurchSite/models"
	"github.com/ChurchSite/services"
)

// Test fixture data for use in tests

// MockAdminWithPassword returns the seeded administrator. Password is
// testPassword.
func MockAdminWithPassword(t *testing.T) models.User {
	hash, err := services.HashPassword(testPassword)
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}
	return models.User{
		Name:      "Church Admin",
		Username:  "admin",
		Email:     "admin@church.example",
		Password:  hash,
		CreatedAt: fixedNow,
		UpdatedAt: fixedNow,
	}
}

func MockAdminIdentity() models.Identity {
	return models.Identity{
		ID:       1,
		Username: "admin",
		Email:    "admin@church.example",
		Name:     "Church Admin",
	}
}

func MockMessageCreate() models.MessageCreate {
	return models.MessageCreate{
		Name:    "Jane",
		Email:   "jane@x.com",
		Subject: "Hi",
		Message: "Hello",
	}
}

func MockPrayerRequestCreate(name string, urgent bool) models.PrayerRequestCreate {
	return models.PrayerRequestCreate{
		Name:     name,
		Email:    "member@x.com",
		Message:  "Please pray for my family",
		IsUrgent: urgent,
	}
}

func MockSermonCreate() models.SermonCreate {
	return models.SermonCreate{
		Title:   "Faith Over Fear",
		Speaker: "Pastor John",
		Date:    "2024-05-05",
	}
}

func MockEventCreate() models.EventCreate {
	return models.EventCreate{
		Title:    "Community Picnic",
		Date:     "2024-06-01",
		Time:     "12:00",
		Location: "Church lawn",
	}
}

func MockGalleryImageCreate() models.GalleryImageCreate {
	return models.GalleryImageCreate{
		Title:    "Baptism Sunday",
		ImageURL: "https://cdn.example/baptism.jpg",
	}
}
