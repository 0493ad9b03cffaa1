package controllers

import (
	"net/http"
	"testing"
	"time"

	"github.com/ChurchSite/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createPrayerRequest(t *testing.T, h *Handler, body any) models.PrayerRequest {
	t.Helper()
	c, w := NewJSONContext(t, http.MethodPost, "/api/prayer-requests", body)
	h.CreatePrayerRequest(c)
	assertStatus(t, w, http.StatusCreated)
	return decode[models.PrayerRequest](t, w)
}

func listPrayerRequests(t *testing.T, h *Handler) []models.PrayerRequest {
	t.Helper()
	c, w := NewJSONContext(t, http.MethodGet, "/api/prayer-requests", nil)
	h.GetPrayerRequests(c)
	assertStatus(t, w, http.StatusOK)
	return decode[[]models.PrayerRequest](t, w)
}

func TestCreatePrayerRequest(t *testing.T) {
	h, notifier := SetupTestHandler(t)

	body := MockPrayerRequestCreate("Mary", true)
	body.IsPrivate = true
	created := createPrayerRequest(t, h, body)

	assert.Equal(t, 1, created.ID)
	assert.True(t, created.IsUrgent)
	assert.True(t, created.IsPrivate)
	assert.False(t, created.Read)
	assert.Nil(t, created.ReadAt)

	require.Len(t, notifier.prayers, 1)
	assert.Equal(t, "Mary", notifier.prayers[0].Name)
}

func TestCreatePrayerRequestMissingFields(t *testing.T) {
	h, notifier := SetupTestHandler(t)
	c, w := NewJSONContext(t, http.MethodPost, "/api/prayer-requests", models.PrayerRequestCreate{Name: "Mary"})

	h.CreatePrayerRequest(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Missing required fields: email, message", messageOf(t, w))
	assert.Empty(t, listPrayerRequests(t, h))
	assert.Empty(t, notifier.prayers)
}

func TestGetPrayerRequestsOrder(t *testing.T) {
	h, _ := SetupTestHandler(t)

	requests := []struct {
		name   string
		urgent bool
	}{
		{"first", false},
		{"second", false},
		{"third", false},
		{"urgent", true},
	}
	for i, r := range requests {
		h.Now = func() time.Time { return fixedNow.Add(time.Duration(i) * time.Minute) }
		createPrayerRequest(t, h, MockPrayerRequestCreate(r.name, r.urgent))
	}

	c, w := NewJSONContext(t, http.MethodPatch, "/api/prayer-requests/3", map[string]any{"read": true})
	h.UpdatePrayerRequest(WithID(c, "3"))
	assertStatus(t, w, http.StatusOK)

	var names []string
	for _, p := range listPrayerRequests(t, h) {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"urgent", "second", "first", "third"}, names)

	c, w = NewJSONContext(t, http.MethodGet, "/api/prayer-requests/unread-count", nil)
	h.GetUnreadPrayerRequestCount(c)
	assert.JSONEq(t, `{"count":3}`, w.Body.String())
}

func TestUpdatePrayerRequest(t *testing.T) {
	h, _ := SetupTestHandler(t)
	createPrayerRequest(t, h, MockPrayerRequestCreate("Mary", false))

	h.Now = func() time.Time { return fixedNow.Add(time.Hour) }
	c, w := NewJSONContext(t, http.MethodPatch, "/api/prayer-requests/1", map[string]any{"read": true, "isUrgent": true})
	h.UpdatePrayerRequest(WithID(c, "1"))

	assertStatus(t, w, http.StatusOK)
	updated := decode[models.PrayerRequest](t, w)
	assert.True(t, updated.Read)
	assert.True(t, updated.IsUrgent)
	require.NotNil(t, updated.ReadAt)
	assert.Equal(t, fixedNow.Add(time.Hour), *updated.ReadAt)

	c, w = NewJSONContext(t, http.MethodPatch, "/api/prayer-requests/2", map[string]any{"read": true})
	h.UpdatePrayerRequest(WithID(c, "2"))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Prayer request not found", messageOf(t, w))
}

func TestGetAndDeletePrayerRequest(t *testing.T) {
	h, _ := SetupTestHandler(t)
	created := createPrayerRequest(t, h, MockPrayerRequestCreate("Mary", false))

	c, w := NewJSONContext(t, http.MethodGet, "/api/prayer-requests/1", nil)
	h.GetPrayerRequest(WithID(c, "1"))
	assertStatus(t, w, http.StatusOK)
	assert.Equal(t, created, decode[models.PrayerRequest](t, w))

	c, w = NewJSONContext(t, http.MethodDelete, "/api/prayer-requests/1", nil)
	h.DeletePrayerRequest(WithID(c, "1"))
	assertStatus(t, w, http.StatusOK)

	c, w = NewJSONContext(t, http.MethodGet, "/api/prayer-requests/1", nil)
	h.GetPrayerRequest(WithID(c, "1"))
	assert.Equal(t, http.StatusNotFound, w.Code)

	c, w = NewJSONContext(t, http.MethodDelete, "/api/prayer-requests/nope", nil)
	h.DeletePrayerRequest(WithID(c, "nope"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid id", messageOf(t, w))
}
