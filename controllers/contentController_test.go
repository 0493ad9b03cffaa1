package controllers

import (
	"context"
	"net/http"
	"testing"

	"github.com/ChurchSite/models"
	"github.com/stretchr/testify/assert"
)

func TestGetContent(t *testing.T) {
	h, _ := SetupTestHandler(t)

	c, w := NewJSONContext(t, http.MethodGet, "/api/content", nil)
	h.GetContent(c)

	assert.Equal(t, http.StatusOK, w.Code)
	content := decode[map[string]any](t, w)
	for _, section := range []string{
		models.SectionHero,
		models.SectionAbout,
		models.SectionLeadership,
		models.SectionThemes,
		models.SectionServiceTimes,
		models.SectionContactInfo,
		models.SectionSocial,
	} {
		assert.Contains(t, content, section)
	}
}

func TestGetContentSection(t *testing.T) {
	h, _ := SetupTestHandler(t)

	c, w := NewJSONContext(t, http.MethodGet, "/api/content/hero", nil)
	c.AddParam("section", "hero")
	h.GetContentSection(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Welcome Home", decode[models.HeroSection](t, w).Title)

	c, w = NewJSONContext(t, http.MethodGet, "/api/content/missing", nil)
	c.AddParam("section", "missing")
	h.GetContentSection(c)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Section not found", messageOf(t, w))
}

func TestUpdateContentSection(t *testing.T) {
	tests := []struct {
		name           string
		section        string
		body           string
		expectedStatus int
	}{
		{
			name:           "free-form section round trips",
			section:        "announcements",
			body:           `{"items":[{"text":"Potluck Sunday","pinned":true}],"count":1,"note":null}`,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "free-form section may be an array",
			section:        "banners",
			body:           `["one","two"]`,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "valid hero",
			section:        models.SectionHero,
			body:           `{"title":"Christmas at Grace","subtitle":"Join us","ctaText":"Times","ctaLink":"/christmas"}`,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "hero without title",
			section:        models.SectionHero,
			body:           `{"subtitle":"Join us"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "hero with wrong shape",
			section:        models.SectionHero,
			body:           `["not","an","object"]`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "social with bad url",
			section:        models.SectionSocial,
			body:           `{"facebook":"not a url"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "invalid json",
			section:        "announcements",
			body:           `{"items":`,
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _ := SetupTestHandler(t)
			before := h.Repos.Content.All(context.Background())

			c, w := NewJSONContext(t, http.MethodPut, "/api/content/"+tt.section, tt.body)
			c.AddParam("section", tt.section)
			h.UpdateContentSection(c)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus != http.StatusOK {
				assert.Equal(t, before, h.Repos.Content.All(context.Background()))
				return
			}
			assert.JSONEq(t, tt.body, w.Body.String())

			c, w = NewJSONContext(t, http.MethodGet, "/api/content/"+tt.section, nil)
			c.AddParam("section", tt.section)
			h.GetContentSection(c)
			assert.Equal(t, http.StatusOK, w.Code)
			assert.JSONEq(t, tt.body, w.Body.String())
		})
	}
}

func TestUpdateContentSectionWriteFailure(t *testing.T) {
	h := SetupReadOnlyHandler(t)
	c, w := NewJSONContext(t, http.MethodPut, "/api/content/announcements", `{"a":1}`)
	c.AddParam("section", "announcements")

	h.UpdateContentSection(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
