package models

// Known content sections. Any other section name is stored as free-form JSON.
const (
	SectionHero         = "hero"
	SectionAbout        = "about"
	SectionLeadership   = "leadership"
	SectionThemes       = "themes"
	SectionServiceTimes = "serviceTimes"
	SectionContactInfo  = "contactInfo"
	SectionSocial       = "social"
)

type HeroSection struct {
	Title           string `json:"title" binding:"required"`
	Subtitle        string `json:"subtitle"`
	BackgroundImage string `json:"backgroundImage"`
	CtaText         string `json:"ctaText"`
	CtaLink         string `json:"ctaLink"`
}

type AboutSection struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Mission     string `json:"mission"`
	Vision      string `json:"vision"`
	Image       string `json:"image"`
}

type Leader struct {
	Name  string `json:"name" binding:"required"`
	Role  string `json:"role" binding:"required"`
	Bio   string `json:"bio"`
	Image string `json:"image"`
}

type LeadershipSection struct {
	Title   string   `json:"title"`
	Leaders []Leader `json:"leaders" binding:"dive"`
}

type Theme struct {
	Title       string `json:"title" binding:"required"`
	Scripture   string `json:"scripture"`
	Description string `json:"description"`
	Period      string `json:"period"`
}

type ThemesSection struct {
	Current *Theme  `json:"current"`
	Themes  []Theme `json:"themes" binding:"dive"`
}

type ServiceTime struct {
	Name     string `json:"name" binding:"required"`
	Day      string `json:"day" binding:"required"`
	Time     string `json:"time" binding:"required"`
	Location string `json:"location"`
}

type ServiceTimesSection struct {
	Services []ServiceTime `json:"services" binding:"required,dive"`
}

type ContactInfoSection struct {
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email" binding:"omitempty,email"`
	MapURL  string `json:"mapUrl" binding:"omitempty,url"`
}

type SocialSection struct {
	Facebook  string `json:"facebook" binding:"omitempty,url"`
	YouTube   string `json:"youtube" binding:"omitempty,url"`
	Instagram string `json:"instagram" binding:"omitempty,url"`
	Twitter   string `json:"twitter" binding:"omitempty,url"`
}

// SectionSchema returns an empty typed value for a known section, or false
// when the section has no schema.
func SectionSchema(section string) (any, bool) {
	switch section {
	case SectionHero:
		return &HeroSection{}, true
	case SectionAbout:
		return &AboutSection{}, true
	case SectionLeadership:
		return &LeadershipSection{}, true
	case SectionThemes:
		return &ThemesSection{}, true
	case SectionServiceTimes:
		return &ServiceTimesSection{}, true
	case SectionContactInfo:
		return &ContactInfoSection{}, true
	case SectionSocial:
		return &SocialSection{}, true
	}
	return nil, false
}

// DefaultContent is written the first time the content document is read.
func DefaultContent() map[string]any {
	return map[string]any{
		SectionHero: HeroSection{
			Title:    "Welcome Home",
			Subtitle: "A place to belong, believe and become",
			CtaText:  "Plan Your Visit",
			CtaLink:  "/visit",
		},
		SectionAbout: AboutSection{
			Title:       "About Us",
			Description: "We are a community of believers gathered to worship, grow and serve together.",
		},
		SectionLeadership: LeadershipSection{
			Title:   "Our Leadership",
			Leaders: []Leader{},
		},
		SectionThemes: ThemesSection{
			Themes: []Theme{},
		},
		SectionServiceTimes: ServiceTimesSection{
			Services: []ServiceTime{
				{Name: "Sunday Worship", Day: "Sunday", Time: "10:00"},
				{Name: "Midweek Service", Day: "Wednesday", Time: "18:30"},
			},
		},
		SectionContactInfo: ContactInfoSection{},
		SectionSocial:      SocialSection{},
	}
}
