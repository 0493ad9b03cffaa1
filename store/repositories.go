package store

import "github.com/ChurchSite/models"

type Repositories struct {
	Users          *Collection[models.User, *models.User]
	Messages       *Collection[models.Message, *models.Message]
	PrayerRequests *Collection[models.PrayerRequest, *models.PrayerRequest]
	Sermons        *Collection[models.Sermon, *models.Sermon]
	Events         *Collection[models.Event, *models.Event]
	Gallery        *Collection[models.GalleryImage, *models.GalleryImage]
	PushTokens     *Collection[models.PushToken, *models.PushToken]
	Content        *ContentStore
}

// NewRepositories binds every resource document to backend. seedUsers
// provides the administrator written on first start.
func NewRepositories(backend Backend, seedUsers func() []models.User) *Repositories {
	return &Repositories{
		Users:          NewCollection[models.User](backend, "users", seedUsers),
		Messages:       NewCollection[models.Message](backend, "messages", nil),
		PrayerRequests: NewCollection[models.PrayerRequest](backend, "prayers", nil),
		Sermons:        NewCollection[models.Sermon](backend, "sermons", nil),
		Events:         NewCollection[models.Event](backend, "events", nil),
		Gallery:        NewCollection[models.GalleryImage](backend, "gallery", nil),
		PushTokens:     NewCollection[models.PushToken](backend, "push_tokens", nil),
		Content:        NewContentStore(backend, "content", models.DefaultContent),
	}
}
