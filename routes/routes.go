package routes

import (
	"net/http"

	"github.com/ChurchSite/controllers"
	"github.com/ChurchSite/middlewares"
	"github.com/ChurchSite/services"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

type Options struct {
	CORSOrigins []string
	// LoginRate and SubmitRate are requests per second per client.
	LoginRate   rate.Limit
	LoginBurst  int
	SubmitRate  rate.Limit
	SubmitBurst int
}

func DefaultOptions() Options {
	return Options{
		LoginRate:   rate.Limit(0.2),
		LoginBurst:  5,
		SubmitRate:  rate.Limit(0.1),
		SubmitBurst: 5,
	}
}

func SetupRouter(h *controllers.Handler, opts Options) *gin.Engine {
	router := gin.New()
	router.MaxMultipartMemory = 32 << 20
	router.Use(middlewares.RequestLogger(), middlewares.Recovery(), middlewares.CORS(opts.CORSOrigins))

	getKey := func(c *gin.Context) string {
		if gin.Mode() == gin.DebugMode {
			return c.FullPath()
		}
		return c.ClientIP()
	}
	loginLimit := middlewares.RateLimitMiddleware(opts.LoginRate, opts.LoginBurst, getKey)
	submitLimit := middlewares.RateLimitMiddleware(opts.SubmitRate, opts.SubmitBurst, getKey)
	checkAuth := middlewares.CheckAuth(h.Tokens)

	if h.Uploads != nil {
		router.Static(services.LocalURLPrefix, h.Uploads.LocalDir())
	}

	api := router.Group("/api")

	api.GET("/health", h.Health)

	// auth routes
	api.POST("/auth/login", loginLimit, h.Login)
	api.GET("/auth/verify", checkAuth, h.Verify)
	api.POST("/auth/change-password", checkAuth, h.ChangePassword)

	// public content
	api.GET("/content", h.GetContent)
	api.GET("/content/:section", h.GetContentSection)
	api.GET("/events", h.GetEvents)
	api.GET("/events/:id", h.GetEvent)
	api.GET("/sermons", h.GetSermons)
	api.GET("/sermons/type/:messageType", h.GetSermonsByType)
	api.GET("/sermons/:id", h.GetSermon)
	api.GET("/gallery", h.GetGallery)
	api.GET("/gallery/category/:category", h.GetGalleryByCategory)
	api.GET("/gallery/:id", h.GetGalleryImage)

	// public submissions
	api.POST("/contact", submitLimit, h.CreateMessage)
	api.POST("/prayer-requests", submitLimit, h.CreatePrayerRequest)

	auth := api.Group("/")
	auth.Use(checkAuth)
	{
		auth.PUT("/content/:section", h.UpdateContentSection)

		auth.POST("/events", h.CreateEvent)
		auth.PUT("/events/:id", h.UpdateEvent)
		auth.DELETE("/events/:id", h.DeleteEvent)

		auth.POST("/sermons", h.CreateSermon)
		auth.PUT("/sermons/:id", h.UpdateSermon)
		auth.DELETE("/sermons/:id", h.DeleteSermon)

		auth.POST("/gallery", h.CreateGalleryImage)
		auth.PUT("/gallery/:id", h.UpdateGalleryImage)
		auth.DELETE("/gallery/:id", h.DeleteGalleryImage)

		// contact inbox
		auth.GET("/contact/messages", h.GetMessages)
		auth.GET("/contact/messages/unread-count", h.GetUnreadMessageCount)
		auth.GET("/contact/messages/:id", h.GetMessage)
		auth.PATCH("/contact/messages/:id", h.UpdateMessage)
		auth.DELETE("/contact/messages/:id", h.DeleteMessage)

		// prayer inbox
		auth.GET("/prayer-requests", h.GetPrayerRequests)
		auth.GET("/prayer-requests/unread-count", h.GetUnreadPrayerRequestCount)
		auth.GET("/prayer-requests/:id", h.GetPrayerRequest)
		auth.PATCH("/prayer-requests/:id", h.UpdatePrayerRequest)
		auth.DELETE("/prayer-requests/:id", h.DeletePrayerRequest)

		// uploads
		auth.POST("/upload", h.UploadImage)
		auth.POST("/upload-video", h.UploadVideo)
		auth.POST("/upload-document", h.UploadDocument)

		// admin devices
		auth.POST("/admin/push-tokens", h.RegisterPushToken)
		auth.DELETE("/admin/push-tokens/:id", h.DeletePushToken)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Not found"})
	})

	return router
}
