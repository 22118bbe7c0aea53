package router

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/timeline-dev/timelines/db"
	"github.com/timeline-dev/timelines/internal/auth"
	"github.com/timeline-dev/timelines/internal/handlers"
	"github.com/timeline-dev/timelines/internal/logging"
	"github.com/timeline-dev/timelines/internal/middleware"
	"github.com/timeline-dev/timelines/internal/services"
	"github.com/timeline-dev/timelines/internal/views"
	"gorm.io/gorm"
)

type Options struct {
	DB             *gorm.DB
	Signer         *auth.Signer
	Log            logging.Logger
	AllowedOrigins []string
	Cookie         handlers.CookieConfig
}

// NewHandler wires the services behind the route handlers.
func NewHandler(opts Options) *handlers.Handler {
	return &handlers.Handler{
		Ping:      func(ctx context.Context) error { return db.Ping(ctx, opts.DB) },
		Users:     services.NewUserService(opts.DB),
		Timelines: services.NewTimelineService(opts.DB),
		Events:    services.NewEventService(opts.DB),
		Locations: services.NewLocationService(opts.DB),
		People:    services.NewPersonService(opts.DB),
		Signer:    opts.Signer,
		Hub:       handlers.NewHub(opts.AllowedOrigins, opts.Log),
		Log:       opts.Log,
		Cookie:    opts.Cookie,
	}
}

func NewRouter(opts Options) (*gin.Engine, error) {
	return Mount(NewHandler(opts), opts)
}

// Mount registers every route of h on a new engine.
func Mount(h *handlers.Handler, opts Options) (*gin.Engine, error) {
	renderer, err := views.NewRenderer()
	if err != nil {
		return nil, err
	}

	r := gin.New()
	r.HTMLRender = renderer

	r.Use(middleware.RequestLogger(opts.Log))
	r.Use(gin.CustomRecovery(h.Recover))

	if len(opts.AllowedOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     opts.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "HEAD", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Accept", "X-Requested-With", "X-Request-ID"},
			ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	r.GET("/healthz", h.HealthCheck)
	r.GET("/", func(c *gin.Context) { c.Redirect(http.StatusFound, "/timelines") })

	public := r.Group("/", middleware.OptionalAuth(h.Signer, h.Users))
	{
		public.GET("/login", h.LoginPage)
		public.POST("/login", h.Login)
		public.GET("/join", h.JoinPage)
		public.POST("/join", h.Join)
		public.POST("/logout", h.Logout)
	}

	private := r.Group("/", middleware.AuthMiddleware(h.Signer, h.Users))
	{
		private.GET("/me", h.Me)
		private.GET("/timelines", h.ListTimelines)

		private.GET("/timeline/new", h.NewTimeline)
		private.POST("/timeline/new", h.CreateTimeline)

		private.GET("/timeline/:id", h.ShowTimeline("events"))
		private.POST("/timeline/:id", h.DeleteTimeline)
		private.GET("/timeline/:id/edit", h.EditTimeline)
		private.POST("/timeline/:id/edit", h.UpdateTimeline)

		private.GET("/timeline/:id/events", h.ShowTimeline("events"))
		private.GET("/timeline/:id/places", h.ShowTimeline("places"))
		private.GET("/timeline/:id/people", h.ShowTimeline("people"))

		private.GET("/timeline/:id/events/new", h.NewEvent)
		private.POST("/timeline/:id/events/new", h.CreateEvent)
		private.GET("/timeline/:id/events/:eventId/edit", h.EditEvent)
		private.POST("/timeline/:id/events/:eventId/edit", h.UpdateEvent)
		private.POST("/timeline/:id/events/:eventId/delete", h.DeleteEvent)

		private.GET("/locations", h.ListLocations)
		private.GET("/locations/new", h.NewLocation)
		private.POST("/locations/new", h.CreateLocation)
		private.GET("/locations/:id/edit", h.EditLocation)
		private.POST("/locations/:id/edit", h.UpdateLocation)
		private.POST("/locations/:id/delete", h.DeleteLocation)

		private.GET("/people", h.ListPeople)
		private.GET("/people/new", h.NewPerson)
		private.POST("/people/new", h.CreatePerson)
		private.GET("/people/:id/edit", h.EditPerson)
		private.POST("/people/:id/edit", h.UpdatePerson)
		private.POST("/people/:id/delete", h.DeletePerson)

		private.GET("/ws/timeline/:id", h.TimelineSocket)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	})

	return r, nil
}
