package routes

import (
	"github.com/gin-gonic/gin"

	config "github.com/sarthakkanade/campus-events-go/config"
	controllers "github.com/sarthakkanade/campus-events-go/controllers"
	middleware "github.com/sarthakkanade/campus-events-go/middleware"
	models "github.com/sarthakkanade/campus-events-go/models"
	store "github.com/sarthakkanade/campus-events-go/store"
)

func SetupRoutes(r *gin.Engine, cfg *config.Config) {
	db := cfg.MongoClient.Database(cfg.DBName)
	s := &store.Stores{
		Events: store.NewMongoEventStore(db),
		Users:  store.NewMongoUserStore(db),
	}

	auth := middleware.AuthMiddleware(cfg)
	organizers := middleware.RequireRoles(string(models.RoleOrganizer), string(models.RoleAdmin))
	admins := middleware.RequireRoles(string(models.RoleAdmin))

	// public
	r.POST("/api/auth/register", controllers.Register(cfg, s))
	r.POST("/api/auth/login", controllers.Login(cfg, s))
	r.GET("/api/auth/me", auth, controllers.Me(s))
	r.PUT("/api/auth/profile", auth, controllers.UpdateProfile(s))

	users := r.Group("/api/users")
	users.Use(auth)
	{
		users.GET("/search", controllers.SearchUsers(s))
		users.GET("/:id", controllers.GetUserProfile(s))
	}

	events := r.Group("/api/events")
	{
		// discovery is public
		events.GET("", controllers.ListEvents(s))
		events.GET("/:id", controllers.GetEvent(s))

		events.GET("/pending", auth, admins, controllers.ListPendingEvents(s))
		events.GET("/mine", auth, organizers, controllers.ListMyEvents(s))

		events.POST("", auth, organizers, controllers.CreateEvent(s))
		events.PUT("/:id", auth, organizers, controllers.UpdateEvent(s))
		events.DELETE("/:id", auth, organizers, controllers.DeleteEvent(s))

		events.PUT("/:id/approve", auth, admins, controllers.ApproveEvent(s))
		events.PUT("/:id/reject", auth, admins, controllers.RejectEvent(s))
		events.PUT("/:id/complete", auth, organizers, controllers.CompleteEvent(s))
		events.PUT("/:id/gate", auth, organizers, controllers.ToggleGate(s))

		events.POST("/:id/rsvp", auth, controllers.ToggleRSVP(s))
		events.PUT("/:id/attendees/:userId", auth, organizers, controllers.ReviewAttendee(s))
		events.POST("/scan", auth, organizers, controllers.ScanTicket(s))

		events.POST("/:id/polls", auth, organizers, controllers.CreatePoll(s))
		events.PUT("/:id/polls/:pollId/close", auth, organizers, controllers.ClosePoll(s))
		events.POST("/:id/vote", auth, controllers.Vote(s))

		events.POST("/:id/feedback", auth, controllers.AddFeedback(s))
		events.POST("/:id/gallery", auth, organizers, controllers.UploadGallery(s))
	}
}
