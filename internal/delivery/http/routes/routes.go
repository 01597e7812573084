package routes

import (
	"career-compass/internal/delivery/http/handler"
	"career-compass/internal/delivery/http/middleware"
	"career-compass/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type Registry struct {
	Health    *handler.HealthHandler
	Auth      *handler.AuthHandler
	Profile   *handler.ProfileHandler
	Resume    *handler.ResumeHandler
	Roadmap   *handler.RoadmapHandler
	Webinar   *handler.WebinarHandler
	Mentor    *handler.MentorHandler
	Analytics *handler.AnalyticsHandler
	Events    *ws.Handler

	SessionAuth *middleware.SessionAuth
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.Health.RegisterRoutes(app)
	app.Get("/ws/events", r.Events.HandleEvents)

	api := app.Group("/api")

	// Session-lifecycle routes manage their own cookie state.
	r.Auth.RegisterRoutes(api)

	// Public listings.
	r.Webinar.RegisterPublicRoutes(api)
	r.Mentor.RegisterPublicRoutes(api)

	// Everything else sits behind the authorization gate.
	protected := api.Group("", r.SessionAuth.RequireSession())
	r.Profile.RegisterRoutes(protected)
	r.Resume.RegisterRoutes(protected)
	r.Roadmap.RegisterRoutes(protected)
	r.Webinar.RegisterRoutes(protected)
	r.Mentor.RegisterRoutes(protected)
	r.Analytics.RegisterRoutes(protected)
}
