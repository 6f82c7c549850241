package http

import (
	"log/slog"
	"net/http"

	"conferencecentral/internal/delivery/http/controllers"
	"conferencecentral/internal/delivery/http/middleware"
	"conferencecentral/internal/domain"

	httpSwagger "github.com/swaggo/http-swagger"
)

// Controllers groups the handlers mounted by NewRouter.
type Controllers struct {
	Conference   *controllers.ConferenceController
	Profile      *controllers.ProfileController
	Session      *controllers.SessionController
	Announcement *controllers.AnnouncementController
	Health       *controllers.HealthController
}

// RouterConfig carries the cross-cutting dependencies of the router.
type RouterConfig struct {
	Verifier       domain.TokenVerifier
	Metrics        domain.Metrics
	MetricsHandler http.Handler // nil disables /metrics
	AllowedOrigins []string
	Logger         *slog.Logger
}

// NewRouter initializes the HTTP router with all application routes and wraps it
// in recovery, access logging and CORS.
func NewRouter(c Controllers, cfg RouterConfig) http.Handler {
	mux := http.NewServeMux()
	auth := middleware.RequireAuth(cfg.Verifier, cfg.Logger)

	route := func(pattern string, h http.HandlerFunc) {
		mux.Handle(pattern, middleware.Instrument(cfg.Metrics, pattern, h))
	}

	// Conferences
	route("POST /conferences", auth(c.Conference.CreateConference))
	route("POST /conferences/query", c.Conference.QueryConferences)
	route("GET /conferences/created", auth(c.Conference.ListConferencesCreated))
	route("GET /conferences/attending", auth(c.Conference.ListConferencesToAttend))
	route("GET /conferences/{conferenceKey}", c.Conference.GetConference)
	route("PUT /conferences/{conferenceKey}", auth(c.Conference.UpdateConference))
	route("POST /conferences/{conferenceKey}/registration", auth(c.Conference.RegisterForConference))
	route("DELETE /conferences/{conferenceKey}/registration", auth(c.Conference.UnregisterFromConference))

	// Sessions and speakers
	route("POST /conferences/{conferenceKey}/sessions", auth(c.Session.CreateSession))
	route("GET /conferences/{conferenceKey}/sessions", c.Session.ListConferenceSessions)
	route("GET /conferences/{conferenceKey}/sessions/type/{type}", c.Session.ListConferenceSessionsByType)
	route("GET /conferences/{conferenceKey}/sessions/date/{date}", c.Session.ListConferenceSessionsByDate)
	route("GET /conferences/{conferenceKey}/sessions/interactive", c.Session.ListInteractiveConferenceSessions)
	route("GET /sessions/non-workshop-before-seven", c.Session.ListNonWorkshopSessionsBefore7pm)
	route("POST /speakers", auth(c.Session.CreateSpeaker))
	route("GET /speakers/featured", c.Session.GetFeaturedSpeaker)
	route("GET /speakers/{speakerKey}/sessions", c.Session.ListSessionsBySpeaker)

	// Profile and wishlist
	route("GET /profile", auth(c.Profile.GetProfile))
	route("PATCH /profile", auth(c.Profile.SaveProfile))
	route("GET /profile/wishlist", auth(c.Profile.ListWishlist))
	route("POST /profile/wishlist/{sessionKey}", auth(c.Profile.AddSessionToWishlist))
	route("DELETE /profile/wishlist/{sessionKey}", auth(c.Profile.RemoveSessionFromWishlist))

	// Announcements and cron
	route("GET /announcement", c.Announcement.GetAnnouncement)
	route("GET /crons/set_announcement", c.Announcement.SetAnnouncement)

	// Ops
	mux.HandleFunc("GET /healthz", c.Health.Health)
	if cfg.MetricsHandler != nil {
		mux.Handle("GET /metrics", cfg.MetricsHandler)
	}
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	var h http.Handler = mux
	h = middleware.LoggingMiddleware(cfg.Logger, h)
	h = middleware.Recover(cfg.Logger, h)
	h = middleware.CORS(cfg.AllowedOrigins, h)
	return h
}
