package controllers

import (
	"log/slog"
	"net/http"

	"conferencecentral/internal/delivery/http/helpers"
	"conferencecentral/internal/domain"
)

type SessionController struct {
	Logger   *slog.Logger
	Service  domain.SessionService
	Featured domain.FeaturedSpeakerService
}

func NewSessionController(logger *slog.Logger, svc domain.SessionService, featured domain.FeaturedSpeakerService) *SessionController {
	return &SessionController{
		Logger:   logger,
		Service:  svc,
		Featured: featured,
	}
}

// CreateSpeaker godoc
// @Summary Create a speaker
// @Tags speakers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body controllers.SpeakerRequest true "Speaker"
// @Success 201 {object} controllers.SpeakerSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /speakers [post]
func (c *SessionController) CreateSpeaker(w http.ResponseWriter, r *http.Request) {
	var req SpeakerRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	id, ok := identity(w, r)
	if !ok {
		return
	}
	sp, err := c.Service.CreateSpeaker(r.Context(), id, req.Name)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, toSpeakerForm(sp))
}

// GetFeaturedSpeaker godoc
// @Summary Get the featured speaker message
// @Description data is an empty string when no speaker is featured.
// @Tags speakers
// @Produce json
// @Success 200 {object} controllers.StringSuccessResponse
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /speakers/featured [get]
func (c *SessionController) GetFeaturedSpeaker(w http.ResponseWriter, r *http.Request) {
	msg, err := c.Featured.Get(r.Context())
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, msg)
}

// CreateSession godoc
// @Summary Create a session in a conference
// @Description Only the conference organizer may add sessions. date is YYYY-MM-DD, start_time is HH:MM (24 hour clock).
// @Tags sessions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param conferenceKey path string true "Conference websafe key"
// @Param body body controllers.SessionRequest true "Session"
// @Success 201 {object} controllers.SessionSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /conferences/{conferenceKey}/sessions [post]
func (c *SessionController) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req SessionRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	id, ok := identity(w, r)
	if !ok {
		return
	}
	view, err := c.Service.CreateSession(r.Context(), id, r.PathValue("conferenceKey"), req.toInput())
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, toSessionForm(view))
}

// ListConferenceSessions godoc
// @Summary List the sessions of a conference
// @Tags sessions
// @Produce json
// @Param conferenceKey path string true "Conference websafe key"
// @Success 200 {object} controllers.SessionListSuccessResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /conferences/{conferenceKey}/sessions [get]
func (c *SessionController) ListConferenceSessions(w http.ResponseWriter, r *http.Request) {
	views, err := c.Service.ListConferenceSessions(r.Context(), r.PathValue("conferenceKey"))
	c.writeSessions(w, r, views, err)
}

// ListConferenceSessionsByType godoc
// @Summary List the sessions of a conference with a given type
// @Tags sessions
// @Produce json
// @Param conferenceKey path string true "Conference websafe key"
// @Param type path string true "Type of session, e.g. workshop"
// @Success 200 {object} controllers.SessionListSuccessResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /conferences/{conferenceKey}/sessions/type/{type} [get]
func (c *SessionController) ListConferenceSessionsByType(w http.ResponseWriter, r *http.Request) {
	views, err := c.Service.ListConferenceSessionsByType(r.Context(), r.PathValue("conferenceKey"), r.PathValue("type"))
	c.writeSessions(w, r, views, err)
}

// ListConferenceSessionsByDate godoc
// @Summary List the sessions of a conference on a date
// @Description Sessions are ordered by start time.
// @Tags sessions
// @Produce json
// @Param conferenceKey path string true "Conference websafe key"
// @Param date path string true "Date (YYYY-MM-DD)"
// @Success 200 {object} controllers.SessionListSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /conferences/{conferenceKey}/sessions/date/{date} [get]
func (c *SessionController) ListConferenceSessionsByDate(w http.ResponseWriter, r *http.Request) {
	views, err := c.Service.ListConferenceSessionsByDate(r.Context(), r.PathValue("conferenceKey"), r.PathValue("date"))
	c.writeSessions(w, r, views, err)
}

// ListInteractiveConferenceSessions godoc
// @Summary List the workshops, hackathons and labs of a conference
// @Tags sessions
// @Produce json
// @Param conferenceKey path string true "Conference websafe key"
// @Success 200 {object} controllers.SessionListSuccessResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /conferences/{conferenceKey}/sessions/interactive [get]
func (c *SessionController) ListInteractiveConferenceSessions(w http.ResponseWriter, r *http.Request) {
	views, err := c.Service.ListInteractiveConferenceSessions(r.Context(), r.PathValue("conferenceKey"))
	c.writeSessions(w, r, views, err)
}

// ListSessionsBySpeaker godoc
// @Summary List a speaker's sessions across all conferences
// @Tags sessions
// @Produce json
// @Param speakerKey path string true "Speaker websafe key"
// @Success 200 {object} controllers.SessionListSuccessResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /speakers/{speakerKey}/sessions [get]
func (c *SessionController) ListSessionsBySpeaker(w http.ResponseWriter, r *http.Request) {
	views, err := c.Service.ListSessionsBySpeaker(r.Context(), r.PathValue("speakerKey"))
	c.writeSessions(w, r, views, err)
}

// ListNonWorkshopSessionsBefore7pm godoc
// @Summary List non-workshop sessions starting at or before 19:00
// @Tags sessions
// @Produce json
// @Success 200 {object} controllers.SessionListSuccessResponse
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /sessions/non-workshop-before-seven [get]
func (c *SessionController) ListNonWorkshopSessionsBefore7pm(w http.ResponseWriter, r *http.Request) {
	views, err := c.Service.ListNonWorkshopSessionsBefore7pm(r.Context())
	c.writeSessions(w, r, views, err)
}

func (c *SessionController) writeSessions(w http.ResponseWriter, r *http.Request, views []*domain.SessionView, err error) {
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, toSessionForms(views))
}
