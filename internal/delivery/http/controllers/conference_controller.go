package controllers

import (
	"log/slog"
	"net/http"

	"conferencecentral/internal/delivery/http/helpers"
	"conferencecentral/internal/delivery/http/middleware"
	"conferencecentral/internal/domain"
)

type ConferenceController struct {
	Logger  *slog.Logger
	Service domain.ConferenceService
}

func NewConferenceController(logger *slog.Logger, svc domain.ConferenceService) *ConferenceController {
	return &ConferenceController{
		Logger:  logger,
		Service: svc,
	}
}

// identity returns the authenticated caller or writes 401.
func identity(w http.ResponseWriter, r *http.Request) (domain.Identity, bool) {
	id, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "authorization required")
	}
	return id, ok
}

// CreateConference godoc
// @Summary Create a conference
// @Description Creates a conference owned by the caller. Missing city and topics are defaulted, seatsAvailable starts at maxAttendees. A confirmation email is queued.
// @Tags conferences
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body controllers.ConferenceRequest true "Conference fields; name is required"
// @Success 201 {object} controllers.ConferenceSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /conferences [post]
func (c *ConferenceController) CreateConference(w http.ResponseWriter, r *http.Request) {
	var req ConferenceRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	id, ok := identity(w, r)
	if !ok {
		return
	}
	view, err := c.Service.CreateConference(r.Context(), id, req.toInput())
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, toConferenceForm(view))
}

// UpdateConference godoc
// @Summary Update a conference
// @Description Updates the provided fields of a conference. Only the organizer may update it.
// @Tags conferences
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param conferenceKey path string true "Conference websafe key"
// @Param body body controllers.ConferenceRequest true "Fields to change"
// @Success 200 {object} controllers.ConferenceSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /conferences/{conferenceKey} [put]
func (c *ConferenceController) UpdateConference(w http.ResponseWriter, r *http.Request) {
	var req ConferenceRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	id, ok := identity(w, r)
	if !ok {
		return
	}
	view, err := c.Service.UpdateConference(r.Context(), id, r.PathValue("conferenceKey"), req.toInput())
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, toConferenceForm(view))
}

// GetConference godoc
// @Summary Get a conference
// @Tags conferences
// @Produce json
// @Param conferenceKey path string true "Conference websafe key"
// @Success 200 {object} controllers.ConferenceSuccessResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /conferences/{conferenceKey} [get]
func (c *ConferenceController) GetConference(w http.ResponseWriter, r *http.Request) {
	view, err := c.Service.GetConference(r.Context(), r.PathValue("conferenceKey"))
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, toConferenceForm(view))
}

// ListConferencesCreated godoc
// @Summary List conferences created by the caller
// @Tags conferences
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.ConferenceListSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /conferences/created [get]
func (c *ConferenceController) ListConferencesCreated(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}
	views, err := c.Service.ListConferencesCreated(r.Context(), id)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, toConferenceForms(views))
}

// QueryConferences godoc
// @Summary Query conferences
// @Description Filters conferences by CITY, TOPIC, MONTH or MAX_ATTENDEES with EQ, NE, GT, GTEQ, LT or LTEQ. At most one field may use an inequality; results are ordered by that field, then by name.
// @Tags conferences
// @Accept json
// @Produce json
// @Param body body controllers.ConferenceQueryRequest true "Filters"
// @Success 200 {object} controllers.ConferenceListSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /conferences/query [post]
func (c *ConferenceController) QueryConferences(w http.ResponseWriter, r *http.Request) {
	var req ConferenceQueryRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	views, err := c.Service.QueryConferences(r.Context(), req.toFilters())
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, toConferenceForms(views))
}

// ListConferencesToAttend godoc
// @Summary List conferences the caller is registered for
// @Tags conferences
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.ConferenceListSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /conferences/attending [get]
func (c *ConferenceController) ListConferencesToAttend(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}
	views, err := c.Service.ListConferencesToAttend(r.Context(), id)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, toConferenceForms(views))
}

// RegisterForConference godoc
// @Summary Register for a conference
// @Description Takes a seat for the caller. Fails with conflict when already registered or sold out.
// @Tags registration
// @Produce json
// @Security BearerAuth
// @Param conferenceKey path string true "Conference websafe key"
// @Success 200 {object} controllers.BooleanSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /conferences/{conferenceKey}/registration [post]
func (c *ConferenceController) RegisterForConference(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}
	done, err := c.Service.RegisterForConference(r.Context(), id, r.PathValue("conferenceKey"))
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, done)
}

// UnregisterFromConference godoc
// @Summary Unregister from a conference
// @Description Gives the caller's seat back. data is false when the caller was not registered.
// @Tags registration
// @Produce json
// @Security BearerAuth
// @Param conferenceKey path string true "Conference websafe key"
// @Success 200 {object} controllers.BooleanSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /conferences/{conferenceKey}/registration [delete]
func (c *ConferenceController) UnregisterFromConference(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}
	done, err := c.Service.UnregisterFromConference(r.Context(), id, r.PathValue("conferenceKey"))
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, done)
}
