package controllers

import (
	"log/slog"
	"net/http"

	"conferencecentral/internal/delivery/http/helpers"
	"conferencecentral/internal/domain"
)

type ProfileController struct {
	Logger   *slog.Logger
	Service  domain.ProfileService
	Wishlist domain.WishlistService
}

func NewProfileController(logger *slog.Logger, svc domain.ProfileService, wishlist domain.WishlistService) *ProfileController {
	return &ProfileController{
		Logger:   logger,
		Service:  svc,
		Wishlist: wishlist,
	}
}

// GetProfile godoc
// @Summary Get the caller's profile
// @Description Returns the caller's profile, creating it on first access.
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.ProfileSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /profile [get]
func (c *ProfileController) GetProfile(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}
	p, err := c.Service.GetProfile(r.Context(), id)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, toProfileForm(p))
}

// SaveProfile godoc
// @Summary Update the caller's profile
// @Description Changes displayName and/or teeShirtSize; empty values are ignored.
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body controllers.ProfileMiniForm true "Profile fields"
// @Success 200 {object} controllers.ProfileSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /profile [patch]
func (c *ProfileController) SaveProfile(w http.ResponseWriter, r *http.Request) {
	var req ProfileMiniForm
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	id, ok := identity(w, r)
	if !ok {
		return
	}
	p, err := c.Service.SaveProfile(r.Context(), id, req.DisplayName, req.TeeShirtSize)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, toProfileForm(p))
}

// ListWishlist godoc
// @Summary List the caller's session wishlist
// @Tags wishlist
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.SessionListSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /profile/wishlist [get]
func (c *ProfileController) ListWishlist(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}
	views, err := c.Wishlist.ListWishlist(r.Context(), id)
	c.writeWishlist(w, r, views, err)
}

// AddSessionToWishlist godoc
// @Summary Add a session to the caller's wishlist
// @Description Returns the full wishlist. Fails with conflict when the session is already wishlisted.
// @Tags wishlist
// @Produce json
// @Security BearerAuth
// @Param sessionKey path string true "Session websafe key"
// @Success 200 {object} controllers.SessionListSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /profile/wishlist/{sessionKey} [post]
func (c *ProfileController) AddSessionToWishlist(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}
	views, err := c.Wishlist.AddSessionToWishlist(r.Context(), id, r.PathValue("sessionKey"))
	c.writeWishlist(w, r, views, err)
}

// RemoveSessionFromWishlist godoc
// @Summary Remove a session from the caller's wishlist
// @Description Returns the full wishlist. Removing a session that is not wishlisted succeeds without change.
// @Tags wishlist
// @Produce json
// @Security BearerAuth
// @Param sessionKey path string true "Session websafe key"
// @Success 200 {object} controllers.SessionListSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /profile/wishlist/{sessionKey} [delete]
func (c *ProfileController) RemoveSessionFromWishlist(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}
	views, err := c.Wishlist.RemoveSessionFromWishlist(r.Context(), id, r.PathValue("sessionKey"))
	c.writeWishlist(w, r, views, err)
}

func (c *ProfileController) writeWishlist(w http.ResponseWriter, r *http.Request, views []*domain.SessionView, err error) {
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, toSessionForms(views))
}
