package controllers

import (
	"context"
	"crypto/subtle"
	"log/slog"
	"net/http"

	"conferencecentral/internal/delivery/http/helpers"
	"conferencecentral/internal/domain"
)

// CronTokenHeader carries the shared secret that authorizes cron endpoints.
const CronTokenHeader = "X-Cron-Token"

type AnnouncementController struct {
	Logger    *slog.Logger
	Service   domain.AnnouncementService
	CronToken string
}

func NewAnnouncementController(logger *slog.Logger, svc domain.AnnouncementService, cronToken string) *AnnouncementController {
	return &AnnouncementController{
		Logger:    logger,
		Service:   svc,
		CronToken: cronToken,
	}
}

// GetAnnouncement godoc
// @Summary Get the nearly sold out announcement
// @Description data is an empty string when no conference is nearly sold out.
// @Tags announcement
// @Produce json
// @Success 200 {object} controllers.StringSuccessResponse
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /announcement [get]
func (c *AnnouncementController) GetAnnouncement(w http.ResponseWriter, r *http.Request) {
	msg, err := c.Service.Get(r.Context())
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, msg)
}

// SetAnnouncement godoc
// @Summary Recompute the announcement
// @Description Cron hook. Requires the X-Cron-Token header; disabled when no token is configured.
// @Tags announcement
// @Param X-Cron-Token header string true "Cron token"
// @Success 204
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /crons/set_announcement [get]
func (c *AnnouncementController) SetAnnouncement(w http.ResponseWriter, r *http.Request) {
	if !c.cronAuthorized(r) {
		helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeForbidden, "cron token required")
		return
	}
	if _, err := c.Service.Refresh(r.Context()); err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (c *AnnouncementController) cronAuthorized(r *http.Request) bool {
	got := r.Header.Get(CronTokenHeader)
	return c.CronToken != "" && subtle.ConstantTimeCompare([]byte(got), []byte(c.CronToken)) == 1
}

// HealthController reports readiness of the backing stores.
type HealthController struct {
	Logger *slog.Logger
	Checks map[string]func(context.Context) error
}

func NewHealthController(logger *slog.Logger, checks map[string]func(context.Context) error) *HealthController {
	return &HealthController{Logger: logger, Checks: checks}
}

// Health godoc
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} helpers.APIResponse
// @Failure 503 {object} helpers.APIResponse "error.code: internal_error"
// @Router /healthz [get]
func (c *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	for name, check := range c.Checks {
		if err := check(r.Context()); err != nil {
			c.Logger.WarnContext(r.Context(), "health check failed", "check", name, "err", err)
			helpers.WriteJSONError(w, http.StatusServiceUnavailable, helpers.ErrCodeInternalError, name+" unavailable")
			return
		}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, "ok")
}
