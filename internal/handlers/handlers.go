package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/timeline-dev/timelines/internal/auth"
	"github.com/timeline-dev/timelines/internal/forms"
	"github.com/timeline-dev/timelines/internal/logging"
	"github.com/timeline-dev/timelines/internal/services"
	"github.com/timeline-dev/timelines/internal/utils"
	"github.com/timeline-dev/timelines/internal/views"
)

// CookieConfig controls how the session cookie is written.
type CookieConfig struct {
	Domain string
	Secure bool
}

type Handler struct {
	// Ping checks the database for /healthz; nil skips the check.
	Ping func(ctx context.Context) error

	Users     *services.UserService
	Timelines *services.TimelineService
	Events    *services.EventService
	Locations *services.LocationService
	People    *services.PersonService
	Signer    *auth.Signer
	Hub       *Hub
	Log       logging.Logger
	Cookie    CookieConfig
}

const (
	flashCookie = "__flash"
	flashMaxAge = 60
)

// offered lists the formats every page can be negotiated into. HTML is the
// default when the client sends no Accept header.
var offered = []string{gin.MIMEHTML, gin.MIMEJSON}

func (h *Handler) page(ctx *gin.Context, title string) views.Page {
	p := views.Page{
		Title: title,
		Nav:   views.Navigation(ctx.Request.URL.Path),
	}

	if user, err := utils.GetCurrentUser(ctx); err == nil {
		p.UserEmail = user.Email
	}

	if msg, err := ctx.Cookie(flashCookie); err == nil && msg != "" {
		p.Flash = msg
		h.setCookie(ctx, flashCookie, "", -1)
	}

	return p
}

// flash stores a notice shown by the next rendered page.
func (h *Handler) flash(ctx *gin.Context, msg string) {
	h.setCookie(ctx, flashCookie, url.QueryEscape(msg), flashMaxAge)
}

func (h *Handler) render(ctx *gin.Context, status int, name string, page views.Page, data any) {
	ctx.Negotiate(status, gin.Negotiate{
		Offered:  offered,
		HTMLName: name,
		HTMLData: page,
		JSONData: data,
	})
}

// invalid re-renders a form with its field errors and a 400 status.
func (h *Handler) invalid(ctx *gin.Context, name string, page views.Page, order ...string) {
	page.Focus = page.Errors.FocusField(order...)

	h.render(ctx, http.StatusBadRequest, name, page, gin.H{
		"errors":      page.Errors,
		"formPayload": page.Values,
	})
}

func (h *Handler) notFound(ctx *gin.Context, message string) {
	page := h.page(ctx, "Not found")
	page.Data = message

	h.render(ctx, http.StatusNotFound, "errors/not_found", page, gin.H{"error": message})
}

// badRequest answers unparsable submissions without echoing their details.
func (h *Handler) badRequest(ctx *gin.Context, err error) {
	h.Log.Warn(ctx.Request.Context(), "invalid request", "request_id", utils.GetRequestID(ctx), "error", err)
	_ = ctx.Error(err)

	page := h.page(ctx, "Invalid request")
	page.Data = "Invalid request"

	h.render(ctx, http.StatusBadRequest, "errors/not_found", page, gin.H{"error": "Invalid request"})
}

func (h *Handler) serverError(ctx *gin.Context, err error) {
	h.Log.Error(ctx.Request.Context(), "request failed", "request_id", utils.GetRequestID(ctx), "error", err)
	_ = ctx.Error(err)

	h.render(ctx, http.StatusInternalServerError, "errors/error", h.page(ctx, "Error"), gin.H{"error": "Internal server error"})
}

// fail maps a service error onto a response.
func (h *Handler) fail(ctx *gin.Context, err error, notFoundMessage string) {
	if errors.Is(err, services.ErrNotFound) {
		h.notFound(ctx, notFoundMessage)
		return
	}

	h.serverError(ctx, err)
}

// Recover renders the error page for panics escaping a handler.
func (h *Handler) Recover(ctx *gin.Context, recovered any) {
	h.Log.Error(ctx.Request.Context(), "panic recovered", "request_id", utils.GetRequestID(ctx), "panic", fmt.Sprint(recovered))

	h.render(ctx, http.StatusInternalServerError, "errors/error", h.page(ctx, "Error"), gin.H{"error": "An unexpected error occurred"})
	ctx.Abort()
}

// currentUserID is only called behind AuthMiddleware; a missing user is a wiring bug.
func (h *Handler) currentUserID(ctx *gin.Context) (uint, bool) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.Redirect(http.StatusFound, "/login")
		ctx.Abort()
		return 0, false
	}

	return userID, true
}

// bind wraps forms.Bind, answering the request itself on non-validation errors.
func (h *Handler) bind(ctx *gin.Context, dst any) (forms.Errors, bool) {
	errs, err := forms.Bind(ctx, dst)

	if err != nil {
		h.badRequest(ctx, err)
		return nil, false
	}

	return errs, true
}
