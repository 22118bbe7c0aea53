package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/timeline-dev/timelines/internal/auth"
	"github.com/timeline-dev/timelines/internal/forms"
	"github.com/timeline-dev/timelines/internal/models"
	"github.com/timeline-dev/timelines/internal/services"
	"github.com/timeline-dev/timelines/internal/types"
)

const defaultRedirect = "/timelines"

type LoginForm struct {
	Email      string `form:"email" label:"Email" binding:"required,email"`
	Password   string `form:"password" binding:"required"`
	RedirectTo string `form:"redirectTo"`
}

type JoinForm struct {
	Email    string `form:"email" label:"Email" binding:"required,email"`
	Password string `form:"password" binding:"required,min=8"`
}

// safeRedirect only allows local absolute paths.
func safeRedirect(to, fallback string) string {
	if to == "" || !strings.HasPrefix(to, "/") || strings.HasPrefix(to, "//") || strings.HasPrefix(to, "/\\") {
		return fallback
	}
	return to
}

func (h *Handler) LoginPage(ctx *gin.Context) {
	page := h.page(ctx, "Log in")
	page.Nav = nil
	page.Values = map[string]string{"redirectTo": ctx.Query("redirectTo")}
	page.Focus = "email"

	h.render(ctx, http.StatusOK, "login", page, gin.H{"redirectTo": page.Values["redirectTo"]})
}

func (h *Handler) Login(ctx *gin.Context) {
	var form LoginForm

	errs, ok := h.bind(ctx, &form)
	if !ok {
		return
	}

	page := h.page(ctx, "Log in")
	page.Nav = nil
	page.Values = map[string]string{"email": form.Email, "redirectTo": form.RedirectTo}

	if !errs.Empty() {
		page.Errors = errs
		h.invalid(ctx, "login", page, "email", "password")
		return
	}

	user, err := h.Users.Verify(ctx.Request.Context(), form.Email, form.Password)

	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			page.Errors = forms.Errors{}
			page.Errors.Add("email", "Invalid email or password")
			h.invalid(ctx, "login", page, "email")
			return
		}
		h.serverError(ctx, err)
		return
	}

	if err := h.startSession(ctx, user); err != nil {
		h.serverError(ctx, err)
		return
	}

	ctx.Redirect(http.StatusFound, safeRedirect(form.RedirectTo, defaultRedirect))
}

func (h *Handler) JoinPage(ctx *gin.Context) {
	page := h.page(ctx, "Sign up")
	page.Nav = nil
	page.Focus = "email"

	h.render(ctx, http.StatusOK, "join", page, gin.H{})
}

func (h *Handler) Join(ctx *gin.Context) {
	var form JoinForm

	errs, ok := h.bind(ctx, &form)
	if !ok {
		return
	}

	page := h.page(ctx, "Sign up")
	page.Nav = nil
	page.Values = map[string]string{"email": form.Email}

	if !errs.Empty() {
		page.Errors = errs
		h.invalid(ctx, "join", page, "email", "password")
		return
	}

	user, err := h.Users.Create(ctx.Request.Context(), form.Email, form.Password)

	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			page.Errors = forms.Errors{}
			page.Errors.Add("email", "A user already exists with this email")
			h.invalid(ctx, "join", page, "email")
			return
		}
		h.serverError(ctx, err)
		return
	}

	h.Log.Info(ctx.Request.Context(), "user created", "user_id", user.ID)

	if err := h.startSession(ctx, user); err != nil {
		h.serverError(ctx, err)
		return
	}

	ctx.Redirect(http.StatusFound, defaultRedirect)
}

func (h *Handler) Logout(ctx *gin.Context) {
	h.setSessionCookie(ctx, "", -1)
	ctx.Redirect(http.StatusFound, "/")
}

// Me returns the session user.
func (h *Handler) Me(ctx *gin.Context) {
	userID, ok := h.currentUserID(ctx)
	if !ok {
		return
	}

	user, err := h.Users.Get(ctx.Request.Context(), userID)

	if err != nil {
		h.fail(ctx, err, "User not found")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"user": types.UserResponse{ID: user.ID, Email: user.Email}})
}

func (h *Handler) startSession(ctx *gin.Context, user *models.User) error {
	token, err := h.Signer.Generate(user.ID, user.Email)

	if err != nil {
		return err
	}

	h.setSessionCookie(ctx, token, int(auth.SessionTTL.Seconds()))
	return nil
}

func (h *Handler) setSessionCookie(ctx *gin.Context, value string, maxAge int) {
	h.setCookie(ctx, auth.SessionCookie, value, maxAge)
}

func (h *Handler) setCookie(ctx *gin.Context, name, value string, maxAge int) {
	http.SetCookie(ctx.Writer, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Domain:   h.Cookie.Domain,
		MaxAge:   maxAge,
		Secure:   h.Cookie.Secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
