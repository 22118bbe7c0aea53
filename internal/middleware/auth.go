package middleware

import (
	"context"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/timeline-dev/timelines/internal/auth"
	"github.com/timeline-dev/timelines/internal/models"
	"github.com/timeline-dev/timelines/internal/types"
)

type AuthenticatedUser struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
}

// UserLookup resolves the user a session token points at.
type UserLookup interface {
	Get(ctx context.Context, id uint) (*models.User, error)
}

// AuthMiddleware requires a valid session cookie. Requests without one are
// redirected to the login page before any handler runs.
func AuthMiddleware(signer *auth.Signer, users UserLookup) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token, err := ctx.Cookie(auth.SessionCookie)

		if err != nil || token == "" {
			redirectToLogin(ctx)
			return
		}

		userID, err := signer.Verify(token)

		if err != nil {
			redirectToLogin(ctx)
			return
		}

		user, err := users.Get(ctx.Request.Context(), userID)

		if err != nil {
			redirectToLogin(ctx)
			return
		}

		ctx.Set(types.ContextUserKey, AuthenticatedUser{
			ID:    user.ID,
			Email: user.Email,
		})
		ctx.Next()
	}
}

// OptionalAuth attaches the session user when there is one and never aborts.
func OptionalAuth(signer *auth.Signer, users UserLookup) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if token, err := ctx.Cookie(auth.SessionCookie); err == nil && token != "" {
			if userID, err := signer.Verify(token); err == nil {
				if user, err := users.Get(ctx.Request.Context(), userID); err == nil {
					ctx.Set(types.ContextUserKey, AuthenticatedUser{ID: user.ID, Email: user.Email})
				}
			}
		}
		ctx.Next()
	}
}

func redirectToLogin(ctx *gin.Context) {
	target := "/login?redirectTo=" + url.QueryEscape(ctx.Request.URL.RequestURI())
	ctx.Redirect(http.StatusFound, target)
	ctx.Abort()
}
