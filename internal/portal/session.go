package portal

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/trevor93/Aigency/internal/dataservice"
	apperrors "github.com/trevor93/Aigency/internal/errors"
)

const sessionCookieMaxAge = 8 * time.Hour

// Gate guards the protected page states. The check is a pure query and the
// redirect is a separate, explicit effect, so each can be tested alone.
type Gate struct {
	ds           *dataservice.Client
	cookieName   string
	cookieSecure bool
}

// NewGate creates a session gate backed by the identity API.
func NewGate(ds *dataservice.Client, cookieName string, cookieSecure bool) *Gate {
	return &Gate{ds: ds, cookieName: cookieName, cookieSecure: cookieSecure}
}

// Check resolves the current session from the request cookie. It never
// writes to a response. A missing cookie, an invalid token, or an expired
// session all return ErrAuthRequired; only transport-level failures
// surface as fetch errors.
func (g *Gate) Check(ctx context.Context, r *http.Request) (*dataservice.User, error) {
	cookie, err := r.Cookie(g.cookieName)
	if err != nil || cookie.Value == "" {
		return nil, apperrors.NewAuthError("check_session", apperrors.ErrAuthRequired)
	}

	user, err := g.ds.GetUser(ctx, cookie.Value)
	if err != nil {
		if errors.Is(err, apperrors.ErrAuthRequired) {
			return nil, err
		}
		// The gate recovers identity-service hiccups as "no session" so a
		// protected page degrades to its login redirect, never a crash.
		log.Warn().Err(err).Msg("Session check failed, treating as unauthenticated")
		return nil, apperrors.NewAuthError("check_session", err)
	}
	return user, nil
}

// Token returns the raw session token from the request, if present.
func (g *Gate) Token(r *http.Request) string {
	cookie, err := r.Cookie(g.cookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// SetSession stores the session token in the visit-scoped cookie.
func (g *Gate) SetSession(w http.ResponseWriter, session *dataservice.Session) {
	maxAge := int(sessionCookieMaxAge.Seconds())
	if session.ExpiresIn > 0 {
		maxAge = session.ExpiresIn
	}
	http.SetCookie(w, &http.Cookie{
		Name:     g.cookieName,
		Value:    session.AccessToken,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   g.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSession expires the session cookie.
func (g *Gate) ClearSession(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     g.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   g.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

// RedirectToLogin is the gate's navigation effect: send the visitor to the
// login page paired with the protected page they asked for.
func (g *Gate) RedirectToLogin(w http.ResponseWriter, r *http.Request, protected Page) {
	http.Redirect(w, r, protected.LoginPage().Path(), http.StatusSeeOther)
}

// SignOut invalidates the remote session, clears the cookie, and redirects
// to the login page. The invalidation call is issued before the redirect is
// written; its failure is logged but does not block navigation.
func (g *Gate) SignOut(w http.ResponseWriter, r *http.Request, loginPage Page) {
	if token := g.Token(r); token != "" {
		if err := g.ds.SignOut(r.Context(), token); err != nil {
			log.Warn().Err(err).Msg("Remote sign-out failed, continuing with local logout")
		}
	}
	g.ClearSession(w)
	http.Redirect(w, r, loginPage.Path(), http.StatusSeeOther)
}

// RequireSession wraps a protected API handler. Without a session the
// response is 401 auth_required and the page script performs the login
// navigation; data handlers below this never run unauthenticated.
func (g *Gate) RequireSession(next func(w http.ResponseWriter, r *http.Request, user *dataservice.User)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := g.Check(r.Context(), r)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "auth_required", "Sign in to continue")
			return
		}
		next(w, r, user)
	}
}
