package portal

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/rs/zerolog/log"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

var pageTemplates = template.Must(template.ParseFS(templateFS, "templates/*.tmpl"))

// StaticHandler serves the embedded stylesheet and page script.
func StaticHandler() http.Handler {
	return http.FileServerFS(staticFS)
}

const themeCookie = "aigency_theme"

type pageData struct {
	Page    Page
	Title   string
	Theme   string // "dark" or "light"
	Email   string // set on protected pages
	Version string
}

func pageTitle(p Page) string {
	switch p {
	case PageClientLogin:
		return "Client Portal — Sign In"
	case PageClientDashboard:
		return "Client Portal"
	case PagePaymentSuspension:
		return "Account Suspended"
	case PageAdminLogin:
		return "Admin — Sign In"
	case PageAdminDashboard:
		return "Admin Dashboard"
	default:
		return "Aigency — Automation for Agencies"
	}
}

// theme reads the persisted display preference; dark is the default, as it
// was before the preference existed.
func theme(r *http.Request) string {
	if c, err := r.Cookie(themeCookie); err == nil && c.Value == "light" {
		return "light"
	}
	return "dark"
}

// HandlePage serves the shell for whatever page state the request path
// resolves to. The nav machine re-derives the state on every request; the
// session gate runs before any protected shell is rendered, so no
// authenticated content ever precedes the check.
func HandlePage(deps *Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		from := deps.Nav.Current()
		page := deps.Nav.Transition(r.URL.Path)
		if page != from {
			log.Debug().Str("from", string(from)).Str("to", string(page)).Msg("Page transition")
		}
		data := pageData{
			Page:    page,
			Title:   pageTitle(page),
			Theme:   theme(r),
			Version: deps.Version,
		}

		if page.Protected() {
			user, err := deps.Gate.Check(r.Context(), r)
			if err != nil {
				deps.Gate.RedirectToLogin(w, r, page)
				return
			}
			data.Email = user.Email
		}

		pageViews.WithLabelValues(string(page)).Inc()
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := pageTemplates.ExecuteTemplate(w, string(page), data); err != nil {
			log.Error().Err(err).Str("page", string(page)).Msg("Page render failed")
		}
	}
}

// HandleTheme persists the display preference. All preference changes go
// through here; nothing else writes the cookie.
func HandleTheme(deps *Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		next := "dark"
		if theme(r) == "dark" {
			next = "light"
		}
		http.SetCookie(w, &http.Cookie{
			Name:     themeCookie,
			Value:    next,
			Path:     "/",
			MaxAge:   365 * 24 * 60 * 60,
			SameSite: http.SameSiteLaxMode,
		})
		writeJSON(w, http.StatusOK, map[string]string{"theme": next})
	}
}
