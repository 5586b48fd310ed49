package portal

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Portal   string `json:"portal"` // "client" or "admin"
}

type loginResponse struct {
	Email    string `json:"email"`
	Redirect string `json:"redirect"`
}

type sessionResponse struct {
	Email string `json:"email"`
}

// HandleLogin exchanges credentials for a session via the identity API,
// stores the token in the session cookie, and tells the page where to
// navigate. The failure message is deliberately generic.
func HandleLogin(deps *Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", "Invalid JSON body")
			return
		}
		portalName := req.Portal
		if portalName != "admin" {
			portalName = "client"
		}
		if strings.TrimSpace(req.Email) == "" || req.Password == "" {
			loginAttempts.WithLabelValues(portalName, "invalid").Inc()
			writeError(w, http.StatusBadRequest, "bad_request", "email and password are required")
			return
		}

		session, err := deps.Data.SignInWithPassword(r.Context(), req.Email, req.Password)
		if err != nil {
			loginAttempts.WithLabelValues(portalName, "failure").Inc()
			log.Warn().Str("portal", portalName).Str("ip", clientIP(r)).Msg("Sign-in failed")
			writeError(w, http.StatusUnauthorized, "invalid_credentials", "Invalid email or password. Please try again.")
			return
		}

		deps.Gate.SetSession(w, session)
		loginAttempts.WithLabelValues(portalName, "success").Inc()
		log.Info().Str("portal", portalName).Str("email", session.User.Email).Msg("Sign-in succeeded")

		redirect := PageClientDashboard.Path()
		if portalName == "admin" {
			redirect = PageAdminDashboard.Path()
		}
		writeJSON(w, http.StatusOK, loginResponse{Email: session.User.Email, Redirect: redirect})
	}
}

// HandleLogout invalidates the remote session and redirects to the login
// page for the requesting portal.
func HandleLogout(deps *Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		loginPage := PageClientLogin
		if r.URL.Query().Get("portal") == "admin" {
			loginPage = PageAdminLogin
		}
		deps.Gate.SignOut(w, r, loginPage)
	}
}

// HandleSession reports the current session, if any. Pages poll this on
// entry to a protected state; a 401 here triggers the login navigation.
func HandleSession(deps *Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		user, err := deps.Gate.Check(r.Context(), r)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "auth_required", "No active session")
			return
		}
		writeJSON(w, http.StatusOK, sessionResponse{Email: user.Email})
	}
}
