package portal

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/trevor93/Aigency/internal/dataservice"
)

// validEmail is a minimal shape check; the backend owns real validation.
func validEmail(s string) bool {
	at := strings.IndexByte(s, '@')
	return at > 0 && strings.IndexByte(s[at+1:], '.') > 0
}

// HandleContact accepts a marketing contact form submission and writes it
// into the write-only contact collection.
func HandleContact(deps *Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var sub dataservice.ContactSubmission
		if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", "Invalid JSON body")
			return
		}
		sub.Name = strings.TrimSpace(sub.Name)
		sub.Email = strings.TrimSpace(sub.Email)
		sub.Message = strings.TrimSpace(sub.Message)
		if sub.Name == "" || sub.Message == "" || !validEmail(sub.Email) {
			writeError(w, http.StatusBadRequest, "invalid_input", "name, email and message are required")
			return
		}

		if err := deps.Data.SubmitContact(r.Context(), sub); err != nil {
			log.Error().Err(err).Msg("Contact submission failed")
			writeError(w, http.StatusBadGateway, "submit_failed", "Unable to send your message, try again")
			return
		}
		writeJSON(w, http.StatusAccepted, map[string]string{"status": "received"})
	}
}

// HandleNewsletter accepts a newsletter signup.
func HandleNewsletter(deps *Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var sub dataservice.NewsletterSubscriber
		if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", "Invalid JSON body")
			return
		}
		sub.Email = strings.TrimSpace(sub.Email)
		if !validEmail(sub.Email) {
			writeError(w, http.StatusBadRequest, "invalid_input", "a valid email is required")
			return
		}

		if err := deps.Data.SubscribeNewsletter(r.Context(), sub); err != nil {
			log.Error().Err(err).Msg("Newsletter signup failed")
			writeError(w, http.StatusBadGateway, "submit_failed", "Unable to subscribe, try again")
			return
		}
		writeJSON(w, http.StatusAccepted, map[string]string{"status": "subscribed"})
	}
}
