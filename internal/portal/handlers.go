package portal

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/trevor93/Aigency/internal/dashboard"
	"github.com/trevor93/Aigency/internal/dataservice"
	apperrors "github.com/trevor93/Aigency/internal/errors"
)

// Deps holds shared dependencies injected into HTTP handlers.
type Deps struct {
	Config       *Config
	Data         *dataservice.Client
	Gate         *Gate
	Nav          *NavMachine
	Clients      *dashboard.Fetcher[dataservice.ClientRecord]
	Transactions *dashboard.Fetcher[dataservice.Transaction]
	Automations  *dashboard.Fetcher[dataservice.AutomationEvent]
	Version      string
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Error().Err(err).Msg("portal: encode JSON response")
	}
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Error: code, Message: message})
}

// writePortalError maps a failed operation onto one HTTP response. The
// failure stays contained in the component that issued it: the view gets an
// error payload, never a crash.
func writePortalError(w http.ResponseWriter, op string, err error) {
	pe := apperrors.AsPortalError(op, err)
	switch pe.Kind {
	case apperrors.KindAuth:
		writeError(w, pe.HTTPStatus(), "auth_required", "Sign in to continue")
	case apperrors.KindNotFound:
		writeError(w, pe.HTTPStatus(), "not_found", "No matching record")
	case apperrors.KindValidation:
		writeError(w, pe.HTTPStatus(), "invalid_input", pe.Err.Error())
	default:
		// Detail goes to the log, not the wire.
		log.Error().Err(pe).Str("op", op).Msg("Portal operation failed")
		writeError(w, pe.HTTPStatus(), string(pe.Kind), "Unable to load data, try again")
	}
}
