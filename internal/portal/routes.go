package portal

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RegisterRoutes wires all portal routes onto the mux. Page shells hang off
// the catch-all root pattern; everything the page scripts call lives under
// /api.
func RegisterRoutes(mux *http.ServeMux, deps *Deps) {
	// Credential attempts get the tight default budget; the marketing forms
	// get a looser one so a busy landing page is not starved.
	loginLimiter := NewRateLimiter(defaultRateLimit, defaultRateWindow)
	formLimiter := NewRateLimiter(30, time.Minute)

	mux.Handle("/", HandlePage(deps))
	mux.Handle("GET /static/", StaticHandler())

	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", handleHealth)
	mux.Handle("GET /metrics", metricsHandler(deps.Config))

	mux.Handle("POST /api/auth/login", loginLimiter.Middleware(HandleLogin(deps)))
	mux.HandleFunc("POST /api/auth/logout", HandleLogout(deps))
	mux.HandleFunc("GET /api/auth/session", HandleSession(deps))

	mux.HandleFunc("GET /api/admin/overview", HandleAdminOverview(deps))
	mux.HandleFunc("GET /api/admin/clients", HandleAdminClients(deps))
	mux.HandleFunc("GET /api/admin/payments", HandleAdminPayments(deps))
	mux.HandleFunc("GET /api/admin/logs", HandleAdminLogs(deps))

	mux.HandleFunc("GET /api/client/me", HandleClientAccount(deps))

	mux.Handle("POST /api/contact", formLimiter.Middleware(HandleContact(deps)))
	mux.Handle("POST /api/newsletter", formLimiter.Middleware(HandleNewsletter(deps)))

	mux.HandleFunc("POST /api/prefs/theme", HandleTheme(deps))
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// metricsHandler exposes Prometheus metrics. The endpoint is gated behind the
// admin key unless explicitly made public.
func metricsHandler(cfg *Config) http.Handler {
	prom := promhttp.Handler()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !cfg.PublicMetrics {
			if cfg.AdminKey == "" || r.Header.Get("X-Admin-Key") != cfg.AdminKey {
				writeError(w, http.StatusUnauthorized, "auth_required", "Metrics access requires the admin key")
				return
			}
		}
		prom.ServeHTTP(w, r)
	})
}
