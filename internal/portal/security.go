package portal

import "net/http"

// SecurityHeaders wraps an http.Handler to set baseline security headers on
// all responses.
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Portal pages should never be embedded.
		w.Header().Set("X-Frame-Options", "DENY")

		// Prevent MIME type sniffing.
		w.Header().Set("X-Content-Type-Options", "nosniff")

		// Avoid leaking full URLs to third parties.
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		// No device APIs anywhere in the portal.
		w.Header().Set("Permissions-Policy", "geolocation=(), microphone=(), camera=(), payment=(), usb=()")

		w.Header().Set("Content-Security-Policy",
			"default-src 'self'; script-src 'self'; style-src 'self' 'unsafe-inline'; "+
				"img-src 'self' data:; connect-src 'self'; font-src 'self'; "+
				"form-action 'self'; frame-ancestors 'none'")

		next.ServeHTTP(w, r)
	})
}
