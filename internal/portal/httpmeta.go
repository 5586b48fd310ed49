package portal

import (
	"net"
	"net/http"
	"strings"
)

// clientIP resolves the source IP for rate limiting and login audit logs.
// Behind a proxy the first X-Forwarded-For hop is the visitor.
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if first = strings.TrimSpace(first); first != "" {
			return first
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
