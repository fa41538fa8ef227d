// Package netx contains small networking helpers.
package netx

import (
	"net"
	"net/http"
	"strings"
)

// VisitorAddr derives an opaque visitor identity from the request's network
// origin: the first address in the X-Forwarded-For header when present,
// otherwise the connection's remote host. The value is used only as a
// deduplication key and is never semantically validated.
func VisitorAddr(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if i := strings.IndexByte(fwd, ','); i >= 0 {
			fwd = fwd[:i]
		}
		if addr := strings.TrimSpace(fwd); addr != "" {
			return addr
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
