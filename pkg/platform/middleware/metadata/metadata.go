// Package metadata records who is calling: client IP and a readable user
// agent, both stored in requestcontext for audit events.
package metadata

import (
	"fmt"
	"net"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/mssola/useragent"

	"ballotbox/pkg/requestcontext"
)

const maxUserAgentLength = 256

// ClientMetadata extracts client IP address and User-Agent from the request.
// Apply it early so every later middleware and handler can read them.
func ClientMetadata(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := ClientIPFromRequest(r)
		agent := DescribeUserAgent(r.Header.Get("User-Agent"))
		ctx := requestcontext.WithClientMetadata(r.Context(), ip, agent)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// DescribeUserAgent condenses a raw User-Agent header into
// "Browser Version (OS)" with mobile and bot markers. Unparseable agents are
// returned as sent. The result never exceeds maxUserAgentLength bytes.
func DescribeUserAgent(raw string) string {
	return truncate(describe(strings.TrimSpace(raw)))
}

func describe(raw string) string {
	if raw == "" {
		return ""
	}
	ua := useragent.New(raw)
	if ua.Bot() {
		name, _ := ua.Browser()
		if name == "" {
			name = raw
		}
		return "bot: " + name
	}
	name, version := ua.Browser()
	if name == "" {
		return raw
	}
	desc := name
	if version != "" {
		desc += " " + version
	}
	if os := ua.OS(); os != "" {
		desc = fmt.Sprintf("%s (%s)", desc, os)
	}
	if ua.Mobile() {
		desc += " mobile"
	}
	return desc
}

// ClientIPFromRequest returns the originating client address. The first
// X-Forwarded-For hop wins, then X-Real-IP, then the connection address.
func ClientIPFromRequest(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	if xri := strings.TrimSpace(r.Header.Get("X-Real-IP")); xri != "" {
		return xri
	}
	if r.RemoteAddr == "" {
		return "unknown"
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return strings.Trim(r.RemoteAddr, "[]")
	}
	return host
}

// truncate cuts s to maxUserAgentLength bytes without splitting a rune.
func truncate(s string) string {
	if len(s) <= maxUserAgentLength {
		return s
	}
	cut := maxUserAgentLength
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
