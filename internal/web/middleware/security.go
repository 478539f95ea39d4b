package middleware

import "net/http"

// LottieCDN serves the animation player script.
const LottieCDN = "https://cdnjs.cloudflare.com"

// contentSecurityPolicy allows the player from LottieCDN; the animation
// document itself is proxied through /api/animation.
const contentSecurityPolicy = "default-src 'self'; script-src 'self' " + LottieCDN +
	"; style-src 'self' 'unsafe-inline'; img-src 'self' data: blob:; connect-src 'self'; font-src 'self'"

// SecurityHeaders adds hardening headers to every response.
// The Content-Security-Policy header is only sent when enableCSP is set.
func SecurityHeaders(enableCSP bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set("X-Content-Type-Options", "nosniff")
			h.Set("X-Frame-Options", "DENY")
			h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
			if enableCSP {
				h.Set("Content-Security-Policy", contentSecurityPolicy)
			}
			next.ServeHTTP(w, r)
		})
	}
}
