package middleware

import (
	"net/http"

	"github.com/eventum/eventum/config"

	"github.com/gin-gonic/gin"
	csrf "github.com/utrack/gin-csrf"
)

const CSRFHeader = "X-CSRF-Token"

var allMethods = []string{
	http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodTrace,
	http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodConnect,
}

// CSRFProtect requires unsafe requests to echo the session CSRF token in
// the X-CSRF-Token header. When the config disables CSRF protection every
// method is let through, but CSRFToken keeps working.
func CSRFProtect(cfg *config.AppConfig) gin.HandlerFunc {
	opts := csrf.Options{
		Secret: cfg.SecretKey,
		TokenGetter: func(c *gin.Context) string {
			return c.GetHeader(CSRFHeader)
		},
		ErrorFunc: func(c *gin.Context) {
			abortMsg(c, http.StatusForbidden, "invalid CSRF token")
		},
	}
	if !cfg.CSRFProtection() {
		opts.IgnoreMethods = allMethods
	}
	return csrf.Middleware(opts)
}

// CSRFToken returns the token unsafe requests of this session must send,
// storing a new salt in the session on first use. Requires CSRFProtect.
func CSRFToken(c *gin.Context) string {
	return csrf.GetToken(c)
}
