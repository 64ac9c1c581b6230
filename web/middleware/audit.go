package middleware

import (
	"net/http"
	"strings"

	"github.com/eventum/eventum/logger"

	"github.com/gin-gonic/gin"
)

// AuditMiddleware logs state changing requests together with the acting user.
func AuditMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		method := c.Request.Method
		if method == http.MethodGet || method == http.MethodHead || method == http.MethodOptions {
			return
		}
		path := c.Request.URL.Path
		if shouldSkipAudit(path) {
			return
		}

		actor := "anonymous"
		if user := GetCurrentUser(c); user != nil {
			actor = user.Email
		}
		logger.Infof("audit: %s %s %s by %s -> %d", actionFor(method), path, c.ClientIP(), actor, c.Writer.Status())
	}
}

func shouldSkipAudit(path string) bool {
	skipPaths := []string{"/csrf", "/healthz"}
	for _, skipPath := range skipPaths {
		if strings.HasPrefix(path, skipPath) {
			return true
		}
	}
	return false
}

func actionFor(method string) string {
	switch method {
	case http.MethodPost:
		return "CREATE"
	case http.MethodPut, http.MethodPatch:
		return "UPDATE"
	case http.MethodDelete:
		return "DELETE"
	default:
		return method
	}
}
