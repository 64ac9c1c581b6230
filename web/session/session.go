// Package session stores the authenticated principal in the gin-contrib
// cookie session.
package session

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// IdentityTokenKey holds the external identity token of the logged in user.
const IdentityTokenKey = "identity_token"

func SetIdentityToken(c *gin.Context, token string) error {
	s := sessions.Default(c)
	s.Set(IdentityTokenKey, token)
	return s.Save()
}

// GetIdentityToken returns the identity token in the session, or "" for an anonymous session.
func GetIdentityToken(c *gin.Context) string {
	s := sessions.Default(c)
	if token, ok := s.Get(IdentityTokenKey).(string); ok {
		return token
	}
	return ""
}

func ClearSession(c *gin.Context) error {
	s := sessions.Default(c)
	s.Clear()
	s.Options(sessions.Options{
		Path:   "/",
		MaxAge: -1,
	})
	return s.Save()
}
