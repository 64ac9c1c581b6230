package middleware

import (
	"github.com/eventum/eventum/database/model"
	"github.com/eventum/eventum/logger"
	"github.com/eventum/eventum/web/service"
	"github.com/eventum/eventum/web/session"

	"github.com/gin-gonic/gin"
)

const currentUserKey = "user"

// CurrentUser resolves the identity token in the session to a user and
// stores it in the gin context. Tokens that match no user leave the request anonymous.
func CurrentUser() gin.HandlerFunc {
	userService := service.UserService{}
	return func(c *gin.Context) {
		token := session.GetIdentityToken(c)
		if token != "" {
			user, err := userService.GetByIdentityToken(token)
			if err != nil {
				logger.Warning("load current user:", err)
			} else if user != nil {
				c.Set(currentUserKey, user)
			}
		}
		c.Next()
	}
}

// GetCurrentUser returns the user loaded by CurrentUser, or nil.
func GetCurrentUser(c *gin.Context) *model.User {
	if v, ok := c.Get(currentUserKey); ok {
		if user, ok := v.(*model.User); ok {
			return user
		}
	}
	return nil
}
